package events

import "github.com/dxbtools/admintools/internal/logging"

type ToolTracer struct{}

var Tool = ToolTracer{}

func (ToolTracer) Invalid(tool, reason string) {
	logging.Trace("tool.invalid", map[string]interface{}{"tool": tool, "reason": reason})
}

func (ToolTracer) Request(tool, method, target string) {
	logging.Trace("tool.request", map[string]interface{}{"tool": tool, "method": method, "target": target})
}

func (ToolTracer) Response(tool, target string, status int) {
	logging.Trace("tool.response", map[string]interface{}{"tool": tool, "target": target, "status": status})
}

func (ToolTracer) Found(tool, host string, found bool) {
	logging.Trace("tool.lookup", map[string]interface{}{"tool": tool, "host": host, "found": found})
}
