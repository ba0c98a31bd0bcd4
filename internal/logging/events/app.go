package events

import "github.com/dxbtools/admintools/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(tool string, code int) {
	logging.Trace("app.exit", map[string]interface{}{"tool": tool, "code": code})
}
