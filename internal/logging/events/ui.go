package events

import "github.com/dxbtools/admintools/internal/logging"

type UITracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Command = CommandTracer{}
)

func (UITracer) MenuOpen(title string, options int) {
	logging.Trace("menu.open", map[string]interface{}{"title": title, "options": options})
}

func (UITracer) MenuCursor(title string, cursor int) {
	logging.Trace("menu.cursor", map[string]interface{}{"title": title, "cursor": cursor})
}

func (UITracer) MenuRender(title string, cursor, renders int) {
	logging.Trace("menu.render", map[string]interface{}{"title": title, "cursor": cursor, "renders": renders})
}

func (UITracer) MenuChoose(title string, cursor int, option string) {
	logging.Trace("menu.choose", map[string]interface{}{"title": title, "cursor": cursor, "option": option})
}

func (UITracer) MenuExit(title string) {
	logging.Trace("menu.exit", map[string]interface{}{"title": title})
}

func (UITracer) TerminalRestore(reason string) {
	logging.Trace("terminal.restore", map[string]interface{}{"reason": reason})
}

func (CommandTracer) Start(title, line string) {
	logging.Trace("command.start", map[string]interface{}{"title": title, "line": line})
}

func (CommandTracer) Result(title string, err error) {
	payload := map[string]interface{}{"title": title}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
