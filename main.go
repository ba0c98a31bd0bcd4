package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dxbtools/admintools/internal/cli"
	"github.com/dxbtools/admintools/internal/config"
	"github.com/dxbtools/admintools/internal/logging/events"
	"golang.org/x/term"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx, os.Args[1:], cli.Options{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Started: traceStartup,
	})
	stop()
	os.Exit(code)
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg, os.Args))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, argv []string) map[string]interface{} {
	settings := map[string]interface{}{
		"trace":      cfg.Logging.Trace,
		"logFile":    cfg.Logging.File,
		"logLevel":   cfg.Logging.Level,
		"syslog":     cfg.Logging.Syslog,
		"configFile": cfg.File,
		"menuFile":   cfg.Menu.File,
		"vault":      cfg.Vault.Enabled(),
	}
	payload := map[string]interface{}{
		"argv":     argv,
		"settings": settings,
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	payload["tty"] = describeTerminal(os.Stdin, os.Stdout, os.Stderr)
	return payload
}

// terminal summarises the standard streams at startup. Interactive is what
// the menu needs; Streams says which stream fell short when it is false.
type terminal struct {
	Interactive bool              `json:"interactive"`
	Width       int               `json:"width,omitempty"`
	Height      int               `json:"height,omitempty"`
	Streams     map[string]string `json:"streams"`
}

func describeTerminal(stdin, stdout, stderr *os.File) terminal {
	t := terminal{Streams: make(map[string]string, 3)}
	t.Streams["stdin"] = t.inspect(stdin)
	t.Streams["stdout"] = t.inspect(stdout)
	t.Streams["stderr"] = t.inspect(stderr)
	t.Interactive = isTerminal(stdin) && isTerminal(stdout)
	return t
}

// inspect records the first measurable size on t.
func (t *terminal) inspect(f *os.File) string {
	if !isTerminal(f) {
		return "not a terminal"
	}
	w, h, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return "terminal, size unknown: " + err.Error()
	}
	if t.Width == 0 {
		t.Width, t.Height = w, h
	}
	return fmt.Sprintf("terminal %dx%d", w, h)
}

func isTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}
