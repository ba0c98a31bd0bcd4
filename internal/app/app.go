package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/dxbtools/admintools/internal/logging"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/menu"
	"go.uber.org/zap"
)

// Navigator shows one menu and reports what was picked.
type Navigator interface {
	Navigate(ctx context.Context, m, parent *menu.Menu) (menu.Selection, error)
}

// Config describes how chosen commands are run.
type Config struct {
	// Shell runs command lines as `Shell -c line`. Defaults to /bin/sh.
	Shell  string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func (c Config) shell() string {
	if c.Shell == "" {
		return "/bin/sh"
	}
	return c.Shell
}

// ErrUnknownPayload is returned for options whose payload is neither a
// command nor a submenu.
var ErrUnknownPayload = errors.New("app: option has no action")

// Run drives the menu tree rooted at root. Choosing a submenu descends into
// it; its exit row returns to the parent. Choosing a command runs it once
// the menu has released the terminal and ends the run with the command's
// outcome. Leaving the root menu returns nil.
func Run(ctx context.Context, cfg Config, nav Navigator, root *menu.Menu) error {
	if root == nil {
		return errors.New("app: no menu to show")
	}
	stack := []*menu.Menu{root}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}
		current := stack[len(stack)-1]
		var parent *menu.Menu
		if len(stack) > 1 {
			parent = stack[len(stack)-2]
		}
		sel, err := nav.Navigate(ctx, current, parent)
		if err != nil {
			return err
		}
		opt, ok := sel.Option()
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		switch payload := opt.Payload.(type) {
		case *menu.Menu:
			stack = append(stack, payload)
		case menu.Command:
			return runCommand(ctx, cfg, opt.Title, payload)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownPayload, opt.Title)
		}
	}
	return nil
}

func runCommand(ctx context.Context, cfg Config, title string, c menu.Command) error {
	events.Command.Start(title, c.Line)
	logging.Info("running menu command", zap.String("option", title), zap.String("command", c.Line))
	cmd := exec.CommandContext(ctx, cfg.shell(), "-c", c.Line)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if cfg.Stdin != nil {
		cmd.Stdin = cfg.Stdin
	}
	if cfg.Stdout != nil {
		cmd.Stdout = cfg.Stdout
	}
	if cfg.Stderr != nil {
		cmd.Stderr = cfg.Stderr
	}
	err := cmd.Run()
	events.Command.Result(title, err)
	if err != nil {
		return fmt.Errorf("run %q: %w", c.Line, err)
	}
	return nil
}
