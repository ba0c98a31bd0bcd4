package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/menu"
	"golang.org/x/term"
)

var (
	// ErrNoTerminal is returned when the session is opened without a TTY.
	ErrNoTerminal = errors.New("ui: standard input and output must be a terminal")
	// ErrInterrupted is returned when a menu is abandoned by a signal or ctrl+c.
	ErrInterrupted = errors.New("ui: menu interrupted")
)

// Session owns the terminal for the lifetime of one or more menus. The mode
// found at construction is restored by Close.
type Session struct {
	in    *os.File
	out   *os.File
	fd    int
	saved *term.State
	// restoreTerm is term.Restore outside tests.
	restoreTerm func(fd int, state *term.State) error

	closeOnce sync.Once
	closeErr  error
}

// NewSession acquires the terminal attached to in and out.
func NewSession(in, out *os.File) (*Session, error) {
	if in == nil || out == nil {
		return nil, ErrNoTerminal
	}
	fd := int(in.Fd())
	if !term.IsTerminal(fd) || !term.IsTerminal(int(out.Fd())) {
		return nil, ErrNoTerminal
	}
	saved, err := term.GetState(fd)
	if err != nil {
		return nil, fmt.Errorf("save terminal state: %w", err)
	}
	return &Session{in: in, out: out, fd: fd, saved: saved, restoreTerm: term.Restore}, nil
}

// Navigate shows m until an option or the exit row is chosen. parent labels
// the exit row of nested menus.
func (s *Session) Navigate(ctx context.Context, m, parent *menu.Menu) (menu.Selection, error) {
	model := NewModel(m, parent)
	program := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
		tea.WithAltScreen(),
	)
	_, err := program.Run()
	if err != nil {
		_ = s.restore("error")
		if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
			return menu.Exited(), ErrInterrupted
		}
		return menu.Exited(), fmt.Errorf("run menu: %w", err)
	}
	if model.Interrupted() {
		_ = s.restore("interrupt")
		return menu.Exited(), ErrInterrupted
	}
	sel, ok := model.Result()
	if !ok {
		_ = s.restore("quit")
		return menu.Exited(), ErrInterrupted
	}
	return sel, nil
}

// restore puts the saved mode back at most once per session, whichever of
// Navigate or Close gets there first.
func (s *Session) restore(reason string) error {
	s.closeOnce.Do(func() {
		if s.saved == nil {
			return
		}
		events.UI.TerminalRestore(reason)
		fn := s.restoreTerm
		if fn == nil {
			fn = term.Restore
		}
		s.closeErr = fn(s.fd, s.saved)
	})
	return s.closeErr
}

// Close puts the terminal back into the mode it had when the session was
// opened. Only the first restore does anything.
func (s *Session) Close() error {
	return s.restore("close")
}
