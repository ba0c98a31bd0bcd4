package ui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/term"
)

func TestNewSessionRequiresTerminal(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "not-a-tty"))
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	defer f.Close()
	if _, err := NewSession(f, f); !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal, got %v", err)
	}
	if _, err := NewSession(nil, nil); !errors.Is(err, ErrNoTerminal) {
		t.Fatalf("expected ErrNoTerminal for nil files, got %v", err)
	}
}

func TestSessionCloseIsIdempotent(t *testing.T) {
	s := &Session{}
	if err := s.Close(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("expected nil error on second close, got %v", err)
	}
}

func TestSessionRestoresTerminalOnce(t *testing.T) {
	calls := 0
	s := &Session{
		fd:    7,
		saved: &term.State{},
		restoreTerm: func(fd int, state *term.State) error {
			calls++
			if fd != 7 || state == nil {
				t.Fatalf("unexpected restore args fd=%d state=%v", fd, state)
			}
			return nil
		},
	}
	_ = s.restore("interrupt")
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	_ = s.Close()
	if calls != 1 {
		t.Fatalf("expected one terminal restore, got %d", calls)
	}
}

func TestSessionCloseReportsRestoreError(t *testing.T) {
	boom := errors.New("restore failed")
	s := &Session{saved: &term.State{}, restoreTerm: func(int, *term.State) error { return boom }}
	if err := s.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected restore error, got %v", err)
	}
	if err := s.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected the first error to stick, got %v", err)
	}
}
