package menu

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDemoMenu(t *testing.T) {
	m := Demo()
	if m.Title != "Curses Menu" || m.Len() != 1 {
		t.Fatalf("unexpected demo menu %#v", m)
	}
	cmd, ok := m.Options[0].Payload.(Command)
	if !ok {
		t.Fatalf("expected command payload, got %T", m.Options[0].Payload)
	}
	if cmd.Line != "echo Hello World!" {
		t.Fatalf("unexpected command %q", cmd.Line)
	}
}

func TestSelectionVariants(t *testing.T) {
	opt := Option{Title: "Hello"}
	chosen := Chosen(2, opt)
	got, ok := chosen.Option()
	if !ok || got.Title != "Hello" || chosen.Index() != 2 || chosen.IsExit() {
		t.Fatalf("unexpected chosen selection %v", chosen)
	}
	exit := Exited()
	if _, ok := exit.Option(); ok {
		t.Fatalf("exit selection should carry no option")
	}
	if !exit.IsExit() || exit.Index() != -1 || exit.String() != "Exited" {
		t.Fatalf("unexpected exit selection %v", exit)
	}
}

func TestExitLabel(t *testing.T) {
	if got := ExitLabel(nil); got != "Exit" {
		t.Fatalf("expected Exit, got %q", got)
	}
	if got := ExitLabel(&Menu{Title: "Main"}); got != "Return to previous menu (Main)" {
		t.Fatalf("unexpected parent label %q", got)
	}
}

func TestParseNestedMenu(t *testing.T) {
	data := []byte(`
title: Ops
subtitle: Daily tasks
options:
  - title: Uptime
    command: uptime
  - title: Storage
    subtitle: Arrays
    options:
      - title: HQ array
        command: admintools dell-query -s HQ
`)
	m, err := Parse(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Len() != 2 {
		t.Fatalf("expected 2 options, got %d", m.Len())
	}
	sub, ok := m.Options[1].Payload.(*Menu)
	if !ok {
		t.Fatalf("expected submenu payload, got %T", m.Options[1].Payload)
	}
	if sub.Title != "Storage" || sub.Subtitle != "Arrays" || sub.Len() != 1 {
		t.Fatalf("unexpected submenu %#v", sub)
	}
}

func TestParseRejectsAmbiguousOption(t *testing.T) {
	_, err := Parse([]byte(`
title: Bad
options:
  - title: Both
    command: ls
    options:
      - title: child
        command: pwd
`))
	if err == nil {
		t.Fatalf("expected error for option with command and children")
	}
}

func TestParseRejectsEmptyMenu(t *testing.T) {
	_, err := Parse([]byte("title: Nothing\n"))
	if !errors.Is(err, ErrEmptyMenu) {
		t.Fatalf("expected ErrEmptyMenu, got %v", err)
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "menu.yaml")
	if err := os.WriteFile(path, []byte("title: T\noptions:\n  - title: A\n    command: \"true\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	m, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Options[0].Title != "A" {
		t.Fatalf("unexpected option %#v", m.Options[0])
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
