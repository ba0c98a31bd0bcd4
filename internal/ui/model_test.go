package ui

import (
	"testing"

	"github.com/dxbtools/admintools/internal/menu"
)

func threeOptionMenu() *menu.Menu {
	return &menu.Menu{
		Title:    "Tools",
		Subtitle: "Pick one",
		Options: []menu.Option{
			{Title: "alpha", Payload: menu.Command{Line: "echo alpha"}},
			{Title: "beta", Payload: menu.Command{Line: "echo beta"}},
			{Title: "gamma", Payload: menu.Command{Line: "echo gamma"}},
		},
	}
}

func TestDownWrapsPastExitRowToFirstOption(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("down", "down", "down", "down", "enter")
	if !h.Quit() {
		t.Fatalf("expected enter to quit the program")
	}
	sel, ok := h.Model().Result()
	if !ok {
		t.Fatalf("expected a result after enter")
	}
	opt, chosen := sel.Option()
	if !chosen || opt.Title != "alpha" {
		t.Fatalf("expected Chosen(alpha), got %s", sel)
	}
}

func TestThreeDownsLandOnExitRow(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("j", "j", "j")
	if got := h.Model().Cursor(); got != 3 {
		t.Fatalf("expected cursor 3, got %d", got)
	}
	h.Keys("enter")
	sel, ok := h.Model().Result()
	if !ok || !sel.IsExit() {
		t.Fatalf("expected Exited, got %s", sel)
	}
}

func TestUpFromFirstOptionWrapsToExitRow(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("up")
	if got := h.Model().Cursor(); got != 3 {
		t.Fatalf("expected cursor 3, got %d", got)
	}
	h.Keys("k")
	if got := h.Model().Cursor(); got != 2 {
		t.Fatalf("expected cursor 2, got %d", got)
	}
}

func TestEnterChoosesHighlightedOption(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("down", "enter")
	sel, _ := h.Model().Result()
	opt, ok := sel.Option()
	if !ok || opt.Title != "beta" || sel.Index() != 1 {
		t.Fatalf("expected Chosen(beta) at 1, got %s at %d", sel, sel.Index())
	}
	cmd, ok := opt.Payload.(menu.Command)
	if !ok || cmd.Line != "echo beta" {
		t.Fatalf("expected payload to survive selection, got %#v", opt.Payload)
	}
}

func TestQuitKeyExitsFromAnyRow(t *testing.T) {
	for start := 0; start <= 3; start++ {
		h := NewHarness(NewModel(threeOptionMenu(), nil))
		for i := 0; i < start; i++ {
			h.Keys("down")
		}
		h.Keys("q")
		if !h.Quit() {
			t.Fatalf("start %d: expected q to quit", start)
		}
		if got := h.Model().Cursor(); got != 3 {
			t.Fatalf("start %d: expected cursor forced to 3, got %d", start, got)
		}
		sel, ok := h.Model().Result()
		if !ok || !sel.IsExit() {
			t.Fatalf("start %d: expected Exited, got %s", start, sel)
		}
	}
}

func TestUnknownKeysAreIgnored(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("down", "x", "esc", "l", "h", "1")
	if got := h.Model().Cursor(); got != 1 {
		t.Fatalf("expected cursor 1, got %d", got)
	}
	if h.Quit() {
		t.Fatalf("unknown keys should not quit")
	}
	if _, ok := h.Model().Result(); ok {
		t.Fatalf("no result expected before enter")
	}
}

func TestKeysAfterSelectionAreIgnored(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("enter", "down", "down")
	if got := h.Model().Cursor(); got != 0 {
		t.Fatalf("expected cursor to stay at 0 after selection, got %d", got)
	}
}

func TestCtrlCAbortsWithoutResult(t *testing.T) {
	h := NewHarness(NewModel(threeOptionMenu(), nil))
	h.Keys("down", "ctrl+c")
	if !h.Quit() {
		t.Fatalf("expected ctrl+c to quit")
	}
	if !h.Model().Interrupted() {
		t.Fatalf("expected model to report interruption")
	}
	if _, ok := h.Model().Result(); ok {
		t.Fatalf("interrupted menus have no result")
	}
}

func TestEmptyMenuOffersOnlyExit(t *testing.T) {
	h := NewHarness(NewModel(&menu.Menu{Title: "Empty"}, nil))
	h.Keys("down", "enter")
	sel, ok := h.Model().Result()
	if !ok || !sel.IsExit() {
		t.Fatalf("expected Exited from empty menu, got %s", sel)
	}
}

func TestNilMenuIsTreatedAsEmpty(t *testing.T) {
	m := NewModel(nil, nil)
	if m.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", m.Cursor())
	}
}
