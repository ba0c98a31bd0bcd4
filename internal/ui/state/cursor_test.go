package state

import "testing"

func TestNewCursorStartsAtFirstRow(t *testing.T) {
	c := NewCursor(3)
	if c.Pos() != 0 {
		t.Fatalf("expected cursor 0, got %d", c.Pos())
	}
	if c.ExitRow() != 3 {
		t.Fatalf("expected exit row 3, got %d", c.ExitRow())
	}
	if c.AtExit() {
		t.Fatalf("fresh cursor should not be on the exit row")
	}
}

func TestDownAdvancesIntoExitRowThenWraps(t *testing.T) {
	c := NewCursor(3)
	for want := 1; want <= 3; want++ {
		if !c.Down() {
			t.Fatalf("expected movement to %d", want)
		}
		if c.Pos() != want {
			t.Fatalf("expected cursor %d, got %d", want, c.Pos())
		}
	}
	if !c.AtExit() {
		t.Fatalf("three downs from 0 should land on the exit row")
	}
	c.Down()
	if c.Pos() != 0 {
		t.Fatalf("down from exit row should wrap to 0, got %d", c.Pos())
	}
}

func TestUpDecrementsAndWrapsToExitRow(t *testing.T) {
	c := NewCursor(3)
	c.Up()
	if c.Pos() != 3 {
		t.Fatalf("up from 0 should wrap to exit row 3, got %d", c.Pos())
	}
	for want := 2; want >= 0; want-- {
		c.Up()
		if c.Pos() != want {
			t.Fatalf("expected cursor %d, got %d", want, c.Pos())
		}
	}
}

func TestCursorStaysInRange(t *testing.T) {
	c := NewCursor(4)
	moves := []func() bool{c.Down, c.Down, c.Up, c.Up, c.Up, c.Down, c.Exit, c.Down, c.Up, c.Up}
	for i, move := range moves {
		move()
		if c.Pos() < 0 || c.Pos() > c.Count() {
			t.Fatalf("step %d: cursor %d out of [0,%d]", i, c.Pos(), c.Count())
		}
	}
}

func TestExitJumpsToExitRow(t *testing.T) {
	c := NewCursor(5)
	c.Down()
	if !c.Exit() {
		t.Fatalf("expected movement to exit row")
	}
	if c.Pos() != 5 {
		t.Fatalf("expected cursor 5, got %d", c.Pos())
	}
	if c.Exit() {
		t.Fatalf("expected no movement when already on exit row")
	}
}

func TestEmptyMenuHasOnlyExitRow(t *testing.T) {
	c := NewCursor(0)
	if !c.AtExit() {
		t.Fatalf("empty menu should start on the exit row")
	}
	if c.Down() || c.Up() {
		t.Fatalf("single-row menu should never move")
	}
	if NewCursor(-2).Count() != 0 {
		t.Fatalf("negative counts should clamp to 0")
	}
}
