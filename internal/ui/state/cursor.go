package state

// Cursor tracks the highlighted row of a menu with count real options plus
// one synthetic exit row. Pos is always in [0, count]; Pos == count is the
// exit row.
type Cursor struct {
	pos   int
	count int
}

// NewCursor starts on the first row.
func NewCursor(count int) *Cursor {
	if count < 0 {
		count = 0
	}
	return &Cursor{count: count}
}

// Pos returns the current row.
func (c *Cursor) Pos() int { return c.pos }

// Count returns the number of real options.
func (c *Cursor) Count() int { return c.count }

// ExitRow is the index of the synthetic exit row.
func (c *Cursor) ExitRow() int { return c.count }

// AtExit reports whether the exit row is highlighted.
func (c *Cursor) AtExit() bool { return c.pos == c.count }

// Down advances one row, wrapping from the exit row back to the first option.
func (c *Cursor) Down() bool {
	old := c.pos
	if c.pos == c.count {
		c.pos = 0
	} else {
		c.pos++
	}
	return old != c.pos
}

// Up moves back one row, wrapping from the first option to the exit row.
func (c *Cursor) Up() bool {
	old := c.pos
	if c.pos == 0 {
		c.pos = c.count
	} else {
		c.pos--
	}
	return old != c.pos
}

// Exit jumps to the exit row.
func (c *Cursor) Exit() bool {
	old := c.pos
	c.pos = c.count
	return old != c.pos
}
