package menu

import "strings"

// Menu is a titled, ordered list of options. Callers build it once and hand it
// to the navigator; nothing mutates it afterwards.
type Menu struct {
	Title    string
	Subtitle string
	Options  []Option
}

// Option is a selectable entry. Payload is opaque to the navigator and is
// interpreted by whoever receives the Selection.
type Option struct {
	Title   string
	Payload any
}

// Command is a payload naming a shell command line to run once the menu closes.
type Command struct {
	Line string
}

// Len returns the number of real options, excluding the exit row.
func (m *Menu) Len() int {
	if m == nil {
		return 0
	}
	return len(m.Options)
}

// Selection is the navigator's result: either a chosen option or an exit.
type Selection struct {
	option Option
	index  int
	chosen bool
}

// Chosen builds a selection for the option at index.
func Chosen(index int, opt Option) Selection {
	return Selection{option: opt, index: index, chosen: true}
}

// Exited is the selection returned when the exit row is taken.
func Exited() Selection {
	return Selection{index: -1}
}

// Option returns the chosen option and true, or false for an exit.
func (s Selection) Option() (Option, bool) {
	return s.option, s.chosen
}

// Index is the chosen option's position, -1 for an exit.
func (s Selection) Index() int {
	if !s.chosen {
		return -1
	}
	return s.index
}

// IsExit reports whether the exit row was selected.
func (s Selection) IsExit() bool {
	return !s.chosen
}

func (s Selection) String() string {
	if !s.chosen {
		return "Exited"
	}
	return "Chosen(" + s.option.Title + ")"
}

// ExitLabel is the text of the synthetic last row. Nested menus offer a way
// back to their parent instead of leaving the program.
func ExitLabel(parent *Menu) string {
	if parent == nil {
		return "Exit"
	}
	return "Return to previous menu (" + strings.TrimSpace(parent.Title) + ")"
}

// Demo returns the stock single-command menu.
func Demo() *Menu {
	return &Menu{
		Title:    "Curses Menu",
		Subtitle: "A Curses menu in Python",
		Options: []Option{
			{Title: "Hello World", Payload: Command{Line: "echo Hello World!"}},
		},
	}
}
