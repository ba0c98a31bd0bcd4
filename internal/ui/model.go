package ui

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/menu"
	"github.com/dxbtools/admintools/internal/theme"
	uistate "github.com/dxbtools/admintools/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model for a single menu.
type Model struct {
	menu      *menu.Menu
	exitLabel string
	cursor    *uistate.Cursor
	keys      keyMap

	// pressed flips on the first cursor move and reveals the corner index.
	pressed     bool
	done        bool
	interrupted bool
	selection   menu.Selection

	width  int
	height int

	frame frameCache

	handlers map[reflect.Type]msgHandler
}

// NewModel prepares a model for m. parent is the menu m was reached from, nil
// for a top level menu; it decides the label of the exit row.
func NewModel(m *menu.Menu, parent *menu.Menu) *Model {
	if m == nil {
		m = &menu.Menu{}
	}
	model := &Model{
		menu:      m,
		exitLabel: menu.ExitLabel(parent),
		cursor:    uistate.NewCursor(m.Len()),
		keys:      defaultKeyMap(),
		selection: menu.Exited(),
	}
	model.registerHandlers()
	events.UI.MenuOpen(m.Title, m.Len())
	return model
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.done {
		return m, nil
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = size.Width
	m.height = size.Height
	return nil
}

// Cursor returns the highlighted row; Len() of the menu is the exit row.
func (m *Model) Cursor() int {
	return m.cursor.Pos()
}

// Result returns the selection once the model has finished. The boolean is
// false while the menu is still open or when it was aborted.
func (m *Model) Result() (menu.Selection, bool) {
	if !m.done || m.interrupted {
		return menu.Exited(), false
	}
	return m.selection, true
}

// Interrupted reports whether the menu was abandoned with ctrl+c.
func (m *Model) Interrupted() bool {
	return m.interrupted
}
