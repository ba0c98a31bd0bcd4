package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/menu"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Down):
		m.moveCursorDown()
	case key.Matches(keyMsg, m.keys.Up):
		m.moveCursorUp()
	case key.Matches(keyMsg, m.keys.Quit):
		m.cursor.Exit()
		return m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.Choose):
		return m.handleEnterKey()
	case key.Matches(keyMsg, m.keys.Abort):
		m.done = true
		m.interrupted = true
		events.UI.TerminalRestore("interrupt")
		return tea.Quit
	}
	return nil
}

func (m *Model) moveCursorDown() {
	if m.cursor.Down() {
		m.pressed = true
		events.UI.MenuCursor(m.menu.Title, m.cursor.Pos())
	}
}

func (m *Model) moveCursorUp() {
	if m.cursor.Up() {
		m.pressed = true
		events.UI.MenuCursor(m.menu.Title, m.cursor.Pos())
	}
}

func (m *Model) handleEnterKey() tea.Cmd {
	m.done = true
	m.selection = m.resolve()
	if opt, ok := m.selection.Option(); ok {
		events.UI.MenuChoose(m.menu.Title, m.cursor.Pos(), opt.Title)
	} else {
		events.UI.MenuExit(m.menu.Title)
	}
	return tea.Quit
}

func (m *Model) resolve() menu.Selection {
	pos := m.cursor.Pos()
	if m.cursor.AtExit() || pos >= len(m.menu.Options) {
		return menu.Exited()
	}
	return menu.Chosen(pos, m.menu.Options[pos])
}
