package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Down   key.Binding
	Up     key.Binding
	Quit   key.Binding
	Choose key.Binding
	Abort  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "exit"),
		),
		Choose: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
	}
}
