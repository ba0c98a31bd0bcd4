package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dxbtools/admintools/internal/logging/events"
	"github.com/dxbtools/admintools/internal/theme"
	"github.com/muesli/reflow/truncate"
)

const (
	itemIndent        = 4
	selectedIndicator = ">"
)

type frameKey struct {
	cursor int
	width  int
	height int
}

type frameCache struct {
	key     frameKey
	valid   bool
	text    string
	renders int
}

// View implements tea.Model. A frame is drawn once per distinct cursor and
// terminal size; repeated calls with nothing changed reuse it.
func (m *Model) View() string {
	if m.done {
		return ""
	}
	k := frameKey{cursor: m.cursor.Pos(), width: m.width, height: m.height}
	if m.frame.valid && m.frame.key == k {
		return m.frame.text
	}
	m.frame.text = m.render()
	m.frame.key = k
	m.frame.valid = true
	m.frame.renders++
	events.UI.MenuRender(m.menu.Title, k.cursor, m.frame.renders)
	return m.frame.text
}

// Renders counts how many frames have actually been drawn.
func (m *Model) Renders() int {
	return m.frame.renders
}

func (m *Model) render() string {
	inner := m.innerWidth()
	lines := make([]string, 0, m.menu.Len()+8)
	lines = append(lines, "")
	lines = append(lines, "  "+theme.Render(styles.Title, clip(m.menu.Title, inner-2)))
	lines = append(lines, "")
	lines = append(lines, "  "+theme.Render(styles.Subtitle, clip(m.menu.Subtitle, inner-2)))
	lines = append(lines, "")
	for i, opt := range m.menu.Options {
		lines = append(lines, m.itemLine(i, opt.Title, inner))
	}
	lines = append(lines, m.itemLine(m.menu.Len(), m.exitLabel, inner))

	if m.pressed {
		lines = append(lines, m.footerPadding(len(lines))...)
		lines = append(lines, m.cornerIndex(inner))
	}

	frame := *styles.Frame
	if inner > 0 {
		frame = frame.Width(inner)
	}
	return frame.Render(strings.Join(lines, "\n"))
}

func (m *Model) itemLine(idx int, label string, inner int) string {
	text := clip(fmt.Sprintf("%2d - %s", idx+1, label), inner-itemIndent-2)
	indicator := theme.Render(styles.ItemIndicator, " ")
	body := theme.Render(styles.Item, text)
	if idx == m.cursor.Pos() {
		indicator = theme.Render(styles.SelectedItemIndicator, selectedIndicator)
		body = theme.Render(styles.SelectedItem, text)
	}
	return strings.Repeat(" ", itemIndent-2) + indicator + " " + body
}

// footerPadding pushes the corner index towards the bottom of the frame.
func (m *Model) footerPadding(used int) []string {
	rows := m.height - 2 - 2 - used
	if rows < 1 {
		rows = 1
	}
	return make([]string, rows)
}

func (m *Model) cornerIndex(inner int) string {
	idx := theme.Render(styles.Footer, fmt.Sprintf("%3d", m.cursor.Pos()))
	if inner <= 0 {
		return "  " + idx
	}
	return lipgloss.PlaceHorizontal(inner, lipgloss.Right, idx)
}

func (m *Model) innerWidth() int {
	if m.width <= 2 {
		return 0
	}
	return m.width - 2
}

func clip(text string, width int) string {
	if width <= 0 {
		return text
	}
	return truncate.String(text, uint(width))
}
