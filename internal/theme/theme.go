package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared by the menu and the
// tool reports.
type Styles struct {
	Frame                 *lipgloss.Style
	Title                 *lipgloss.Style
	Subtitle              *lipgloss.Style
	Item                  *lipgloss.Style
	ItemIndicator         *lipgloss.Style
	SelectedItemIndicator *lipgloss.Style
	SelectedItem          *lipgloss.Style
	Footer                *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style

	// report styles
	Banner     *lipgloss.Style
	TableHead  *lipgloss.Style
	Warn       *lipgloss.Style
	PowerOff   *lipgloss.Style
	Separator  *lipgloss.Style
	Suggestion *lipgloss.Style
}

var defaultStyles = Styles{
	Frame: ptr(
		lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240")),
	),
	Title: ptr(
		lipgloss.NewStyle().Reverse(true),
	),
	Subtitle: ptr(
		lipgloss.NewStyle().Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	SelectedItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("255")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("255")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Banner: ptr(
		lipgloss.NewStyle().Bold(true),
	),
	TableHead: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
	),
	Warn: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true),
	),
	PowerOff: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
	Suggestion: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style to text, tolerating a nil style.
func Render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
