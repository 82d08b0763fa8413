package theme

import "charm.land/lipgloss/v2"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Panel        *lipgloss.Style
	PanelFocused *lipgloss.Style
	Title        *lipgloss.Style
	TitleFocused *lipgloss.Style
	Item         *lipgloss.Style
	SelectedItem *lipgloss.Style
	ActiveItem   *lipgloss.Style
	Placeholder  *lipgloss.Style
	Tag          *lipgloss.Style
	Label        *lipgloss.Style
	Online       *lipgloss.Style
	Offline      *lipgloss.Style
	Unauthorized *lipgloss.Style
	Running      *lipgloss.Style
	Modal        *lipgloss.Style
	ModalTitle   *lipgloss.Style
	Header       *lipgloss.Style
	Footer       *lipgloss.Style
	Loading      *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1),
	),
	PanelFocused: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 1),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	TitleFocused: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")),
	),
	ActiveItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("33")).Bold(true),
	),
	Placeholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	Tag: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Label: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Online: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Offline: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Unauthorized: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Running: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Modal: ptr(
		lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("33")).Padding(0, 2),
	),
	ModalTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Loading: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Italic(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
