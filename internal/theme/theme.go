package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Tab            *lipgloss.Style
	ActiveTab      *lipgloss.Style
	TabSeparator   *lipgloss.Style
	Body           *lipgloss.Style
	Error          *lipgloss.Style
	Info           *lipgloss.Style
	Header         *lipgloss.Style
	Footer         *lipgloss.Style
	SearchPrompt   *lipgloss.Style
	SearchText     *lipgloss.Style
	StripFrame     *lipgloss.Style
	StripItem      *lipgloss.Style
	StripEmphasis  *lipgloss.Style
	StripOverlay   *lipgloss.Style
	StripArrow     *lipgloss.Style
	StripArrowDim  *lipgloss.Style
	StripAppName   *lipgloss.Style
	StripSeparator *lipgloss.Style
}

// accent mirrors the system blue used for the selected tab and app name.
const accent = lipgloss.Color("33")

var defaultStyles = Styles{
	Tab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Padding(0, 1),
	),
	ActiveTab: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true).Padding(0, 1),
	),
	TabSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Body: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	SearchPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	SearchText: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	StripFrame: ptr(
		lipgloss.NewStyle().Background(lipgloss.Color("235")),
	),
	StripItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	),
	StripEmphasis: ptr(
		lipgloss.NewStyle().Foreground(accent).Bold(true),
	),
	StripOverlay: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	StripArrow: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	StripArrowDim: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	StripAppName: ptr(
		lipgloss.NewStyle().Foreground(accent),
	),
	StripSeparator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

// Render applies style when present and returns text unchanged otherwise.
func Render(style *lipgloss.Style, text string) string {
	if style == nil {
		return text
	}
	return style.Render(text)
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
