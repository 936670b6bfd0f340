package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorForeground = lipgloss.AdaptiveColor{Light: "#101F38", Dark: "#F2F2F2"}
	colorAccent     = lipgloss.Color("#8BC34A")
	colorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	colorBorder     = lipgloss.AdaptiveColor{Light: "#DCE0E5", Dark: "#2A3850"}
	colorError      = lipgloss.Color("#E53935")
)

// Styles groups every lipgloss style the browser renders with.
type Styles struct {
	Header       lipgloss.Style
	Muted        lipgloss.Style
	Error        lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	CardTitle    lipgloss.Style
	PageCurrent  lipgloss.Style
	PageOther    lipgloss.Style
	PageDisabled lipgloss.Style
	Modal        lipgloss.Style
	ModalTitle   lipgloss.Style
	Label        lipgloss.Style
}

// DefaultStyles returns the browser's styles.
func DefaultStyles() Styles {
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1),
		Muted:        lipgloss.NewStyle().Foreground(colorMuted),
		Error:        lipgloss.NewStyle().Bold(true).Foreground(colorError),
		Card:         card,
		CardSelected: card.BorderForeground(colorAccent),
		CardTitle:    lipgloss.NewStyle().Bold(true).Foreground(colorForeground),
		PageCurrent:  lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1),
		PageOther:    lipgloss.NewStyle().Foreground(colorForeground).Padding(0, 1),
		PageDisabled: lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Bold(true).Foreground(colorAccent),
		Label:      lipgloss.NewStyle().Bold(true),
	}
}
