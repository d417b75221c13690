package app

import "github.com/charmbracelet/lipgloss"

// Pane and status colors.
const (
	ColorBorderDefault = "#6B7280"
	ColorBorderFocus   = "#7C3AED"
	ColorAccent        = "#A78BFA"
	ColorDim           = "#9CA3AF"
	ColorError         = "#EF4444"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(ColorAccent))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDim))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError))
)

func paneStyle(focused bool) lipgloss.Style {
	border := ColorBorderDefault
	if focused {
		border = ColorBorderFocus
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border))
}
