package tui

import (
	"github.com/charmbracelet/lipgloss"
)

const logo = "▚ inkstudio"

// renderHeader draws the one-line title bar: title on the left, logo on the
// right.
func renderHeader(width int, title string) string {
	logoStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	logoRendered := logoStyle.Render(logo)
	if title == "" {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(logoRendered)
	}

	titleRendered := titleStyle.Render(title)
	gap := width - lipgloss.Width(titleRendered) - lipgloss.Width(logoRendered)
	if gap < 1 {
		gap = 1
	}
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		titleRendered,
		lipgloss.NewStyle().Width(gap).Render(""),
		logoRendered,
	)
}
