package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for active elements
	ColorInactive = "240" // Gray for inactive elements
	ColorSelected = "236" // Dark gray for background selection
	ColorNormal   = "245" // Light gray for normal text
	ColorDim      = "241" // Dimmer gray
	ColorVeryDim  = "242" // Even dimmer gray
	ColorWarning  = "214" // Orange/yellow for warnings
	ColorDanger   = "196" // Red for dangerous actions
	ColorSuccess  = "28"  // Green for success
	ColorWhite    = "255" // White
	ColorDark     = "235" // Dark for contrast
	ColorBorder   = "243" // Border gray
	ColorPaper    = "252" // Canvas background where only the base shows
)

// Common styles
var (
	ActiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorActive))

	InactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color(ColorInactive))

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorActive)).
			Background(lipgloss.Color(ColorSelected)).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorWarning))

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim))

	EmptyInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorVeryDim))

	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorActive)).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDanger))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	HandleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWhite)).
			Background(lipgloss.Color(ColorActive)).
			Bold(true)

	BaseCellStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorVeryDim)).
			Background(lipgloss.Color(ColorDark))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	HelpBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorInactive))
)

// GetLayerCellStyle colors the cells of a layer. Selected layers get the
// selection background.
func GetLayerCellStyle(color string, selected bool) lipgloss.Style {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	if selected {
		style = style.Background(lipgloss.Color(ColorSelected)).Bold(true)
	} else {
		style = style.Background(lipgloss.Color(ColorDark))
	}
	return style
}

// GetLayerChipStyle renders the color swatch in the layer panel.
func GetLayerChipStyle(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(color)).
		Foreground(lipgloss.Color(ColorWhite)).
		Padding(0, 1)
}

// GetActiveHeaderStyle dims pane headers that do not have focus.
func GetActiveHeaderStyle(isActive bool) lipgloss.Style {
	color := ColorInactive
	if isActive {
		color = ColorActive
	}
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(color))
}

func formatConfirmOptions(destructive bool) string {
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true)
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDanger)).Bold(true)
	if destructive {
		yes, no = no, yes
	}
	return yes.Render("[y]") + "/" + no.Render("[n]")
}
