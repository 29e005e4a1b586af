package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationType defines the visual style of the confirmation
type ConfirmationType int

const (
	ConfirmTypeInline ConfirmationType = iota // Simple inline message
	ConfirmTypeDialog                         // Bordered, centered dialog
)

// ConfirmationConfig holds the configuration for a confirmation prompt
type ConfirmationConfig struct {
	Title       string
	Message     string
	Warning     string // shown in orange
	Destructive bool   // Yes is red, No is green
	Type        ConfirmationType
	Width       int // dialog only
}

// ConfirmationModel handles yes/no prompts layered over a view.
type ConfirmationModel struct {
	active    bool
	config    ConfirmationConfig
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation with the given configuration
func (m *ConfirmationModel) Show(config ConfirmationConfig, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.config = config
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

func (m *ConfirmationModel) Hide() {
	m.active = false
}

func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the confirmation based on its type
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	if m.config.Type == ConfirmTypeDialog {
		return m.renderDialog()
	}
	return fmt.Sprintf("%s %s", m.config.Message, formatConfirmOptions(m.config.Destructive))
}

func (m *ConfirmationModel) renderDialog() string {
	width := m.config.Width
	if width == 0 {
		width = 50
	}
	center := lipgloss.NewStyle().Width(width - 4).Align(lipgloss.Center)

	var b strings.Builder
	if m.config.Title != "" {
		b.WriteString(center.Render(HeaderStyle.Render(m.config.Title)))
		b.WriteString("\n\n")
	}
	b.WriteString(center.Render(m.config.Message))
	b.WriteString("\n")
	if m.config.Warning != "" {
		warning := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorWarning)).Render(m.config.Warning)
		b.WriteString("\n")
		b.WriteString(center.Render(warning))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(center.Render(formatConfirmOptions(m.config.Destructive)))

	return ActiveBorderStyle.
		Width(width).
		Padding(0, 1).
		Render(b.String())
}
