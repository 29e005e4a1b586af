package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/inkstudio/inkstudio/pkg/models"
)

var editorHelp = []string{
	"a add element   r refine   u undo   d remove   [ ] order",
	"+/- opacity   arrows move   , . rotate   tab select   esc deselect",
	"y copy layers   l layer panel   ? help   q close",
}

func (m *EditorModel) View() string {
	if m.confirm.Active() {
		return lipgloss.Place(
			max(m.width, 1), max(m.height, 1),
			lipgloss.Center, lipgloss.Center,
			m.confirm.View(),
		)
	}

	layers := m.editor.Layers()
	selected, _ := m.editor.Selected()

	title := "Editing"
	if m.title != "" {
		title = "Editing: " + m.title
	}
	header := renderHeader(max(m.width, m.cols+2+m.panelWidth()), title)

	canvas := InactiveBorderStyle.Render(renderCanvas(rasterize(layers, selected, m.cols, m.rows), selected))
	body := canvas
	if m.showPanel {
		body = lipgloss.JoinHorizontal(lipgloss.Top, canvas, m.renderLayerPanel(layers, selected))
	}

	sections := []string{header, body, m.renderFooter()}
	if m.showHelp {
		sections = append(sections, DescriptionStyle.Render(strings.Join(editorHelp, "\n")))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *EditorModel) renderLayerPanel(layers models.Stack, selected string) string {
	inner := layerPanelWidth - 4
	var b strings.Builder
	b.WriteString(GetActiveHeaderStyle(true).Render(fmt.Sprintf("LAYERS (%d)", len(layers)-1)))
	b.WriteString("\n\n")

	if len(layers) <= 1 {
		b.WriteString(EmptyInactiveStyle.Render("No elements yet.\nPress a to add one."))
	}

	// Top of the stack first
	for i := len(layers) - 1; i >= 0; i-- {
		layer := layers[i]
		if layer.IsBase {
			continue
		}
		chip := GetLayerChipStyle(models.GetLayerColor(layer.ID)).Render(" ")
		line := fmt.Sprintf("%d. %3d%% %3d°", i, layer.OpacityPercent(), layer.NormalizedRotation())
		line = truncate.StringWithTail(line, uint(inner-3), "…")
		if layer.ID == selected {
			b.WriteString(chip + " " + SelectedStyle.Render(line))
		} else {
			b.WriteString(chip + " " + NormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(DescriptionStyle.Render("base"))

	if layer, ok := m.editor.SelectedLayer(); ok {
		b.WriteString("\n\n")
		b.WriteString(HeaderStyle.Render("SELECTED"))
		b.WriteString("\n")
		b.WriteString(DescriptionStyle.Render(fmt.Sprintf(
			"x %.0f%%  y %.0f%%\nw %.0f%%  h %.0f%%",
			layer.X, layer.Y, layer.Width, layer.Height,
		)))
	}

	return InactiveBorderStyle.
		Width(layerPanelWidth-2).
		Height(m.rows).
		Padding(0, 1).
		Render(b.String())
}

func (m *EditorModel) renderFooter() string {
	var parts []string

	switch m.mode {
	case promptAdd:
		parts = append(parts, HeaderStyle.Render("New element:")+" "+m.input.View())
	case promptRefine:
		parts = append(parts, HeaderStyle.Render("Refine element:")+" "+m.input.View())
	}

	if m.pending {
		parts = append(parts, m.spinner.View()+" "+DescriptionStyle.Render("Generating element..."))
	}

	if m.status != "" {
		if m.statusErr {
			parts = append(parts, ErrorStyle.Render("✗ "+m.status))
		} else {
			parts = append(parts, StatusBarStyle.Render(m.status))
		}
	}

	undo := EmptyInactiveStyle.Render("undo")
	if m.editor.CanUndo() {
		undo = NormalStyle.Render(fmt.Sprintf("undo (%d)", m.editor.HistoryLen()))
	}
	parts = append(parts, DescriptionStyle.Render("state: "+m.editor.GestureState().String())+"  "+undo)

	return strings.Join(parts, "\n")
}
