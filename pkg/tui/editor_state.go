package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/models"
)

// The canvas starts below the header and inside the border.
const (
	canvasOriginX = 1
	canvasOriginY = 2

	layerPanelWidth = 30
	footerHeight    = 4

	minCanvasCols = 16
	minCanvasRows = 6
)

type promptMode int

const (
	promptNone promptMode = iota
	promptAdd
	promptRefine
)

// Messages produced by the editor's async commands
type elementGeneratedMsg struct {
	prompt  string
	layerID string
	err     error
}

type layerRefinedMsg struct {
	layerID string
	err     error
}

type editorClosedMsg struct{}

// EditorModel hosts one editing session on a terminal canvas.
type EditorModel struct {
	editor   *editor.Editor
	settings *models.Settings
	title    string

	width, height int
	cols, rows    int

	input        textinput.Model
	mode         promptMode
	refineTarget string

	spinner spinner.Model
	pending bool

	confirm *ConfirmationModel

	status    string
	statusErr bool
	showHelp  bool
	showPanel bool
}

// NewEditorModel wraps an open editor. The model owns it and closes it on quit.
func NewEditorModel(ed *editor.Editor, settings *models.Settings, title string) *EditorModel {
	if settings == nil {
		settings = models.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "describe an element, e.g. a rose with thorns"
	ti.CharLimit = 200
	ti.Width = 50

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive))

	return &EditorModel{
		editor:    ed,
		settings:  settings,
		title:     title,
		cols:      settings.Canvas.Columns,
		rows:      settings.Canvas.Rows,
		input:     ti,
		spinner:   s,
		confirm:   NewConfirmation(),
		showHelp:  settings.UI.ShowHelp,
		showPanel: settings.UI.ShowLayerPanel,
	}
}

// SetSize fits the canvas into the window without growing past the configured size.
func (m *EditorModel) SetSize(width, height int) {
	m.width = width
	m.height = height

	cols := m.settings.Canvas.Columns
	if avail := width - 2 - m.panelWidth(); avail < cols {
		cols = avail
	}
	rows := m.settings.Canvas.Rows
	if avail := height - canvasOriginY - 1 - footerHeight; avail < rows {
		rows = avail
	}
	m.cols = max(minCanvasCols, cols)
	m.rows = max(minCanvasRows, rows)
}

func (m *EditorModel) panelWidth() int {
	if !m.showPanel {
		return 0
	}
	return layerPanelWidth
}

// Editor returns the session this model edits.
func (m *EditorModel) Editor() *editor.Editor {
	return m.editor
}

func (m *EditorModel) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *EditorModel) setError(msg string) {
	m.status = msg
	m.statusErr = true
}

func (m *EditorModel) startPrompt(mode promptMode) {
	m.mode = mode
	m.input.SetValue("")
	if mode == promptRefine {
		m.input.Placeholder = "how should it change? e.g. thicker outlines"
	} else {
		m.input.Placeholder = "describe an element, e.g. a rose with thorns"
	}
	m.input.Focus()
}

func (m *EditorModel) stopPrompt() {
	m.mode = promptNone
	m.refineTarget = ""
	m.input.Blur()
	m.input.SetValue("")
}
