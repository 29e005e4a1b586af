package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/yaml.v3"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/geometry"
	"github.com/inkstudio/inkstudio/pkg/models"
)

const (
	opacityStep  = 10
	nudgeStep    = 1.0
	rotationStep = 15.0
)

func (m *EditorModel) Init() tea.Cmd {
	return nil
}

func (m *EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		if !m.pending {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case elementGeneratedMsg:
		m.finishGeneration()
		if msg.err != nil {
			m.reportGenerationError(msg.err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("Added %q", msg.prompt))
		return m, nil

	case layerRefinedMsg:
		m.finishGeneration()
		if msg.err != nil {
			m.reportGenerationError(msg.err)
			return m, nil
		}
		m.setStatus("Element refined")
		return m, nil

	case tea.MouseMsg:
		if m.confirm.Active() || m.mode != promptNone {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.confirm.Active() {
			return m, m.confirm.Update(msg)
		}
		if m.mode != promptNone {
			return m.handlePromptKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

// finishGeneration clears the pending flag. A close prompt raised only because
// of the generation is dismissed, since nothing would be lost any more.
func (m *EditorModel) finishGeneration() {
	m.pending = false
	if m.confirm.Active() {
		m.confirm.Hide()
	}
}

func (m *EditorModel) reportGenerationError(err error) {
	var genErr *editor.GenerationError
	switch {
	case errors.As(err, &genErr):
		m.setError(genErr.Message)
	case errors.Is(err, editor.ErrClosed):
		// nothing left to report to
	default:
		m.setError(err.Error())
	}
}

func (m *EditorModel) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.stopPrompt()
		return m, nil
	case "enter":
		return m, m.submitPrompt()
	case "ctrl+c":
		return m, m.requestClose()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	selected, hasSelection := m.editor.Selected()

	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.requestClose()

	case "?":
		m.showHelp = !m.showHelp

	case "l":
		m.showPanel = !m.showPanel
		m.SetSize(m.width, m.height)

	case "a":
		if m.pending || m.editor.Generating() {
			m.setError("Still generating the previous element")
			return m, nil
		}
		m.startPrompt(promptAdd)
		return m, textinput.Blink

	case "r":
		if !hasSelection {
			m.setError("Select an element to refine")
			return m, nil
		}
		if m.pending || m.editor.Generating() {
			m.setError("Still generating the previous element")
			return m, nil
		}
		m.startPrompt(promptRefine)
		m.refineTarget = selected
		return m, textinput.Blink

	case "u":
		if !m.editor.CanUndo() {
			m.setStatus("Nothing to undo")
			return m, nil
		}
		m.editor.Undo()
		m.setStatus("Undone")

	case "d", "delete", "backspace":
		if hasSelection && m.editor.RemoveLayer(selected) {
			m.setStatus("Element removed")
		}

	case "]":
		if hasSelection && m.editor.ReorderSelected(models.DirectionUp) {
			m.setStatus("Moved up")
		}

	case "[":
		if hasSelection && m.editor.ReorderSelected(models.DirectionDown) {
			m.setStatus("Moved down")
		}

	case "+", "=":
		m.adjustOpacity(selected, opacityStep)

	case "-", "_":
		m.adjustOpacity(selected, -opacityStep)

	case "left":
		m.nudge(selected, models.PropX, -nudgeStep)
	case "right":
		m.nudge(selected, models.PropX, nudgeStep)
	case "up":
		m.nudge(selected, models.PropY, -nudgeStep)
	case "down":
		m.nudge(selected, models.PropY, nudgeStep)
	case ",":
		m.nudge(selected, models.PropRotation, -rotationStep)
	case ".":
		m.nudge(selected, models.PropRotation, rotationStep)

	case "tab":
		m.cycleSelection(1)
	case "shift+tab":
		m.cycleSelection(-1)

	case "esc":
		m.editor.SelectNone()

	case "y":
		m.copyStack()
	}
	return m, nil
}

func (m *EditorModel) adjustOpacity(id string, delta int) {
	layer, ok := m.editor.Layer(id)
	if !ok || layer.IsBase {
		return
	}
	pct := min(100, max(0, layer.OpacityPercent()+delta))
	m.editor.SetOpacityPercent(id, pct)
}

func (m *EditorModel) nudge(id string, prop models.Property, delta float64) {
	layer, ok := m.editor.Layer(id)
	if !ok || layer.IsBase {
		return
	}
	m.editor.SetProperty(id, prop, layer.Get(prop)+delta)
}

// cycleSelection walks the non-base layers in stack order.
func (m *EditorModel) cycleSelection(step int) {
	var ids []string
	for _, layer := range m.editor.Layers() {
		if !layer.IsBase {
			ids = append(ids, layer.ID)
		}
	}
	if len(ids) == 0 {
		return
	}

	next := 0
	if step < 0 {
		next = len(ids) - 1
	}
	if selected, ok := m.editor.Selected(); ok {
		for i, id := range ids {
			if id == selected {
				next = (i + step + len(ids)) % len(ids)
				break
			}
		}
	}
	m.editor.Select(ids[next])
}

func (m *EditorModel) copyStack() {
	data, err := yaml.Marshal(m.editor.Layers())
	if err != nil {
		m.setError(fmt.Sprintf("Failed to encode layers: %v", err))
		return
	}
	if err := clipboard.WriteAll(string(data)); err != nil {
		m.setError(fmt.Sprintf("Failed to copy to clipboard: %v", err))
		return
	}
	m.setStatus("✓ Copied layer stack to clipboard")
}

func (m *EditorModel) submitPrompt() tea.Cmd {
	prompt := m.input.Value()
	mode, target := m.mode, m.refineTarget

	if mode == promptAdd && !m.editor.CanRequest(prompt) {
		if m.editor.Generating() {
			m.setError("Still generating the previous element")
		} else {
			m.setError("Describe the element first")
		}
		return nil
	}
	if mode == promptRefine && !m.editor.CanRequest(prompt) {
		m.setError("Describe the change first")
		return nil
	}

	m.stopPrompt()
	m.pending = true
	m.setStatus("Generating...")

	var work tea.Cmd
	if mode == promptRefine {
		work = m.refineCmd(target, prompt)
	} else {
		work = m.requestElementCmd(prompt)
	}
	return tea.Batch(m.spinner.Tick, work)
}

func (m *EditorModel) providerContext() (context.Context, context.CancelFunc) {
	if secs := m.settings.Provider.TimeoutSeconds; secs > 0 {
		return context.WithTimeout(context.Background(), time.Duration(secs)*time.Second)
	}
	return context.WithCancel(context.Background())
}

func (m *EditorModel) requestElementCmd(prompt string) tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		ctx, cancel := m.providerContext()
		defer cancel()
		id, err := ed.RequestElement(ctx, prompt)
		return elementGeneratedMsg{prompt: prompt, layerID: id, err: err}
	}
}

func (m *EditorModel) refineCmd(id, prompt string) tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		ctx, cancel := m.providerContext()
		defer cancel()
		return layerRefinedMsg{layerID: id, err: ed.RefineLayer(ctx, id, prompt)}
	}
}

// requestClose ends the session, asking first when a generation would be lost.
func (m *EditorModel) requestClose() tea.Cmd {
	if !m.pending && !m.editor.Generating() {
		return m.close()
	}
	m.confirm.Show(ConfirmationConfig{
		Title:       "Close Editor?",
		Message:     "An element is still being generated.",
		Warning:     "It will be discarded.",
		Destructive: true,
		Type:        ConfirmTypeDialog,
		Width:       50,
	}, m.close, nil)
	return nil
}

func (m *EditorModel) close() tea.Cmd {
	m.editor.Close()
	return func() tea.Msg { return editorClosedMsg{} }
}

// toCanvas converts a terminal cell position into canvas coordinates.
func toCanvas(x, y int) geometry.Point {
	return cellPoint(x-canvasOriginX, y-canvasOriginY)
}

func (m *EditorModel) handleMouse(msg tea.MouseMsg) {
	canvas := canvasRect(m.cols, m.rows)
	p := toCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		target := m.editor.HitTest(p, canvas, tuiHandles)
		if target.Kind == editor.HitNone {
			if canvas.Contains(p) {
				m.editor.BackgroundClick()
			}
			return
		}
		m.editor.PointerDown(target, p, canvas)

	case tea.MouseActionMotion:
		if m.editor.GestureState() != editor.StateIdle {
			m.editor.PointerMove(p, canvas)
		}

	case tea.MouseActionRelease:
		m.editor.PointerUp()
	}
}
