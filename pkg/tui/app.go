package tui

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inkstudio/inkstudio/pkg/editor"
	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

type sessionState int

const (
	conceptListView sessionState = iota
	editorView
)

// App routes between the concept list and the editor.
type App struct {
	state       sessionState
	conceptList *ConceptListModel
	editor      *EditorModel

	settings *models.Settings
	provider provider.ElementProvider
	logger   *log.Logger

	baseImage string
	baseTitle string

	width     int
	height    int
	statusMsg string
}

// AppOption configures an App.
type AppOption func(*App)

// WithConcepts starts the app on the concept list.
func WithConcepts(source ConceptSource) AppOption {
	return func(a *App) {
		a.conceptList = NewConceptListModel(source)
		a.state = conceptListView
	}
}

// WithBaseImage opens the editor on image right away.
func WithBaseImage(image, title string) AppOption {
	return func(a *App) {
		a.baseImage = image
		a.baseTitle = title
	}
}

// WithLogger sends editor logs to l. The terminal is owned by the UI, so the
// default discards them.
func WithLogger(l *log.Logger) AppOption {
	return func(a *App) {
		if l != nil {
			a.logger = l
		}
	}
}

func NewApp(settings *models.Settings, p provider.ElementProvider, opts ...AppOption) *App {
	if settings == nil {
		settings = models.DefaultSettings()
	}
	a := &App{
		settings: settings,
		provider: p,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.baseImage != "" {
		a.openEditor(a.baseImage, a.baseTitle)
	}
	if a.editor == nil && a.conceptList == nil {
		a.conceptList = NewConceptListModel(nil)
	}
	return a
}

func (a *App) openEditor(image, title string) {
	ed := editor.Open(image,
		editor.WithProvider(a.provider),
		editor.WithLogger(log.New(a.logger.Writer(), "[EDITOR] ", log.LstdFlags)),
	)
	a.editor = NewEditorModel(ed, a.settings, title)
	if a.width > 0 {
		a.editor.SetSize(a.width, a.height)
	}
	a.state = editorView
}

func (a *App) Init() tea.Cmd {
	if a.state == editorView {
		return a.editor.Init()
	}
	return a.conceptList.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.conceptList != nil {
			a.conceptList.SetSize(msg.Width, msg.Height)
		}
		if a.editor != nil {
			a.editor.SetSize(msg.Width, msg.Height)
		}
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })

	case PersistentStatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case clearStatusMsg:
		a.statusMsg = ""
		return a, nil

	case SwitchViewMsg:
		switch msg.view {
		case conceptListView:
			if a.conceptList == nil {
				return a, tea.Quit
			}
			a.state = conceptListView
			return a, a.conceptList.Init()
		case editorView:
			if msg.concept == nil {
				return a, nil
			}
			a.openEditor(msg.concept.Image, msg.concept.Name)
			a.statusMsg = ""
			return a, a.editor.Init()
		}

	case editorClosedMsg:
		a.editor = nil
		if a.conceptList == nil {
			return a, tea.Quit
		}
		a.state = conceptListView
		return a, tea.Batch(a.conceptList.Init(), func() tea.Msg { return StatusMsg("Editor closed") })
	}

	var cmd tea.Cmd
	switch a.state {
	case conceptListView:
		var m tea.Model
		m, cmd = a.conceptList.Update(msg)
		if cl, ok := m.(*ConceptListModel); ok {
			a.conceptList = cl
		}
	case editorView:
		if a.editor == nil {
			return a, nil
		}
		var m tea.Model
		m, cmd = a.editor.Update(msg)
		if em, ok := m.(*EditorModel); ok {
			a.editor = em
		}
	}
	return a, cmd
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var content string
	switch a.state {
	case conceptListView:
		content = a.conceptList.View()
	case editorView:
		content = a.editor.View()
	default:
		content = "Unknown view"
	}

	if a.statusMsg != "" {
		content = lipgloss.JoinVertical(lipgloss.Top, content, StatusBarStyle.Render(a.statusMsg))
	}
	return content
}

const statusDuration = 3 * time.Second

// Messages for communication between views
type StatusMsg string

// PersistentStatusMsg stays until replaced.
type PersistentStatusMsg string

type clearStatusMsg struct{}

type SwitchViewMsg struct {
	view    sessionState
	concept *models.Concept // concept to open in the editor
}
