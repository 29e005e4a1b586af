package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/inkstudio/inkstudio/pkg/models"
)

// ConceptSource lists saved concepts.
type ConceptSource interface {
	List(ctx context.Context) ([]*models.Concept, error)
}

type conceptsLoadedMsg struct {
	concepts []models.Concept
	err      error
}

// ConceptListModel lets the user pick a saved concept to edit.
type ConceptListModel struct {
	source   ConceptSource
	concepts []models.Concept
	cursor   int
	err      error
	loaded   bool

	preview viewport.Model
	width   int
	height  int
}

func NewConceptListModel(source ConceptSource) *ConceptListModel {
	return &ConceptListModel{
		source:  source,
		preview: viewport.New(40, 10),
	}
}

func (m *ConceptListModel) Init() tea.Cmd {
	return m.loadConcepts()
}

func (m *ConceptListModel) loadConcepts() tea.Cmd {
	source := m.source
	return func() tea.Msg {
		if source == nil {
			return conceptsLoadedMsg{}
		}
		list, err := source.List(context.Background())
		if err != nil {
			return conceptsLoadedMsg{err: err}
		}
		concepts := make([]models.Concept, 0, len(list))
		for _, c := range list {
			if c != nil {
				concepts = append(concepts, *c)
			}
		}
		return conceptsLoadedMsg{concepts: concepts}
	}
}

func (m *ConceptListModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.preview.Width = max(20, width/2-4)
	m.preview.Height = max(5, height-6)
	m.updatePreview()
}

func (m *ConceptListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case conceptsLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.concepts = msg.concepts
		if m.cursor >= len(m.concepts) {
			m.cursor = max(0, len(m.concepts)-1)
		}
		m.updatePreview()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				m.updatePreview()
			}
		case "down", "j":
			if m.cursor < len(m.concepts)-1 {
				m.cursor++
				m.updatePreview()
			}
		case "ctrl+r":
			return m, m.loadConcepts()
		case "enter", "e":
			if c, ok := m.Current(); ok {
				concept := c
				return m, func() tea.Msg {
					return SwitchViewMsg{view: editorView, concept: &concept}
				}
			}
		case "pgdown", "pgup":
			var cmd tea.Cmd
			m.preview, cmd = m.preview.Update(msg)
			return m, cmd
		}
	}
	return m, nil
}

// Current returns the concept under the cursor.
func (m *ConceptListModel) Current() (models.Concept, bool) {
	if m.cursor < 0 || m.cursor >= len(m.concepts) {
		return models.Concept{}, false
	}
	return m.concepts[m.cursor], true
}

func (m *ConceptListModel) updatePreview() {
	c, ok := m.Current()
	if !ok {
		m.preview.SetContent("")
		return
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(c.Name))
	b.WriteString("\n")
	if c.Style != "" {
		b.WriteString(DescriptionStyle.Render(string(c.Style)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if c.Summary != "" {
		b.WriteString(wordwrap.String(c.Summary, m.preview.Width))
		b.WriteString("\n\n")
	}
	if c.Prompt != "" {
		b.WriteString(DescriptionStyle.Render("Prompt"))
		b.WriteString("\n")
		b.WriteString(wordwrap.String(c.Prompt, m.preview.Width))
		b.WriteString("\n\n")
	}
	if len(c.Placements) > 0 {
		b.WriteString(DescriptionStyle.Render("Placements: " + strings.Join(c.Placements, ", ")))
		b.WriteString("\n")
	}
	b.WriteString(DescriptionStyle.Render("Saved " + c.CreatedAt.Local().Format("2006-01-02 15:04")))

	m.preview.SetContent(b.String())
	m.preview.GotoTop()
}

func (m *ConceptListModel) View() string {
	header := renderHeader(max(m.width, 40), "Concepts")

	var list strings.Builder
	list.WriteString(GetActiveHeaderStyle(true).Render(fmt.Sprintf("SAVED CONCEPTS (%d)", len(m.concepts))))
	list.WriteString("\n\n")

	switch {
	case m.err != nil:
		list.WriteString(ErrorStyle.Render("Failed to load concepts: " + m.err.Error()))
	case !m.loaded:
		list.WriteString(DescriptionStyle.Render("Loading..."))
	case len(m.concepts) == 0:
		list.WriteString(EmptyInactiveStyle.Render("No concepts saved yet.\nUse 'inkstudio concepts save' to add one."))
	}

	for i, c := range m.concepts {
		line := c.Name
		if c.Style != "" {
			line += DescriptionStyle.Render(" · " + string(c.Style))
		}
		if i == m.cursor {
			list.WriteString(SelectedStyle.Render("▸ " + c.Name))
			if c.Style != "" {
				list.WriteString(DescriptionStyle.Render(" · " + string(c.Style)))
			}
		} else {
			list.WriteString(NormalStyle.Render("  ") + line)
		}
		list.WriteString("\n")
	}

	halfWidth := max(20, m.width/2-2)
	left := ActiveBorderStyle.Width(halfWidth).Padding(0, 1).Render(list.String())
	right := InactiveBorderStyle.Width(halfWidth).Padding(0, 1).Render(m.preview.View())

	help := DescriptionStyle.Render("↑/↓ navigate   enter edit   pgup/pgdn scroll   ctrl+r reload   q quit")
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, left, right),
		help,
	)
}
