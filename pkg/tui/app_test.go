package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkstudio/inkstudio/pkg/models"
	"github.com/inkstudio/inkstudio/pkg/provider"
)

type fakeConcepts struct {
	concepts []*models.Concept
	err      error
}

func (f *fakeConcepts) List(ctx context.Context) ([]*models.Concept, error) {
	return f.concepts, f.err
}

func testConcepts() *fakeConcepts {
	return &fakeConcepts{concepts: []*models.Concept{
		{ID: "c1", Name: "Koi sleeve", Style: models.StyleTraditional, Image: "data:image/png;base64,AAAA", Summary: "A koi fish swimming upstream.", CreatedAt: time.Now()},
		{ID: "c2", Name: "Dagger", Image: "data:image/png;base64,BBBB", CreatedAt: time.Now()},
	}}
}

func updateApp(t *testing.T, a *App, msg tea.Msg) tea.Cmd {
	t.Helper()
	m, cmd := a.Update(msg)
	require.Same(t, a, m)
	return cmd
}

func TestApp_EditorOnly(t *testing.T) {
	a := NewApp(nil, provider.NewStaticProvider(""), WithBaseImage(provider.PlaceholderImage(), "design.png"))
	require.Equal(t, editorView, a.state)
	require.NotNil(t, a.editor)
	assert.Equal(t, "design.png", a.editor.title)
	assert.Equal(t, "Loading...", a.View())

	updateApp(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Contains(t, a.View(), "Editing: design.png")

	ed := a.editor.Editor()
	cmd := updateApp(t, a, editorClosedMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, a.editor)
	assert.False(t, ed.Closed(), "the editor model closes its own session")
	ed.Close()
}

func TestApp_ConceptFlow(t *testing.T) {
	a := NewApp(nil, provider.NewStaticProvider(""), WithConcepts(testConcepts()))
	require.Equal(t, conceptListView, a.state)

	updateApp(t, a, tea.WindowSizeMsg{Width: 120, Height: 40})
	for _, msg := range runCmd(a.Init()) {
		updateApp(t, a, msg)
	}
	require.Len(t, a.conceptList.concepts, 2)
	assert.Contains(t, a.View(), "SAVED CONCEPTS (2)")
	assert.Contains(t, a.View(), "A koi fish swimming upstream.")

	updateApp(t, a, key("down"))
	current, ok := a.conceptList.Current()
	require.True(t, ok)
	assert.Equal(t, "c2", current.ID)

	msgs := runCmd(updateApp(t, a, key("enter")))
	require.Len(t, msgs, 1)
	updateApp(t, a, msgs[0])

	require.Equal(t, editorView, a.state)
	require.NotNil(t, a.editor)
	assert.Equal(t, "Dagger", a.editor.title)
	layers := a.editor.Editor().Layers()
	require.Len(t, layers, 1)
	assert.Equal(t, "data:image/png;base64,BBBB", layers[0].Image)

	// q closes the editor and lands back on the list
	closeMsgs := runCmd(updateApp(t, a, key("q")))
	require.Len(t, closeMsgs, 1)
	cmd := updateApp(t, a, closeMsgs[0])
	assert.Equal(t, conceptListView, a.state)
	assert.Nil(t, a.editor)
	assert.NotNil(t, cmd)
}

func TestApp_ConceptListEmptyAndErrors(t *testing.T) {
	tests := []struct {
		name   string
		source *fakeConcepts
		want   string
	}{
		{"empty", &fakeConcepts{}, "No concepts saved yet."},
		{"error", &fakeConcepts{err: assert.AnError}, "Failed to load concepts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(nil, nil, WithConcepts(tt.source))
			updateApp(t, a, tea.WindowSizeMsg{Width: 100, Height: 30})
			for _, msg := range runCmd(a.Init()) {
				updateApp(t, a, msg)
			}
			assert.Contains(t, a.View(), tt.want)

			// enter with nothing to open stays on the list
			assert.Nil(t, updateApp(t, a, key("enter")))
			assert.Equal(t, conceptListView, a.state)
		})
	}
}

func TestAppStatusMessages(t *testing.T) {
	tests := []struct {
		name         string
		msg          tea.Msg
		expectStatus string
		expectCmd    bool
	}{
		{"StatusMsg schedules a clear", StatusMsg("Saved"), "Saved", true},
		{"PersistentStatusMsg stays", PersistentStatusMsg("Working"), "Working", false},
		{"clearStatusMsg clears", clearStatusMsg{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(nil, nil, WithConcepts(&fakeConcepts{}))
			a.statusMsg = "previous"

			cmd := updateApp(t, a, tt.msg)
			assert.Equal(t, tt.expectStatus, a.statusMsg)
			assert.Equal(t, tt.expectCmd, cmd != nil)
		})
	}
}
