package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/ui/components"
)

func TestViewShowsBothPanes(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})
	out := components.SanitizeText(app.View())

	assert.Contains(t, out, "Tree")
	assert.Contains(t, out, "Notes")
	assert.Contains(t, out, "Semester 3")
	assert.Contains(t, out, "Theoretische Informatik")
	assert.Contains(t, out, "no notes open")
	assert.Contains(t, out, "http://localhost:8000")
}

func TestViewFitsTerminalWidth(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})
	for _, line := range strings.Split(app.View(), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 120)
	}
}

func TestViewMarksOpenAndActiveNotes(t *testing.T) {
	app := newTestApp(t, &fakeBackend{notes: []api.Note{
		{URI: "il_crs_2", Course: "Theoretische I...", Body: "Pumping-Lemma **wiederholen**"},
	}})
	app = openNote(t, app, 1)
	app = openNote(t, app, 2)

	rows := strings.Split(components.SanitizeText(app.renderTreeRows(40)), "\n")
	require.Len(t, rows, 3)
	assert.True(t, strings.HasPrefix(rows[1], "• "), rows[1])
	assert.True(t, strings.HasPrefix(rows[2], "✎ "), rows[2])

	notesOut := components.SanitizeText(app.renderNotes(60))
	assert.Contains(t, notesOut, "Theoretische I...")
	assert.Contains(t, notesOut, "Pumping-Lemma")
	assert.Contains(t, notesOut, "Analysis III...")
	assert.Contains(t, notesOut, "(empty)")
}

func TestViewShowsEditorWhileEditing(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})
	app = openNote(t, app, 1)
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Notiz")})

	out := components.SanitizeText(app.View())
	assert.Contains(t, out, "Notiz")
	assert.Contains(t, out, "done")
	assert.Contains(t, out, "saving il_crs_2")
}

func TestViewShowsErrorInsteadOfHints(t *testing.T) {
	app := newTestApp(t, &fakeBackend{})
	app.err = "load tree: boom"
	out := components.SanitizeText(app.View())
	assert.Contains(t, out, "load tree: boom")
	assert.NotContains(t, out, "refresh")
}

func TestViewBeforeTreeLoads(t *testing.T) {
	app := NewApp(newTestApp(t, &fakeBackend{}).session, &fakeBackend{}, Options{})
	out := components.SanitizeText(app.View())
	assert.Contains(t, out, "loading tree")

	app = NewApp(app.session, nil, Options{})
	out = components.SanitizeText(app.View())
	assert.Contains(t, out, "press r to refresh")
}

func TestPaneSizesDefaults(t *testing.T) {
	app := App{}
	treeW, notesW, bodyH := app.paneSizes()
	assert.Equal(t, 100, treeW+notesW)
	assert.Equal(t, 35, treeW)
	assert.Equal(t, 26, bodyH)

	app.width = 30
	app.height = 6
	treeW, notesW, bodyH = app.paneSizes()
	assert.Equal(t, 30, treeW+notesW)
	assert.Equal(t, 5, bodyH)
}
