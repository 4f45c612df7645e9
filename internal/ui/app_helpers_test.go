package ui

import (
	"net/http"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/notes"
)

// fakeBackend serves both the note and the tree endpoints from memory.
type fakeBackend struct {
	mu           sync.Mutex
	notes        []api.Note
	createStatus int
	updates      []api.Note
	tree         *api.TreeNode
	treeErr      error
	refresh      *api.RefreshResult
}

func (f *fakeBackend) ListNotes() ([]api.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]api.Note(nil), f.notes...), nil
}

func (f *fakeBackend) CreateNote(note api.Note) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createStatus != 0 {
		return f.createStatus, nil
	}
	f.notes = append(f.notes, note)
	return http.StatusCreated, nil
}

func (f *fakeBackend) UpdateNote(note api.Note) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, note)
	return "ok", nil
}

func (f *fakeBackend) GetTree() (*api.TreeNode, error) {
	return f.tree, f.treeErr
}

func (f *fakeBackend) RefreshTree() (*api.RefreshResult, error) {
	if f.refresh != nil {
		return f.refresh, nil
	}
	return &api.RefreshResult{Status: "ok", Node: f.tree}, nil
}

func sampleTree() *api.TreeNode {
	return &api.TreeNode{
		Title: "root", Breed: api.KindFolder, Visible: true,
		Children: []api.TreeNode{
			{Title: "Semester 3", ID: 1, Breed: api.KindFolder, Visible: true, Children: []api.TreeNode{
				{Title: "Theoretische Informatik", ID: 2, URI: "il_crs_2", Breed: api.KindForum, Parent: 1, Visible: true},
				{Title: "Analysis III", ID: 3, URI: "il_crs_3", Breed: api.KindForum, Parent: 1, Visible: true},
			}},
		},
	}
}

// newTestApp returns an app whose tree has loaded, with the cursor on the
// first row ("Semester 3").
func newTestApp(t *testing.T, backend *fakeBackend) App {
	t.Helper()
	if backend.tree == nil {
		backend.tree = sampleTree()
	}
	session := notes.NewSession(backend, notes.Options{Window: time.Hour})
	t.Cleanup(session.Close)

	app := NewApp(session, backend, Options{Server: "http://localhost:8000"})
	app = update(t, app, tea.WindowSizeMsg{Width: 120, Height: 40})
	root, err := backend.GetTree()
	require.NoError(t, err)
	return update(t, app, treeLoadedMsg{root: root})
}

func update(t *testing.T, app App, msg tea.Msg) App {
	t.Helper()
	model, _ := app.Update(msg)
	return model.(App)
}

func press(t *testing.T, app App, msg tea.KeyMsg) (App, tea.Cmd) {
	t.Helper()
	model, cmd := app.Update(msg)
	return model.(App), cmd
}

// openNote moves the cursor to row and runs the activation it triggers.
func openNote(t *testing.T, app App, row int) App {
	t.Helper()
	for app.list.Cursor < row {
		app, _ = press(t, app, tea.KeyMsg{Type: tea.KeyDown})
	}
	app, cmd := press(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, app.activating)
	return update(t, app, cmd())
}
