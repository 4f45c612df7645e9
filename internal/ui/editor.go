package ui

import (
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gravitrone/treenotes/internal/api"
)

// noteEditor is the textarea bound to the active note.
type noteEditor struct {
	area textarea.Model
	uri  string
}

func newNoteEditor() noteEditor {
	area := textarea.New()
	area.Placeholder = "Write a note…"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.MaxHeight = 0
	area.Prompt = "│ "
	area.FocusedStyle.CursorLine = lipgloss.NewStyle()
	area.FocusedStyle.Prompt = lipgloss.NewStyle().Foreground(ColorPrimary)
	area.BlurredStyle.Prompt = lipgloss.NewStyle().Foreground(ColorBorder)
	area.SetWidth(60)
	area.SetHeight(8)
	return noteEditor{area: area}
}

// Load binds the editor to note and replaces its text.
func (e *noteEditor) Load(note api.Note) {
	e.uri = note.URI
	e.area.SetValue(note.Body)
}

// Clear unbinds the editor.
func (e *noteEditor) Clear() {
	e.uri = ""
	e.area.Reset()
	e.area.Blur()
}

// URI is the note currently loaded, or "".
func (e noteEditor) URI() string { return e.uri }

func (e noteEditor) Value() string { return e.area.Value() }

func (e *noteEditor) Focus() tea.Cmd { return e.area.Focus() }

func (e *noteEditor) Blur() { e.area.Blur() }

func (e noteEditor) Focused() bool { return e.area.Focused() }

func (e *noteEditor) SetSize(width, height int) {
	if width < 10 {
		width = 10
	}
	if height < 3 {
		height = 3
	}
	e.area.SetWidth(width)
	e.area.SetHeight(height)
}

// Update forwards msg to the textarea and reports whether the text changed.
func (e *noteEditor) Update(msg tea.Msg) (bool, tea.Cmd) {
	before := e.area.Value()
	var cmd tea.Cmd
	e.area, cmd = e.area.Update(msg)
	return e.area.Value() != before, cmd
}

func (e noteEditor) View() string { return e.area.View() }
