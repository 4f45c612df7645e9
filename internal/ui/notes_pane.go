package ui

import (
	"strings"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/ui/components"
)

// Inactive notes show this many rendered lines.
const previewLines = 6

// renderNotes draws every visible note: the active one as the editor while
// editing, everything else as a markdown preview.
func (a App) renderNotes(width int) string {
	visible := a.session.VisibleNotes()
	if len(visible) == 0 {
		return MutedStyle.Render("no notes open, select a node and press enter")
	}
	active := a.session.Selector().ActiveURI()

	blocks := make([]string, 0, len(visible))
	for _, note := range visible {
		isActive := note.URI == active
		header := noteHeader(note, isActive, width)

		var body string
		switch {
		case isActive && a.focus == focusEditor:
			body = a.editor.View()
		case strings.TrimSpace(note.Body) == "":
			body = MutedStyle.Render("(empty)")
		case isActive:
			body = renderMarkdown(note.Body, width)
		default:
			body = clipLines(renderMarkdown(note.Body, width), previewLines)
		}
		blocks = append(blocks, header+"\n"+body)
	}
	divider := DividerStyle.Render(strings.Repeat("─", maxInt(width, 1)))
	return strings.Join(blocks, "\n"+divider+"\n")
}

func noteHeader(note api.Note, active bool, width int) string {
	title := note.Course
	if title == "" {
		title = note.URI
	}
	title = components.ClampTextWidthEllipsis(title, maxInt(width-4, 4))
	if active {
		return NoteActiveTitleStyle.Render(title)
	}
	return NoteTitleStyle.Render(title) + " " + MutedStyle.Render(components.ClampTextWidthEllipsis(note.URI, maxInt(width-len(title)-2, 1)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
