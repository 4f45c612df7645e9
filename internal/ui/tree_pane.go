package ui

import (
	"fmt"
	"strings"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/ui/components"
)

// rowKey identifies a tree row across reloads.
func rowKey(node *api.TreeNode) string {
	return fmt.Sprintf("%d:%s", node.ID, node.URI)
}

func rowKeys(rows []api.TreeRow) []string {
	keys := make([]string, len(rows))
	for i, row := range rows {
		keys[i] = rowKey(row.Node)
	}
	return keys
}

// renderTreeRows draws the visible window of the tree. Rows whose note is
// shown get a marker, the active one in accent color.
func (a App) renderTreeRows(width int) string {
	if a.tree == nil {
		if a.treeLoading {
			return MutedStyle.Render("loading tree…")
		}
		return MutedStyle.Render("no tree yet, press r to refresh")
	}
	if len(a.rows) == 0 {
		return MutedStyle.Render("tree is empty")
	}

	shown := make(map[string]bool)
	for _, uri := range a.session.Selector().Visible() {
		shown[uri] = true
	}
	active := a.session.Selector().ActiveURI()

	start, end := a.list.Window()
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		node := a.rows[i].Node
		marker := "  "
		switch {
		case node.URI != "" && node.URI == active:
			marker = AccentStyle.Render("✎ ")
		case node.URI != "" && shown[node.URI]:
			marker = MutedStyle.Render("• ")
		}
		indent := strings.Repeat("  ", a.rows[i].Depth)
		label := indent + node.Breed.Glyph() + " " + components.SanitizeOneLine(node.Title)
		label = components.ClampTextWidthEllipsis(label, width-2)

		style := NormalStyle
		if !node.Visible {
			style = MutedStyle
		}
		if a.list.IsSelected(i) {
			style = SelectedStyle
		}
		lines = append(lines, marker+style.Render(label))
	}
	return strings.Join(lines, "\n")
}

func (a App) selectedNode() (*api.TreeNode, bool) {
	if a.list.Cursor < 0 || a.list.Cursor >= len(a.rows) {
		return nil, false
	}
	return a.rows[a.list.Cursor].Node, true
}
