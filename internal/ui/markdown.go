package ui

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
)

var (
	rendererMu      sync.Mutex
	renderersByWide = map[int]*glamour.TermRenderer{}
)

// renderMarkdown renders a note body for the preview pane. It falls back to
// the raw text when rendering fails.
func renderMarkdown(input string, width int) string {
	input = strings.TrimRight(input, "\n")
	if input == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	r := getRenderer(width)
	if r == nil {
		return input
	}
	out, err := r.Render(input)
	if err != nil {
		return input
	}
	return strings.Trim(out, "\n")
}

func getRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if r, ok := renderersByWide[width]; ok {
		return r
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(previewStyleConfig()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderersByWide[width] = r
	return r
}

func previewStyleConfig() glamouransi.StyleConfig {
	base := styles.DarkStyleConfig
	// Pane borders already frame the text.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	return base
}

// clipLines keeps at most n lines of s, marking the cut.
func clipLines(s string, n int) string {
	if n <= 0 {
		return ""
	}
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	kept := append(lines[:n-1:n-1], MutedStyle.Render("…"))
	return strings.Join(kept, "\n")
}
