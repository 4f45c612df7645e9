package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gravitrone/treenotes/internal/ui/components"
)

func TestRenderMarkdownEmpty(t *testing.T) {
	assert.Equal(t, "", renderMarkdown("", 40))
	assert.Equal(t, "", renderMarkdown("\n\n", 40))
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := components.SanitizeText(renderMarkdown("# Blatt 3\n\n- Aufgabe *1*\n- Aufgabe 2", 40))
	assert.Contains(t, out, "Blatt 3")
	assert.Contains(t, out, "Aufgabe 1")
	assert.False(t, strings.HasPrefix(out, "\n"))
}

func TestRendererIsCachedPerWidth(t *testing.T) {
	assert.Same(t, getRenderer(33), getRenderer(33))
}

func TestClipLines(t *testing.T) {
	in := "a\nb\nc\nd"
	assert.Equal(t, in, clipLines(in, 4))
	out := components.SanitizeText(clipLines(in, 2))
	assert.Equal(t, "a\n…", out)
	assert.Equal(t, "", clipLines(in, 0))
}
