package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeOneLineStripsOscAndNewlines(t *testing.T) {
	input := "\x1b]8;;https://evil\x07click\x1b]8;;\x07\nline\tmore"
	out := SanitizeOneLine(input)

	assert.False(t, strings.Contains(out, "\x1b"))
	assert.False(t, strings.Contains(out, "\n"))
	assert.False(t, strings.Contains(out, "\t"))
}

func TestSanitizeTextRemovesBidiControls(t *testing.T) {
	input := "safe\u202eexe.txt"
	out := SanitizeText(input)

	assert.NotContains(t, out, "\u202e")
}

func TestSanitizeOneLineCollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "Blatt 3 abgeben", SanitizeOneLine("  Blatt 3\n\n  abgeben\t"))
	assert.Equal(t, "", SanitizeOneLine(""))
}

func TestSanitizeTextKeepsNewlines(t *testing.T) {
	assert.Equal(t, "a\nb", SanitizeText("a\x1b[31m\nb\x1b[0m"))
}
