package components

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
)

var (
	paneBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#273540")).
			Padding(0, 1)

	paneBorderFocused = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#7f57b4")).
				Padding(0, 1)

	paneTitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))

	paneTitleFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#7f57b4")).
				Bold(true)

	errorBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7a2f3a")).
			Padding(0, 1)

	errorHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#e06c75")).
				Bold(true)

	errorBodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d6b5b5"))
)

// PaneContentWidth is the usable text width inside a pane of outer width.
func PaneContentWidth(width int) int {
	inner := width - paneBorder.GetHorizontalFrameSize()
	if inner < 1 {
		return 1
	}
	return inner
}

// PaneContentHeight is the usable line count inside a pane of outer height.
func PaneContentHeight(height int) int {
	inner := height - paneBorder.GetVerticalFrameSize()
	if inner < 1 {
		return 1
	}
	return inner
}

// Pane renders content in a bordered box of exactly width x height cells
// with title set into the top border. Zero height lets the content decide.
func Pane(title, content string, width, height int, focused bool) string {
	style, titleStyle := paneBorder, paneTitleStyle
	if focused {
		style, titleStyle = paneBorderFocused, paneTitleFocusedStyle
	}
	if width <= 0 {
		return style.Render(content)
	}

	// Width and Height include padding but not the border.
	style = style.Width(width - style.GetHorizontalBorderSize())
	if height > 0 {
		inner := PaneContentHeight(height)
		lines := strings.Split(content, "\n")
		if len(lines) > inner {
			lines = lines[:inner]
		}
		content = strings.Join(lines, "\n")
		style = style.Height(height - style.GetVerticalBorderSize())
	}
	boxed := style.Render(content)
	if height > 0 {
		// Wrapped lines can still push past the frame; keep the bottom border.
		lines := strings.Split(boxed, "\n")
		if len(lines) > height {
			lines = append(lines[:height-1], lines[len(lines)-1])
			boxed = strings.Join(lines, "\n")
		}
	}
	return setTitle(boxed, title, titleStyle, style.GetBorderTopForeground())
}

func setTitle(boxed, title string, titleStyle lipgloss.Style, borderColor lipgloss.TerminalColor) string {
	if title == "" {
		return boxed
	}
	lines := strings.Split(boxed, "\n")
	lineWidth := lipgloss.Width(lines[0])
	if lineWidth < 6 {
		return boxed
	}

	border := lipgloss.RoundedBorder()
	middle := lineWidth - 2
	text := fmt.Sprintf(" %s ", SanitizeOneLine(title))
	if lipgloss.Width(text) > middle-1 {
		text = truncateRunes(text, middle-1)
	}
	right := middle - 1 - lipgloss.Width(text)

	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	lines[0] = borderStyle.Render(border.TopLeft+border.Top) +
		titleStyle.Render(text) +
		borderStyle.Render(strings.Repeat(border.Top, right)+border.TopRight)
	return strings.Join(lines, "\n")
}

// ErrorBox renders a red bordered box for errors.
func ErrorBox(title, message string, width int) string {
	header := ""
	if title != "" {
		header = errorHeaderStyle.Render(title) + "  "
	}
	body := errorBodyStyle.Render(SanitizeOneLine(message))
	if width <= 0 {
		return errorBorder.Render(header + body)
	}
	return errorBorder.Width(width - errorBorder.GetHorizontalBorderSize()).Render(header + body)
}

// ClampTextWidth truncates text to the given visual width after flattening
// it to one line.
func ClampTextWidth(text string, width int) string {
	if width <= 0 {
		return text
	}
	cleaned := SanitizeOneLine(text)
	if lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	return truncateRunes(cleaned, width)
}

// ClampTextWidthEllipsis is ClampTextWidth with a trailing "…" when cut.
func ClampTextWidthEllipsis(text string, width int) string {
	cleaned := SanitizeOneLine(text)
	if width <= 0 || lipgloss.Width(cleaned) <= width {
		return cleaned
	}
	if width == 1 {
		return "…"
	}
	return truncateRunes(cleaned, width-1) + "…"
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func truncateRunes(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	var b strings.Builder
	b.Grow(max)
	n := 0
	for _, r := range s {
		if n >= max {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String()
}
