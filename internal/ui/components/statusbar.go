package components

import "github.com/charmbracelet/lipgloss"

var (
	keyCapStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#16161d")).
			Background(lipgloss.Color("#888ba4")).
			Bold(true).
			Padding(0, 1)
	hintDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))
	statusTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da")).
			Bold(true)
	hintGap = "  "
)

// StatusBar renders the key hints, wrapping to more rows when width is too
// small, with status on the left of the first row.
func StatusBar(status string, hints []string, width int) string {
	segments := make([]string, 0, len(hints)+1)
	if status != "" {
		segments = append(segments, statusTextStyle.Render(SanitizeOneLine(status)))
	}
	segments = append(segments, hints...)

	rows := wrapSegments(segments, width)
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// Hint formats one key hint like "enter open".
func Hint(key, desc string) string {
	return keyCapStyle.Render(key) + " " + hintDescStyle.Render(desc)
}

func wrapSegments(segments []string, width int) []string {
	if len(segments) == 0 {
		return nil
	}
	gapWidth := lipgloss.Width(hintGap)
	var rows []string
	current := ""
	currentWidth := 0
	for _, seg := range segments {
		segWidth := lipgloss.Width(seg)
		if width > 0 && currentWidth > 0 && currentWidth+gapWidth+segWidth > width {
			rows = append(rows, current)
			current, currentWidth = seg, segWidth
			continue
		}
		if currentWidth > 0 {
			current += hintGap
			currentWidth += gapWidth
		}
		current += seg
		currentWidth += segWidth
	}
	return append(rows, current)
}
