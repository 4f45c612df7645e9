package notes

import "unicode/utf8"

const courseLabelRunes = 14

// CourseLabel derives a note's display label from a node title: the first
// 14 characters followed by "...". The marker is appended even to short titles.
func CourseLabel(title string) string {
	if utf8.RuneCountInString(title) <= courseLabelRunes {
		return title + "..."
	}
	n := 0
	for i := range title {
		if n == courseLabelRunes {
			return title[:i] + "..."
		}
		n++
	}
	return title + "..."
}
