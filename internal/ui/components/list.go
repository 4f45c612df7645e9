package components

// List is a scrollable cursor over a sequence of keyed rows.
type List struct {
	Keys     []string
	Cursor   int
	Offset   int
	PageSize int
}

// NewList creates a list with the given page size.
func NewList(pageSize int) *List {
	if pageSize < 1 {
		pageSize = 1
	}
	return &List{PageSize: pageSize}
}

// SetKeys replaces the rows and resets the cursor.
func (l *List) SetKeys(keys []string) {
	l.Keys = keys
	l.Cursor = 0
	l.Offset = 0
}

// Replace swaps in new rows but keeps the cursor on the row with the same
// key when it still exists. Otherwise the cursor is clamped.
func (l *List) Replace(keys []string) {
	var current string
	hadCurrent := l.Cursor >= 0 && l.Cursor < len(l.Keys)
	if hadCurrent {
		current = l.Keys[l.Cursor]
	}
	l.Keys = keys

	if hadCurrent {
		for i, k := range keys {
			if k == current {
				l.Cursor = i
				l.scrollToCursor()
				return
			}
		}
	}
	if l.Cursor >= len(keys) {
		l.Cursor = len(keys) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	l.scrollToCursor()
}

// SetPageSize changes the window height and keeps the cursor on screen.
func (l *List) SetPageSize(n int) {
	if n < 1 {
		n = 1
	}
	l.PageSize = n
	l.scrollToCursor()
}

// Down moves the cursor down.
func (l *List) Down() {
	if l.Cursor < len(l.Keys)-1 {
		l.Cursor++
		l.scrollToCursor()
	}
}

// Up moves the cursor up.
func (l *List) Up() {
	if l.Cursor > 0 {
		l.Cursor--
		l.scrollToCursor()
	}
}

// Window returns the [start, end) range of rows on screen.
func (l *List) Window() (int, int) {
	end := l.Offset + l.PageSize
	if end > len(l.Keys) {
		end = len(l.Keys)
	}
	return l.Offset, end
}

// Selected returns the key under the cursor.
func (l *List) Selected() (string, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Keys) {
		return "", false
	}
	return l.Keys[l.Cursor], true
}

// IsSelected reports whether the absolute index is the cursor.
func (l *List) IsSelected(idx int) bool {
	return idx == l.Cursor
}

func (l *List) scrollToCursor() {
	if l.Cursor < l.Offset {
		l.Offset = l.Cursor
	}
	if l.Cursor >= l.Offset+l.PageSize {
		l.Offset = l.Cursor - l.PageSize + 1
	}
	maxOffset := len(l.Keys) - l.PageSize
	if maxOffset < 0 {
		maxOffset = 0
	}
	if l.Offset > maxOffset {
		l.Offset = maxOffset
	}
	if l.Offset < 0 {
		l.Offset = 0
	}
}
