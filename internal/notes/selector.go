package notes

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

// Selector tracks which notes are displayed and which one is being edited.
//
// The visible list keeps insertion order and is not deduplicated: activating
// a node that is already visible appends its uri again. The active uri, when
// set, is always present in the visible list once an operation returns.
type Selector struct {
	store  *Store
	logger *slog.Logger

	mu      sync.Mutex
	visible []string
	active  string
}

// NewSelector starts with nothing visible and nothing active.
func NewSelector(store *Store, logger *slog.Logger) *Selector {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Selector{
		store:  store,
		logger: logger.With("component", "selector"),
	}
}

// Activate shows and focuses the note for node, creating it remotely first
// when the node has none. It reports false with a nil error when the backend
// rejected the create; in that case nothing changes. Load and transport
// failures are returned.
func (s *Selector) Activate(node api.TreeNode) (bool, error) {
	if node.URI == "" {
		return false, ErrInvalidNode
	}
	if err := s.store.EnsureLoaded(); err != nil {
		return false, err
	}

	if _, ok := s.store.Find(node.URI); !ok {
		if _, err := s.store.Create(node.URI, node.Title, ""); err != nil {
			if errors.Is(err, ErrCreateRejected) {
				s.logger.Warn("note create rejected, activation dropped", "uri", node.URI, "error", err)
				return false, nil
			}
			return false, err
		}
	}

	s.mu.Lock()
	s.visible = append(s.visible, node.URI)
	s.active = node.URI
	s.mu.Unlock()
	return true, nil
}

// Hide removes the first occurrence of uri from the visible list. When uri
// was active, the first remaining visible note becomes active, or none.
func (s *Selector) Hide(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, v := range s.visible {
		if v == uri {
			s.visible = append(s.visible[:i], s.visible[i+1:]...)
			break
		}
	}
	if uri != s.active {
		return
	}
	if len(s.visible) > 0 {
		s.active = s.visible[0]
	} else {
		s.active = ""
	}
}

// ResetActive clears the active note and leaves the visible list alone.
func (s *Selector) ResetActive() {
	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()
}

// ActiveURI returns the active uri, or "" when none is active.
func (s *Selector) ActiveURI() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Active returns a snapshot of the active note.
func (s *Selector) Active() (api.Note, bool) {
	uri := s.ActiveURI()
	if uri == "" {
		return api.Note{}, false
	}
	return s.store.Find(uri)
}

// Visible returns a copy of the visible list, duplicates included.
func (s *Selector) Visible() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.visible...)
}

// VisibleNotes resolves the visible list to notes, in visible order, each
// uri once.
func (s *Selector) VisibleNotes() []api.Note {
	uris := s.Visible()
	seen := make(map[string]struct{}, len(uris))
	out := make([]api.Note, 0, len(uris))
	for _, uri := range uris {
		if _, dup := seen[uri]; dup {
			continue
		}
		seen[uri] = struct{}{}
		if note, ok := s.store.Find(uri); ok {
			out = append(out, note)
		}
	}
	return out
}
