package notes

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

// Options configure a Session.
type Options struct {
	// Window is the write coalescing period; zero means DefaultWindow.
	Window time.Duration
	Logger *slog.Logger
}

// Session owns the note store, the write coalescer, and the selection state
// for one interactive session. Create it once and Close it on exit.
type Session struct {
	store     *Store
	coalescer *Coalescer
	selector  *Selector
	logger    *slog.Logger

	closeOnce sync.Once
}

// NewSession wires a fresh, unloaded session against gateway.
func NewSession(gateway Gateway, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	coalescer := NewCoalescer(gateway, opts.Window, logger)
	store := NewStore(gateway, coalescer, logger)
	return &Session{
		store:     store,
		coalescer: coalescer,
		selector:  NewSelector(store, logger),
		logger:    logger,
	}
}

// Store exposes the underlying note store.
func (s *Session) Store() *Store { return s.store }

// Selector exposes the visibility state machine.
func (s *Session) Selector() *Selector { return s.selector }

// EnsureLoaded loads the remote note list once.
func (s *Session) EnsureLoaded() error { return s.store.EnsureLoaded() }

// Activate shows and focuses the note for node. See Selector.Activate.
func (s *Session) Activate(node api.TreeNode) (bool, error) {
	return s.selector.Activate(node)
}

// Hide removes uri from the visible notes.
func (s *Session) Hide(uri string) { s.selector.Hide(uri) }

// ResetActive clears the active note.
func (s *Session) ResetActive() { s.selector.ResetActive() }

// Active returns the note being edited, if any.
func (s *Session) Active() (api.Note, bool) { return s.selector.Active() }

// VisibleNotes returns the notes currently displayed.
func (s *Session) VisibleNotes() []api.Note { return s.selector.VisibleNotes() }

// Notes returns every note known to the session.
func (s *Session) Notes() []api.Note { return s.store.Notes() }

// SetBody edits a note and schedules the coalesced write.
func (s *Session) SetBody(uri, body string) error {
	return s.store.SetBody(uri, body)
}

// PendingWrite returns the edit still waiting in the coalescing window.
func (s *Session) PendingWrite() (api.Note, bool) { return s.coalescer.Pending() }

// Window is the coalescing period in use.
func (s *Session) Window() time.Duration { return s.coalescer.Window() }

// Close sends a write still waiting in the coalescing window so the last
// edit of the session reaches the backend. Safe to call more than once.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		if note, ok := s.coalescer.Pending(); ok {
			s.logger.Debug("flushing pending write on close", "uri", note.URI)
		}
		s.coalescer.Flush()
	})
}
