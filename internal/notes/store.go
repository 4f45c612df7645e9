package notes

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

// Store is the in-memory uri -> note mapping for one session. It loads the
// remote list once, on first use, and grows through local creations.
type Store struct {
	gateway   Gateway
	coalescer *Coalescer
	logger    *slog.Logger

	mu     sync.RWMutex
	notes  map[string]*api.Note
	order  []string
	loaded bool

	loads   singleflight.Group
	creates singleflight.Group
}

// NewStore creates an empty, unloaded store. Mutations are forwarded to
// coalescer, which may be nil for read-only use.
func NewStore(gateway Gateway, coalescer *Coalescer, logger *slog.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		gateway:   gateway,
		coalescer: coalescer,
		logger:    logger.With("component", "note_store"),
		notes:     make(map[string]*api.Note),
	}
}

// Loaded reports whether the remote list has been fetched.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// EnsureLoaded fetches the remote list unless it already has been. Callers
// arriving while a fetch is in flight wait for that fetch instead of issuing
// their own. A failed fetch stores nothing and leaves the store unloaded.
func (s *Store) EnsureLoaded() error {
	if s.Loaded() {
		return nil
	}
	_, err, _ := s.loads.Do("list", func() (any, error) {
		if s.Loaded() {
			return nil, nil
		}
		list, err := s.gateway.ListNotes()
		if err != nil {
			s.logger.Error("note list fetch failed", "error", err)
			return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}

		s.mu.Lock()
		for i := range list {
			s.insertLocked(list[i])
		}
		s.loaded = true
		s.mu.Unlock()

		s.logger.Debug("notes loaded", "count", len(list))
		return nil, nil
	})
	return err
}

// Find returns a snapshot of the note for uri.
func (s *Store) Find(uri string) (api.Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	note, ok := s.notes[uri]
	if !ok {
		return api.Note{}, false
	}
	return *note, true
}

// Create asks the backend to create a note for uri and inserts it only when
// the backend answers 201. The course label is derived from title here and
// never recomputed. Concurrent creates for one uri share a single request.
func (s *Store) Create(uri, title, body string) (api.Note, error) {
	v, err, _ := s.creates.Do(uri, func() (any, error) {
		if existing, ok := s.Find(uri); ok {
			return existing, nil
		}
		candidate := api.Note{URI: uri, Course: CourseLabel(title), Body: body}

		status, err := s.gateway.CreateNote(candidate)
		if err != nil {
			return nil, fmt.Errorf("create note: %w", err)
		}
		if status != http.StatusCreated {
			return nil, fmt.Errorf("%w: status %d", ErrCreateRejected, status)
		}

		s.mu.Lock()
		s.insertLocked(candidate)
		s.mu.Unlock()
		s.logger.Debug("note created", "uri", uri)
		return candidate, nil
	})
	if err != nil {
		return api.Note{}, err
	}
	return v.(api.Note), nil
}

// SetBody edits a note's body and records the mutation. The write and the
// hand-off to the coalescer happen under one lock so concurrent edits reach
// the coalescer in the order they were applied.
func (s *Store) SetBody(uri, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	note, ok := s.notes[uri]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoteNotFound, uri)
	}
	note.Body = body
	s.RecordMutation(*note)
	return nil
}

// RecordMutation forwards the full note snapshot to the write coalescer.
func (s *Store) RecordMutation(note api.Note) {
	if s.coalescer == nil {
		return
	}
	s.coalescer.OnMutation(note)
}

// Notes returns snapshots of every note in insertion order.
func (s *Store) Notes() []api.Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.Note, 0, len(s.order))
	for _, uri := range s.order {
		out = append(out, *s.notes[uri])
	}
	return out
}

// Len is the number of notes held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

func (s *Store) insertLocked(note api.Note) {
	if existing, ok := s.notes[note.URI]; ok {
		*existing = note
		return
	}
	n := note
	s.notes[note.URI] = &n
	s.order = append(s.order, note.URI)
}
