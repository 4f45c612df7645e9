// Package server is the reference notes and content-tree backend the client
// talks to.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
	"github.com/gravitrone/treenotes/internal/storage"
)

// NoteRepository is the persistence the note routes need.
type NoteRepository interface {
	List(ctx context.Context) ([]api.Note, error)
	Insert(ctx context.Context, note api.Note) error
	Update(ctx context.Context, note api.Note) error
}

var _ NoteRepository = (*storage.NoteRepository)(nil)

// Server routes note and tree requests.
type Server struct {
	repo   NoteRepository
	tree   *TreeSource
	hub    *Hub
	logger *slog.Logger

	mu       sync.RWMutex
	username string
}

// New builds a server. tree may be nil when no content tree is served.
func New(repo NoteRepository, tree *TreeSource, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	if tree == nil {
		tree = NewTreeSource("", logger)
	}
	return &Server{
		repo:   repo,
		tree:   tree,
		hub:    NewHub(logger),
		logger: logger,
	}
}

// Hub returns the tree feed hub.
func (s *Server) Hub() *Hub { return s.hub }

// Username returns the last username sent to /api/credentials.
func (s *Server) Username() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

// Handler returns the routed, logged HTTP handler.
func (s *Server) Handler() http.Handler {
	r := newRouter(s.logger)
	r.Route("/api", func(r chi.Router) {
		r.Get("/notes/list", s.handleListNotes)
		r.Post("/notes/create", s.handleCreateNote)
		r.Post("/notes/update", s.handleUpdateNote)
		r.Get("/node", s.handleNode)
		r.Get("/update", s.handleRefresh)
		r.Post("/credentials", s.handleCredentials)
	})
	r.Method(http.MethodGet, "/ws", s.hub)
	return r
}

// Run loads the tree, starts watching it, and serves on addr until ctx ends.
func (s *Server) Run(ctx context.Context, addr string) error {
	if s.tree.Path() != "" {
		if _, err := s.tree.Reload(); err != nil {
			return err
		}
		go func() {
			if err := s.tree.Watch(ctx, s.hub.Broadcast); err != nil {
				s.logger.Warn("tree watch stopped", "error", err)
			}
		}()
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.repo.List(r.Context())
	if err != nil {
		s.logger.Error("list notes", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	note, ok := decodeNote(w, r)
	if !ok {
		return
	}
	err := s.repo.Insert(r.Context(), note)
	switch {
	case errors.Is(err, storage.ErrNoteExists):
		writeError(w, http.StatusConflict, "note already exists")
	case err != nil:
		s.logger.Error("create note", "uri", note.URI, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeJSON(w, http.StatusCreated, note)
	}
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	note, ok := decodeNote(w, r)
	if !ok {
		return
	}
	err := s.repo.Update(r.Context(), note)
	switch {
	case errors.Is(err, storage.ErrNoteNotFound):
		http.Error(w, "note not found", http.StatusNotFound)
	case err != nil:
		s.logger.Error("update note", "uri", note.URI, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	default:
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte("ok"))
	}
}

func (s *Server) handleNode(w http.ResponseWriter, _ *http.Request) {
	root, ok := s.tree.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no tree loaded")
		return
	}
	writeJSON(w, http.StatusOK, root)
}

func (s *Server) handleRefresh(w http.ResponseWriter, _ *http.Request) {
	root, err := s.tree.Reload()
	if err != nil {
		writeJSON(w, http.StatusOK, api.RefreshResult{Status: err.Error()})
		return
	}
	s.hub.Broadcast(root)
	writeJSON(w, http.StatusOK, api.RefreshResult{Status: "ok", Node: &root})
}

func (s *Server) handleCredentials(w http.ResponseWriter, r *http.Request) {
	var creds api.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"status": "malformed credentials"})
		return
	}
	if strings.TrimSpace(creds.Username) == "" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "username required"})
		return
	}
	s.mu.Lock()
	s.username = creds.Username
	s.mu.Unlock()
	s.logger.Info("credentials set", "username", creds.Username, "persistent", creds.Persistent)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decodeNote(w http.ResponseWriter, r *http.Request) (api.Note, bool) {
	var note api.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		writeError(w, http.StatusBadRequest, "malformed note: "+err.Error())
		return api.Note{}, false
	}
	if note.URI == "" {
		writeError(w, http.StatusBadRequest, "uri is required")
		return api.Note{}, false
	}
	return note, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
