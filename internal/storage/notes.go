// Package storage persists notes for the reference backend in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/gravitrone/treenotes/internal/api"
)

var (
	ErrNoteExists   = errors.New("note already exists")
	ErrNoteNotFound = errors.New("note not found")
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	uri    TEXT PRIMARY KEY NOT NULL,
	course TEXT NOT NULL,
	body   TEXT NOT NULL DEFAULT ''
);
`

// NoteRepository is a SQLite-backed notes table keyed by uri.
type NoteRepository struct {
	db *sql.DB
}

// Open opens (or creates) the database at path and applies the schema.
// ":memory:" opens a private in-memory database.
func Open(path string) (*NoteRepository, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps ":memory:" databases shared and serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &NoteRepository{db: db}, nil
}

// Close releases the database.
func (r *NoteRepository) Close() error {
	return r.db.Close()
}

// List returns every note ordered by insertion.
func (r *NoteRepository) List(ctx context.Context) ([]api.Note, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT uri, course, body FROM notes ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	out := []api.Note{}
	for rows.Next() {
		var n api.Note
		if err := rows.Scan(&n.URI, &n.Course, &n.Body); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

// Get returns one note.
func (r *NoteRepository) Get(ctx context.Context, uri string) (api.Note, error) {
	var n api.Note
	err := r.db.QueryRowContext(ctx, `SELECT uri, course, body FROM notes WHERE uri = ?`, uri).
		Scan(&n.URI, &n.Course, &n.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return api.Note{}, ErrNoteNotFound
	}
	if err != nil {
		return api.Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

// Insert adds a new note; an existing uri yields ErrNoteExists.
func (r *NoteRepository) Insert(ctx context.Context, note api.Note) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO notes (uri, course, body) VALUES (?, ?, ?) ON CONFLICT(uri) DO NOTHING`,
		note.URI, note.Course, note.Body)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	if n == 0 {
		return ErrNoteExists
	}
	return nil
}

// Update overwrites course and body of an existing note.
func (r *NoteRepository) Update(ctx context.Context, note api.Note) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE notes SET course = ?, body = ? WHERE uri = ?`,
		note.Course, note.Body, note.URI)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if n == 0 {
		return ErrNoteNotFound
	}
	return nil
}
