package notes

import "github.com/gravitrone/treenotes/internal/api"

// Updater sends one coalesced note write.
type Updater interface {
	UpdateNote(note api.Note) (string, error)
}

// Gateway is the remote side of the note store. *api.Client satisfies it.
type Gateway interface {
	Updater
	ListNotes() ([]api.Note, error)
	// CreateNote returns the HTTP status; only 201 counts as created.
	CreateNote(note api.Note) (int, error)
}

var _ Gateway = (*api.Client)(nil)
