package notes

import "errors"

var (
	// ErrLoadFailed wraps a failed fetch of the remote note list.
	ErrLoadFailed = errors.New("load notes")
	// ErrCreateRejected means the backend answered a create with a
	// status other than 201. The candidate note is discarded.
	ErrCreateRejected = errors.New("note create rejected")
	ErrNoteNotFound   = errors.New("note not found")
	ErrInvalidNode    = errors.New("tree node has no uri")
)
