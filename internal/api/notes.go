package api

import (
	"net/http"
	"strings"
)

// --- Note Methods ---

// ListNotes fetches every stored note.
func (c *Client) ListNotes() ([]Note, error) {
	data, err := c.get("/api/notes/list")
	if err != nil {
		return nil, err
	}
	notes, err := decode[[]Note](data)
	if err != nil {
		return nil, err
	}
	if *notes == nil {
		return []Note{}, nil
	}
	return *notes, nil
}

// CreateNote posts a new note and returns the response status.
// Non-2xx statuses are not errors here; callers check for 201 themselves.
func (c *Client) CreateNote(note Note) (int, error) {
	_, status, err := c.do(http.MethodPost, "/api/notes/create", note)
	if status != 0 {
		return status, nil
	}
	return 0, err
}

// UpdateNote posts the full note and returns the response text.
func (c *Client) UpdateNote(note Note) (string, error) {
	data, err := c.post("/api/notes/update", note)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
