package api

import "time"

// DefaultBaseURL is the single source of truth for the notes backend target.
const DefaultBaseURL = "http://localhost:8000"

// DefaultFeedURL is where the backend publishes tree updates.
const DefaultFeedURL = "ws://localhost:8000/ws"

// NewDefaultClient builds a client pointed at the default backend URL.
func NewDefaultClient(timeout ...time.Duration) *Client {
	return NewClient(DefaultBaseURL, timeout...)
}
