package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitrone/treenotes/internal/logging"
)

// TreeFeed streams content tree snapshots pushed by the backend.
type TreeFeed struct {
	url    string
	dialer *websocket.Dialer
	logger *slog.Logger
}

// NewTreeFeed creates a feed reader for the given ws:// or wss:// url.
func NewTreeFeed(url string, logger *slog.Logger) *TreeFeed {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TreeFeed{
		url: url,
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
		logger: logger.With("component", "tree_feed"),
	}
}

// URL returns the feed endpoint.
func (f *TreeFeed) URL() string {
	return f.url
}

// Listen connects and calls onTree for every snapshot until ctx ends or the
// server closes the connection. A normal close returns nil.
func (f *TreeFeed) Listen(ctx context.Context, onTree func(TreeNode)) error {
	conn, resp, err := f.dialer.DialContext(ctx, f.url, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial feed: HTTP %d: %w", resp.StatusCode, err)
		}
		return fmt.Errorf("dial feed: %w", err)
	}
	defer conn.Close()
	f.logger.Debug("feed connected", "url", f.url)

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "client shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read feed: %w", err)
		}

		var node TreeNode
		if err := json.Unmarshal(raw, &node); err != nil {
			f.logger.Warn("skip malformed tree frame", "error", err, "bytes", len(raw))
			continue
		}
		onTree(node)
	}
}
