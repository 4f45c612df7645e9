package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

const feedWriteTimeout = 5 * time.Second

// Hub fans tree snapshots out to websocket subscribers.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu    sync.Mutex
	conns map[*websocket.Conn]struct{}
	last  []byte
}

// NewHub creates an empty hub.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		logger: logger.With("component", "feed"),
		conns:  make(map[*websocket.Conn]struct{}),
	}
}

// Subscribers reports the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Broadcast sends root to every subscriber and remembers it for new ones.
// Subscribers whose write fails are dropped.
func (h *Hub) Broadcast(root api.TreeNode) {
	frame, err := json.Marshal(root)
	if err != nil {
		h.logger.Error("encode tree", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = frame
	for conn := range h.conns {
		if err := writeFrame(conn, frame); err != nil {
			h.logger.Debug("dropping subscriber", "remote", conn.RemoteAddr().String(), "error", err)
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

// ServeHTTP upgrades the request and keeps the subscriber until it hangs up.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade failed", "error", err)
		return
	}

	h.mu.Lock()
	if h.last != nil {
		if err := writeFrame(conn, h.last); err != nil {
			h.mu.Unlock()
			conn.Close()
			return
		}
	}
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Subscribers never send anything; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "server shutting down"),
			time.Now().Add(time.Second))
		conn.Close()
		delete(h.conns, conn)
	}
}

func writeFrame(conn *websocket.Conn, frame []byte) error {
	conn.SetWriteDeadline(time.Now().Add(feedWriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, frame)
}
