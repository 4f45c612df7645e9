package notes

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

// DefaultWindow is the quiet period after the last edit before a write.
const DefaultWindow = 750 * time.Millisecond

// Coalescer turns bursts of edits into one remote update per quiet window.
//
// There is one timer for the whole session, not one per note: an edit to
// any note cancels the pending write and replaces its payload. Edits to
// note A followed within the window by edits to note B send only B, and A's
// change is not sent unless A is edited again.
type Coalescer struct {
	updater Updater
	window  time.Duration
	logger  *slog.Logger

	mu      sync.Mutex
	timer   *time.Timer
	pending *api.Note
	gen     uint64
}

// NewCoalescer creates a coalescer; a non-positive window means DefaultWindow.
func NewCoalescer(updater Updater, window time.Duration, logger *slog.Logger) *Coalescer {
	if window <= 0 {
		window = DefaultWindow
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Coalescer{
		updater: updater,
		window:  window,
		logger:  logger.With("component", "write_coalescer"),
	}
}

// Window returns the configured quiet period.
func (c *Coalescer) Window() time.Duration {
	return c.window
}

// OnMutation cancels any scheduled write and schedules a new one carrying note.
func (c *Coalescer) OnMutation(note api.Note) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.timer != nil {
		c.timer.Stop()
	}
	if c.pending != nil && c.pending.URI != note.URI {
		c.logger.Debug("pending write superseded", "dropped_uri", c.pending.URI, "uri", note.URI)
	}
	c.gen++
	gen := c.gen
	n := note
	c.pending = &n
	c.timer = time.AfterFunc(c.window, func() { c.fire(gen) })
}

// Pending returns the payload waiting for the timer, if any.
func (c *Coalescer) Pending() (api.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pending == nil {
		return api.Note{}, false
	}
	return *c.pending, true
}

// Flush sends the pending payload now instead of waiting for the timer.
func (c *Coalescer) Flush() {
	c.mu.Lock()
	note, ok := c.takeLocked()
	c.mu.Unlock()
	if ok {
		c.send(note)
	}
}

// Stop cancels the pending write without sending it.
func (c *Coalescer) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if note, ok := c.takeLocked(); ok {
		c.logger.Debug("pending write discarded", "uri", note.URI)
	}
}

func (c *Coalescer) fire(gen uint64) {
	c.mu.Lock()
	// A timer that was stopped too late still runs; only the latest may send.
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	note, ok := c.takeLocked()
	c.mu.Unlock()
	if ok {
		c.send(note)
	}
}

func (c *Coalescer) takeLocked() (api.Note, bool) {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.gen++
	if c.pending == nil {
		return api.Note{}, false
	}
	note := *c.pending
	c.pending = nil
	return note, true
}

// send performs the single update for a window. Failures are logged and
// dropped; there is no retry.
func (c *Coalescer) send(note api.Note) {
	resp, err := c.updater.UpdateNote(note)
	if err != nil {
		c.logger.Warn("note update failed", "uri", note.URI, "error", err)
		return
	}
	c.logger.Debug("note updated", "uri", note.URI, "response", resp)
}
