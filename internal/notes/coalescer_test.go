package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/treenotes/internal/api"
)

// The production window is 750ms; tests scale it down and keep the same
// ratio between edits (0 and 2/3 of a window).
const testWindow = 150 * time.Millisecond

func TestCoalescerSharedWindowSendsOnlyLastNote(t *testing.T) {
	gw := newFakeGateway()
	c := NewCoalescer(gw, testWindow, nil)

	c.OnMutation(api.Note{URI: "A", Body: "a0"})
	time.Sleep(testWindow * 2 / 3)
	bAt := time.Now()
	c.OnMutation(api.Note{URI: "B", Body: "b1"})

	require.Eventually(t, func() bool { return len(gw.Updates()) == 1 }, 2*time.Second, 5*time.Millisecond)
	time.Sleep(2 * testWindow)

	updates := gw.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "B", updates[0].note.URI)
	assert.Equal(t, "b1", updates[0].note.Body)
	assert.GreaterOrEqual(t, updates[0].at.Sub(bAt), testWindow)
	assert.Less(t, updates[0].at.Sub(bAt), testWindow+testWindow/2)
}

func TestCoalescerBurstOnOneNoteSendsLatestBody(t *testing.T) {
	gw := newFakeGateway()
	c := NewCoalescer(gw, testWindow, nil)

	for _, body := range []string{"h", "he", "hel", "hell", "hello"} {
		c.OnMutation(api.Note{URI: "n1", Body: body})
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return len(gw.Updates()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "hello", gw.Updates()[0].note.Body)
}

func TestCoalescerSeparateWindowsSendSeparately(t *testing.T) {
	gw := newFakeGateway()
	c := NewCoalescer(gw, 30*time.Millisecond, nil)

	c.OnMutation(api.Note{URI: "A", Body: "1"})
	require.Eventually(t, func() bool { return len(gw.Updates()) == 1 }, time.Second, 5*time.Millisecond)
	c.OnMutation(api.Note{URI: "B", Body: "2"})
	require.Eventually(t, func() bool { return len(gw.Updates()) == 2 }, time.Second, 5*time.Millisecond)

	updates := gw.Updates()
	assert.Equal(t, "A", updates[0].note.URI)
	assert.Equal(t, "B", updates[1].note.URI)
}

func TestCoalescerUpdateFailureIsDroppedWithoutRetry(t *testing.T) {
	gw := newFakeGateway()
	gw.updateErr = errOffline
	c := NewCoalescer(gw, 20*time.Millisecond, nil)

	c.OnMutation(api.Note{URI: "n1", Body: "lost"})
	require.Eventually(t, func() bool { return len(gw.Updates()) == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Len(t, gw.Updates(), 1)
	_, pending := c.Pending()
	assert.False(t, pending)
}

func TestCoalescerFlushSendsNowAndCancelsTimer(t *testing.T) {
	gw := newFakeGateway()
	c := NewCoalescer(gw, 50*time.Millisecond, nil)

	c.OnMutation(api.Note{URI: "n1", Body: "x"})
	c.Flush()
	require.Len(t, gw.Updates(), 1)

	time.Sleep(150 * time.Millisecond)
	assert.Len(t, gw.Updates(), 1)

	c.Flush()
	assert.Len(t, gw.Updates(), 1)
}

func TestCoalescerStopDiscardsPending(t *testing.T) {
	gw := newFakeGateway()
	c := NewCoalescer(gw, 20*time.Millisecond, nil)

	c.OnMutation(api.Note{URI: "n1", Body: "x"})
	c.Stop()
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, gw.Updates())
}

func TestCoalescerDefaultWindow(t *testing.T) {
	c := NewCoalescer(newFakeGateway(), 0, nil)
	assert.Equal(t, 750*time.Millisecond, c.Window())
}
