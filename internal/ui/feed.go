package ui

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/treenotes/internal/api"
)

type feedTreeMsg struct{ root api.TreeNode }
type feedClosedMsg struct{ err error }

// FeedUpdate is one item delivered by StartFeed. The last update of a feed
// has a nil Root and the error the feed ended with.
type FeedUpdate struct {
	Root *api.TreeNode
	Err  error
}

// StartFeed runs feed in the background and delivers every tree on the
// returned channel. The channel is closed when the feed ends.
func StartFeed(ctx context.Context, feed *api.TreeFeed, logger *slog.Logger) <-chan FeedUpdate {
	ch := make(chan FeedUpdate, 4)
	go func() {
		defer close(ch)
		err := feed.Listen(ctx, func(root api.TreeNode) {
			select {
			case ch <- FeedUpdate{Root: &root}:
			case <-ctx.Done():
			}
		})
		if ctx.Err() != nil {
			return
		}
		if err != nil && logger != nil {
			logger.Warn("tree feed ended", "url", feed.URL(), "error", err)
		}
		select {
		case ch <- FeedUpdate{Err: err}:
		case <-ctx.Done():
		}
	}()
	return ch
}

func waitForFeed(ch <-chan FeedUpdate) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-ch
		if !ok || update.Root == nil {
			return feedClosedMsg{err: update.Err}
		}
		return feedTreeMsg{root: *update.Root}
	}
}
