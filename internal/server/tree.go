package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/gravitrone/treenotes/internal/api"
	"github.com/gravitrone/treenotes/internal/logging"
)

// ErrNoTreeSource is returned by Reload when no tree file was configured.
var ErrNoTreeSource = errors.New("no tree source configured")

// TreeSource serves the content tree from a YAML (or JSON) file and reloads
// it when the file changes on disk.
type TreeSource struct {
	path   string
	logger *slog.Logger

	mu   sync.RWMutex
	root *api.TreeNode
}

// NewTreeSource returns a source for path. An empty path yields a source
// that never has a tree.
func NewTreeSource(path string, logger *slog.Logger) *TreeSource {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TreeSource{path: path, logger: logger.With("component", "tree_source")}
}

// Path returns the watched file.
func (t *TreeSource) Path() string { return t.path }

// Current returns the last successfully loaded tree.
func (t *TreeSource) Current() (api.TreeNode, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.root == nil {
		return api.TreeNode{}, false
	}
	return *t.root, true
}

// Reload re-reads the file. A parse failure keeps the previous tree.
func (t *TreeSource) Reload() (api.TreeNode, error) {
	if t.path == "" {
		return api.TreeNode{}, ErrNoTreeSource
	}
	data, err := os.ReadFile(t.path)
	if err != nil {
		return api.TreeNode{}, fmt.Errorf("read tree: %w", err)
	}
	var root api.TreeNode
	if err := yaml.Unmarshal(data, &root); err != nil {
		return api.TreeNode{}, fmt.Errorf("parse tree: %w", err)
	}

	t.mu.Lock()
	t.root = &root
	t.mu.Unlock()
	return root, nil
}

// Watch reloads the tree on every write to the file and passes each new
// tree to onChange. It blocks until ctx is done.
func (t *TreeSource) Watch(ctx context.Context, onChange func(api.TreeNode)) error {
	if t.path == "" {
		return ErrNoTreeSource
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch its directory.
	target := filepath.Clean(t.path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			root, err := t.Reload()
			if err != nil {
				t.logger.Warn("tree reload failed", "path", t.path, "error", err)
				continue
			}
			t.logger.Info("tree reloaded", "path", t.path)
			if onChange != nil {
				onChange(root)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			t.logger.Warn("watcher error", "error", err)
		}
	}
}
