package fragment

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settleDelay groups bursts of file events (an editor saving a file often
// produces several) into one notification.
const settleDelay = 100 * time.Millisecond

// Watcher reports changes to the fragment files of a directory.
// It uses fsnotify for efficient file change detection.
type Watcher struct {
	dir     string
	watcher *fsnotify.Watcher
	mu      sync.Mutex
	closed  bool
}

// NewWatcher creates a Watcher for dir. The directory is created if it
// does not exist yet.
func NewWatcher(dir string) (*Watcher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating fragments directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watching fragments directory: %w", err)
	}

	return &Watcher{dir: dir, watcher: watcher}, nil
}

// Watch returns a channel that receives a value each time fragment files
// were created, written, renamed or removed. Notifications are coalesced.
// The channel is closed when ctx is cancelled or Close is called.
func (w *Watcher) Watch(ctx context.Context) <-chan struct{} {
	changes := make(chan struct{}, 1)
	go w.watchLoop(ctx, changes)
	return changes
}

func (w *Watcher) watchLoop(ctx context.Context, changes chan<- struct{}) {
	defer close(changes)

	settle := time.NewTimer(settleDelay)
	settle.Stop()
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if isFragmentEvent(event) {
				settle.Reset(settleDelay)
			}
		case <-settle.C:
			select {
			case changes <- struct{}{}:
			default:
				// a notification is already pending
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			// Continue on errors, the next event triggers a reload
		}
	}
}

// isFragmentEvent reports whether event may change the loaded batch.
func isFragmentEvent(event fsnotify.Event) bool {
	if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
		return false
	}
	return filepath.Ext(event.Name) == Extension
}

// Close stops the watcher and releases resources.
func (w *Watcher) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	return w.watcher.Close()
}

// Dir returns the directory being watched.
func (w *Watcher) Dir() string {
	return w.dir
}
