package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Event is emitted by KV.Watch when a blob changes on disk, typically
// because another process (a second shell, the backup collaborator)
// rewrote it.
type Event struct {
	// Key is SettingsKey or CyclesKey; empty when the change could not be
	// attributed, in which case callers should refresh everything.
	Key string
}

// Watch streams change events until ctx is cancelled. Callers should drain
// the returned channel to avoid losing events. The channel closes once ctx
// is done or the watcher fails unrecoverably.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if p.basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}

	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}
	var closeOnce sync.Once
	closeWatcher := func() {
		closeOnce.Do(func() {
			if err := watcher.Close(); err != nil {
				fmt.Fprintf(os.Stderr, "store: watcher close: %v\n", err)
			}
		})
	}

	if err := watcher.Add(p.basePath); err != nil {
		closeWatcher()
		return nil, fmt.Errorf("store: watch %s: %w", p.basePath, err)
	}

	events := make(chan Event, 16)

	go func() {
		defer close(events)
		defer closeWatcher()

		send := func(ev Event) {
			select {
			case events <- ev:
			default:
				// Drop events if the consumer is not ready; the next
				// refresh picks the change up anyway, and this keeps a
				// filesystem storm from blocking the watcher goroutine.
			}
		}

		throttle := newEventThrottle(100 * time.Millisecond)
		defer throttle.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				// Surface watcher errors as a full refresh so clients stay
				// in sync even when the change cannot be classified.
				throttle.Enqueue(Event{}, send)
				_ = err
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				throttle.Enqueue(Event{Key: p.keyForPath(evt.Name)}, send)
			}
		}
	}()

	return events, nil
}

// keyForPath maps a changed file back to its blob key. diskv writes through
// a temp file per key, so both the final name and its temp sibling count.
func (p *persistence) keyForPath(path string) string {
	name := filepath.Base(path)
	for _, key := range []string{SettingsKey, CyclesKey} {
		if name == key {
			return key
		}
	}
	return ""
}

// eventThrottle coalesces rapid change notifications so consumers redraw
// once per burst of filesystem activity instead of on every single write.
type eventThrottle struct {
	mu      sync.Mutex
	timer   *time.Timer
	pending map[string]struct{}
	delay   time.Duration
}

func newEventThrottle(delay time.Duration) *eventThrottle {
	return &eventThrottle{
		pending: make(map[string]struct{}),
		delay:   delay,
	}
}

// Enqueue records the event and arms a single flush timer; when it fires,
// every distinct pending key is emitted once.
func (t *eventThrottle) Enqueue(ev Event, send func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.pending[ev.Key] = struct{}{}
	if t.timer != nil {
		return
	}
	t.timer = time.AfterFunc(t.delay, func() {
		t.mu.Lock()
		keys := t.pending
		t.pending = make(map[string]struct{})
		t.timer = nil
		t.mu.Unlock()

		for key := range keys {
			send(Event{Key: key})
		}
	})
}

// Stop cancels any pending flush.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}
