// Package watcher reports debounced change notifications for watched
// model files, driving auto-reload in the desktop viewer.
package watcher

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches files and delivers debounced change events. Editors
// and exporters often write a file several times in quick succession;
// the debounce window collapses those bursts into one notification.
type Watcher struct {
	fs       *fsnotify.Watcher
	events   chan string
	debounce time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a watcher with the given debounce window
func New(debounce time.Duration) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:       fs,
		events:   make(chan string, 8),
		debounce: debounce,
		timers:   make(map[string]*time.Timer),
	}
	go w.loop()
	return w, nil
}

// Add starts watching a file
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if err := w.fs.Add(abs); err != nil {
		return fmt.Errorf("failed to watch %s: %w", abs, err)
	}
	return nil
}

// Events returns the channel of debounced changed-file paths. The
// channel stays open across Close so late timers cannot race it; it
// simply goes quiet.
func (w *Watcher) Events() <-chan string {
	return w.events
}

// Close stops watching
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			// Only writes and creates matter; editors that replace the
			// file on save show up as creates
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.schedule(event.Name)
			}

		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

// schedule arms (or re-arms) the debounce timer for a path
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		select {
		case w.events <- path:
		default:
			// A pending unread event for this burst is enough
		}
	})
}
