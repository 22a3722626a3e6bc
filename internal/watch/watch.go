// Package watch provides debounced file watching for live
// re-extraction.
//
// Editors often perform several writes (or a write-then-rename) when
// saving a file. The watcher coalesces rapid changes to the same path
// into a single event so callers re-extract once per save.
package watch

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrWatcherClosed is returned when operating on a closed watcher.
var ErrWatcherClosed = errors.New("watcher is closed")

// ErrPathNotExist is returned when watching a path that does not exist.
var ErrPathNotExist = errors.New("path does not exist")

// Event signals that a watched file changed and the debounce interval
// has elapsed.
type Event struct {
	Path string
	Time time.Time
}

// Watcher watches files and delivers debounced change events.
type Watcher struct {
	mu sync.Mutex

	watcher  *fsnotify.Watcher
	debounce time.Duration
	paths    map[string]bool

	events chan Event
	errors chan error

	closed  bool
	closeCh chan struct{}
	loopWg  sync.WaitGroup
}

// New creates a watcher that delays events by the given debounce
// interval, coalescing changes that arrive within it.
func New(debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher:  fsw,
		debounce: debounce,
		paths:    make(map[string]bool),
		events:   make(chan Event, 16),
		errors:   make(chan error, 16),
		closeCh:  make(chan struct{}),
	}

	w.loopWg.Add(1)
	go w.processLoop()

	return w, nil
}

// Watch starts watching a file. The parent directory is registered
// with fsnotify so save-by-rename is observed, and events are filtered
// back down to the requested path.
func (w *Watcher) Watch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return ErrWatcherClosed
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(absPath); err != nil {
		if os.IsNotExist(err) {
			return ErrPathNotExist
		}
		return err
	}

	if w.paths[absPath] {
		return nil
	}

	dir := filepath.Dir(absPath)
	if err := w.watcher.Add(dir); err != nil {
		return err
	}

	w.paths[absPath] = true
	return nil
}

// Events returns the channel of debounced change events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	close(w.closeCh)
	w.mu.Unlock()

	err := w.watcher.Close()
	w.loopWg.Wait()

	close(w.events)
	close(w.errors)
	return err
}

// processLoop drains fsnotify events, debouncing per the configured
// interval. Pending paths accumulate until the timer fires.
func (w *Watcher) processLoop() {
	defer w.loopWg.Done()

	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	pending := make(map[string]time.Time)

	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !w.isWatched(ev.Name) {
				continue
			}
			pending[ev.Name] = time.Now()
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerCh = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}

		case <-timerCh:
			for path, ts := range pending {
				select {
				case w.events <- Event{Path: path, Time: ts}:
				default:
				}
				delete(pending, path)
			}
			timer = nil
			timerCh = nil
		}
	}
}

func (w *Watcher) isWatched(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	abs, err := filepath.Abs(name)
	if err != nil {
		return false
	}
	return w.paths[abs]
}
