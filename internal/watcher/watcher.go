// Package watcher signals directory changes so panes can refresh their
// listings. OS events are coalesced: no matter how many entries change inside
// the debounce window, a directory produces one notification.
package watcher

import (
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/jaytechpal/FileOrbit/internal/logger"
)

// DefaultDebounce is how long events for a directory are coalesced before a
// single change notification goes out.
const DefaultDebounce = 100 * time.Millisecond

// Change identifies a directory whose contents changed
type Change struct {
	Dir string
}

// Watcher watches directories and emits coalesced change notifications.
// A directory whose OS watch cannot be established is silently skipped; the
// watcher itself keeps running.
type Watcher struct {
	fsw      *fsnotify.Watcher
	log      logger.Logger
	debounce time.Duration

	changes chan Change

	mu       sync.Mutex
	watched  map[string]bool
	pending  map[string]*time.Timer
	closed   bool
	closearm sync.Once
	done     chan struct{}
}

// New creates a watcher. It fails only when the OS notification facility
// itself is unavailable.
func New(log logger.Logger, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		log:      log.WithGroup("watcher"),
		debounce: DefaultDebounce,
		changes:  make(chan Change, 16),
		watched:  make(map[string]bool),
		pending:  make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	go w.loop()
	return w, nil
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce overrides the coalescing window
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Changes returns the notification channel. It is closed when the watcher
// shuts down.
func (w *Watcher) Changes() <-chan Change {
	return w.changes
}

// Watch subscribes to changes under dir. Setup failure (unreadable path,
// vanished network share) disables watching for that directory only: it is
// logged at warning level and the application carries on unwatched.
func (w *Watcher) Watch(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || w.watched[dir] {
		return
	}
	if err := w.fsw.Add(dir); err != nil {
		w.log.Warn("cannot watch directory, auto-refresh disabled for it", "dir", dir, "error", err)
		return
	}
	w.watched[dir] = true
}

// Unwatch stops watching dir. Pending notifications for it are dropped.
func (w *Watcher) Unwatch(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.watched[dir] {
		return
	}
	delete(w.watched, dir)
	if t, ok := w.pending[dir]; ok {
		t.Stop()
		delete(w.pending, dir)
	}
	_ = w.fsw.Remove(dir)
}

// Watching reports whether dir currently has an established watch.
func (w *Watcher) Watching(dir string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.watched[dir]
}

// Close shuts the watcher down and closes the Changes channel.
func (w *Watcher) Close() error {
	w.mu.Lock()
	w.closed = true
	for dir, t := range w.pending {
		t.Stop()
		delete(w.pending, dir)
	}
	w.mu.Unlock()

	err := w.fsw.Close()
	w.closearm.Do(func() {
		<-w.done
		w.mu.Lock()
		close(w.changes)
		w.mu.Unlock()
	})
	return err
}

func (w *Watcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				self, parent := eventDirs(ev.Name)
				w.schedule(self)
				w.schedule(parent)
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// schedule arms (or re-arms nothing: the window is not sliding) the debounce
// timer for dir so bursts collapse into one notification.
func (w *Watcher) schedule(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed || !w.watched[dir] {
		return
	}
	if _, armed := w.pending[dir]; armed {
		return
	}
	w.pending[dir] = time.AfterFunc(w.debounce, func() {
		w.fire(dir)
	})
}

func (w *Watcher) fire(dir string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.pending, dir)
	if w.closed {
		return
	}

	select {
	case w.changes <- Change{Dir: dir}:
	default:
		// Receiver is behind; it will refresh on the next event anyway
		w.log.Debug("change notification dropped", "dir", dir)
	}
}
