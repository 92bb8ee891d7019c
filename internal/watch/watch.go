// Package watch reports debounced changes to a single file. The file's
// directory is watched so editors that save by rename are still seen.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the file must be quiet before a Change is
// reported.
const DefaultDebounce = 100 * time.Millisecond

// Change is one debounced batch of events on the watched file.
type Change struct {
	Path string
	// Op is the union of the operations seen during the batch.
	Op   fsnotify.Op
	Time time.Time
}

// Removed reports whether the file went away during the batch.
func (c Change) Removed() bool {
	return c.Op.Has(fsnotify.Remove) || c.Op.Has(fsnotify.Rename)
}

// Watcher watches one file.
type Watcher struct {
	path     string
	fs       *fsnotify.Watcher
	handler  func(Change)
	debounce time.Duration
	log      *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce is an Option that sets the quiet period before a Change
// is reported.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithLogger is an Option that sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) {
		w.log = l
	}
}

// New returns a Watcher that calls handler for changes to path. Nothing
// is watched until Run.
func New(path string, handler func(Change), opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		path:     abs,
		fs:       fsw,
		handler:  handler,
		debounce: DefaultDebounce,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Path returns the absolute path of the watched file.
func (w *Watcher) Path() string { return w.path }

// Run watches until ctx is done and then closes the watcher. The handler
// is called on Run's goroutine, one Change at a time.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()
	if err := w.fs.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	var (
		pending fsnotify.Op
		timer   *time.Timer
		timerC  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("file event", "path", ev.Name, "op", ev.Op.String())
			pending |= ev.Op
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			timer, timerC = nil, nil
			if pending == 0 {
				continue
			}
			c := Change{Path: w.path, Op: pending, Time: time.Now()}
			pending = 0
			if w.handler != nil {
				w.handler(c)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "path", w.path, "err", err)
		}
	}
}

// relevant reports whether ev concerns the watched file. Chmod alone
// does not change the contents.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.path {
		return false
	}
	return ev.Op&^fsnotify.Chmod != 0
}
