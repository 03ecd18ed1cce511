// Package watch reloads the settings store when another process changes
// the data directory.
//
// Several surfaces (the CLI, the popup, the HTTP server) may share one data
// directory. Each keeps its own snapshot; the persisted copy is the source
// of truth, so a surface that sees the database change simply reloads.
package watch

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce batches the burst of writes one save produces.
const DefaultDebounce = 250 * time.Millisecond

// Reloader re-reads persisted state. settings.Store satisfies it.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Watcher watches one directory and reloads after changes settle.
type Watcher struct {
	dir      string
	prefix   string
	target   Reloader
	debounce time.Duration
	log      *slog.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounce sets how long the directory must be quiet before a reload.
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

// WithPrefix only reacts to files whose base name starts with p, which
// covers a SQLite database and its -wal and -shm files.
func WithPrefix(p string) Option {
	return func(w *Watcher) { w.prefix = p }
}

// WithLogger sets the logger. The default discards.
func WithLogger(l *slog.Logger) Option {
	return func(w *Watcher) { w.log = l }
}

// New returns a watcher for dir.
func New(dir string, target Reloader, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		target:   target,
		debounce: DefaultDebounce,
		log:      slog.New(slog.DiscardHandler),
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Run blocks until ctx is cancelled. Reload errors are logged, not fatal.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return err
	}
	w.log.Info("watching", "dir", w.dir)

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watch error", "error", err)

		case <-timer.C:
			if err := w.target.Reload(ctx); err != nil {
				w.log.Warn("reload failed", "error", err)
				continue
			}
			w.log.Debug("reloaded")
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return w.prefix == "" || strings.HasPrefix(filepath.Base(ev.Name), w.prefix)
}
