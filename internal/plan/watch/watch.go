// Package watch re-runs a callback whenever a plan file changes on disk.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a single file. The parent directory is watched so that
// editors which save by rename-and-replace are still noticed.
type Watcher struct {
	path     string
	debounce time.Duration
	onChange func(context.Context) error
	log      *slog.Logger
	fsWatch  *fsnotify.Watcher
}

// New creates a watcher for path and starts listening immediately. Changes
// are coalesced: onChange runs once debounce has passed without further events.
func New(path string, debounce time.Duration, onChange func(context.Context) error, log *slog.Logger) (*Watcher, error) {
	if onChange == nil {
		return nil, fmt.Errorf("onChange callback cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{
		path:     abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		fsWatch:  fsWatch,
	}, nil
}

// Run processes file events until ctx is cancelled. Callback errors are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsWatch.Close()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsWatch.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.log.Debug("Plan file event", slog.String("path", w.path), slog.String("op", event.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := w.onChange(ctx); err != nil {
				w.log.Error("Plan re-run failed", slog.String("path", w.path), slog.String("error", err.Error()))
			}

		case err, ok := <-w.fsWatch.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("File watcher error", slog.String("error", err.Error()))
		}
	}
}
