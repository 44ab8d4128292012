package watcher

import (
	"context"
	"fmt"
	"time"

	"github.com/brooffline/server/internal/logger"
	"github.com/fsnotify/fsnotify"
)

const defaultDebounce = 2 * time.Second

// watches the docs directory and fires onChange after filesystem events
// settle, so one save (or one rsync) triggers one reload
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	docsDir   string
	debounce  time.Duration
	onChange  func()
}

func New(docsDir string, onChange func()) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fs watcher: %w", err)
	}

	if err := fsWatcher.Add(docsDir); err != nil {
		fsWatcher.Close() //nolint:errcheck,gosec // best-effort cleanup on init failure
		return nil, fmt.Errorf("failed to watch %s: %w", docsDir, err)
	}

	return &Watcher{
		fsWatcher: fsWatcher,
		docsDir:   docsDir,
		debounce:  defaultDebounce,
		onChange:  onChange,
	}, nil
}

// runs the event loop until the context is cancelled
func (w *Watcher) Start(ctx context.Context) {
	logger.Info("watching docs directory", "path", w.docsDir)

	var timer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}

			return

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}

			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}

			logger.Debug("docs change detected", "path", event.Name, "op", event.Op.String())

			if timer != nil {
				timer.Stop()
			}

			timer = time.AfterFunc(w.debounce, w.onChange)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}

			logger.Warn("docs watcher error", "error", err)
		}
	}
}

func (w *Watcher) Close() error {
	return w.fsWatcher.Close()
}
