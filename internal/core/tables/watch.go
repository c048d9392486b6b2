package tables

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce collapses the burst of events an editor emits on save.
const DefaultDebounce = 250 * time.Millisecond

// Watch reloads the catalog whenever the override file at path changes,
// until ctx is done. The parent directory is watched so that editors that
// save by renaming a temp file over path are picked up too.
//
// onReload, if non-nil, receives the result of every reload. A failed reload
// keeps the previous catalog.
func Watch(ctx context.Context, path string, debounce time.Duration, onReload func(error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve catalog path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		defer func() {
			if r := recover(); r != nil {
				slog.Error("panic in catalog watcher", "panic", r)
			}
		}()

		// Stopped timer; armed by the first relevant event.
		timer := time.NewTimer(debounce)
		if !timer.Stop() {
			<-timer.C
		}

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != abs {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				timer.Reset(debounce)

			case <-timer.C:
				err := Reload(abs)
				if err != nil {
					slog.Warn("catalog reload failed, keeping previous catalog", "file", abs, "error", err)
				}
				if onReload != nil {
					onReload(err)
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("catalog watcher error", "error", err)
			}
		}
	}()

	slog.Info("watching table catalog", "file", abs)
	return nil
}
