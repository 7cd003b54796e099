package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/chris-regnier/kindctl/internal/logger"
	"github.com/chris-regnier/kindctl/internal/storage"
)

// DefaultDebounce coalesces bursts of filesystem writes into one refresh.
const DefaultDebounce = 150 * time.Millisecond

// Snapshot is one emission of Watch.
type Snapshot struct {
	Items []Item
	Err   error
}

// Watch emits the current list immediately and again whenever the store's
// files change. The channel is closed when ctx is done. Stores that are not
// storage.Watchable get the initial snapshot only.
func (h *History) Watch(ctx context.Context, opts Options, debounce time.Duration) (<-chan Snapshot, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var watcher *fsnotify.Watcher
	if w, ok := h.store.(storage.Watchable); ok {
		var err error
		watcher, err = fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("creating watcher: %w", err)
		}
		for _, root := range w.WatchPaths() {
			dirs, err := collectDirs(root)
			if err != nil {
				watcher.Close()
				return nil, fmt.Errorf("enumerating %s: %w", root, err)
			}
			for _, dir := range dirs {
				if err := watcher.Add(dir); err != nil {
					watcher.Close()
					return nil, fmt.Errorf("watching %s: %w", dir, err)
				}
			}
		}
	}

	out := make(chan Snapshot, 1)
	emit := func() bool {
		items, err := h.List(ctx, opts)
		select {
		case out <- Snapshot{Items: items, Err: err}:
			return true
		case <-ctx.Done():
			return false
		}
	}

	go func() {
		defer close(out)
		if watcher != nil {
			defer watcher.Close()
		}

		if !emit() {
			return
		}
		if watcher == nil {
			<-ctx.Done()
			return
		}

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				return
			case evt, ok := <-watcher.Events:
				if !ok {
					return
				}
				if evt.Has(fsnotify.Create) {
					// diskv creates a directory per record kind on first write
					if fi, err := os.Stat(evt.Name); err == nil && fi.IsDir() && !skipDir(evt.Name) {
						if err := watcher.Add(evt.Name); err != nil {
							logger.Warn("watch new directory", "dir", evt.Name, "err", err)
						}
					}
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("history watcher error", "err", err)
			case <-fire:
				fire = nil
				if !emit() {
					return
				}
			}
		}
	}()

	return out, nil
}

// skipDir excludes directories whose churn is not data, such as the
// rotating log files.
func skipDir(path string) bool {
	return filepath.Base(path) == "logs"
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() || path == base {
			return nil
		}
		if skipDir(path) {
			return filepath.SkipDir
		}
		dirs = append(dirs, path)
		return nil
	})
	return dirs, err
}
