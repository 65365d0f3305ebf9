package static

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch invalidates cache entries for files under dir whenever they change on
// disk. It runs until ctx is cancelled; the returned channel is closed once the
// watcher has shut down.
func Watch(ctx context.Context, dir string, cache *Cache, logger *slog.Logger) (<-chan struct{}, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := addDirs(fsw, dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		defer fsw.Close()

		for {
			select {
			case event, ok := <-fsw.Events:
				if !ok {
					return
				}
				handleEvent(fsw, dir, event, cache, logger)

			case err, ok := <-fsw.Errors:
				if !ok {
					return
				}
				logger.Warn("asset watcher error", "error", err)

			case <-ctx.Done():
				return
			}
		}
	}()

	return done, nil
}

func handleEvent(fsw *fsnotify.Watcher, dir string, event fsnotify.Event, cache *Cache, logger *slog.Logger) {
	if event.Has(fsnotify.Create) {
		// New subdirectories need their own watch.
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addDirs(fsw, event.Name); err != nil {
				logger.Warn("watch new directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	rel, err := filepath.Rel(dir, event.Name)
	if err != nil {
		return
	}
	name := filepath.ToSlash(rel)

	if n := cache.Invalidate(name); n > 0 {
		logger.Debug("asset changed, cache invalidated", "path", name, "entries", n)
	}
}

// addDirs watches dir and every non-hidden directory below it.
func addDirs(fsw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}
