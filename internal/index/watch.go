package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchSettle is how long the filesystem must stay quiet before a
// triggered re-scan runs.
const watchSettle = 10 * time.Second

// Watch watches every mount point recursively and runs a full Update
// once the filesystem settles after a change. It blocks until ctx is
// cancelled. Update failures are logged, not fatal: the watch keeps
// running.
func (ix *Indexer) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, m := range ix.vfs.Mounts() {
		if err := watchTree(watcher, m.RealPath); err != nil {
			slog.Warn("could not watch mount", "mount", m.Name, "err", err)
		}
	}

	settle := time.NewTimer(watchSettle)
	settle.Stop()

	for {
		select {
		case event := <-watcher.Events:
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				break
			}
			// New directories need their own watch before the re-scan.
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := watchTree(watcher, event.Name); err != nil {
						slog.Warn("could not watch directory", "path", event.Name, "err", err)
					}
				}
			}
			settle.Reset(watchSettle)

		case err := <-watcher.Errors:
			slog.Warn("watcher error", "err", err)

		case <-settle.C:
			if err := ix.Update(); err != nil {
				slog.Error("index update failed", "err", err)
			}

		case <-ctx.Done():
			return nil
		}
	}
}

func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil //nolint:nilerr // skip unreadable subtrees, watch the rest
		}
		if !d.IsDir() {
			return nil
		}
		return watcher.Add(path)
	})
}
