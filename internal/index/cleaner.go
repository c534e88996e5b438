package index

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"chorale/internal/vfs"
)

// Cleaner removes stored rows whose path no longer exists on disk or no
// longer resolves through the virtual filesystem.
type Cleaner struct {
	store     RecordStore
	vfs       *vfs.VFS
	chunkSize int
}

func NewCleaner(st RecordStore, v *vfs.VFS) *Cleaner {
	return &Cleaner{store: st, vfs: v, chunkSize: cleanChunkSize}
}

// Clean diffs stored paths against filesystem and mount reality and
// deletes the stale rows, songs first. Any listing or delete failure
// aborts the cleanup.
func (c *Cleaner) Clean() error {
	songs, err := c.store.SongPaths()
	if err != nil {
		return fmt.Errorf("list songs: %w", err)
	}
	missingSongs := c.missing(songs)
	for chunk := range slices.Chunk(missingSongs, c.chunkSize) {
		if err := c.store.DeleteSongs(chunk); err != nil {
			return fmt.Errorf("delete songs: %w", err)
		}
	}

	dirs, err := c.store.DirectoryPaths()
	if err != nil {
		return fmt.Errorf("list directories: %w", err)
	}
	missingDirs := c.missing(dirs)
	for chunk := range slices.Chunk(missingDirs, c.chunkSize) {
		if err := c.store.DeleteDirectories(chunk); err != nil {
			return fmt.Errorf("delete directories: %w", err)
		}
	}

	if len(missingSongs) > 0 || len(missingDirs) > 0 {
		slog.Info("removed stale index entries", "songs", len(missingSongs), "directories", len(missingDirs))
	}
	return nil
}

// missing keeps the paths that are gone from disk or rejected by the
// mount mapping.
func (c *Cleaner) missing(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
			continue
		}
		if _, err := c.vfs.RealToVirtual(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}
