// Package index builds and maintains the media library index: it walks
// the mounted directory trees, extracts per-file tags, infers
// directory-level aggregates and reconciles the store against the
// filesystem.
package index

import (
	"fmt"
	"log/slog"
	"time"

	"chorale/internal/store"
	"chorale/internal/tags"
	"chorale/internal/vfs"
)

const (
	// insertBufferSize is the number of records collected before a
	// batched write. Tuning only: the persisted result is identical for
	// any capacity >= 1.
	insertBufferSize = 1000

	// cleanChunkSize bounds the payload of one delete statement.
	cleanChunkSize = 500
)

// RecordStore is the persistence surface the index drives. All methods
// are all-or-nothing per call.
type RecordStore interface {
	InsertSongs([]store.Song) error
	InsertDirectories([]store.Directory) error
	SongPaths() ([]string, error)
	DirectoryPaths() ([]string, error)
	DeleteSongs(paths []string) error
	DeleteDirectories(paths []string) error
}

// Indexer runs full library updates: a cleanup pass followed by a
// population pass over every mount point.
type Indexer struct {
	store      RecordStore
	vfs        *vfs.VFS
	reader     tags.Reader
	artPattern string
	bufferSize int
}

func New(st RecordStore, v *vfs.VFS, reader tags.Reader, artPattern string) *Indexer {
	return &Indexer{
		store:      st,
		vfs:        v,
		reader:     reader,
		artPattern: artPattern,
		bufferSize: insertBufferSize,
	}
}

// Update removes stale rows, then re-populates the index from every
// mount point. Any failure aborts the update; the store keeps whatever
// the last successful flush produced.
func (ix *Indexer) Update() error {
	start := time.Now()
	slog.Info("beginning library index update")

	if err := ix.Clean(); err != nil {
		return fmt.Errorf("clean: %w", err)
	}
	if err := ix.Populate(); err != nil {
		return fmt.Errorf("populate: %w", err)
	}

	slog.Info("library index update complete", "elapsed", time.Since(start).Truncate(time.Millisecond))
	return nil
}

// Clean deletes stored songs and directories whose path no longer
// exists on disk or no longer resolves through the mounts.
func (ix *Indexer) Clean() error {
	return NewCleaner(ix.store, ix.vfs).Clean()
}

// Populate walks every mount point and rebuilds song and directory
// records, flushing the write buffers at the end.
func (ix *Indexer) Populate() error {
	b, err := NewBuilder(ix.store, ix.reader, ix.artPattern, ix.bufferSize)
	if err != nil {
		return err
	}

	for _, m := range ix.vfs.Mounts() {
		if err := b.PopulateDirectory("", m.RealPath); err != nil {
			return err
		}
	}

	return b.Flush()
}
