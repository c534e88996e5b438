package index

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	"github.com/djherbis/times"

	"chorale/internal/store"
	"chorale/internal/tags"
)

// Builder walks a directory tree and fills the song and directory
// buffers. It owns its buffers and the store handle for the duration of
// one population pass.
type Builder struct {
	reader     tags.Reader
	artPattern *regexp.Regexp
	songs      *sink[store.Song]
	dirs       *sink[store.Directory]
}

func NewBuilder(st RecordStore, reader tags.Reader, artPattern string, bufferSize int) (*Builder, error) {
	re, err := regexp.Compile(artPattern)
	if err != nil {
		return nil, fmt.Errorf("album art pattern: %w", err)
	}

	return &Builder{
		reader:     reader,
		artPattern: re,
		songs:      newSink(bufferSize, st.InsertSongs),
		dirs:       newSink(bufferSize, st.InsertDirectories),
	}, nil
}

// PopulateDirectory indexes path and then its sub-directories. parent is
// empty for mount-point roots.
//
// Files are processed before sub-directories so that a directory's
// aggregates come only from its direct children, and the directory's own
// record is enqueued before any descendant references it as parent.
func (b *Builder) PopulateDirectory(parent, path string) error {
	artwork := b.findArtwork(path)

	dateAdded, err := directoryDateAdded(path)
	if err != nil {
		return fmt.Errorf("read directory times %q: %w", path, err)
	}

	// os.ReadDir sorts entries by name, so the walk is deterministic.
	entries, err := os.ReadDir(path)
	if err != nil {
		if len(entries) == 0 {
			return fmt.Errorf("list directory %q: %w", path, err)
		}
		// Keep what was listed before the error.
		slog.Warn("partial directory listing", "path", path, "err", err)
	}

	var agg aggregate
	var subDirs []string

	for _, entry := range entries {
		entryPath := filepath.Join(path, entry.Name())

		if entry.IsDir() {
			subDirs = append(subDirs, entryPath)
			continue
		}

		t, err := b.reader.Read(entryPath)
		if err != nil {
			slog.Debug("skipping file", "path", entryPath, "err", err)
			continue
		}

		agg.add(t)

		// Songs inherit the directory's artwork, not any embedded art.
		err = b.songs.push(store.Song{
			Path:        entryPath,
			Parent:      path,
			TrackNumber: t.TrackNumber,
			DiscNumber:  t.DiscNumber,
			Title:       t.Title,
			Artist:      t.Artist,
			AlbumArtist: t.AlbumArtist,
			Year:        t.Year,
			Album:       t.Album,
			Artwork:     artwork,
			Duration:    t.Duration,
		})
		if err != nil {
			return err
		}
	}

	album, artist, year := agg.finalize()

	err = b.dirs.push(store.Directory{
		Path:      path,
		Parent:    parent,
		Artist:    artist,
		Year:      year,
		Album:     album,
		Artwork:   artwork,
		DateAdded: dateAdded,
	})
	if err != nil {
		return err
	}

	for _, sub := range subDirs {
		if err := b.PopulateDirectory(path, sub); err != nil {
			return err
		}
	}

	return nil
}

// Flush writes out both buffers. Call once after the last mount point.
func (b *Builder) Flush() error {
	if err := b.songs.flush(); err != nil {
		return err
	}
	return b.dirs.flush()
}

// findArtwork returns the first entry of the directory whose name
// matches the artwork pattern, or "" if there is none. Listing failures
// degrade to "no artwork".
func (b *Builder) findArtwork(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if b.artPattern.MatchString(entry.Name()) {
			return filepath.Join(dir, entry.Name())
		}
	}
	return ""
}

// directoryDateAdded returns the directory's creation time, falling back
// to its modification time, as seconds since the epoch.
func directoryDateAdded(path string) (int64, error) {
	ts, err := times.Stat(path)
	if err != nil {
		return 0, err
	}
	if ts.HasBirthTime() {
		return ts.BirthTime().Unix(), nil
	}
	return ts.ModTime().Unix(), nil
}

// aggregate infers directory-level album, artist and year from the tags
// of the directory's direct child files. A field that sees two different
// values is flagged inconsistent and nulled at finalize. The artist
// aggregate prefers album_artist over artist per file; the two sources
// share one running value, so mixing them across files can flag a
// conflict even when each source agrees with itself.
type aggregate struct {
	album  string
	artist string
	year   int

	albumConflict  bool
	artistConflict bool
	yearConflict   bool
}

func (a *aggregate) add(t *tags.Tag) {
	if t.Year != 0 {
		a.yearConflict = a.yearConflict || (a.year != 0 && a.year != t.Year)
		a.year = t.Year
	}

	if t.Album != "" {
		a.albumConflict = a.albumConflict || (a.album != "" && a.album != t.Album)
		a.album = t.Album
	}

	switch {
	case t.AlbumArtist != "":
		a.artistConflict = a.artistConflict || (a.artist != "" && a.artist != t.AlbumArtist)
		a.artist = t.AlbumArtist
	case t.Artist != "":
		a.artistConflict = a.artistConflict || (a.artist != "" && a.artist != t.Artist)
		a.artist = t.Artist
	}
}

func (a *aggregate) finalize() (album, artist string, year int) {
	if a.albumConflict {
		a.album = ""
	}
	if a.artistConflict {
		a.artist = ""
	}
	if a.yearConflict {
		a.year = 0
	}
	return a.album, a.artist, a.year
}
