// Package store persists the song and directory records produced by the
// library index. Zero field values ("" and 0) are stored as NULL.
package store

import (
	"database/sql"
	"strings"

	"chorale/internal/db"
)

// Song is one indexed media file. Identity is Path.
type Song struct {
	Path        string
	Parent      string
	TrackNumber int
	DiscNumber  int
	Title       string
	Artist      string
	AlbumArtist string
	Year        int
	Album       string
	Artwork     string
	Duration    int
}

// Directory is one indexed filesystem directory. Parent is empty for
// mount-point roots. Artist, Year and Album are the aggregates inferred
// from the directory's direct child files.
type Directory struct {
	Path      string
	Parent    string
	Artist    string
	Year      int
	Album     string
	Artwork   string
	DateAdded int64
}

type Store struct {
	db *sql.DB
}

func New(sqlDB *sql.DB) *Store {
	return &Store{db: sqlDB}
}

// InsertSongs writes one batch of songs in a single transaction. Records
// are upserted by path so repeated index runs converge to the same rows.
func (s *Store) InsertSongs(songs []Song) error {
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		for _, song := range songs {
			_, err := tx.Exec(`
				INSERT INTO songs (path, parent, track_number, disc_number, title, artist, album_artist, year, album, artwork, duration)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(path) DO UPDATE SET
					parent = excluded.parent,
					track_number = excluded.track_number,
					disc_number = excluded.disc_number,
					title = excluded.title,
					artist = excluded.artist,
					album_artist = excluded.album_artist,
					year = excluded.year,
					album = excluded.album,
					artwork = excluded.artwork,
					duration = excluded.duration
			`, song.Path, song.Parent,
				db.NullInt(song.TrackNumber), db.NullInt(song.DiscNumber),
				db.NullString(song.Title), db.NullString(song.Artist),
				db.NullString(song.AlbumArtist), db.NullInt(song.Year),
				db.NullString(song.Album), db.NullString(song.Artwork),
				db.NullInt(song.Duration))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// InsertDirectories writes one batch of directories in a single
// transaction, upserted by path.
func (s *Store) InsertDirectories(dirs []Directory) error {
	return db.WithTx(s.db, func(tx *sql.Tx) error {
		for _, dir := range dirs {
			_, err := tx.Exec(`
				INSERT INTO directories (path, parent, artist, year, album, artwork, date_added)
				VALUES (?, ?, ?, ?, ?, ?, ?)
				ON CONFLICT(path) DO UPDATE SET
					parent = excluded.parent,
					artist = excluded.artist,
					year = excluded.year,
					album = excluded.album,
					artwork = excluded.artwork,
					date_added = excluded.date_added
			`, dir.Path, db.NullString(dir.Parent),
				db.NullString(dir.Artist), db.NullInt(dir.Year),
				db.NullString(dir.Album), db.NullString(dir.Artwork),
				dir.DateAdded)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// SongPaths returns the paths of every stored song.
func (s *Store) SongPaths() ([]string, error) {
	return s.listPaths(`SELECT path FROM songs`)
}

// DirectoryPaths returns the paths of every stored directory.
func (s *Store) DirectoryPaths() ([]string, error) {
	return s.listPaths(`SELECT path FROM directories`)
}

func (s *Store) listPaths(query string) ([]string, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}

// DeleteSongs removes the given song rows in one statement.
func (s *Store) DeleteSongs(paths []string) error {
	return s.deletePaths("songs", paths)
}

// DeleteDirectories removes the given directory rows in one statement.
func (s *Store) DeleteDirectories(paths []string) error {
	return s.deletePaths("directories", paths)
}

func (s *Store) deletePaths(table string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	placeholders := strings.Repeat("?,", len(paths))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(paths))
	for i, p := range paths {
		args[i] = p
	}

	_, err := s.db.Exec(`DELETE FROM `+table+` WHERE path IN (`+placeholders+`)`, args...)
	return err
}

// SongCount returns the number of stored songs.
func (s *Store) SongCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM songs`).Scan(&count)
	return count, err
}

// DirectoryCount returns the number of stored directories.
func (s *Store) DirectoryCount() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM directories`).Scan(&count)
	return count, err
}
