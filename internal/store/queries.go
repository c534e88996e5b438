package store

import (
	"database/sql"

	"chorale/internal/db"
)

const songColumns = `path, parent, track_number, disc_number, title, artist, album_artist, year, album, artwork, duration`

// SongsByParent returns the songs directly inside a directory, ordered
// for browsing.
func (s *Store) SongsByParent(parent string) ([]Song, error) {
	rows, err := s.db.Query(`
		SELECT `+songColumns+`
		FROM songs
		WHERE parent = ?
		ORDER BY disc_number, track_number, title COLLATE NOCASE, path
	`, parent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []Song
	for rows.Next() {
		song, err := scanSong(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}
	return songs, rows.Err()
}

// SongByPath returns one song, or sql.ErrNoRows.
func (s *Store) SongByPath(path string) (Song, error) {
	row := s.db.QueryRow(`SELECT `+songColumns+` FROM songs WHERE path = ?`, path)
	return scanSong(row)
}

// DirectoriesByParent returns the sub-directories of a directory,
// ordered by path.
func (s *Store) DirectoriesByParent(parent string) ([]Directory, error) {
	rows, err := s.db.Query(`
		SELECT path, parent, artist, year, album, artwork, date_added
		FROM directories
		WHERE parent = ?
		ORDER BY path
	`, parent)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var dirs []Directory
	for rows.Next() {
		dir, err := scanDirectory(rows)
		if err != nil {
			return nil, err
		}
		dirs = append(dirs, dir)
	}
	return dirs, rows.Err()
}

// DirectoryByPath returns one directory, or sql.ErrNoRows.
func (s *Store) DirectoryByPath(path string) (Directory, error) {
	row := s.db.QueryRow(`
		SELECT path, parent, artist, year, album, artwork, date_added
		FROM directories WHERE path = ?
	`, path)
	return scanDirectory(row)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSong(row scanner) (Song, error) {
	var song Song
	var trackNum, discNum, year, duration sql.NullInt64
	var title, artist, albumArtist, album, artwork sql.NullString

	err := row.Scan(&song.Path, &song.Parent, &trackNum, &discNum,
		&title, &artist, &albumArtist, &year, &album, &artwork, &duration)
	if err != nil {
		return Song{}, err
	}

	song.TrackNumber = int(db.NullInt64Value(trackNum))
	song.DiscNumber = int(db.NullInt64Value(discNum))
	song.Title = db.NullStringValue(title)
	song.Artist = db.NullStringValue(artist)
	song.AlbumArtist = db.NullStringValue(albumArtist)
	song.Year = int(db.NullInt64Value(year))
	song.Album = db.NullStringValue(album)
	song.Artwork = db.NullStringValue(artwork)
	song.Duration = int(db.NullInt64Value(duration))
	return song, nil
}

func scanDirectory(row scanner) (Directory, error) {
	var dir Directory
	var parent, artist, album, artwork sql.NullString
	var year sql.NullInt64

	err := row.Scan(&dir.Path, &parent, &artist, &year, &album, &artwork, &dir.DateAdded)
	if err != nil {
		return Directory{}, err
	}

	dir.Parent = db.NullStringValue(parent)
	dir.Artist = db.NullStringValue(artist)
	dir.Year = int(db.NullInt64Value(year))
	dir.Album = db.NullStringValue(album)
	dir.Artwork = db.NullStringValue(artwork)
	return dir, nil
}
