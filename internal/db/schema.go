package db

import (
	"database/sql"
)

const currentSchemaVersion = 1

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);

		CREATE TABLE IF NOT EXISTS songs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			parent TEXT NOT NULL,
			track_number INTEGER,
			disc_number INTEGER,
			title TEXT,
			artist TEXT,
			album_artist TEXT,
			year INTEGER,
			album TEXT,
			artwork TEXT,
			duration INTEGER
		);

		CREATE INDEX IF NOT EXISTS idx_songs_parent ON songs(parent);
		CREATE INDEX IF NOT EXISTS idx_songs_album ON songs(album);

		CREATE TABLE IF NOT EXISTS directories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			parent TEXT,
			artist TEXT,
			year INTEGER,
			album TEXT,
			artwork TEXT,
			date_added INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_directories_parent ON directories(parent);
	`)
	if err != nil {
		return err
	}

	_, err = db.Exec(`
		INSERT OR IGNORE INTO schema_version (version) VALUES (?)
	`, currentSchemaVersion)
	return err
}
