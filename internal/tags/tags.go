// Package tags reads the metadata the index stores for each media file.
package tags

import (
	"strconv"
	"strings"
)

// File extensions recognized as media files.
const (
	ExtMP3  = ".mp3"
	ExtFLAC = ".flac"
	ExtOPUS = ".opus"
	ExtOGG  = ".ogg"
	ExtM4A  = ".m4a"
	ExtMP4  = ".mp4"
)

// Tag holds the metadata extracted from one media file. Zero values mean
// the tag is absent: "" for strings, 0 for numbers.
type Tag struct {
	Path        string
	Title       string
	Artist      string
	AlbumArtist string
	Album       string

	TrackNumber int
	DiscNumber  int
	Year        int

	// Duration of the audio stream in seconds.
	Duration int
}

// Reader extracts tags from a single media file. A read failure means
// the file is unreadable or unsupported and must not abort a scan.
type Reader interface {
	Read(path string) (*Tag, error)
}

// IsMediaFile returns true if the path has a supported media file extension.
func IsMediaFile(path string) bool {
	ext := strings.ToLower(path)
	if idx := strings.LastIndex(ext, "."); idx >= 0 {
		ext = ext[idx:]
	} else {
		return false
	}
	return ext == ExtMP3 || ext == ExtFLAC || ext == ExtOPUS || ext == ExtOGG || ext == ExtM4A || ext == ExtMP4
}

// taglibTags wraps a taglib result map with helper methods.
type taglibTags map[string][]string

// get returns the first value for any of the given keys, or empty string if not found.
func (t taglibTags) get(keys ...string) string {
	for _, key := range keys {
		if values, ok := t[key]; ok && len(values) > 0 {
			return values[0]
		}
	}
	return ""
}

// getNumber parses a value that may be "N" or "N/M", returning N.
func (t taglibTags) getNumber(key string) int {
	s := t.get(key)
	if s == "" {
		return 0
	}
	if idx := strings.Index(s, "/"); idx > 0 {
		s = s[:idx]
	}
	n, _ := strconv.Atoi(s)
	return n
}

// getYear derives a year from a date value that may be YYYY or YYYY-MM-DD.
func (t taglibTags) getYear(keys ...string) int {
	s := t.get(keys...)
	if len(s) > 4 {
		s = s[:4]
	}
	y, _ := strconv.Atoi(s)
	return y
}
