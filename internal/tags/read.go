package tags

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dhowden/tag"
	"go.senan.xyz/taglib"
)

// ErrUnsupported is returned for files that are not media files.
var ErrUnsupported = errors.New("unsupported file type")

// FileReader is the production Reader. It parses tags with dhowden/tag
// and falls back to TagLib for files dhowden/tag cannot handle.
type FileReader struct{}

func NewFileReader() *FileReader {
	return &FileReader{}
}

func (r *FileReader) Read(path string) (*Tag, error) {
	if !IsMediaFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}

	t, err := readMetadata(path)
	if err != nil {
		return nil, err
	}

	// Duration comes from the audio properties, not the tag block.
	// Absence is not an error.
	if props, err := taglib.ReadProperties(path); err == nil {
		t.Duration = int(props.Length.Seconds())
	}

	return t, nil
}

func readMetadata(path string) (*Tag, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		// dhowden/tag chokes on some UTF-16 ID3 tags, ffmpeg-created M4A
		// files and ID3-prefixed FLAC files. TagLib handles those.
		return readWithTaglib(path)
	}

	track, _ := m.Track()
	disc, _ := m.Disc()

	return &Tag{
		Path:        path,
		Title:       m.Title(),
		Artist:      m.Artist(),
		AlbumArtist: m.AlbumArtist(),
		Album:       m.Album(),
		TrackNumber: track,
		DiscNumber:  disc,
		Year:        m.Year(),
	}, nil
}

func readWithTaglib(path string) (*Tag, error) {
	rawTags, err := taglib.ReadTags(path)
	if err != nil {
		return nil, err
	}
	tags := taglibTags(rawTags)

	return &Tag{
		Path:        path,
		Title:       tags.get(taglib.Title),
		Artist:      tags.get(taglib.Artist),
		AlbumArtist: tags.get(taglib.AlbumArtist),
		Album:       tags.get(taglib.Album),
		TrackNumber: tags.getNumber(taglib.TrackNumber),
		DiscNumber:  tags.getNumber(taglib.DiscNumber),
		Year:        tags.getYear(taglib.Date, taglib.OriginalDate, "YEAR"),
	}, nil
}
