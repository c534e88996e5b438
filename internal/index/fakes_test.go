package index

import (
	"errors"
	"sync"

	"chorale/internal/store"
	"chorale/internal/tags"
)

// fakeReader serves canned tags by path; unknown paths fail like an
// unreadable file would.
type fakeReader struct {
	tags map[string]*tags.Tag
}

func (r *fakeReader) Read(path string) (*tags.Tag, error) {
	t, ok := r.tags[path]
	if !ok {
		return nil, errors.New("unreadable file")
	}
	cp := *t
	cp.Path = path
	return &cp, nil
}

// fakeStore keeps records in maps keyed by path, mirroring the upsert
// semantics of the sqlite store, and records call activity.
type fakeStore struct {
	mu sync.Mutex

	songs map[string]store.Song
	dirs  map[string]store.Directory

	dirOrder    []string
	songInserts int
	dirInserts  int
	songBatches int
	dirBatches  int

	deletedSongs [][]string
	deletedDirs  [][]string

	failSongInsert bool
	failDirInsert  bool
	failListSongs  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		songs: make(map[string]store.Song),
		dirs:  make(map[string]store.Directory),
	}
}

func (f *fakeStore) InsertSongs(songs []store.Song) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSongInsert {
		return errors.New("song insert failed")
	}
	f.songBatches++
	for _, s := range songs {
		f.songInserts++
		f.songs[s.Path] = s
	}
	return nil
}

func (f *fakeStore) InsertDirectories(dirs []store.Directory) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDirInsert {
		return errors.New("directory insert failed")
	}
	f.dirBatches++
	for _, d := range dirs {
		f.dirInserts++
		if _, seen := f.dirs[d.Path]; !seen {
			f.dirOrder = append(f.dirOrder, d.Path)
		}
		f.dirs[d.Path] = d
	}
	return nil
}

func (f *fakeStore) SongPaths() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failListSongs {
		return nil, errors.New("list songs failed")
	}
	var paths []string
	for p := range f.songs {
		paths = append(paths, p)
	}
	return paths, nil
}

func (f *fakeStore) DirectoryPaths() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var paths []string
	for p := range f.dirs {
		paths = append(paths, p)
	}
	return paths, nil
}

func (f *fakeStore) DeleteSongs(paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedSongs = append(f.deletedSongs, paths)
	for _, p := range paths {
		delete(f.songs, p)
	}
	return nil
}

func (f *fakeStore) DeleteDirectories(paths []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedDirs = append(f.deletedDirs, paths)
	for _, p := range paths {
		delete(f.dirs, p)
	}
	return nil
}
