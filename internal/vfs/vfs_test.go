package vfs

import (
	"errors"
	"testing"
)

func newTestVFS(t *testing.T) *VFS {
	t.Helper()
	v, err := New([]Mount{
		{Name: "music", RealPath: "/srv/media/music"},
		{Name: "audiobooks", RealPath: "/srv/media/books"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return v
}

func TestRealToVirtual(t *testing.T) {
	v := newTestVFS(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "file under first mount",
			input: "/srv/media/music/Artist/Album/01.mp3",
			want:  "music/Artist/Album/01.mp3",
		},
		{
			name:  "file under second mount",
			input: "/srv/media/books/novel.m4a",
			want:  "audiobooks/novel.m4a",
		},
		{
			name:  "mount root itself",
			input: "/srv/media/music",
			want:  "music",
		},
		{
			name:    "outside all mounts",
			input:   "/srv/media/photos/pic.jpg",
			wantErr: true,
		},
		{
			name:    "parent of a mount",
			input:   "/srv/media",
			wantErr: true,
		},
		{
			name:    "sibling with shared name prefix",
			input:   "/srv/media/music2/track.mp3",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.RealToVirtual(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNotFound) {
					t.Fatalf("RealToVirtual(%q) error = %v, want ErrNotFound", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("RealToVirtual(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("RealToVirtual(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVirtualToReal(t *testing.T) {
	v := newTestVFS(t)

	got, err := v.VirtualToReal("music/Artist/Album")
	if err != nil {
		t.Fatalf("VirtualToReal() error = %v", err)
	}
	if want := "/srv/media/music/Artist/Album"; got != want {
		t.Errorf("VirtualToReal() = %q, want %q", got, want)
	}

	if _, err := v.VirtualToReal("video/movie.mkv"); !errors.Is(err, ErrNotFound) {
		t.Errorf("VirtualToReal() error = %v, want ErrNotFound", err)
	}
}

func TestMountsOrderStable(t *testing.T) {
	v := newTestVFS(t)

	mounts := v.Mounts()
	if len(mounts) != 2 {
		t.Fatalf("Mounts() length = %d, want 2", len(mounts))
	}
	if mounts[0].Name != "music" || mounts[1].Name != "audiobooks" {
		t.Errorf("Mounts() order = [%s %s], want [music audiobooks]", mounts[0].Name, mounts[1].Name)
	}

	// Mutating the returned slice must not affect the VFS.
	mounts[0].Name = "changed"
	if v.Mounts()[0].Name != "music" {
		t.Error("Mounts() returned internal slice")
	}
}

func TestNewValidation(t *testing.T) {
	if _, err := New([]Mount{{Name: "", RealPath: "/x"}}); err == nil {
		t.Error("New() with empty name expected error, got nil")
	}
	if _, err := New([]Mount{{Name: "x", RealPath: ""}}); err == nil {
		t.Error("New() with empty path expected error, got nil")
	}
}
