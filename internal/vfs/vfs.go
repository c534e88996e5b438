// Package vfs maps real filesystem paths to the virtual paths exposed
// to media server clients. Each mount point publishes one real directory
// tree under a virtual name.
package vfs

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when a path does not resolve through any mount.
var ErrNotFound = errors.New("path not found in virtual filesystem")

// Mount exposes the real directory RealPath under the virtual name Name.
type Mount struct {
	Name     string
	RealPath string
}

// VFS holds an ordered list of mount points. Order is stable: mounts are
// enumerated in the order they were declared.
type VFS struct {
	mounts []Mount
}

func New(mounts []Mount) (*VFS, error) {
	for _, m := range mounts {
		if m.Name == "" || m.RealPath == "" {
			return nil, fmt.Errorf("mount %q: name and path are required", m.Name)
		}
	}
	return &VFS{mounts: mounts}, nil
}

// Mounts returns the mount points in declaration order.
func (v *VFS) Mounts() []Mount {
	out := make([]Mount, len(v.mounts))
	copy(out, v.mounts)
	return out
}

// RealToVirtual translates a real path into its virtual counterpart.
// Returns ErrNotFound when the path is not under any mount.
func (v *VFS) RealToVirtual(realPath string) (string, error) {
	for _, m := range v.mounts {
		rel, ok := pathRelative(m.RealPath, realPath)
		if !ok {
			continue
		}
		if rel == "." {
			return m.Name, nil
		}
		return filepath.Join(m.Name, rel), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, realPath)
}

// VirtualToReal translates a virtual path back into a real one.
// Returns ErrNotFound when the path is not under any mount name.
func (v *VFS) VirtualToReal(virtualPath string) (string, error) {
	for _, m := range v.mounts {
		rel, ok := pathRelative(m.Name, virtualPath)
		if !ok {
			continue
		}
		if rel == "." {
			return m.RealPath, nil
		}
		return filepath.Join(m.RealPath, rel), nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, virtualPath)
}

// pathRelative returns path relative to base when path is base or lives
// under it.
func pathRelative(base, path string) (string, bool) {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
