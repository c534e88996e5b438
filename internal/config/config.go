// Package config loads the indexer configuration from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultAlbumArtPattern matches the conventional folder image names.
const DefaultAlbumArtPattern = `Folder\.(jpg|png)`

// Mount exposes one real directory under a virtual name.
type Mount struct {
	Name string `koanf:"name"`
	Path string `koanf:"path"`
}

// DatabaseConfig holds the index database location.
type DatabaseConfig struct {
	Path string `koanf:"path"` // empty means the xdg data dir default
}

type Config struct {
	// Mounts to index, in declaration order.
	Mounts []Mount `koanf:"mounts"`

	// AlbumArtPattern is a regular expression matched against filenames
	// to locate a directory's artwork.
	AlbumArtPattern string `koanf:"album_art_pattern"`

	Database DatabaseConfig `koanf:"database"`
}

// Load reads configuration from path if given, otherwise from the
// default locations (~/.config/chorale/config.toml, then ./config.toml,
// last wins).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	paths := []string{path}
	if path == "" {
		paths = defaultConfigPaths()
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, err
			}
		} else if path != "" {
			return nil, fmt.Errorf("config file %s: %w", p, err)
		}
	}

	cfg := &Config{
		AlbumArtPattern: DefaultAlbumArtPattern,
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, m := range cfg.Mounts {
		cfg.Mounts[i].Path = expandPath(m.Path)
	}
	if cfg.Database.Path != "" {
		cfg.Database.Path = expandPath(cfg.Database.Path)
	}

	if _, err := regexp.Compile(cfg.AlbumArtPattern); err != nil {
		return nil, fmt.Errorf("invalid album_art_pattern: %w", err)
	}

	return cfg, nil
}

func defaultConfigPaths() []string {
	paths := []string{}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "chorale", "config.toml"))
	}

	// ./config.toml has the highest priority
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
