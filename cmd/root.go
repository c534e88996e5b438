package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"chorale/internal/config"
	"chorale/internal/db"
	"chorale/internal/index"
	"chorale/internal/store"
	"chorale/internal/tags"
	"chorale/internal/vfs"
)

var (
	flagConfig  string
	flagDB      string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "chorale",
	Short: "Media library indexer",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if flagVerbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/chorale/config.toml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "index database path (default in the xdg data dir)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

// setup wires the indexer from the configuration and flags. The caller
// owns the returned store handle and must Close it.
func setup() (*index.Indexer, *store.Store, func(), error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}
	if len(cfg.Mounts) == 0 {
		return nil, nil, nil, fmt.Errorf("no mounts configured, add a [[mounts]] entry to the config file")
	}

	mounts := make([]vfs.Mount, len(cfg.Mounts))
	for i, m := range cfg.Mounts {
		mounts[i] = vfs.Mount{Name: m.Name, RealPath: m.Path}
	}
	v, err := vfs.New(mounts)
	if err != nil {
		return nil, nil, nil, err
	}

	dbPath := flagDB
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	if dbPath == "" {
		dbPath, err = db.DefaultPath()
		if err != nil {
			return nil, nil, nil, err
		}
	}

	sqlDB, err := db.Open(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.New(sqlDB)
	ix := index.New(st, v, tags.NewFileReader(), cfg.AlbumArtPattern)
	return ix, st, func() { sqlDB.Close() }, nil
}
