package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Scan once, then re-scan whenever the mounts change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, _, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := ix.Update(); err != nil {
			slog.Error("initial index update failed", "err", err)
		}

		return ix.Watch(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
