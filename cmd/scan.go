package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the mounts and rebuild the library index",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ix, st, cleanup, err := setup()
		if err != nil {
			return err
		}
		defer cleanup()

		start := time.Now()
		if err := ix.Update(); err != nil {
			return err
		}

		songs, err := st.SongCount()
		if err != nil {
			return err
		}
		dirs, err := st.DirectoryCount()
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %s songs in %s directories in %s\n",
			humanize.Comma(int64(songs)), humanize.Comma(int64(dirs)),
			time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
