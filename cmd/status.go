package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest persisted snapshot per category",
	Long: `Read the snapshot store and print, per category, when its last
live load happened and how many items it captured. Requires a snapshot
driver to be configured.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		snaps, err := openSnapshots(ctx)
		if err != nil {
			return err
		}
		if snaps == nil {
			cmd.Println("no snapshot driver configured")
			return nil
		}
		defer snaps.Close() //nolint:errcheck

		for _, key := range model.CategoryKeys {
			snap, err := snaps.LatestSnapshot(ctx, key)
			if err != nil {
				return err
			}
			if snap == nil {
				cmd.Printf("%-24s never loaded live\n", key)
				continue
			}
			cmd.Printf("%-24s %4d items at %s (run %s)\n",
				key, len(snap.Items), snap.TakenAt.Format("2006-01-02 15:04:05 MST"), snap.RunID)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
