package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Run a full load cycle across every category",
	Long: `Fetch live data for every category from its configured sources,
normalize and dedupe it, and report per-category outcomes. Categories whose
sources fail or return nothing usable fall back to static samples; no failure
is fatal. With a snapshot driver configured, live results are persisted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "load"))

		reg, defs, err := buildRegistry()
		if err != nil {
			return err
		}
		l, cleanup, err := buildLoader(ctx, reg, defs)
		if err != nil {
			return err
		}
		defer cleanup()

		reports := l.LoadAll(ctx)

		degraded := 0
		for _, r := range reports {
			line := fmt.Sprintf("%-24s %-8s %4d items", r.Key, r.Outcome, r.Count)
			if r.Error != "" {
				line += "  (" + r.Error + ")"
			}
			cmd.Println(line)
			if r.Outcome == model.OutcomeFallback {
				degraded++
			}
		}

		if degraded > 0 {
			cmd.Printf("degraded: %d of %d categories using fallback data\n", degraded, len(reports))
		}
		log.Info("load cycle complete", zap.Int("degraded", degraded))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loadCmd)
}
