package main

import (
	"encoding/json"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/query"
)

var (
	queryLat      float64
	queryLng      float64
	querySkipLoad bool
	queryJSON     bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Find nearby items around a point",
	Long: `Run a load cycle, then rank every category's items by distance from
the given point, filtered to each category's radius and capped per category.
Use --no-load to query the static samples without hitting live sources.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		reg, defs, err := buildRegistry()
		if err != nil {
			return err
		}

		if !querySkipLoad {
			l, cleanup, err := buildLoader(ctx, reg, defs)
			if err != nil {
				return err
			}
			defer cleanup()
			l.LoadAll(ctx)
		}

		engine := query.NewEngine(reg, cfg.Search.ResultCap)
		report := engine.QueryNearby(queryLat, queryLng)

		if queryJSON {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return err
			}
			cmd.Println(string(out))
			return nil
		}

		printReport(cmd, report, cfg.Search.DefaultRadiusMiles)
		return nil
	},
}

func printReport(cmd *cobra.Command, report model.NearbyReport, radiusMiles float64) {
	cmd.Printf("Found %d places/projects within %g miles of (%.5f, %.5f).\n",
		report.TotalMatches, radiusMiles, report.Lat, report.Lng)
	for _, key := range model.CategoryKeys {
		result, ok := report.Categories[key]
		if !ok {
			continue
		}
		cmd.Printf("\n%s (%d within %.2f mi, source: %s)\n",
			result.Label, result.MatchCount, result.RadiusMiles, result.SourceLabel)
		for _, it := range result.Items {
			line := fmt.Sprintf("  %5.2f mi  %s", it.DistanceMiles, it.Name)
			if it.Details != "" {
				line += " - " + it.Details
			}
			cmd.Println(line)
		}
	}
}

func init() {
	queryCmd.Flags().Float64Var(&queryLat, "lat", 0, "query point latitude (degrees)")
	queryCmd.Flags().Float64Var(&queryLng, "lng", 0, "query point longitude (degrees)")
	queryCmd.Flags().BoolVar(&querySkipLoad, "no-load", false, "skip the load cycle and query current store contents")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "emit the full report as JSON")
	_ = queryCmd.MarkFlagRequired("lat")
	_ = queryCmd.MarkFlagRequired("lng")
	rootCmd.AddCommand(queryCmd)
}
