package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/query"
	"github.com/mile-high-maps/nearby-cli/internal/server"
)

var serveSkipLoad bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the nearby-search API over HTTP",
	Long: `Run a load cycle, then serve proximity queries, category metadata,
and load status over HTTP until interrupted.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log := zap.L().With(zap.String("command", "serve"))

		reg, defs, err := buildRegistry()
		if err != nil {
			return err
		}

		l, cleanup, err := buildLoader(ctx, reg, defs)
		if err != nil {
			return err
		}
		defer cleanup()

		var reports []model.CategoryLoadReport
		if !serveSkipLoad {
			reports = l.LoadAll(ctx)
			log.Info("initial load complete")
		}

		engine := query.NewEngine(reg, cfg.Search.ResultCap)
		srv := server.New(reg, engine, reports)
		return srv.Run(cfg.Server.Port)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveSkipLoad, "no-load", false, "serve static samples without an initial load cycle")
	rootCmd.AddCommand(serveCmd)
}
