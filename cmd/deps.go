package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/mile-high-maps/nearby-cli/internal/config"
	"github.com/mile-high-maps/nearby-cli/internal/loader"
	"github.com/mile-high-maps/nearby-cli/internal/source"
	"github.com/mile-high-maps/nearby-cli/internal/store"
)

// buildRegistry loads category definitions and seeds the store.
func buildRegistry() (*store.Registry, *config.CategoryDefs, error) {
	defs, err := config.LoadCategoryDefs(cfg.Categories)
	if err != nil {
		return nil, nil, err
	}
	reg, err := store.NewRegistry(defs, cfg.Search)
	if err != nil {
		return nil, nil, err
	}
	return reg, defs, nil
}

// buildLoader wires the full load pipeline. The returned cleanup closes the
// snapshot store when one is configured.
func buildLoader(ctx context.Context, reg *store.Registry, defs *config.CategoryDefs) (*loader.Loader, func(), error) {
	snaps, err := openSnapshots(ctx)
	if err != nil {
		return nil, nil, err
	}

	client := source.NewClient(source.Options{
		UserAgent:    cfg.Gateway.UserAgent,
		Timeout:      time.Duration(cfg.Gateway.TimeoutSecs) * time.Second,
		MaxRetries:   cfg.Gateway.MaxRetries,
		RateLimiters: source.DefaultRateLimiters(),
	})

	l := loader.New(client, reg, defs, cfg.Search, cfg.Gateway.PageSize, snaps)
	cleanup := func() {
		if snaps != nil {
			_ = snaps.Close()
		}
	}
	return l, cleanup, nil
}

// openSnapshots opens the configured snapshot store, running migrations. An
// empty driver disables persistence.
func openSnapshots(ctx context.Context) (store.SnapshotStore, error) {
	var (
		s   store.SnapshotStore
		err error
	)
	switch cfg.Snapshot.Driver {
	case "":
		return nil, nil
	case "sqlite":
		s, err = store.NewSQLite(cfg.Snapshot.Path)
	case "postgres":
		s, err = store.NewPostgres(ctx, cfg.Snapshot.DatabaseURL)
	default:
		return nil, eris.Errorf("unknown snapshot driver %q", cfg.Snapshot.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}
