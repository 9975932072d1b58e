// Package loader runs category load cycles: fetch live data through the
// source gateway, normalize it, dedupe it, and install it in the registry,
// substituting fallback samples whenever a source yields nothing usable.
package loader

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mile-high-maps/nearby-cli/internal/config"
	"github.com/mile-high-maps/nearby-cli/internal/dedupe"
	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/normalize"
	"github.com/mile-high-maps/nearby-cli/internal/source"
	"github.com/mile-high-maps/nearby-cli/internal/store"
)

// LoadResult carries one category's live fetch outcome. Err and an empty
// Items slice both trigger fallback substitution; the distinction only
// matters for reporting.
type LoadResult struct {
	Items []model.Item
	Err   error
}

// Loader owns the load pipeline for every category. Each category's load is
// independent: it writes only its own registry slot, and no failure is ever
// fatal to the run.
type Loader struct {
	fetcher   source.Fetcher
	registry  *store.Registry
	defs      *config.CategoryDefs
	search    config.SearchConfig
	pageSize  int
	snapshots store.SnapshotStore
	logger    *zap.Logger
}

// New builds a loader. snapshots may be nil to disable persistence.
func New(fetcher source.Fetcher, registry *store.Registry, defs *config.CategoryDefs, search config.SearchConfig, pageSize int, snapshots store.SnapshotStore) *Loader {
	return &Loader{
		fetcher:   fetcher,
		registry:  registry,
		defs:      defs,
		search:    search,
		pageSize:  pageSize,
		snapshots: snapshots,
		logger:    zap.L().With(zap.String("component", "loader")),
	}
}

// LoadAll loads every category concurrently and waits for all of them to
// settle. Individual failures are absorbed into fallback substitution, so the
// group itself never errors. Reports come back in display order.
func (l *Loader) LoadAll(ctx context.Context) []model.CategoryLoadReport {
	runID := uuid.New().String()
	reports := make([]model.CategoryLoadReport, len(model.CategoryKeys))

	g, ctx := errgroup.WithContext(ctx)
	for i, key := range model.CategoryKeys {
		g.Go(func() error {
			reports[i] = l.LoadCategory(ctx, runID, key)
			return nil
		})
	}
	// Loads absorb their own errors; Wait only joins.
	_ = g.Wait()

	return reports
}

// LoadCategory runs one category's full load: live fetch, fallback
// resolution, registry swap, and optional snapshot. It never returns an
// error; the report records how the load settled.
func (l *Loader) LoadCategory(ctx context.Context, runID string, key model.CategoryKey) model.CategoryLoadReport {
	def, ok := l.defs.Categories[key]
	if !ok {
		// NewRegistry validates coverage, so this is a programming error.
		return model.CategoryLoadReport{
			Key:     key,
			Outcome: model.OutcomeFallback,
			Error:   "no source definition",
		}
	}

	if def.Kind == config.SourceStatic {
		items := l.registry.Fallback(key)
		return model.CategoryLoadReport{Key: key, Outcome: model.OutcomeStatic, Count: len(items)}
	}

	res := l.fetchLive(ctx, key, def)
	items, report := l.resolve(key, res)

	if err := l.registry.SetItems(key, items); err != nil {
		l.logger.Error("install items", zap.String("category", string(key)), zap.Error(err))
	}

	if l.snapshots != nil && report.Outcome == model.OutcomeLive {
		if err := l.snapshots.SaveSnapshot(ctx, runID, key, items); err != nil {
			// Snapshots are observability only; never fail a load over them.
			l.logger.Warn("save snapshot", zap.String("category", string(key)), zap.Error(err))
		}
	}

	l.logger.Info("category loaded",
		zap.String("category", string(key)),
		zap.String("outcome", string(report.Outcome)),
		zap.Int("count", report.Count),
	)
	return report
}

// resolve applies the substitution rule: a live error and an empty live set
// are the same condition, and both install a copy of the fallback samples.
func (l *Loader) resolve(key model.CategoryKey, res LoadResult) ([]model.Item, model.CategoryLoadReport) {
	if res.Err != nil || len(res.Items) == 0 {
		fallback := l.registry.Fallback(key)
		report := model.CategoryLoadReport{
			Key:     key,
			Outcome: model.OutcomeFallback,
			Count:   len(fallback),
		}
		if res.Err != nil {
			report.Error = eris.ToString(res.Err, false)
			l.logger.Warn("live load failed, using fallback",
				zap.String("category", string(key)),
				zap.Error(res.Err),
			)
		}
		return fallback, report
	}

	return res.Items, model.CategoryLoadReport{
		Key:     key,
		Outcome: model.OutcomeLive,
		Count:   len(res.Items),
	}
}

func (l *Loader) fetchLive(ctx context.Context, key model.CategoryKey, def config.CategoryDef) LoadResult {
	switch def.Kind {
	case config.SourceGeoJSON:
		return l.fetchGeoJSON(ctx, key, def)
	case config.SourceArcGIS:
		return l.fetchArcGIS(ctx, key, def)
	case config.SourceOverpassTransit:
		return l.fetchOverpass(ctx, key, def, source.TransitStopsQuery(l.search.CenterLat, l.search.CenterLng, l.search.LoadRadiusMeters))
	case config.SourceOverpassPlaces:
		return l.fetchOverpass(ctx, key, def, source.GroceryQuery(l.search.CenterLat, l.search.CenterLng, l.search.LoadRadiusMeters))
	default:
		return LoadResult{Err: eris.Errorf("loader: unknown source kind %q", def.Kind)}
	}
}

func (l *Loader) fetchGeoJSON(ctx context.Context, key model.CategoryKey, def config.CategoryDef) LoadResult {
	fc, err := source.FetchFirstAvailable(ctx, l.fetcher, def.Endpoints, normalize.ParseFeatureCollection)
	if err != nil {
		return LoadResult{Err: err}
	}
	return LoadResult{Items: geojsonAdapters[key].Normalize(fc)}
}

// fetchArcGIS pages each candidate feature service in priority order and
// keeps the first one that paginates to completion. A mid-pagination failure
// discards that candidate's partial pages entirely.
func (l *Loader) fetchArcGIS(ctx context.Context, key model.CategoryKey, def config.CategoryDef) LoadResult {
	query := source.ArcGISQuery("*")

	var lastErr error
	for _, endpoint := range def.Endpoints {
		features, err := source.FetchAllPages(ctx, l.fetcher, endpoint, query, l.pageSize)
		if err != nil {
			lastErr = err
			l.logger.Warn("feature service candidate failed",
				zap.String("category", string(key)),
				zap.String("endpoint", endpoint),
				zap.Error(err),
			)
			continue
		}
		return LoadResult{Items: arcgisAdapters[key].Normalize(features)}
	}
	return LoadResult{Err: eris.Wrapf(lastErr, "loader: all %d feature service endpoints failed", len(def.Endpoints))}
}

// fetchOverpass runs one QL query against mirror interpreters in priority
// order. Grocery-style queries merge nodes, ways, and relations, so the
// result is deduped on name plus rounded coordinates.
func (l *Loader) fetchOverpass(ctx context.Context, key model.CategoryKey, def config.CategoryDef, query string) LoadResult {
	urls := make([]string, 0, len(def.Endpoints))
	for _, base := range def.Endpoints {
		urls = append(urls, source.OverpassURL(base, query))
	}

	resp, err := source.FetchFirstAvailable(ctx, l.fetcher, urls, normalize.ParseOverpass)
	if err != nil {
		return LoadResult{Err: err}
	}

	if def.Kind == config.SourceOverpassTransit {
		adapter := normalize.TransitAdapter{DefaultName: overpassDefaultNames[key]}
		return LoadResult{Items: adapter.Normalize(resp)}
	}

	adapter := normalize.PlaceAdapter{DefaultName: overpassDefaultNames[key]}
	return LoadResult{Items: dedupe.Dedupe(adapter.Normalize(resp), dedupe.NameCoordKey)}
}
