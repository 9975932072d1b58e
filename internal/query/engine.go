// Package query answers proximity questions against the category store.
package query

import (
	"sort"

	"github.com/mile-high-maps/nearby-cli/internal/geomath"
	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/store"
)

// Engine computes ranked nearby results. It only reads the store, so calls
// are safe to make concurrently and repeatedly without coordination.
type Engine struct {
	view      store.View
	resultCap int
}

// NewEngine builds an engine over a read-only store view. resultCap bounds
// each category's result list.
func NewEngine(view store.View, resultCap int) *Engine {
	return &Engine{view: view, resultCap: resultCap}
}

// QueryNearby ranks every category's items by distance from the query point,
// keeping items within the category radius, capped per category. The total
// sums the post-truncation counts, matching what is displayed.
func (e *Engine) QueryNearby(lat, lng float64) model.NearbyReport {
	report := model.NearbyReport{
		Lat:        lat,
		Lng:        lng,
		Categories: make(map[model.CategoryKey]model.CategoryResult),
	}

	for _, cat := range e.view.All() {
		result := e.queryCategory(cat, lat, lng)
		report.Categories[cat.Key] = result
		report.TotalMatches += result.MatchCount
	}
	return report
}

func (e *Engine) queryCategory(cat model.Category, lat, lng float64) model.CategoryResult {
	ranked := make([]model.RankedItem, 0, len(cat.Items))
	for _, it := range cat.Items {
		d := geomath.DistanceMiles(lat, lng, it.Lat, it.Lng)
		if d <= cat.RadiusMiles {
			ranked = append(ranked, model.RankedItem{Item: it, DistanceMiles: d})
		}
	}

	// Ties keep the items' load order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceMiles < ranked[j].DistanceMiles
	})

	if e.resultCap > 0 && len(ranked) > e.resultCap {
		ranked = ranked[:e.resultCap]
	}

	return model.CategoryResult{
		Key:         cat.Key,
		Label:       cat.Label,
		Color:       cat.Color,
		SourceLabel: cat.SourceLabel,
		RadiusMiles: cat.RadiusMiles,
		MatchCount:  len(ranked),
		Items:       ranked,
	}
}
