package model

import "math"

// Item is a single geocoded record: a point of interest, a project, or a
// transit stop. Coordinates are WGS84 degrees.
type Item struct {
	Name    string  `json:"name"`
	Details string  `json:"details,omitempty"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// Valid reports whether the item carries finite coordinates. Items failing
// this check are dropped at normalization time and must never reach the
// query engine.
func (i Item) Valid() bool {
	return !math.IsNaN(i.Lat) && !math.IsInf(i.Lat, 0) &&
		!math.IsNaN(i.Lng) && !math.IsInf(i.Lng, 0)
}

// CategoryKey identifies a category slot in the registry.
type CategoryKey string

const (
	CategorySitePlans    CategoryKey = "site_development_plans"
	CategoryConstruction CategoryKey = "construction"
	CategoryRNOs         CategoryKey = "rnos"
	CategoryGrocery      CategoryKey = "grocery_stores"
	CategoryTransit      CategoryKey = "transit_stops"
	CategoryLibraries    CategoryKey = "libraries"
	CategoryRestaurants  CategoryKey = "restaurants"
)

// CategoryKeys lists every registry slot in display order.
var CategoryKeys = []CategoryKey{
	CategorySitePlans,
	CategoryConstruction,
	CategoryRNOs,
	CategoryGrocery,
	CategoryTransit,
	CategoryLibraries,
	CategoryRestaurants,
}

// Category is a named grouping of items sharing a color, a provenance label,
// and a search radius. Items holds the current (live or fallback) item set;
// FallbackItems is the fixed sample set substituted when a load yields
// nothing usable.
type Category struct {
	Key           CategoryKey `json:"key"`
	Label         string      `json:"label"`
	Color         string      `json:"color"`
	SourceLabel   string      `json:"source_label"`
	RadiusMiles   float64     `json:"radius_miles"`
	Items         []Item      `json:"items"`
	FallbackItems []Item      `json:"-"`
}
