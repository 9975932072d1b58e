package model

// RankedItem is an item annotated with its distance from the query point.
// DistanceMiles is computed fresh per query and never persisted.
type RankedItem struct {
	Item
	DistanceMiles float64 `json:"distance"`
}

// CategoryResult is one category's ranked, capped, radius-filtered result
// set for a single query point.
type CategoryResult struct {
	Key         CategoryKey  `json:"key"`
	Label       string       `json:"label"`
	Color       string       `json:"color"`
	SourceLabel string       `json:"source_label"`
	RadiusMiles float64      `json:"radius_miles"`
	MatchCount  int          `json:"match_count"`
	Items       []RankedItem `json:"items"`
}

// NearbyReport aggregates every category's results for one query point.
// TotalMatches sums the post-truncation per-category counts, matching what
// is actually displayed.
type NearbyReport struct {
	Lat          float64                        `json:"lat"`
	Lng          float64                        `json:"lng"`
	Categories   map[CategoryKey]CategoryResult `json:"categories"`
	TotalMatches int                            `json:"total_matches"`
}

// LoadOutcome describes how one category's load attempt settled.
type LoadOutcome string

const (
	OutcomeLive     LoadOutcome = "live"
	OutcomeFallback LoadOutcome = "fallback"
	// OutcomeStatic marks categories that only ever serve their samples.
	OutcomeStatic LoadOutcome = "static"
)

// CategoryLoadReport records the result of one category's load attempt for
// status reporting. Error is the flattened source error when the live fetch
// failed; it is informational only and never fatal.
type CategoryLoadReport struct {
	Key     CategoryKey `json:"key"`
	Outcome LoadOutcome `json:"outcome"`
	Count   int         `json:"count"`
	Error   string      `json:"error,omitempty"`
}
