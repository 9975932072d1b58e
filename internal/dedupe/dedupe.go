// Package dedupe collapses duplicate records merged from multiple endpoints
// and result pages.
package dedupe

import (
	"math"
	"strconv"
	"strings"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// CoordKeyPrecision is the number of decimal places coordinates are rounded
// to when building identity keys. Six places is roughly 10cm of longitude,
// tight enough to separate adjacent storefronts while absorbing provider
// jitter.
const CoordKeyPrecision = 6

// KeyFunc derives an identity key for an item. The second return reports
// whether a key could be computed; items without a computable key are
// treated as unique and always pass through.
type KeyFunc func(model.Item) (string, bool)

// Dedupe drops items whose key was already seen, preserving first-seen
// order. The output is a stable subsequence of the input; the input slice is
// not modified.
func Dedupe(items []model.Item, key KeyFunc) []model.Item {
	if len(items) <= 1 {
		return append([]model.Item(nil), items...)
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		k, ok := key(it)
		if ok {
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
		}
		out = append(out, it)
	}
	return out
}

// NameCoordKey builds the standard identity key: trimmed name plus
// coordinates rounded to CoordKeyPrecision. Items without a name have no
// computable key.
func NameCoordKey(it model.Item) (string, bool) {
	name := strings.TrimSpace(it.Name)
	if name == "" {
		return "", false
	}
	lat := strconv.FormatFloat(roundTo(it.Lat, CoordKeyPrecision), 'f', CoordKeyPrecision, 64)
	lng := strconv.FormatFloat(roundTo(it.Lng, CoordKeyPrecision), 'f', CoordKeyPrecision, 64)
	return name + "|" + lat + "|" + lng, true
}

func roundTo(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
