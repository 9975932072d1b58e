// Package normalize converts raw provider payloads (GeoJSON features, ArcGIS
// attribute records, Overpass elements) into the common item model. Adapters
// are pure: malformed individual records are excluded, never surfaced as
// errors.
package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FirstString evaluates candidate keys in order against a provider attribute
// map and returns the first non-empty string value. Providers disagree on
// field names and casing, so callers pass a prioritized list rather than
// nesting conditionals per provider.
func FirstString(attrs map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := attrs[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			if t := strings.TrimSpace(s); t != "" {
				return t
			}
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		case int:
			return strconv.Itoa(s)
		case fmt.Stringer:
			if t := strings.TrimSpace(s.String()); t != "" {
				return t
			}
		}
	}
	return ""
}

// FirstNumber evaluates candidate keys in order and returns the first finite
// numeric value. String values that parse as numbers count.
func FirstNumber(attrs map[string]any, keys ...string) (float64, bool) {
	for _, k := range keys {
		v, ok := attrs[k]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			if finite(n) {
				return n, true
			}
		case int:
			return float64(n), true
		case int64:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil && finite(f) {
				return f, true
			}
		}
	}
	return 0, false
}

// firstRaw returns the first present, non-nil value among candidate keys.
func firstRaw(attrs map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := attrs[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// joinDetails joins non-empty detail fragments with the display separator.
func joinDetails(parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " · ")
}
