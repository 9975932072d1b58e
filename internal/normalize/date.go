package normalize

import (
	"strings"
	"time"
)

// displayDateFormat renders dates the way the results panel shows them.
const displayDateFormat = "Jan 2, 2006"

// dateLayouts are tried in order when a provider supplies a date as text.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"1/2/2006",
	"01/02/2006",
}

// FormatDate renders a provider-supplied date value for display. It accepts
// an epoch-millisecond number (ArcGIS) or a parseable date string (GeoJSON
// properties). Unparseable or absent input yields the empty string, not an
// error.
func FormatDate(v any) string {
	switch d := v.(type) {
	case nil:
		return ""
	case float64:
		return formatEpochMillis(int64(d))
	case int64:
		return formatEpochMillis(d)
	case int:
		return formatEpochMillis(int64(d))
	case string:
		s := strings.TrimSpace(d)
		if s == "" {
			return ""
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(displayDateFormat)
			}
		}
		return ""
	default:
		return ""
	}
}

func formatEpochMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(displayDateFormat)
}
