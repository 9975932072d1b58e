package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// ArcGISPoint is the x/y pair ArcGIS uses for point geometry. X is
// longitude, Y is latitude.
type ArcGISPoint struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

// ArcGISFeature is one attribute record from a feature service query.
// Geometry may be absent; some layers expose a centroid instead.
type ArcGISFeature struct {
	Attributes map[string]any `json:"attributes"`
	Geometry   *ArcGISPoint   `json:"geometry"`
	Centroid   *ArcGISPoint   `json:"centroid"`
}

// ArcGISError is the in-band error envelope feature services return with a
// 200 status.
type ArcGISError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ArcGISResponse is a feature service query response page.
// ExceededTransferLimit signals that more records remain past this page.
type ArcGISResponse struct {
	Features              []ArcGISFeature `json:"features"`
	ExceededTransferLimit bool            `json:"exceededTransferLimit"`
	Error                 *ArcGISError    `json:"error"`
}

// ParseArcGIS decodes a raw feature service response, surfacing the in-band
// error envelope as a Go error.
func ParseArcGIS(data []byte) (*ArcGISResponse, error) {
	var resp ArcGISResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, eris.Wrap(err, "normalize: parse arcgis response")
	}
	if resp.Error != nil {
		return nil, eris.Errorf("normalize: arcgis error %d: %s", resp.Error.Code, resp.Error.Message)
	}
	return &resp, nil
}

// ArcGISAdapter converts feature service attribute records into items.
// Attribute field names are case-specific and vary per layer, so every
// lookup goes through a prioritized candidate list.
type ArcGISAdapter struct {
	DefaultName string
	NameKeys    []string
	StatusKeys  []string
	DateKeys    []string
	// RNONumberKeys, when set, produce an "RNO #n" details prefix in place
	// of the status label.
	RNONumberKeys []string
	WebsiteKeys   []string
}

// Normalize converts features into items, preferring geometry x/y and
// falling back to the centroid when geometry is absent. Records without
// usable coordinates are dropped.
func (a ArcGISAdapter) Normalize(features []ArcGISFeature) []model.Item {
	items := make([]model.Item, 0, len(features))
	for _, f := range features {
		lng, lat, ok := arcgisCoords(f)
		if !ok {
			continue
		}

		name := FirstString(f.Attributes, a.NameKeys...)
		if name == "" {
			name = a.DefaultName
		}

		lead := FirstString(f.Attributes, a.StatusKeys...)
		if n, ok := FirstNumber(f.Attributes, a.RNONumberKeys...); ok {
			lead = fmt.Sprintf("RNO #%d", int64(n))
		}

		updated := FormatDate(firstRaw(f.Attributes, a.DateKeys...))
		if updated != "" {
			updated = "Updated " + updated
		}

		website := FirstString(f.Attributes, a.WebsiteKeys...)

		item := model.Item{
			Name:    name,
			Details: joinDetails(lead, updated, website),
			Lat:     lat,
			Lng:     lng,
		}
		if !item.Valid() {
			continue
		}
		items = append(items, item)
	}
	return items
}

func arcgisCoords(f ArcGISFeature) (lng, lat float64, ok bool) {
	for _, p := range []*ArcGISPoint{f.Geometry, f.Centroid} {
		if p == nil || p.X == nil || p.Y == nil {
			continue
		}
		if !finite(*p.X) || !finite(*p.Y) {
			continue
		}
		return *p.X, *p.Y, true
	}
	return 0, 0, false
}
