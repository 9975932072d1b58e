package normalize

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// GeoJSONAdapter converts GeoJSON point features into items. Candidate
// property keys are evaluated in order; the first non-empty value wins.
type GeoJSONAdapter struct {
	// DefaultName is used when no name property is present.
	DefaultName string
	NameKeys    []string
	StatusKeys  []string
	DateKeys    []string
}

// ParseFeatureCollection decodes a raw GeoJSON FeatureCollection payload.
func ParseFeatureCollection(data []byte) (*geojson.FeatureCollection, error) {
	var fc geojson.FeatureCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, eris.Wrap(err, "normalize: parse feature collection")
	}
	return &fc, nil
}

// Normalize converts every well-formed point feature into an item. Features
// with missing geometry or non-finite coordinates are dropped.
func (a GeoJSONAdapter) Normalize(fc *geojson.FeatureCollection) []model.Item {
	if fc == nil {
		return nil
	}
	items := make([]model.Item, 0, len(fc.Features))
	for _, f := range fc.Features {
		if f == nil {
			continue
		}
		lng, lat, ok := pointCoords(f.Geometry)
		if !ok {
			continue
		}

		name := FirstString(f.Properties, a.NameKeys...)
		if name == "" {
			name = a.DefaultName
		}

		status := FirstString(f.Properties, a.StatusKeys...)
		updated := FormatDate(firstRaw(f.Properties, a.DateKeys...))
		if updated != "" {
			updated = "Updated " + updated
		}

		item := model.Item{
			Name:    name,
			Details: joinDetails(status, updated),
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

// pointCoords extracts lng/lat from a GeoJSON geometry. GeoJSON coordinate
// order is [lng, lat].
func pointCoords(g geom.T) (lng, lat float64, ok bool) {
	p, isPoint := g.(*geom.Point)
	if !isPoint || p == nil {
		return 0, 0, false
	}
	coords := p.FlatCoords()
	if len(coords) < 2 {
		return 0, 0, false
	}
	if !finite(coords[0]) || !finite(coords[1]) {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}
