package normalize

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// maxRouteRefs caps the line list shown for a transit stop.
const maxRouteRefs = 12

// OverpassCenter is the computed center Overpass emits for ways and
// relations queried with "out center".
type OverpassCenter struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

// OverpassMember is one member entry of a relation element.
type OverpassMember struct {
	Type string `json:"type"`
	Ref  int64  `json:"ref"`
	Role string `json:"role"`
}

// OverpassElement is a node, way, or relation from an Overpass response.
// Lat/Lon are pointers so absent coordinates are distinguishable from 0,0.
type OverpassElement struct {
	Type    string            `json:"type"`
	ID      int64             `json:"id"`
	Lat     *float64          `json:"lat"`
	Lon     *float64          `json:"lon"`
	Center  *OverpassCenter   `json:"center"`
	Tags    map[string]string `json:"tags"`
	Members []OverpassMember  `json:"members"`
}

// OverpassResponse is the top-level Overpass JSON envelope.
type OverpassResponse struct {
	Elements []OverpassElement `json:"elements"`
}

// ParseOverpass decodes a raw Overpass interpreter response.
func ParseOverpass(data []byte) (*OverpassResponse, error) {
	var resp OverpassResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, eris.Wrap(err, "normalize: parse overpass response")
	}
	return &resp, nil
}

// TransitAdapter converts Overpass stop nodes into items, classifying each
// stop and assembling its served line list from direct tags plus sibling
// route relations.
type TransitAdapter struct {
	DefaultName string
}

// Normalize walks the response twice: first to index route relations by the
// stop nodes they reference, then to convert each stop node. Nodes without
// finite coordinates are dropped.
func (a TransitAdapter) Normalize(resp *OverpassResponse) []model.Item {
	if resp == nil {
		return nil
	}

	routesByNode := indexRouteRelations(resp.Elements)

	items := make([]model.Item, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		if el.Type != "node" {
			continue
		}
		lng, lat, ok := elementCoords(el)
		if !ok {
			continue
		}

		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			name = a.DefaultName
		}

		refs := mergeRouteRefs(splitRouteRefs(el.Tags["route_ref"]), routesByNode[el.ID])
		lines := "unavailable"
		if len(refs) > 0 {
			lines = strings.Join(refs, ", ")
		}

		item := model.Item{
			Name:    name,
			Details: classifyStop(el.Tags) + " · Lines: " + lines,
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

// classifyStop picks the stop type with fixed precedence: light-rail
// station, then rail station, then bus stop, then generic platform.
func classifyStop(tags map[string]string) string {
	switch {
	case tags["railway"] == "station" && tags["station"] == "light_rail":
		return "Light rail station"
	case tags["railway"] == "station":
		return "Rail station"
	case tags["highway"] == "bus_stop":
		return "Bus stop"
	default:
		return "Platform"
	}
}

// indexRouteRelations maps stop node IDs to the route refs of relations
// referencing them.
func indexRouteRelations(elements []OverpassElement) map[int64][]string {
	byNode := make(map[int64][]string)
	for _, el := range elements {
		if el.Type != "relation" || el.Tags["type"] != "route" {
			continue
		}
		ref := strings.TrimSpace(el.Tags["ref"])
		if ref == "" {
			continue
		}
		for _, m := range el.Members {
			if m.Type == "node" {
				byNode[m.Ref] = append(byNode[m.Ref], ref)
			}
		}
	}
	return byNode
}

// routeRefSeparators are the delimiters providers use inside a single
// route_ref tag value.
var routeRefSeparators = func(r rune) bool {
	return r == ';' || r == ',' || r == '/' || r == '|'
}

// splitRouteRefs splits a tag-declared route list into trimmed entries.
func splitRouteRefs(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	fields := strings.FieldsFunc(raw, routeRefSeparators)
	refs := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			refs = append(refs, t)
		}
	}
	return refs
}

// mergeRouteRefs merges direct and relation-derived refs preserving first-
// seen order, deduplicated and capped at maxRouteRefs.
func mergeRouteRefs(direct, fromRelations []string) []string {
	seen := make(map[string]struct{}, len(direct)+len(fromRelations))
	merged := make([]string, 0, len(direct)+len(fromRelations))
	for _, ref := range append(append([]string{}, direct...), fromRelations...) {
		if _, ok := seen[ref]; ok {
			continue
		}
		seen[ref] = struct{}{}
		merged = append(merged, ref)
		if len(merged) == maxRouteRefs {
			break
		}
	}
	return merged
}

// PlaceAdapter converts Overpass ways and relations queried with
// "out center" (grocery-style queries) into items. Nodes are handled too
// since mixed results are common.
type PlaceAdapter struct {
	DefaultName string
}

// Normalize converts every element with usable coordinates. Name falls back
// to brand, then the generic category noun.
func (a PlaceAdapter) Normalize(resp *OverpassResponse) []model.Item {
	if resp == nil {
		return nil
	}
	items := make([]model.Item, 0, len(resp.Elements))
	for _, el := range resp.Elements {
		lng, lat, ok := elementCoords(el)
		if !ok {
			continue
		}

		name := strings.TrimSpace(el.Tags["name"])
		if name == "" {
			name = strings.TrimSpace(el.Tags["brand"])
		}
		if name == "" {
			name = a.DefaultName
		}

		item := model.Item{
			Name:    name,
			Details: placeAddress(el.Tags),
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

// placeAddress composes a short street address from OSM addr tags.
func placeAddress(tags map[string]string) string {
	num := strings.TrimSpace(tags["addr:housenumber"])
	street := strings.TrimSpace(tags["addr:street"])
	switch {
	case num != "" && street != "":
		return num + " " + street
	case street != "":
		return street
	default:
		return ""
	}
}

// elementCoords returns lng/lat for a node or, for ways and relations, the
// computed center.
func elementCoords(el OverpassElement) (lng, lat float64, ok bool) {
	if el.Lat != nil && el.Lon != nil && finite(*el.Lat) && finite(*el.Lon) {
		return *el.Lon, *el.Lat, true
	}
	if c := el.Center; c != nil && c.Lat != nil && c.Lon != nil && finite(*c.Lat) && finite(*c.Lon) {
		return *c.Lon, *c.Lat, true
	}
	return 0, 0, false
}
