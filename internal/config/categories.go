package config

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/mile-high-maps/nearby-cli/internal/model"
)

// SourceKind selects the loader/adapter pair for a category.
type SourceKind string

const (
	SourceGeoJSON         SourceKind = "geojson"
	SourceArcGIS          SourceKind = "arcgis"
	SourceOverpassTransit SourceKind = "overpass_transit"
	SourceOverpassPlaces  SourceKind = "overpass_places"
	// SourceStatic categories serve their fallback samples only.
	SourceStatic SourceKind = "static"
)

// CategoryDef declares where a category's live data comes from and how it
// is presented. Endpoints are candidate URLs in priority order; for Overpass
// kinds they are mirror interpreter bases.
type CategoryDef struct {
	Label       string     `yaml:"label"`
	Color       string     `yaml:"color"`
	SourceLabel string     `yaml:"source_label"`
	RadiusMiles float64    `yaml:"radius_miles"`
	Kind        SourceKind `yaml:"kind"`
	Endpoints   []string   `yaml:"endpoints"`
}

// CategoryDefs maps category keys to their source definitions.
type CategoryDefs struct {
	Categories map[model.CategoryKey]CategoryDef `yaml:"categories"`
}

//go:embed categories.yaml
var defaultCategoryDefs []byte

// LoadCategoryDefs reads category source definitions from the given YAML
// file, or the embedded defaults when path is empty. Definitions must cover
// every registry key.
func LoadCategoryDefs(path string) (*CategoryDefs, error) {
	data := defaultCategoryDefs
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "config: read category defs %s", path)
		}
	}

	var defs CategoryDefs
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, eris.Wrap(err, "config: parse category defs")
	}

	for _, key := range model.CategoryKeys {
		def, ok := defs.Categories[key]
		if !ok {
			return nil, eris.Errorf("config: category %q missing from definitions", key)
		}
		if def.Kind != SourceStatic && len(def.Endpoints) == 0 {
			return nil, eris.Errorf("config: category %q has kind %q but no endpoints", key, def.Kind)
		}
	}

	return &defs, nil
}
