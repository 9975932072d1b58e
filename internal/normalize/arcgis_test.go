package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var rnoAdapter = ArcGISAdapter{
	DefaultName:   "Neighborhood organization",
	NameKeys:      []string{"ORG_NAME", "NAME"},
	StatusKeys:    []string{"STATUS"},
	RNONumberKeys: []string{"RNO_NUM", "RNO_NUMBER"},
	WebsiteKeys:   []string{"WEBSITE", "URL"},
}

func ptr(f float64) *float64 { return &f }

func TestParseArcGIS_ErrorEnvelope(t *testing.T) {
	raw := []byte(`{"error": {"code": 400, "message": "Invalid query"}}`)
	_, err := ParseArcGIS(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid query")
}

func TestParseArcGIS_TransferLimit(t *testing.T) {
	raw := []byte(`{"features": [], "exceededTransferLimit": true}`)
	resp, err := ParseArcGIS(raw)
	require.NoError(t, err)
	assert.True(t, resp.ExceededTransferLimit)
}

func TestArcGISAdapter_RNODetails(t *testing.T) {
	features := []ArcGISFeature{
		{
			Attributes: map[string]any{
				"ORG_NAME": "Capitol Hill United Neighborhoods",
				"RNO_NUM":  float64(102),
				"WEBSITE":  "https://chundenver.org",
			},
			Geometry: &ArcGISPoint{X: ptr(-104.9806), Y: ptr(39.7318)},
		},
	}

	items := rnoAdapter.Normalize(features)
	require.Len(t, items, 1)
	assert.Equal(t, "Capitol Hill United Neighborhoods", items[0].Name)
	assert.Equal(t, "RNO #102 · https://chundenver.org", items[0].Details)
	assert.InDelta(t, 39.7318, items[0].Lat, 1e-9)
	assert.InDelta(t, -104.9806, items[0].Lng, 1e-9)
}

func TestArcGISAdapter_StatusWhenNoRNONumber(t *testing.T) {
	features := []ArcGISFeature{
		{
			Attributes: map[string]any{
				"NAME":   "Colfax Streetscape",
				"STATUS": "Under construction",
			},
			Geometry: &ArcGISPoint{X: ptr(-104.9563), Y: ptr(39.7402)},
		},
	}

	items := rnoAdapter.Normalize(features)
	require.Len(t, items, 1)
	assert.Equal(t, "Under construction", items[0].Details)
}

func TestArcGISAdapter_CentroidFallback(t *testing.T) {
	features := []ArcGISFeature{
		{
			Attributes: map[string]any{"NAME": "Polygon layer record"},
			Centroid:   &ArcGISPoint{X: ptr(-104.99), Y: ptr(39.74)},
		},
	}

	items := rnoAdapter.Normalize(features)
	require.Len(t, items, 1)
	assert.InDelta(t, -104.99, items[0].Lng, 1e-9)
	assert.InDelta(t, 39.74, items[0].Lat, 1e-9)
}

func TestArcGISAdapter_DropsMissingCoordinates(t *testing.T) {
	features := []ArcGISFeature{
		{Attributes: map[string]any{"NAME": "No geometry at all"}},
		{Attributes: map[string]any{"NAME": "Half a point"}, Geometry: &ArcGISPoint{X: ptr(-104.9)}},
		{
			Attributes: map[string]any{"NAME": "Kept"},
			Geometry:   &ArcGISPoint{X: ptr(-104.9), Y: ptr(39.7)},
		},
	}

	items := rnoAdapter.Normalize(features)
	require.Len(t, items, 1)
	assert.Equal(t, "Kept", items[0].Name)
}

func TestArcGISAdapter_EpochMillisDate(t *testing.T) {
	adapter := ArcGISAdapter{
		DefaultName: "Project",
		NameKeys:    []string{"NAME"},
		StatusKeys:  []string{"STATUS"},
		DateKeys:    []string{"LAST_EDITED"},
	}
	features := []ArcGISFeature{
		{
			Attributes: map[string]any{
				"NAME":        "Auraria Utilities Relocation",
				"STATUS":      "Active",
				"LAST_EDITED": float64(1735689600000),
			},
			Geometry: &ArcGISPoint{X: ptr(-105.0068), Y: ptr(39.7432)},
		},
	}

	items := adapter.Normalize(features)
	require.Len(t, items, 1)
	assert.Equal(t, "Active · Updated Jan 1, 2025", items[0].Details)
}
