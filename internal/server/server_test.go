package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mile-high-maps/nearby-cli/internal/model"
	"github.com/mile-high-maps/nearby-cli/internal/query"
)

type staticView []model.Category

func (v staticView) Get(key model.CategoryKey) (model.Category, bool) {
	for _, c := range v {
		if c.Key == key {
			return c, true
		}
	}
	return model.Category{}, false
}

func (v staticView) All() []model.Category { return v }

func testServer(reports []model.CategoryLoadReport) *Server {
	view := staticView{{
		Key:         model.CategoryGrocery,
		Label:       "Grocery Stores",
		Color:       "#2f9e44",
		SourceLabel: "OpenStreetMap",
		RadiusMiles: 1.5,
		Items: []model.Item{
			{Name: "King Soopers - Speer", Lat: 39.7316, Lng: -104.9739},
			{Name: "Safeway - Corona", Lat: 39.7266, Lng: -104.9747},
		},
	}}
	return New(view, query.NewEngine(view, 25), reports)
}

func doGet(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doGet(t, testServer(nil), "/api/health")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestNearby(t *testing.T) {
	rec := doGet(t, testServer(nil), "/api/v1/nearby?lat=39.7316&lng=-104.9739")

	require.Equal(t, http.StatusOK, rec.Code)
	var report model.NearbyReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	result := report.Categories[model.CategoryGrocery]
	require.NotEmpty(t, result.Items)
	assert.Equal(t, "King Soopers - Speer", result.Items[0].Name)
	assert.InDelta(t, 0.0, result.Items[0].DistanceMiles, 0.001)
	assert.Equal(t, result.MatchCount, report.TotalMatches)
}

func TestNearby_MissingParams(t *testing.T) {
	s := testServer(nil)

	rec := doGet(t, s, "/api/v1/nearby?lng=-104.9739")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lat")

	rec = doGet(t, s, "/api/v1/nearby?lat=39.7&lng=downtown")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lng")
}

func TestCategories(t *testing.T) {
	rec := doGet(t, testServer(nil), "/api/v1/categories")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Categories []struct {
			Key         string  `json:"key"`
			Label       string  `json:"label"`
			RadiusMiles float64 `json:"radius_miles"`
			ItemCount   int     `json:"item_count"`
		} `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Categories, 1)
	assert.Equal(t, "grocery_stores", body.Categories[0].Key)
	assert.Equal(t, 1.5, body.Categories[0].RadiusMiles)
	assert.Equal(t, 2, body.Categories[0].ItemCount)
	assert.NotContains(t, rec.Body.String(), "King Soopers")
}

func TestStatus_Degraded(t *testing.T) {
	reports := []model.CategoryLoadReport{
		{Key: model.CategoryGrocery, Outcome: model.OutcomeLive, Count: 2},
		{Key: model.CategoryTransit, Outcome: model.OutcomeFallback, Count: 3, Error: "all endpoints failed"},
	}
	rec := doGet(t, testServer(reports), "/api/v1/status")

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Degraded bool                       `json:"degraded"`
		Loads    []model.CategoryLoadReport `json:"loads"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Degraded)
	require.Len(t, body.Loads, 2)
}

func TestStatus_Healthy(t *testing.T) {
	reports := []model.CategoryLoadReport{
		{Key: model.CategoryGrocery, Outcome: model.OutcomeLive, Count: 2},
	}
	rec := doGet(t, testServer(reports), "/api/v1/status")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"degraded":false`)
}
