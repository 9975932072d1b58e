package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mile-high-maps/nearby-cli/internal/normalize"
)

func testClient() *Client {
	return NewClient(Options{
		Timeout:     5 * time.Second,
		MaxRetries:  2,
		BackoffBase: time.Millisecond,
	})
}

func TestFetchFirstAvailable_FirstCandidateWins(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": []}`)) //nolint:errcheck
	}))
	defer good.Close()

	var secondHit bool
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		secondHit = true
	}))
	defer second.Close()

	resp, err := FetchFirstAvailable(context.Background(), testClient(),
		[]string{good.URL, second.URL}, normalize.ParseOverpass)
	require.NoError(t, err)
	assert.NotNil(t, resp)
	assert.False(t, secondHit, "second candidate must not be tried when the first succeeds")
}

func TestFetchFirstAvailable_FailsOver(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer bad.Close()

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>rate limited</html>`)) //nolint:errcheck
	}))
	defer malformed.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"elements": [{"type": "node", "id": 1, "lat": 39.7, "lon": -104.9}]}`)) //nolint:errcheck
	}))
	defer good.Close()

	resp, err := FetchFirstAvailable(context.Background(), testClient(),
		[]string{bad.URL, malformed.URL, good.URL}, normalize.ParseOverpass)
	require.NoError(t, err)
	require.Len(t, resp.Elements, 1)
}

func TestFetchFirstAvailable_AllFail(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer bad.Close()

	_, err := FetchFirstAvailable(context.Background(), testClient(),
		[]string{bad.URL, bad.URL}, normalize.ParseOverpass)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 2 candidate endpoints failed")
}

func TestFetchFirstAvailable_NoCandidates(t *testing.T) {
	_, err := FetchFirstAvailable(context.Background(), testClient(), nil, normalize.ParseOverpass)
	assert.Error(t, err)
}

func TestFetchAllPages_Paginates(t *testing.T) {
	var offsets []int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("resultOffset"))
		offsets = append(offsets, offset)
		if offset < 4 {
			w.Write([]byte(`{"features": [{"attributes": {"NAME": "a"}, "geometry": {"x": -104.9, "y": 39.7}}, {"attributes": {"NAME": "b"}, "geometry": {"x": -104.8, "y": 39.8}}], "exceededTransferLimit": true}`)) //nolint:errcheck
			return
		}
		w.Write([]byte(`{"features": [{"attributes": {"NAME": "c"}, "geometry": {"x": -104.7, "y": 39.9}}]}`)) //nolint:errcheck
	}))
	defer srv.Close()

	features, err := FetchAllPages(context.Background(), testClient(), srv.URL, ArcGISQuery("*"), 2)
	require.NoError(t, err)
	assert.Len(t, features, 5)
	assert.Equal(t, []int{0, 2, 4}, offsets)
}

func TestFetchAllPages_EmptyPageStops(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Misbehaving service: flag set but no records.
		w.Write([]byte(`{"features": [], "exceededTransferLimit": true}`)) //nolint:errcheck
	}))
	defer srv.Close()

	features, err := FetchAllPages(context.Background(), testClient(), srv.URL, ArcGISQuery(""), 2000)
	require.NoError(t, err)
	assert.Empty(t, features)
}

func TestFetchAllPages_InvalidPageSize(t *testing.T) {
	_, err := FetchAllPages(context.Background(), testClient(), "http://unused", url.Values{}, 0)
	assert.Error(t, err)
}

func TestClientGet_RetriesServerErrors(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if hits == 1 {
			http.Error(w, "flaky", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer srv.Close()

	body, err := testClient().Get(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(body))
	assert.Equal(t, 2, hits)
}

func TestClientGet_NoRetryOnClientError(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient().Get(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}

func TestOverpassURL_EscapesQuery(t *testing.T) {
	u := OverpassURL("https://overpass-api.de/api/interpreter", TransitStopsQuery(39.7392, -104.9903, 8000))
	parsed, err := url.Parse(u)
	require.NoError(t, err)
	q := parsed.Query().Get("data")
	assert.Contains(t, q, `[out:json]`)
	assert.Contains(t, q, `bus_stop`)
	assert.Contains(t, q, `39.7392`)
}
