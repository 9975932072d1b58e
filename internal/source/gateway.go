package source

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/mile-high-maps/nearby-cli/internal/normalize"
)

// Fetcher is the transport capability the loaders consume. *Client
// implements it; tests substitute canned payloads.
type Fetcher interface {
	Get(ctx context.Context, rawURL string) ([]byte, error)
}

// FetchFirstAvailable tries candidate endpoints in priority order and
// returns the first successfully fetched AND parsed payload. A candidate
// that fetches but fails to parse counts as a failure and the next one is
// tried. When every candidate fails the aggregated error is returned;
// callers treat that as a recoverable condition, never fatal.
func FetchFirstAvailable[T any](ctx context.Context, f Fetcher, urls []string, parse func([]byte) (*T, error)) (*T, error) {
	if len(urls) == 0 {
		return nil, eris.New("source: no candidate endpoints configured")
	}

	var lastErr error
	for _, u := range urls {
		data, err := f.Get(ctx, u)
		if err != nil {
			lastErr = err
			zap.L().Warn("source: candidate endpoint failed",
				zap.String("url", u),
				zap.Error(err),
			)
			continue
		}
		parsed, err := parse(data)
		if err != nil {
			lastErr = err
			zap.L().Warn("source: candidate payload unusable",
				zap.String("url", u),
				zap.Error(err),
			)
			continue
		}
		return parsed, nil
	}

	return nil, eris.Wrapf(lastErr, "source: all %d candidate endpoints failed", len(urls))
}

// FetchAllPages pages through an ArcGIS feature service query, increasing
// resultOffset by pageSize while the service signals more data remains via
// exceededTransferLimit, and returns the concatenated records.
func FetchAllPages(ctx context.Context, f Fetcher, endpoint string, query url.Values, pageSize int) ([]normalize.ArcGISFeature, error) {
	if pageSize <= 0 {
		return nil, eris.Errorf("source: invalid page size %d", pageSize)
	}

	var features []normalize.ArcGISFeature
	offset := 0
	for {
		q := url.Values{}
		for k, vs := range query {
			q[k] = vs
		}
		q.Set("resultOffset", strconv.Itoa(offset))
		q.Set("resultRecordCount", strconv.Itoa(pageSize))

		data, err := f.Get(ctx, endpoint+"?"+q.Encode())
		if err != nil {
			return nil, eris.Wrapf(err, "source: page at offset %d", offset)
		}
		page, err := normalize.ParseArcGIS(data)
		if err != nil {
			return nil, eris.Wrapf(err, "source: page at offset %d", offset)
		}

		features = append(features, page.Features...)

		// An empty page with the flag still set would loop forever; treat
		// it as the end.
		if !page.ExceededTransferLimit || len(page.Features) == 0 {
			return features, nil
		}
		offset += pageSize
	}
}

// ArcGISQuery builds the standard feature service query parameters for a
// full-layer point pull.
func ArcGISQuery(outFields string) url.Values {
	if outFields == "" {
		outFields = "*"
	}
	return url.Values{
		"where":     {"1=1"},
		"outFields": {outFields},
		"outSR":     {"4326"},
		"f":         {"json"},
	}
}

// OverpassURL composes an interpreter request URL for a mirror base.
func OverpassURL(base, query string) string {
	return base + "?data=" + url.QueryEscape(query)
}

// TransitStopsQuery returns the Overpass QL query for transit stop nodes and
// their route relations around a center point. Radius is in meters.
func TransitStopsQuery(lat, lng float64, radiusMeters int) string {
	return fmt.Sprintf(
		`[out:json][timeout:25];(node(around:%d,%.4f,%.4f)["highway"="bus_stop"];node(around:%d,%.4f,%.4f)["railway"="station"];node(around:%d,%.4f,%.4f)["public_transport"="platform"];)->.stops;(.stops;rel(bn.stops)["type"="route"];);out body;`,
		radiusMeters, lat, lng, radiusMeters, lat, lng, radiusMeters, lat, lng,
	)
}

// GroceryQuery returns the Overpass QL query for supermarkets around a
// center point, requesting computed centers for ways and relations.
func GroceryQuery(lat, lng float64, radiusMeters int) string {
	return fmt.Sprintf(
		`[out:json][timeout:25];(node(around:%d,%.4f,%.4f)["shop"="supermarket"];way(around:%d,%.4f,%.4f)["shop"="supermarket"];relation(around:%d,%.4f,%.4f)["shop"="supermarket"];);out center;`,
		radiusMeters, lat, lng, radiusMeters, lat, lng, radiusMeters, lat, lng,
	)
}
