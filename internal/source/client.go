// Package source fetches raw payloads from GIS and Overpass endpoints. It
// owns transport concerns only: retries, backoff, rate limiting, candidate
// failover, and pagination. Interpretation of payloads belongs to the
// normalize package.
package source

import (
	"context"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Options configures the HTTP client.
type Options struct {
	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	BackoffBase  time.Duration
	RateLimiters map[string]*rate.Limiter
}

// DefaultRateLimiters returns per-host limiters for the public services the
// loaders hit. Overpass mirrors are shared community infrastructure and get
// the tightest budget.
func DefaultRateLimiters() map[string]*rate.Limiter {
	return map[string]*rate.Limiter{
		"overpass-api.de":       rate.NewLimiter(1, 2),
		"overpass.kumi.systems": rate.NewLimiter(1, 2),
		"services1.arcgis.com":  rate.NewLimiter(5, 5),
		"services5.arcgis.com":  rate.NewLimiter(5, 5),
		"www.denvergov.org":     rate.NewLimiter(5, 5),
		"geo.denvergov.org":     rate.NewLimiter(5, 5),
		"opendata.arcgis.com":   rate.NewLimiter(5, 5),
		"data.colorado.gov":     rate.NewLimiter(5, 5),
	}
}

// Client performs rate-limited GET requests with retry and exponential
// backoff. It is safe for concurrent use.
type Client struct {
	client   *http.Client
	opts     Options
	limiters map[string]*rate.Limiter
}

// NewClient creates a Client with the given options, filling defaults.
func NewClient(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}
	if opts.BackoffBase == 0 {
		opts.BackoffBase = 500 * time.Millisecond
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "nearby-cli/1.0"
	}
	limiters := make(map[string]*rate.Limiter)
	for k, v := range opts.RateLimiters {
		limiters[k] = v
	}
	transport := &http.Transport{
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     20,
		IdleConnTimeout:     90 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
		},
		opts:     opts,
		limiters: limiters,
	}
}

func (c *Client) limiterFor(rawURL string) *rate.Limiter {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rate.NewLimiter(20, 20)
	}
	if lim, ok := c.limiters[u.Host]; ok {
		return lim
	}
	return rate.NewLimiter(20, 20)
}

// Get fetches the URL and returns the response body. Network failures,
// HTTP 429, and 5xx responses are retried with backoff; any other
// non-success status is an immediate error.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "source: create request")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("source: unexpected status %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "source: read body")
	}
	return body, nil
}

func (c *Client) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	lim := c.limiterFor(req.URL.String())

	var lastErr error
	for attempt := range c.opts.MaxRetries {
		if err := lim.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "source: rate limiter wait")
		}

		cloned := req.Clone(ctx)
		resp, err := c.client.Do(cloned)
		if err != nil {
			lastErr = err
			zap.L().Warn("source: request failed, retrying",
				zap.String("url", req.URL.String()),
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
			c.backoff(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			_ = resp.Body.Close()
			lastErr = eris.Errorf("source: http %d from %s", resp.StatusCode, req.URL.String())
			zap.L().Warn("source: retryable status",
				zap.String("url", req.URL.String()),
				zap.Int("status", resp.StatusCode),
				zap.Int("attempt", attempt+1),
			)
			c.backoff(ctx, attempt)
			continue
		}

		return resp, nil
	}

	return nil, eris.Wrap(lastErr, "source: all retries exhausted")
}

func (c *Client) backoff(ctx context.Context, attempt int) {
	maxBackoff := 30 * time.Second
	d := time.Duration(float64(c.opts.BackoffBase) * math.Pow(2, float64(attempt)))
	if d > maxBackoff {
		d = maxBackoff
	}
	if d > 0 {
		d += time.Duration(rand.Int64N(int64(d)/2 + 1))
	}

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
