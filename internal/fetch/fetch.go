// Package fetch provides the single HTTP client shared by all source
// adapters. Requests are strictly sequential and spaced by a minimum
// interval so that source servers are never hammered; the pause is a
// backpressure contract, not an optimization.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultUserAgent identifies this client to every source server.
	DefaultUserAgent = "committee-scheduler/1.0 (github.com/VOST-dev/committee-scheduler)"

	// DefaultMinInterval is the pause enforced between consecutive
	// requests within one adapter run.
	DefaultMinInterval = 500 * time.Millisecond

	// DefaultTimeout bounds a single request.
	DefaultTimeout = 30 * time.Second
)

// Client performs rate-limited GET requests. The limiter issues one
// token per interval with burst 1, so two requests are never closer
// together than the configured pause.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// New creates a Client. Zero values select the defaults.
func New(minInterval, timeout time.Duration, userAgent string) *Client {
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		DialContext:         (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 60 * time.Second}).DialContext,
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
		userAgent:  userAgent,
	}
}

// Get fetches the URL and returns the response body as text. Non-2xx
// responses are transport errors. The call blocks on the rate limiter
// first, so it may suspend up to the configured interval.
func (c *Client) Get(ctx context.Context, url string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("unexpected status code %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	return string(body), nil
}
