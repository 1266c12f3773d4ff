package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guttosm/cycleradar/internal/domain/models"
)

const (
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultRange     = "1y"
	DefaultInterval  = "1d"
	defaultUserAgent = "Mozilla/5.0"
	maxErrorPreview  = 120
)

// HTTPClient describes the subset of *http.Client used by Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches daily close series and quote profiles from the Yahoo Finance
// public endpoints.
type Client struct {
	baseURL    string
	httpClient HTTPClient
	rng        string
	interval   string
	header     http.Header
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host (used by tests and mirrors).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithHTTPClient sets the HTTP client used for every request.
func WithHTTPClient(h HTTPClient) Option {
	return func(c *Client) { c.httpClient = h }
}

// WithRange sets the chart range parameter (e.g. "3mo", "1y").
func WithRange(rng string) Option {
	return func(c *Client) {
		if rng != "" {
			c.rng = rng
		}
	}
}

// WithInterval sets the chart interval parameter (e.g. "1d").
func WithInterval(interval string) Option {
	return func(c *Client) {
		if interval != "" {
			c.interval = interval
		}
	}
}

// WithUserAgent sets the User-Agent header; the provider rejects empty agents.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.header.Set("User-Agent", ua)
		}
	}
}

// WithTimeout replaces the HTTP client with one using the given timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient = &http.Client{Timeout: d}
		}
	}
}

// NewClient builds a Client with defaults overridden by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		rng:        DefaultRange,
		interval:   DefaultInterval,
		header:     http.Header{},
	}
	c.header.Set("User-Agent", defaultUserAgent)
	c.header.Set("Accept", "application/json")
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a GET and returns the raw body.
// Network errors and non-2xx statuses are reported as models.ErrTransport.
func (c *Client) getJSON(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", models.ErrTransport, err)
	}
	for k, vs := range c.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", models.ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", models.ErrTransport, resp.StatusCode, preview(body))
	}
	return body, nil
}

func decode(body []byte, v any) error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || (trimmed[0] != '{' && trimmed[0] != '[') {
		return fmt.Errorf("%w: non-json body: %s", models.ErrInputShape, preview(body))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: decode: %v", models.ErrInputShape, err)
	}
	return nil
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > maxErrorPreview {
		s = s[:maxErrorPreview]
	}
	return s
}

func escape(symbol string) string {
	return url.PathEscape(symbol)
}
