package fetch

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/textcrawl/textcrawl/internal/model"
)

// Default fetcher settings. The timeout mirrors the 10 second per-request
// limit the crawler has always used; the body cap prevents memory
// exhaustion from unexpectedly large responses.
const (
	// DefaultTimeout is the per-request fetch timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies textcrawl in HTTP requests.
	DefaultUserAgent = "textcrawl/1.0 (+https://github.com/textcrawl/textcrawl)"
)

// Result holds the successful outcome of fetching one URL.
type Result struct {
	// Body is the raw response body, capped at the configured size.
	Body []byte

	// FinalURL is the URL after redirects. Links found in the body must
	// be resolved against this, not the requested URL.
	FinalURL string

	// StatusCode is the 2xx response status.
	StatusCode int

	// ContentType is the Content-Type header value, kept for logging.
	ContentType string
}

// Client retrieves raw page content over HTTP. It performs no retries:
// a failed fetch is a terminal outcome for that URL within a run.
type Client struct {
	// hc is the underlying HTTP client. Its Timeout is left zero; the
	// per-request context carries the deadline so cancellation composes
	// with the caller's context.
	hc *http.Client

	// timeout is the per-request deadline.
	timeout time.Duration

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many bytes of a response body are read.
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests to
// fetch through httptest servers with self-signed certificates.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// NewClient creates a Client with the given options applied over the
// defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		hc:          &http.Client{},
		timeout:     DefaultTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs an HTTP GET for rawURL and returns the body and final
// URL. All failure paths return a *Error classifying the problem; Fetch
// never panics on bad input. A non-2xx status is an error, not a partial
// success.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{Kind: model.ErrorKindOther, URL: rawURL, cause: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: rawURL, cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain a little so the connection can be reused, then fail.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort drain
		return nil, &Error{Kind: model.ErrorKindHTTPStatus, URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, &Error{Kind: classify(err), URL: rawURL, cause: err}
	}

	finalURL := rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}

	return &Result{
		Body:        body,
		FinalURL:    finalURL,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}
