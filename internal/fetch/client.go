package fetch

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/arachnid-dev/arachne/internal/config"
)

// Response holds the parts of an HTTP response the crawler cares about.
// The body is fully read and capped before the Response is returned, so
// callers never deal with streaming or connection lifetimes.
type Response struct {
	// StatusCode is the HTTP response status code.
	StatusCode int

	// Header contains the response headers.
	Header http.Header

	// Body is the response body, capped at the client's max body size.
	Body []byte
}

// IsSuccess reports whether the status code is in the 2xx range.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// ContentType returns the media type of the response without parameters,
// e.g. "text/html" for "text/html; charset=utf-8".
func (r *Response) ContentType() string {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mediaType
}

// Client performs HTTP GET requests on behalf of the crawler.
//
// Design decision: We read and buffer the whole body inside Fetch rather
// than returning a stream because:
//  1. Every caller needs the full document anyway (parsing, hashing, storing)
//  2. The size cap is enforced in exactly one place
//  3. The response can be shared between goroutines without ownership rules
type Client struct {
	// hc is the underlying HTTP client.
	hc *http.Client

	// userAgent is sent on every request.
	userAgent string

	// maxBodySize limits how many bytes of the body are read.
	maxBodySize int64

	// sites holds per-host cookies and headers, may be nil.
	sites *config.File
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgent sets the User-Agent header for all requests.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.hc.Timeout = d
		}
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		if size > 0 {
			c.maxBodySize = size
		}
	}
}

// WithSiteConfigs supplies per-host cookies and headers.
func WithSiteConfigs(sites *config.File) Option {
	return func(c *Client) {
		c.sites = sites
	}
}

// WithHTTPClient replaces the underlying http.Client.
// Mainly useful in tests and for callers that need custom transports.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// NewClient creates a Client with the given options applied over
// package defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		hc:          &http.Client{Timeout: config.DefaultTimeout},
		userAgent:   config.DefaultUserAgent,
		maxBodySize: config.DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch performs a GET request for the URL and returns the buffered
// response. A non-nil Response is returned for any completed HTTP
// exchange, including 4xx/5xx statuses; the error return is reserved for
// transport-level failures.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	c.applySiteConfig(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// applySiteConfig adds configured cookies and headers for the request's host.
func (c *Client) applySiteConfig(req *http.Request) {
	if c.sites == nil {
		return
	}

	site := c.sites.GetSiteConfig(req.URL.Hostname())
	if site.Cookie != "" {
		req.Header.Set("Cookie", site.Cookie)
	}
	for k, v := range site.Headers {
		req.Header.Set(k, v)
	}
}
