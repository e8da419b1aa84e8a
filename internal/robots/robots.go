package robots

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
	"golang.org/x/sync/singleflight"

	"github.com/arachnid-dev/arachne/internal/config"
	"github.com/arachnid-dev/arachne/internal/fetch"
)

// maxCrawlDelay caps the Crawl-delay honored from a robots.txt file.
const maxCrawlDelay = 30 * time.Second

// Outcome records how a host's robots.txt fetch went.
type Outcome string

// Possible fetch outcomes.
const (
	// OutcomeOK means robots.txt was fetched and parsed.
	OutcomeOK Outcome = "ok"

	// OutcomeNotFound means the host returned 404; no restrictions apply.
	OutcomeNotFound Outcome = "not_found"

	// OutcomeUnavailable means the fetch failed or returned another
	// non-2xx status; the host is treated as unrestricted.
	OutcomeUnavailable Outcome = "unavailable"
)

// Entry is the cached robots.txt state for one host. Entries are created
// once and never mutated afterwards, so workers can read them without
// locking.
type Entry struct {
	// Host is the host (including port, if any) the entry belongs to.
	Host string

	// Data holds the parsed rules. Nil means no restrictions.
	Data *robotstxt.RobotsData

	// CrawlDelay is the Crawl-delay for the matched agent group, if any.
	CrawlDelay time.Duration

	// FetchedAt is when the robots.txt fetch completed.
	FetchedAt time.Time

	// Outcome records how the fetch went.
	Outcome Outcome
}

// Fetcher retrieves a URL. Satisfied by *fetch.Client.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Response, error)
}

// Cache answers robots.txt allow/deny queries with per-host caching.
// Entries never expire within a run: each host is fetched at most once.
type Cache struct {
	// fetcher performs the robots.txt requests.
	fetcher Fetcher

	// userAgent is the token matched against User-agent lines.
	userAgent string

	// respect disables all robots handling when false.
	respect bool

	// timeout bounds each robots.txt fetch.
	timeout time.Duration

	// logger records fetch outcomes and deny decisions.
	logger *slog.Logger

	// group collapses concurrent first accesses to one fetch per host.
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]*Entry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithUserAgent sets the user-agent token used for rule matching.
func WithUserAgent(ua string) CacheOption {
	return func(c *Cache) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithRespect enables or disables robots.txt compliance.
// When disabled, Allowed always returns true and nothing is fetched.
func WithRespect(respect bool) CacheOption {
	return func(c *Cache) {
		c.respect = respect
	}
}

// WithTimeout bounds each robots.txt fetch.
func WithTimeout(d time.Duration) CacheOption {
	return func(c *Cache) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger for fetch outcomes.
func WithLogger(logger *slog.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCache creates a robots.txt policy cache using the given fetcher.
func NewCache(fetcher Fetcher, opts ...CacheOption) *Cache {
	c := &Cache{
		fetcher:   fetcher,
		userAgent: config.DefaultUserAgent,
		respect:   true,
		timeout:   config.DefaultRobotsTimeout,
		entries:   make(map[string]*Entry),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Allowed reports whether the URL may be crawled under the host's
// robots.txt rules. Unparseable URLs are denied; hosts whose robots.txt
// could not be fetched are fully permitted.
func (c *Cache) Allowed(ctx context.Context, rawURL string) bool {
	if !c.respect {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return false
	}

	entry := c.getOrFetch(ctx, u)
	if entry.Data == nil {
		return true
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}

	allowed := entry.Data.TestAgent(path, c.userAgent)
	if !allowed {
		c.logger.Debug("denied by robots.txt",
			"url", rawURL,
			"host", entry.Host,
		)
	}
	return allowed
}

// Entry returns the cached entry for a host, or nil if the host has not
// been queried yet. Useful for diagnostics.
func (c *Cache) Entry(host string) *Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[strings.ToLower(host)]
}

// CrawlDelay returns the Crawl-delay advertised by the host's robots.txt
// for the configured user agent, or zero when the host has not been
// queried or advertises none. Callers use it as a floor for per-host
// request spacing.
func (c *Cache) CrawlDelay(host string) time.Duration {
	if entry := c.Entry(host); entry != nil {
		return entry.CrawlDelay
	}
	return 0
}

// getOrFetch returns the host's entry, fetching robots.txt on first
// access. Only one fetch happens per host even under concurrent first
// access; other callers wait on the in-flight fetch.
func (c *Cache) getOrFetch(ctx context.Context, u *url.URL) *Entry {
	key := strings.ToLower(u.Host)

	c.mu.RLock()
	entry := c.entries[key]
	c.mu.RUnlock()
	if entry != nil {
		return entry
	}

	v, _, _ := c.group.Do(key, func() (any, error) {
		e := c.fetchEntry(ctx, u.Scheme, key)
		c.mu.Lock()
		c.entries[key] = e
		c.mu.Unlock()
		return e, nil
	})
	return v.(*Entry)
}

// fetchEntry fetches and parses robots.txt for the host.
// Any failure yields a permissive entry with the outcome recorded.
func (c *Cache) fetchEntry(ctx context.Context, scheme, host string) *Entry {
	entry := &Entry{
		Host:      host,
		FetchedAt: time.Now(),
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	robotsURL := scheme + "://" + host + "/robots.txt"
	resp, err := c.fetcher.Fetch(ctx, robotsURL)
	if err != nil {
		entry.Outcome = OutcomeUnavailable
		c.logger.Warn("robots.txt fetch failed, allowing all paths",
			"host", host,
			"error", err,
		)
		return entry
	}

	if !resp.IsSuccess() {
		if resp.StatusCode == http.StatusNotFound {
			entry.Outcome = OutcomeNotFound
		} else {
			entry.Outcome = OutcomeUnavailable
		}
		c.logger.Debug("robots.txt not available, allowing all paths",
			"host", host,
			"status", resp.StatusCode,
		)
		return entry
	}

	data, err := robotstxt.FromBytes(resp.Body)
	if err != nil {
		entry.Outcome = OutcomeUnavailable
		c.logger.Warn("robots.txt parse failed, allowing all paths",
			"host", host,
			"error", err,
		)
		return entry
	}

	entry.Data = data
	entry.Outcome = OutcomeOK
	if group := data.FindGroup(c.userAgent); group != nil {
		entry.CrawlDelay = group.CrawlDelay
		// Some robots.txt files advertise absurd delays; cap them so a
		// single host cannot stall the crawl indefinitely.
		if entry.CrawlDelay > maxCrawlDelay {
			entry.CrawlDelay = maxCrawlDelay
		}
	}

	c.logger.Debug("robots.txt cached",
		"host", host,
		"crawl_delay", entry.CrawlDelay,
	)
	return entry
}
