package crawler

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/arachnid-dev/arachne/internal/config"
	"github.com/arachnid-dev/arachne/internal/extract"
	"github.com/arachnid-dev/arachne/internal/fetch"
	"github.com/arachnid-dev/arachne/internal/model"
	"github.com/arachnid-dev/arachne/internal/robots"
	"github.com/arachnid-dev/arachne/internal/store"
)

// Policy decides whether a URL may be fetched.
type Policy interface {
	// Allowed reports whether the URL may be crawled.
	Allowed(ctx context.Context, rawURL string) bool
}

// DelayAdvisor is implemented by policies that learn a host's preferred
// request spacing, such as a robots.txt Crawl-delay. When the Spider's
// policy implements it, the advertised delay becomes a floor for the
// per-host rate limiter.
type DelayAdvisor interface {
	// CrawlDelay returns the host's preferred spacing, or zero when
	// unknown.
	CrawlDelay(host string) time.Duration
}

// Spider is the breadth-first crawl engine.
//
// Design decision: the page budget is reserved before fetching, not
// counted after. A worker that cannot reserve a slot stops the crawl,
// and a worker whose page fails releases its slot. This keeps the number
// of stored pages at or below MaxPages even with many concurrent
// workers, at the cost of the rare wasted slot when the last reserved
// fetch fails during shutdown.
type Spider struct {
	maxDepth    int
	maxPages    int
	concurrency int
	seeds       []string
	sites       *config.File
	pipe        *pipeline
	policy      Policy
	limiter     *HostLimiter
	logger      *slog.Logger
}

// Option configures a Spider.
type Option func(*Spider)

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(s *Spider) {
		s.pipe.fetcher = f
	}
}

// WithExtractor replaces the HTML extractor.
func WithExtractor(e Extractor) Option {
	return func(s *Spider) {
		s.pipe.extractor = e
	}
}

// WithContentStore replaces the content store.
func WithContentStore(cs store.ContentStore) Option {
	return func(s *Spider) {
		s.pipe.store = cs
	}
}

// WithPolicy replaces the robots policy.
func WithPolicy(p Policy) Option {
	return func(s *Spider) {
		s.policy = p
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Spider) {
		s.logger = logger
		s.pipe.logger = logger
	}
}

// New creates a Spider from the configuration. By default it fetches
// with a shared HTTP client, extracts with the goquery extractor, keeps
// pages in memory, and enforces robots.txt through a caching policy that
// reuses the same fetcher. Options override any collaborator.
func New(cfg *config.Config, opts ...Option) (*Spider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	fetcher := fetch.NewClient(
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithSiteConfigs(cfg.SiteConfigs),
	)

	logger := slog.Default()

	s := &Spider{
		maxDepth:    cfg.MaxDepth,
		maxPages:    cfg.MaxPages,
		concurrency: cfg.Concurrency,
		seeds:       cfg.Seeds,
		sites:       cfg.SiteConfigs,
		pipe: &pipeline{
			fetcher:   fetcher,
			extractor: extract.NewExtractor(),
			store:     store.NewMemory(),
			logger:    logger,
		},
		limiter: NewHostLimiter(cfg.Delay),
		logger:  logger,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.policy == nil {
		s.policy = robots.NewCache(s.pipe.fetcher,
			robots.WithUserAgent(cfg.UserAgent),
			robots.WithRespect(cfg.RespectRobots),
			robots.WithTimeout(config.DefaultRobotsTimeout),
			robots.WithLogger(s.logger),
		)
	}
	return s, nil
}

// depthLimit returns the depth cutoff for links on the host, honoring a
// per-site depth override from the configuration file. Hosts without an
// override use the global maximum depth.
func (s *Spider) depthLimit(host string) int {
	if s.sites != nil {
		if site := s.sites.GetSiteConfig(host); site.Depth > 0 {
			return site.Depth
		}
	}
	return s.maxDepth
}

// frontierDepthCap is the largest depth any host may reach, so the
// frontier's depth gate never rejects an entry that a per-site override
// permits. Hosts with lower limits are filtered during link expansion.
func (s *Spider) frontierDepthCap() int {
	limit := s.maxDepth
	if s.sites != nil {
		if s.sites.Defaults.Depth > limit {
			limit = s.sites.Defaults.Depth
		}
		for _, site := range s.sites.Sites {
			if site.Depth > limit {
				limit = site.Depth
			}
		}
	}
	return limit
}

// Stats summarizes a finished run.
type Stats struct {
	// PagesCrawled is the number of pages fetched and stored.
	PagesCrawled int

	// PagesFailed is the number of pages dropped by a page error.
	PagesFailed int

	// PagesDenied is the number of URLs refused by robots policy.
	PagesDenied int

	// URLsSeen is the number of distinct URLs ever admitted to the
	// frontier, including those never fetched.
	URLsSeen int
}

// run carries the mutable state of one Run call.
type run struct {
	frontier *Frontier
	reserved atomic.Int64
	failed   atomic.Int64
	denied   atomic.Int64

	mu      sync.Mutex
	results []*model.CrawlResult
}

// Run crawls breadth-first from the seeds and returns the pages stored,
// in completion order. An empty seeds slice falls back to the seeds from
// the configuration. Seeds that fail normalization are skipped with a
// warning; if none survive, Run returns ErrNoValidSeeds.
//
// Run blocks until the frontier is exhausted, the page budget is
// reached, or ctx is canceled. On cancellation it returns the pages
// collected so far together with ctx.Err(). Page-level failures never
// abort the run.
func (s *Spider) Run(ctx context.Context, seeds []string) ([]*model.CrawlResult, Stats, error) {
	if len(seeds) == 0 {
		seeds = s.seeds
	}

	r := &run{frontier: NewFrontier(s.frontierDepthCap())}

	accepted := 0
	for _, seed := range seeds {
		norm, err := Normalize(seed, nil)
		if err != nil {
			s.logger.Warn("skipping invalid seed", "url", seed, "error", err)
			continue
		}
		if r.frontier.TryEnqueue(Entry{URL: norm, Depth: 0}) {
			accepted++
		}
	}
	if accepted == 0 {
		return nil, Stats{}, ErrNoValidSeeds
	}

	// Cancellation unblocks workers waiting on the frontier.
	stop := context.AfterFunc(ctx, r.frontier.Close)
	defer stop()

	s.logger.Info("starting crawl",
		"seeds", accepted,
		"max_depth", s.maxDepth,
		"max_pages", s.maxPages,
		"concurrency", s.concurrency,
	)

	var g errgroup.Group
	for range s.concurrency {
		g.Go(func() error {
			s.worker(ctx, r)
			return nil
		})
	}
	_ = g.Wait()

	stats := Stats{
		PagesCrawled: len(r.results),
		PagesFailed:  int(r.failed.Load()),
		PagesDenied:  int(r.denied.Load()),
		URLsSeen:     r.frontier.SeenCount(),
	}
	s.logger.Info("crawl complete",
		"pages_crawled", stats.PagesCrawled,
		"pages_failed", stats.PagesFailed,
		"pages_denied", stats.PagesDenied,
		"urls_seen", stats.URLsSeen,
	)

	if err := ctx.Err(); err != nil {
		return r.results, stats, err
	}
	return r.results, stats, nil
}

// worker pulls entries until the frontier reports the crawl is over.
// Done is called only after the entry's children have been enqueued, so
// the frontier never goes idle while work is still being produced.
func (s *Spider) worker(ctx context.Context, r *run) {
	for {
		entry, ok := r.frontier.Next()
		if !ok {
			return
		}
		s.process(ctx, r, entry)
		r.frontier.Done()
	}
}

// process runs one entry through policy, rate limiting, and the page
// pipeline, then enqueues the page's outgoing links.
func (s *Spider) process(ctx context.Context, r *run, entry Entry) {
	if !s.policy.Allowed(ctx, entry.URL) {
		r.denied.Add(1)
		s.logger.Debug("denied by robots policy", "url", entry.URL)
		return
	}

	// Reserve a page budget slot before fetching.
	if r.reserved.Add(1) > int64(s.maxPages) {
		r.reserved.Add(-1)
		r.frontier.Close()
		return
	}

	u, err := url.Parse(entry.URL)
	if err != nil {
		r.reserved.Add(-1)
		return
	}
	var floor time.Duration
	if advisor, ok := s.policy.(DelayAdvisor); ok {
		floor = advisor.CrawlDelay(u.Host)
	}
	if err := s.limiter.WaitAtLeast(ctx, u.Host, floor); err != nil {
		r.reserved.Add(-1)
		return
	}

	result, perr := s.pipe.process(ctx, entry)
	if perr != nil {
		r.reserved.Add(-1)
		r.failed.Add(1)
		s.logger.Warn("page failed", "url", perr.URL, "kind", perr.Kind, "error", perr.Err)
		return
	}

	r.mu.Lock()
	r.results = append(r.results, result)
	r.mu.Unlock()

	s.logger.Debug("page crawled",
		"url", result.URL,
		"depth", result.Depth,
		"status", result.StatusCode,
		"links", len(result.Links),
	)

	childDepth := entry.Depth + 1
	for _, link := range result.Links {
		norm, err := Normalize(link, u)
		if err != nil {
			s.logger.Debug("discarding link", "url", link, "error", err)
			continue
		}
		child, err := url.Parse(norm)
		if err != nil {
			continue
		}
		if childDepth > s.depthLimit(child.Hostname()) {
			continue
		}
		r.frontier.TryEnqueue(Entry{
			URL:            norm,
			Depth:          childDepth,
			DiscoveredFrom: entry.URL,
		})
	}
}
