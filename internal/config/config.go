package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These are chosen to be polite to target servers while still finishing
// a small crawl in reasonable time.
const (
	// DefaultMaxDepth limits how far from the seed set the crawler follows
	// links. Depth 0 means only the seed pages themselves. Three levels is
	// enough to map the structure of most small sites.
	DefaultMaxDepth = 3

	// DefaultMaxPages caps the total number of pages stored per run.
	// This prevents runaway crawling on large or infinitely-generating sites.
	DefaultMaxPages = 100

	// DefaultConcurrency is the number of worker goroutines performing
	// fetches. Eight keeps a crawl moving without looking like a flood
	// from the target's side; per-host spacing is enforced separately.
	DefaultConcurrency = 8

	// DefaultDelay is the minimum spacing between request starts to the
	// same host. One second is conservative and respectful of server
	// resources. Requests to different hosts are not delayed against
	// each other.
	DefaultDelay = 1 * time.Second

	// DefaultTimeout is the per-request timeout for page fetches.
	DefaultTimeout = 10 * time.Second

	// DefaultRobotsTimeout is the timeout for robots.txt fetches.
	// Shorter than the page timeout: a slow robots endpoint should not
	// stall the whole crawl, and a timeout is treated as permissive.
	DefaultRobotsTimeout = 5 * time.Second

	// DefaultUserAgent identifies the crawler in HTTP requests and is the
	// token matched against robots.txt User-agent lines. A descriptive
	// User-Agent lets operators identify crawler traffic in their logs.
	DefaultUserAgent = "arachne/1.0 (+https://github.com/arachnid-dev/arachne)"

	// DefaultMaxBodySize limits the response body size read per page.
	// 5MB is sufficient for HTML while preventing memory exhaustion from
	// unexpectedly large responses.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// AppName is the application name used for XDG directory paths.
	AppName = "arachne"
)

// Config holds all options for one crawl run. It is immutable for the
// lifetime of the run.
//
// Design decision: We use a single flat struct instead of nested
// sub-structs. The number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// MaxDepth is the maximum link distance from the seed set.
	// Seeds are depth 0; links found on a depth-d page are depth d+1.
	MaxDepth int

	// MaxPages is the maximum number of pages to store per run.
	// Under high concurrency the count may overshoot by at most
	// Concurrency-1 pages; see the crawler package for the rationale.
	MaxPages int

	// Concurrency is the number of concurrent crawl workers.
	Concurrency int

	// Delay is the minimum interval between request starts to the
	// same host. Zero disables per-host spacing.
	Delay time.Duration

	// UserAgent is sent on every request and used for robots.txt
	// user-agent matching.
	UserAgent string

	// RespectRobots enables robots.txt compliance. When false, no
	// robots.txt is ever fetched and every URL is eligible.
	RespectRobots bool

	// Timeout is the per-request timeout for page fetches.
	Timeout time.Duration

	// MaxBodySize is the maximum response body size in bytes to read.
	// Set to 0 to use DefaultMaxBodySize.
	MaxBodySize int64

	// Seeds are the starting URLs of the crawl.
	Seeds []string

	// ConfigFilePath is the path to the YAML configuration file.
	// If empty, the tool searches for .arachne in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// SiteConfigs holds per-site settings loaded from the config file.
	SiteConfigs *File

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport enables JSON report output instead of the
	// human-readable format. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown report output instead of the
	// human-readable format. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written there instead of stdout.
	ReportFile string

	// DBDir is the directory for the SQLite page database. When set,
	// crawled pages are persisted there in addition to the in-memory
	// result set. When empty, nothing is persisted.
	DBDir string
}

// NewConfig creates a Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because most defaults are non-zero. It also documents what the
// defaults are.
func NewConfig() *Config {
	return &Config{
		MaxDepth:      DefaultMaxDepth,
		MaxPages:      DefaultMaxPages,
		Concurrency:   DefaultConcurrency,
		Delay:         DefaultDelay,
		UserAgent:     DefaultUserAgent,
		RespectRobots: true,
		Timeout:       DefaultTimeout,
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for arachne.
// On Linux: ~/.local/share/arachne
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks whether the configuration can produce a crawl at all.
// It returns the first problem found; fixing one error often makes
// others irrelevant.
//
// Per-URL problems (unreachable seeds, malformed links) are not
// validated here; they are handled, and logged, during the run.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.MaxDepth < 0 {
		return ErrInvalidMaxDepth
	}
	if c.MaxPages < 1 {
		return ErrInvalidMaxPages
	}
	if c.Concurrency < 1 {
		return ErrInvalidConcurrency
	}
	if c.Delay < 0 {
		return ErrInvalidDelay
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
