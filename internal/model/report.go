package model

import "time"

// CrawlReport is the complete record of one crawl run, combining the run
// parameters, outcome counters, and the pages collected.
type CrawlReport struct {
	// Seeds are the starting URLs as given on the command line.
	Seeds []string `json:"seeds"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the crawl ran.
	Duration time.Duration `json:"duration"`

	// PagesCrawled is the number of pages fetched and stored.
	PagesCrawled int `json:"pages_crawled"`

	// PagesFailed is the number of pages dropped by fetch, content type,
	// or storage errors.
	PagesFailed int `json:"pages_failed"`

	// PagesDenied is the number of URLs refused by robots.txt.
	PagesDenied int `json:"pages_denied"`

	// URLsSeen is the number of distinct URLs discovered, including
	// those never fetched.
	URLsSeen int `json:"urls_seen"`

	// Canceled reports whether the run was interrupted before finishing.
	Canceled bool `json:"canceled"`

	// Pages holds the crawled pages in completion order.
	Pages []*CrawlResult `json:"pages"`
}

// DurationSeconds returns the crawl duration rounded to milliseconds,
// for display.
func (r *CrawlReport) DurationSeconds() float64 {
	return r.Duration.Round(time.Millisecond).Seconds()
}
