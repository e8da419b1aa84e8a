// Package robots implements per-host robots.txt policy for the crawler.
//
// The Cache fetches each host's robots.txt at most once per run, parses it
// with github.com/temoto/robotstxt, and answers allow/deny queries for the
// configured user agent. Concurrent first access to a host is collapsed to
// a single fetch via singleflight.
//
// A fetch failure or a non-2xx response is treated as "no restrictions".
// This matches common crawler convention: an unreachable robots.txt should
// not block a crawl. The outcome is recorded on the cache entry and logged
// so the policy decision stays observable rather than silently swallowed.
package robots
