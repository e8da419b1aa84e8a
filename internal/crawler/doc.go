// Package crawler implements the breadth-first crawl engine.
//
// # Architecture
//
// The Spider coordinates a pool of workers over a shared Frontier. Each
// worker repeatedly pulls a (URL, depth) entry, consults the robots policy
// and the per-host rate limiter, runs the page pipeline (fetch, extract,
// store), and feeds discovered links back into the Frontier. The run ends
// when the Frontier is empty and no worker is mid-flight, or when the page
// budget is exhausted.
//
// # Components
//
//   - Normalize: canonicalizes URLs; two URLs that normalize identically
//     are the same page for deduplication purposes
//   - Frontier: FIFO queue, visited set, and idle detection in one
//     internally-synchronized structure
//   - HostLimiter: per-host minimum spacing between request starts
//   - Spider: the scheduler and worker pool
//
// The fetch, extraction, and storage operations are consumed as abstract
// collaborators so transports and backends can vary independently of the
// scheduling logic.
//
// # Politeness
//
// The crawler respects robots.txt (configurable), spaces requests to the
// same host by a configurable delay, and bounds both crawl depth and the
// total number of pages fetched.
package crawler
