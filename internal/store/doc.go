// Package store provides content storage backends for crawled pages.
//
// The crawl engine only requires the single-write ContentStore contract;
// which backend is in use is invisible to it. Two implementations are
// provided: Memory, which backs the result set returned by a run, and
// SQLite, which persists pages across runs for later inspection.
package store
