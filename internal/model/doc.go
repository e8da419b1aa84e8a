// Package model defines the data structures shared across the crawler.
//
// The central type is CrawlResult, which represents one successfully
// fetched page together with the metadata and links extracted from it.
// Results are created once by the page pipeline and never mutated
// afterwards, so they can be shared freely between the worker pool,
// content stores, and report writers.
package model
