// Package main provides the entry point for the arachne CLI.
//
// Arachne is a polite, concurrent web crawler. It walks a site
// breadth-first from one or more seed URLs, respecting robots.txt and
// per-host rate limits, and reports the pages it found.
//
// Usage:
//
//	arachne crawl <url> [<url>...]
//	arachne crawl --depth 2 --max-pages 50 <url>
//
// See --help for all available options.
package main

// main is the entry point for arachne.
func main() {
	Execute()
}
