package model

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// MaxHTMLSize is the maximum size of raw page content to retain.
// Larger bodies are truncated to this size to prevent memory issues
// when crawling sites that serve unexpectedly large documents.
const MaxHTMLSize = 5 * 1024 * 1024 // 5 MB

// CrawlResult represents one successfully fetched page.
//
// Design decision: We keep both the raw HTML and the extracted metadata
// because:
//  1. Stores may persist the full document for later re-processing
//  2. Reports only need the lightweight metadata
//  3. The hash allows deduplication and change detection across runs
type CrawlResult struct {
	// URL is the normalized URL the page was fetched from.
	URL string `json:"url"`

	// DiscoveredFrom is the URL of the page that linked here.
	// Empty for seed URLs. Kept for diagnostics only.
	DiscoveredFrom string `json:"discovered_from,omitempty"`

	// Depth is the breadth-first distance from the seed set.
	// Seeds are depth 0.
	Depth int `json:"depth"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response, without parameters.
	ContentType string `json:"content_type"`

	// Title is the page title from the <title> tag, if any.
	Title string `json:"title,omitempty"`

	// Description is the content of <meta name="description">, if any.
	Description string `json:"description,omitempty"`

	// Links are the absolute http(s) URLs discovered on the page,
	// in document order. May contain duplicates; deduplication happens
	// at the frontier.
	Links []string `json:"links,omitempty"`

	// HTML is the raw response body, capped at MaxHTMLSize.
	// Excluded from JSON to keep reports small.
	HTML []byte `json:"-"`

	// Hash is the SHA-256 hash of the raw body.
	Hash string `json:"hash,omitempty"`

	// FetchedAt is the time the fetch completed.
	FetchedAt time.Time `json:"fetched_at"`
}

// ComputeHash calculates and sets the SHA-256 hash of the raw body.
// Call after setting HTML.
func (r *CrawlResult) ComputeHash() {
	if len(r.HTML) == 0 {
		r.Hash = ""
		return
	}
	sum := sha256.Sum256(r.HTML)
	r.Hash = hex.EncodeToString(sum[:])
}

// TruncateHTML enforces the MaxHTMLSize cap on the raw body.
func (r *CrawlResult) TruncateHTML() {
	if len(r.HTML) > MaxHTMLSize {
		r.HTML = r.HTML[:MaxHTMLSize]
	}
}

// IsHTML reports whether the content type indicates an HTML document.
func (r *CrawlResult) IsHTML() bool {
	return r.ContentType == "text/html" ||
		r.ContentType == "application/xhtml+xml" ||
		strings.HasPrefix(r.ContentType, "text/html;")
}
