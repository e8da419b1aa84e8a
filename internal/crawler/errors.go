package crawler

import (
	"errors"
	"fmt"
)

// URL normalization errors. Links failing normalization are discarded
// quietly; seeds failing normalization are logged, and a run with no
// surviving seed fails with ErrNoValidSeeds.
var (
	// ErrEmptyURL is returned for empty or whitespace-only URLs.
	ErrEmptyURL = errors.New("empty URL")

	// ErrMalformedURL is returned when a URL cannot be parsed or has no host.
	ErrMalformedURL = errors.New("malformed URL")

	// ErrUnsupportedScheme is returned for non-http(s) URLs.
	ErrUnsupportedScheme = errors.New("unsupported URL scheme")

	// ErrNoValidSeeds is returned by Run when every seed URL was rejected
	// during normalization. This is the only per-URL condition that is
	// fatal to a run: with no valid seed there is nothing to crawl.
	ErrNoValidSeeds = errors.New("no valid seed URLs after normalization")
)

// ErrorKind classifies why a single URL's processing failed.
// Every skipped or failed URL is logged with its kind so failures stay
// attributable in telemetry.
type ErrorKind string

// Page error kinds.
const (
	// KindTransport covers DNS, connection, and timeout failures.
	KindTransport ErrorKind = "transport"

	// KindHTTPStatus covers non-2xx responses.
	KindHTTPStatus ErrorKind = "http_status"

	// KindNotHTML covers responses whose content type is not HTML.
	KindNotHTML ErrorKind = "not_html"

	// KindExtract covers HTML documents the extractor could not parse.
	// Pages degraded this way are kept without metadata, not dropped;
	// the kind appears in logs only.
	KindExtract ErrorKind = "extract"

	// KindStore covers content store write failures.
	KindStore ErrorKind = "store"
)

// PageError describes the failure of one URL's processing. Page errors
// are always local: they end that URL's crawl but never the run.
type PageError struct {
	// URL is the normalized URL that failed.
	URL string

	// Kind classifies the failure.
	Kind ErrorKind

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e *PageError) Error() string {
	return fmt.Sprintf("%s: %s error: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying cause.
func (e *PageError) Unwrap() error {
	return e.Err
}
