package crawler

import (
	"fmt"
	"net/url"
	"strings"
)

// Normalize canonicalizes a URL for deduplication. Two URLs that
// normalize to the same string are treated as the same page.
//
// Normalization resolves raw against base (when base is non-nil),
// lowercases the scheme and host, strips default ports (:80 for http,
// :443 for https), drops the fragment, and rewrites an empty path to "/".
// Query strings are preserved as-is.
//
// Only http and https URLs survive; everything else (javascript:,
// mailto:, ftp:, relative URLs without a base, and so on) is rejected.
//
// Normalize is idempotent: feeding its output back in returns the same
// string.
func Normalize(raw string, base *url.URL) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrEmptyURL
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedURL, err)
	}
	if base != nil {
		u = base.ResolveReference(u)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}

	u.Host = strings.ToLower(u.Host)
	switch u.Scheme {
	case "http":
		u.Host = strings.TrimSuffix(u.Host, ":80")
	case "https":
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrMalformedURL, raw)
	}

	u.Fragment = ""
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), nil
}
