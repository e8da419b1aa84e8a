package extract

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Result contains the information extracted from one HTML page.
type Result struct {
	// Title is the text of the first <title> element, trimmed.
	Title string

	// Description is the content of <meta name="description">, if any.
	Description string

	// Links are the absolute http(s) URLs from <a href> elements, in
	// document order. Duplicates are preserved; deduplication is the
	// frontier's job.
	Links []string
}

// Extractor parses HTML documents.
// It holds no state and is safe for concurrent use.
type Extractor struct{}

// NewExtractor creates an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the document and returns its title, description, and
// links. base is the URL the document was fetched from; relative hrefs
// are resolved against it.
func (e *Extractor) Extract(body []byte, base *url.URL) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	result := &Result{
		Links: make([]string, 0),
	}

	result.Title = strings.TrimSpace(doc.Find("title").First().Text())

	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok {
		result.Description = strings.TrimSpace(desc)
	}

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if resolved := resolveLink(href, base); resolved != "" {
			result.Links = append(result.Links, resolved)
		}
	})

	return result, nil
}

// resolveLink resolves an href against the base URL and filters out
// anything that cannot be crawled. Returns "" for skipped links.
func resolveLink(href string, base *url.URL) string {
	href = strings.TrimSpace(href)
	if href == "" || href == "#" ||
		strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}

	resolved := base.ResolveReference(u)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
