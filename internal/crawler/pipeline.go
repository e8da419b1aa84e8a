package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/arachnid-dev/arachne/internal/extract"
	"github.com/arachnid-dev/arachne/internal/fetch"
	"github.com/arachnid-dev/arachne/internal/model"
	"github.com/arachnid-dev/arachne/internal/store"
)

// Fetcher retrieves pages over the network.
type Fetcher interface {
	// Fetch performs a GET request for the URL.
	Fetch(ctx context.Context, rawURL string) (*fetch.Response, error)
}

// Extractor pulls the title, description, and links out of an HTML body.
type Extractor interface {
	// Extract parses body and resolves links against base.
	Extract(body []byte, base *url.URL) (*extract.Result, error)
}

// pipeline runs one URL through fetch, extract, and store.
type pipeline struct {
	fetcher   Fetcher
	extractor Extractor
	store     store.ContentStore
	logger    *slog.Logger
}

// process fetches, extracts, and stores one entry. It returns the stored
// result, or a PageError describing why the entry was dropped. An
// extraction failure does not drop the page; the page is kept with empty
// metadata and the degradation is logged.
func (p *pipeline) process(ctx context.Context, e Entry) (*model.CrawlResult, *PageError) {
	resp, err := p.fetcher.Fetch(ctx, e.URL)
	if err != nil {
		return nil, &PageError{URL: e.URL, Kind: KindTransport, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, &PageError{
			URL:  e.URL,
			Kind: KindHTTPStatus,
			Err:  fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	result := &model.CrawlResult{
		URL:            e.URL,
		DiscoveredFrom: e.DiscoveredFrom,
		Depth:          e.Depth,
		StatusCode:     resp.StatusCode,
		ContentType:    resp.ContentType(),
		HTML:           resp.Body,
		FetchedAt:      time.Now().UTC(),
	}
	if !result.IsHTML() {
		return nil, &PageError{
			URL:  e.URL,
			Kind: KindNotHTML,
			Err:  fmt.Errorf("content type %q is not HTML", result.ContentType),
		}
	}
	result.ComputeHash()
	result.TruncateHTML()

	// The entry URL is normalized, so parsing cannot fail here.
	base, err := url.Parse(e.URL)
	if err != nil {
		return nil, &PageError{URL: e.URL, Kind: KindExtract, Err: err}
	}

	extracted, err := p.extractor.Extract(result.HTML, base)
	if err != nil {
		p.logger.Warn("extraction failed, keeping page without metadata",
			"url", e.URL, "kind", KindExtract, "error", err)
	} else {
		result.Title = extracted.Title
		result.Description = extracted.Description
		result.Links = extracted.Links
	}

	if err := p.store.Put(ctx, result); err != nil {
		return nil, &PageError{URL: e.URL, Kind: KindStore, Err: err}
	}
	return result, nil
}
