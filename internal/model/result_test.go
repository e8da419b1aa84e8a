package model

import (
	"strings"
	"testing"
)

func TestCrawlResultComputeHash(t *testing.T) {
	t.Parallel()

	t.Run("empty body yields empty hash", func(t *testing.T) {
		t.Parallel()

		r := &CrawlResult{}
		r.ComputeHash()
		if r.Hash != "" {
			t.Errorf("expected empty hash, got %q", r.Hash)
		}
	})

	t.Run("hash is deterministic", func(t *testing.T) {
		t.Parallel()

		a := &CrawlResult{HTML: []byte("<html></html>")}
		b := &CrawlResult{HTML: []byte("<html></html>")}
		a.ComputeHash()
		b.ComputeHash()

		if a.Hash == "" {
			t.Fatal("expected non-empty hash")
		}
		if a.Hash != b.Hash {
			t.Errorf("same content produced different hashes: %q vs %q", a.Hash, b.Hash)
		}
	})
}

func TestCrawlResultTruncateHTML(t *testing.T) {
	t.Parallel()

	r := &CrawlResult{HTML: []byte(strings.Repeat("a", MaxHTMLSize+100))}
	r.TruncateHTML()
	if len(r.HTML) != MaxHTMLSize {
		t.Errorf("expected body truncated to %d bytes, got %d", MaxHTMLSize, len(r.HTML))
	}
}

func TestCrawlResultIsHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		contentType string
		want        bool
	}{
		{"text/html", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"application/json", false},
		{"image/png", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			t.Parallel()

			r := &CrawlResult{ContentType: tt.contentType}
			if got := r.IsHTML(); got != tt.want {
				t.Errorf("IsHTML() with %q = %v, want %v", tt.contentType, got, tt.want)
			}
		})
	}
}
