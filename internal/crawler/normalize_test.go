package crawler

import (
	"errors"
	"net/url"
	"testing"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/dir/page.html")
	if err != nil {
		t.Fatalf("url.Parse() error: %v", err)
	}

	tests := []struct {
		name    string
		raw     string
		base    *url.URL
		want    string
		wantErr error
	}{
		{
			name: "already canonical",
			raw:  "https://example.com/path",
			want: "https://example.com/path",
		},
		{
			name: "uppercase scheme and host",
			raw:  "HTTPS://EXAMPLE.COM/Path",
			want: "https://example.com/Path",
		},
		{
			name: "path case is preserved",
			raw:  "https://example.com/CaseSensitive",
			want: "https://example.com/CaseSensitive",
		},
		{
			name: "default https port stripped",
			raw:  "https://example.com:443/a",
			want: "https://example.com/a",
		},
		{
			name: "default http port stripped",
			raw:  "http://example.com:80/a",
			want: "http://example.com/a",
		},
		{
			name: "non-default port kept",
			raw:  "https://example.com:8443/a",
			want: "https://example.com:8443/a",
		},
		{
			name: "fragment dropped",
			raw:  "https://example.com/a#section",
			want: "https://example.com/a",
		},
		{
			name: "empty path becomes slash",
			raw:  "https://example.com",
			want: "https://example.com/",
		},
		{
			name: "query preserved",
			raw:  "https://example.com/search?q=go&page=2",
			want: "https://example.com/search?q=go&page=2",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  https://example.com/a  ",
			want: "https://example.com/a",
		},
		{
			name: "relative path resolved against base",
			raw:  "other.html",
			base: base,
			want: "https://example.com/dir/other.html",
		},
		{
			name: "root-relative path resolved against base",
			raw:  "/top",
			base: base,
			want: "https://example.com/top",
		},
		{
			name: "protocol-relative URL resolved against base",
			raw:  "//cdn.example.com/x",
			base: base,
			want: "https://cdn.example.com/x",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "ftp scheme rejected",
			raw:     "ftp://example.com/file",
			wantErr: ErrUnsupportedScheme,
		},
		{
			name:    "mailto rejected",
			raw:     "mailto:user@example.com",
			wantErr: ErrUnsupportedScheme,
		},
		{
			name:    "relative URL without base rejected",
			raw:     "page.html",
			wantErr: ErrUnsupportedScheme,
		},
		{
			name:    "scheme without host rejected",
			raw:     "https:///path",
			wantErr: ErrMalformedURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Normalize(tt.raw, tt.base)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Normalize(%q) error = %v, want %v", tt.raw, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"HTTPS://Example.COM:443",
		"http://example.com:80/a/b?x=1#frag",
		"https://example.com/search?q=go",
	}

	for _, raw := range inputs {
		once, err := Normalize(raw, nil)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", raw, err)
		}
		twice, err := Normalize(once, nil)
		if err != nil {
			t.Fatalf("Normalize(%q) error: %v", once, err)
		}
		if once != twice {
			t.Errorf("not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}
