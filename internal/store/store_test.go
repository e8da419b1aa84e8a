package store

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/arachnid-dev/arachne/internal/model"
)

func TestMemoryStore(t *testing.T) {
	t.Parallel()

	t.Run("put and read back", func(t *testing.T) {
		t.Parallel()

		m := NewMemory()
		r := &model.CrawlResult{URL: "https://example.com/", Title: "Example"}
		if err := m.Put(context.Background(), r); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		pages := m.Pages()
		if len(pages) != 1 || pages[0].URL != "https://example.com/" {
			t.Errorf("unexpected pages: %+v", pages)
		}
		if m.Len() != 1 {
			t.Errorf("Len() = %d, want 1", m.Len())
		}
	})

	t.Run("concurrent puts are safe", func(t *testing.T) {
		t.Parallel()

		m := NewMemory()
		var wg sync.WaitGroup
		for i := range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = m.Put(context.Background(), &model.CrawlResult{
					URL: fmt.Sprintf("https://example.com/p%d", i),
				})
			}()
		}
		wg.Wait()

		if m.Len() != 50 {
			t.Errorf("Len() = %d, want 50", m.Len())
		}
	})

	t.Run("pages returns a snapshot", func(t *testing.T) {
		t.Parallel()

		m := NewMemory()
		_ = m.Put(context.Background(), &model.CrawlResult{URL: "https://a.test/"})

		snapshot := m.Pages()
		_ = m.Put(context.Background(), &model.CrawlResult{URL: "https://b.test/"})

		if len(snapshot) != 1 {
			t.Errorf("snapshot grew after later Put: %d entries", len(snapshot))
		}
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Parallel()

	newStore := func(t *testing.T) *SQLite {
		t.Helper()
		s, err := OpenSQLite(t.TempDir(), DefaultOptions())
		if err != nil {
			t.Fatalf("OpenSQLite() error: %v", err)
		}
		t.Cleanup(func() { _ = s.Close() })
		return s
	}

	t.Run("put and load round trip", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		ctx := context.Background()

		want := &model.CrawlResult{
			URL:            "https://example.com/page",
			DiscoveredFrom: "https://example.com/",
			Depth:          1,
			StatusCode:     200,
			ContentType:    "text/html",
			Title:          "Page",
			Description:    "A page",
			Links:          []string{"https://example.com/next"},
			HTML:           []byte("<html></html>"),
			FetchedAt:      time.Now().UTC().Truncate(time.Second),
		}
		want.ComputeHash()

		if err := s.Put(ctx, want); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		got, err := s.Page(ctx, want.URL)
		if err != nil {
			t.Fatalf("Page() error: %v", err)
		}
		if got.Title != want.Title || got.Depth != want.Depth || got.Hash != want.Hash {
			t.Errorf("round trip mismatch: got %+v", got)
		}
		if len(got.Links) != 1 || got.Links[0] != want.Links[0] {
			t.Errorf("links mismatch: %v", got.Links)
		}
	})

	t.Run("put same URL twice keeps one row", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		ctx := context.Background()

		first := &model.CrawlResult{URL: "https://example.com/", Title: "old", FetchedAt: time.Now()}
		second := &model.CrawlResult{URL: "https://example.com/", Title: "new", FetchedAt: time.Now()}

		if err := s.Put(ctx, first); err != nil {
			t.Fatalf("Put() error: %v", err)
		}
		if err := s.Put(ctx, second); err != nil {
			t.Fatalf("Put() error: %v", err)
		}

		n, err := s.Count(ctx)
		if err != nil {
			t.Fatalf("Count() error: %v", err)
		}
		if n != 1 {
			t.Errorf("Count() = %d, want 1", n)
		}

		got, err := s.Page(ctx, "https://example.com/")
		if err != nil {
			t.Fatalf("Page() error: %v", err)
		}
		if got.Title != "new" {
			t.Errorf("Title = %q, want the replacement row", got.Title)
		}
	})

	t.Run("missing page returns error", func(t *testing.T) {
		t.Parallel()

		s := newStore(t)
		if _, err := s.Page(context.Background(), "https://never.test/"); err == nil {
			t.Error("expected error for missing page")
		}
	})

	t.Run("missing database without create option", func(t *testing.T) {
		t.Parallel()

		_, err := OpenSQLite(t.TempDir(), Options{CreateIfNotExists: false})
		if err == nil {
			t.Error("expected error when database does not exist")
		}
	})
}
