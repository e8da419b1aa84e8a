package store

import (
	"context"
	"sync"

	"github.com/arachnid-dev/arachne/internal/model"
)

// ContentStore persists crawled pages. Implementations must be safe for
// concurrent use; workers call Put from many goroutines.
type ContentStore interface {
	// Put stores one crawl result.
	Put(ctx context.Context, result *model.CrawlResult) error
}

// Memory is an in-memory ContentStore. Pages are appended in completion
// order.
type Memory struct {
	mu    sync.Mutex
	pages []*model.CrawlResult
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{pages: make([]*model.CrawlResult, 0)}
}

// Put appends the result.
func (m *Memory) Put(_ context.Context, result *model.CrawlResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages = append(m.pages, result)
	return nil
}

// Pages returns a snapshot of everything stored so far.
func (m *Memory) Pages() []*model.CrawlResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*model.CrawlResult, len(m.pages))
	copy(out, m.pages)
	return out
}

// Len returns the number of stored pages.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pages)
}
