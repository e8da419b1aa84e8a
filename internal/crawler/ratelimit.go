package crawler

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// HostLimiter enforces a minimum delay between request starts to the
// same host. Each host gets its own token bucket with burst 1, created
// lazily on first use, so different hosts never slow each other down.
type HostLimiter struct {
	delay    time.Duration
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

// NewHostLimiter creates a limiter spacing same-host requests by delay.
// A non-positive delay disables limiting.
func NewHostLimiter(delay time.Duration) *HostLimiter {
	return &HostLimiter{
		delay:    delay,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until the host's next request slot is available or the
// context is canceled. The first request to a host proceeds immediately.
func (l *HostLimiter) Wait(ctx context.Context, host string) error {
	return l.WaitAtLeast(ctx, host, 0)
}

// WaitAtLeast is Wait with a per-host floor on the spacing: requests to
// the host are spaced by the larger of the configured delay and min.
// Used to honor a robots.txt Crawl-delay that exceeds the configured
// delay. The host's limiter is created on first use with the effective
// delay and keeps it for the run.
func (l *HostLimiter) WaitAtLeast(ctx context.Context, host string, min time.Duration) error {
	delay := l.delay
	if min > delay {
		delay = min
	}
	if delay <= 0 {
		return nil
	}

	l.mu.Lock()
	lim, ok := l.limiters[host]
	if !ok {
		lim = rate.NewLimiter(rate.Every(delay), 1)
		l.limiters[host] = lim
	}
	l.mu.Unlock()

	return lim.Wait(ctx)
}
