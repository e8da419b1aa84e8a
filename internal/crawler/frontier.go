package crawler

import "sync"

// Entry is one unit of crawl work.
type Entry struct {
	// URL is the normalized URL to crawl.
	URL string

	// Depth is the link distance from a seed. Seeds are depth 0.
	Depth int

	// DiscoveredFrom is the normalized URL of the page whose link led
	// here. Empty for seeds.
	DiscoveredFrom string
}

// Frontier is the crawl's work queue. It combines a FIFO queue, the
// visited set, and idle detection behind one mutex so the admission
// decision (unseen and within depth) and the insertion happen atomically.
//
// Termination works via an active count. Next increments it when handing
// out an entry; the worker calls Done after it has enqueued any children.
// The crawl is over when the queue is empty and no entry is mid-flight,
// because only mid-flight entries can produce new work.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	queue    []Entry
	seen     map[string]struct{}
	active   int
	closed   bool
	maxDepth int
}

// NewFrontier creates an empty frontier. Entries deeper than maxDepth
// are rejected at enqueue time.
func NewFrontier(maxDepth int) *Frontier {
	f := &Frontier{
		seen:     make(map[string]struct{}),
		maxDepth: maxDepth,
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// TryEnqueue offers an entry to the frontier. It reports whether the
// entry was accepted. Entries already seen, deeper than the depth limit,
// or offered after Close are rejected. A URL is marked seen the moment
// it is accepted, so no URL is ever queued twice even under concurrent
// offers.
func (f *Frontier) TryEnqueue(e Entry) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || e.Depth > f.maxDepth {
		return false
	}
	if _, ok := f.seen[e.URL]; ok {
		return false
	}
	f.seen[e.URL] = struct{}{}
	f.queue = append(f.queue, e)
	f.cond.Signal()
	return true
}

// Next blocks until an entry is available, then returns it with ok=true
// and counts the caller as active. It returns ok=false when the crawl is
// over: the queue is empty with no active worker, or the frontier was
// closed. Callers must pair every successful Next with a Done.
func (f *Frontier) Next() (Entry, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for len(f.queue) == 0 && f.active > 0 && !f.closed {
		f.cond.Wait()
	}
	if f.closed || len(f.queue) == 0 {
		// Wake the remaining waiters so they observe the end too.
		f.cond.Broadcast()
		return Entry{}, false
	}

	e := f.queue[0]
	f.queue = f.queue[1:]
	f.active++
	return e, true
}

// Done marks one mid-flight entry as finished. It must be called after
// the worker has enqueued all children discovered from that entry, so
// the frontier never looks idle while new work is still on the way.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.active--
	if f.active == 0 && len(f.queue) == 0 {
		f.cond.Broadcast()
	}
}

// Close drains the frontier and wakes all blocked callers. Subsequent
// TryEnqueue calls are rejected and Next returns ok=false. Used for
// cancellation and when the page budget runs out.
func (f *Frontier) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.queue = nil
	f.cond.Broadcast()
}

// SeenCount returns how many distinct URLs were ever accepted.
func (f *Frontier) SeenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
