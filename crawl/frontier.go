package crawl

import (
	"context"
	"strings"
	"sync"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/bloom"
)

// Compile-time interface verification.
var _ docmirror.Frontier = (*Frontier)(nil)

// Frontier is an in-memory URL frontier with FIFO ordering, Bloom filter
// deduplication, and in-flight tracking for termination detection.
// It is safe for concurrent use by multiple goroutines.
//
// The crawl terminates when the queue is empty and no claimed target is
// still in flight; Claim then reports ok=false to every waiting worker.
type Frontier struct {
	mu       sync.Mutex
	cond     *sync.Cond
	seen     *bloom.Filter
	queue    []string
	inflight int
}

// NewFrontier creates a new Frontier sized for n expected URLs
// with the given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	f := &Frontier{
		seen:  bloom.NewFilter(n, fpRate),
		queue: make([]string, 0, 64),
	}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// Enqueue adds a URL to the frontier.
// Returns false if the URL has already been seen. URL fragments are
// stripped before deduplication - URLs differing only by fragment are
// considered duplicates. The seen-set only grows; a URL enters the queue
// at most once.
func (f *Frontier) Enqueue(url string) bool {
	url = stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.seen.Test(url) {
		return false
	}
	f.seen.Add(url)
	f.queue = append(f.queue, url)
	f.cond.Signal()
	return true
}

// Claim removes and returns the oldest queued URL, blocking while the queue
// is empty but claimed targets are still in flight (their discovery may add
// more work). Returns ok=false once the frontier has drained or the context
// is done.
func (f *Frontier) Claim(ctx context.Context) (string, bool) {
	// Wake all waiters if the context is canceled while they block.
	stop := context.AfterFunc(ctx, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer stop()

	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if ctx.Err() != nil {
			return "", false
		}
		if len(f.queue) > 0 {
			url := f.queue[0]
			f.queue = f.queue[1:]
			f.inflight++
			return url, true
		}
		if f.inflight == 0 {
			// Drained: nothing queued, nothing pending.
			return "", false
		}
		f.cond.Wait()
	}
}

// Done marks one claimed target as resolved. When the last in-flight target
// resolves against an empty queue, all blocked Claim calls are released.
func (f *Frontier) Done() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.inflight--
	if f.inflight == 0 && len(f.queue) == 0 {
		f.cond.Broadcast()
	}
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been claimed or queued.
// URL fragments are stripped before checking.
func (f *Frontier) Seen(url string) bool {
	url = stripFragment(url)

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Test(url)
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
