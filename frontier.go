package docmirror

import "context"

// Frontier manages the crawl queue with deduplication and termination
// detection. Targets are claimed in FIFO order to approximate breadth-first
// traversal, keeping directory-adjacent pages close together.
type Frontier interface {
	// Enqueue adds a normalized target to the queue.
	// Returns false if the URL has already been seen; insertion is
	// idempotent and the seen-set only grows.
	Enqueue(url string) bool

	// Claim removes and returns the next target. It blocks while the
	// queue is empty but claimed targets are still in flight, since
	// in-flight discovery may add more work. Returns ok=false once the
	// frontier has drained (queue empty, nothing in flight) or the
	// context is done.
	Claim(ctx context.Context) (url string, ok bool)

	// Done marks one claimed target as resolved. Every successful Claim
	// must be paired with exactly one Done.
	Done()

	// Len returns the number of queued targets.
	Len() int

	// Seen reports whether the URL has ever been enqueued.
	Seen(url string) bool
}
