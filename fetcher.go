package docmirror

import "context"

// Response is the outcome of a completed HTTP exchange. A non-2xx status is
// not an error at this level; validation decides what to do with it.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

// Fetcher retrieves raw content from URLs.
// Network-level failures are reported as EUNAVAILABLE errors; any exchange
// that produced a status line yields a Response instead.
type Fetcher interface {
	// Fetch retrieves the content at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases client resources.
	Close() error
}
