package docmirror

import "context"

// ContentKind identifies what kind of source a page body holds.
type ContentKind string

// Content kinds produced by acquisition strategies.
const (
	KindMarkdown ContentKind = "markdown" // raw .md source
	KindMDX      ContentKind = "mdx"      // raw .mdx source
	KindHTML     ContentKind = "html"     // markdown converted from rendered HTML
)

// Ext returns the file extension for content of this kind.
func (k ContentKind) Ext() string {
	if k == KindMDX {
		return ".mdx"
	}
	return ".md"
}

// Acquisition is the successful outcome of retrieving one target. It is
// consumed immediately by validation and persistence, never stored.
type Acquisition struct {
	// Body is the ready-to-persist page content.
	Body []byte

	// Kind records how the content was acquired.
	Kind ContentKind

	// Title is the page title, when the strategy extracts one.
	Title string

	// Links holds newly discovered absolute URLs. They are unfiltered;
	// the caller applies scope rules before enqueueing.
	Links []string
}

// Strategy performs the provider-specific acquisition sequence for a site
// family. A strategy is selected once per run.
//
// Failed acquisitions are reported through error codes: ENOTFOUND when the
// source does not exist, EINVALID when the content was rejected, and
// EUNAVAILABLE when the network failed after retries. None of these abort
// the run.
type Strategy interface {
	// Name returns the strategy identifier (e.g., "suffix-probe").
	Name() string

	// Seed performs one-shot discovery at run start and returns the
	// initial URL set. An empty result is not an error; the crawler
	// always seeds the base URL itself.
	Seed(ctx context.Context) ([]string, error)

	// Acquire retrieves and prepares content for one target.
	Acquire(ctx context.Context, target string) (*Acquisition, error)
}
