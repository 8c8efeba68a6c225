package docmirror

// ExtractResult holds the extracted content region of an HTML page.
type ExtractResult struct {
	// Title is the page title extracted from the heading or metadata.
	Title string

	// ContentHTML is the main content as clean HTML. Chrome (nav, footer,
	// sidebar, previous/next pagination) has been removed.
	ContentHTML string
}

// Extractor isolates the main content region of an HTML page, discarding
// boilerplate.
type Extractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*ExtractResult, error)
}
