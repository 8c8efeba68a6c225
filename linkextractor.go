package docmirror

// LinkExtractor extracts internal anchor targets from HTML.
type LinkExtractor interface {
	// ExtractLinks parses HTML and returns absolute same-host URLs in
	// document order, deduplicated. The baseURL is used to resolve
	// relative hrefs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
