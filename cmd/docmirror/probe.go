package main

import (
	"context"

	"github.com/fwojciec/docmirror"
)

// ProbeSource decides between the suffix-probe and sitemap-HTML strategies
// by checking whether the site serves raw Markdown at base+".md".
//
// Decision flow:
//   - base+".md" answers 200 with a Markdown-looking body → suffix probing
//   - anything else (404, HTML error page, transport failure) → sitemap HTML
//
// Always returns a usable source name; never fails.
func ProbeSource(ctx context.Context, fetcher docmirror.Fetcher, baseURL string) string {
	resp, err := fetcher.Fetch(ctx, baseURL+".md")
	if err != nil {
		return "sitemap"
	}
	if err := docmirror.ValidateContent(resp, docmirror.KindMarkdown, false); err != nil {
		return "sitemap"
	}
	return "suffix"
}
