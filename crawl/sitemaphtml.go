package crawl

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/docmirror"
)

// Compile-time interface verification.
var _ docmirror.Strategy = (*SitemapHTML)(nil)

// SitemapHTML acquires pages from sites that only expose rendered HTML
// (MkDocs, GitBook and similar). Discovery is sitemap-driven; per-page
// acquisition fetches the HTML, isolates the main content region, and
// converts it to Markdown.
type SitemapHTML struct {
	Fetcher   docmirror.Fetcher
	Sitemaps  docmirror.SitemapService
	Extractor docmirror.Extractor
	Fallback  docmirror.Extractor // optional; tried when Extractor yields no content
	Converter docmirror.Converter
	Links     docmirror.LinkExtractor
	Scope     *docmirror.Scope

	RetryDelays []time.Duration
}

// Name returns the strategy identifier.
func (s *SitemapHTML) Name() string { return "sitemap-html" }

// Seed discovers leaf URLs through the site's sitemaps: robots.txt
// directives first, /sitemap.xml as fallback, sitemap indexes resolved
// recursively. An unreachable site is a fatal seeding failure; a site
// without sitemaps simply yields no seeds and discovery continues through
// page links.
func (s *SitemapHTML) Seed(ctx context.Context) ([]string, error) {
	return s.Sitemaps.DiscoverURLs(ctx, s.Scope.BaseURL(), s.Scope.Filter)
}

// Acquire fetches the rendered page and converts its content region to
// Markdown with YAML frontmatter recording the source URL.
func (s *SitemapHTML) Acquire(ctx context.Context, target string) (*docmirror.Acquisition, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	resp, err := FetchWithRetryDelays(ctx, target, s.Fetcher.Fetch, nil, delays)
	if err != nil {
		return nil, err
	}
	if resp.Status == http.StatusNotFound {
		return nil, docmirror.Errorf(docmirror.ENOTFOUND, "page not found: %s", target)
	}
	if err := docmirror.ValidateContent(resp, docmirror.KindHTML, false); err != nil {
		return nil, err
	}

	html := string(resp.Body)

	extracted, err := s.extract(html)
	if err != nil {
		return nil, err
	}

	markdown, err := s.Converter.Convert(extracted.ContentHTML)
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "conversion failed for %s: %v", target, err)
	}

	acq := &docmirror.Acquisition{
		Body:  []byte(FormatPage(target, extracted.Title, markdown)),
		Kind:  docmirror.KindHTML,
		Title: extracted.Title,
	}

	// Sitemaps can miss orphan pages; page links extend discovery.
	if s.Links != nil {
		if links, err := s.Links.ExtractLinks(html, target); err == nil {
			acq.Links = links
		}
	}

	return acq, nil
}

// extract runs the primary extractor and falls back to the secondary one
// when the primary finds no usable content region.
func (s *SitemapHTML) extract(html string) (*docmirror.ExtractResult, error) {
	result, err := s.Extractor.Extract(html)
	if err == nil && result.ContentHTML != "" {
		return result, nil
	}
	if s.Fallback != nil {
		if fallback, ferr := s.Fallback.Extract(html); ferr == nil && fallback.ContentHTML != "" {
			return fallback, nil
		}
	}
	if err != nil {
		return nil, docmirror.Errorf(docmirror.EINVALID, "content extraction failed: %v", err)
	}
	return nil, docmirror.Errorf(docmirror.EINVALID, "no content region found")
}
