package crawl

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/docmirror"
)

// Compile-time interface verification.
var _ docmirror.Strategy = (*SuffixProbe)(nil)

// suffixProbes is the fixed probe order for raw-source sites: .mdx first,
// then .md. This is a priority list, not a race - the secondary suffix is
// only attempted after the primary definitively fails, to avoid wasted
// requests.
var suffixProbes = []struct {
	suffix string
	kind   docmirror.ContentKind
}{
	{".mdx", docmirror.KindMDX},
	{".md", docmirror.KindMarkdown},
}

// SuffixProbe acquires raw Markdown/MDX sources from sites that expose them
// by URL suffix (Mintlify-style). Link discovery falls back to parsing the
// rendered page's HTML when no manifest seeded the run.
type SuffixProbe struct {
	Fetcher     docmirror.Fetcher
	Links       docmirror.LinkExtractor
	Scope       *docmirror.Scope
	Seeder      *ManifestSeeder // optional; supersedes HTML link discovery
	Strict      bool
	RetryDelays []time.Duration
}

// Name returns the strategy identifier.
func (s *SuffixProbe) Name() string { return "suffix-probe" }

// Seed fetches the site manifest, when one is configured. Its navigation
// entries are trusted over incremental HTML discovery since they include
// orphan pages no other page links to. A malformed manifest downgrades to
// link-following discovery instead of aborting the run.
func (s *SuffixProbe) Seed(ctx context.Context) ([]string, error) {
	if s.Seeder == nil {
		return nil, nil
	}
	urls, err := s.Seeder.Seed(ctx)
	if docmirror.ErrorCode(err) == docmirror.EINVALID {
		return nil, nil
	}
	return urls, err
}

// Acquire probes target+".mdx" then target+".md" and returns the first
// accepted result. An HTML response to a probe is treated as the site's
// styled error page, not source content. Link discovery uses a plain fetch
// of the page URL itself, never the suffixed one.
func (s *SuffixProbe) Acquire(ctx context.Context, target string) (*docmirror.Acquisition, error) {
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	lastErr := error(docmirror.Errorf(docmirror.ENOTFOUND, "no source found for %s", target))
	for _, probe := range suffixProbes {
		resp, err := FetchWithRetryDelays(ctx, target+probe.suffix, s.Fetcher.Fetch, nil, delays)
		if err != nil {
			// Transient failure after retries; do not mask it by
			// probing further.
			return nil, err
		}
		if resp.Status == http.StatusNotFound {
			// Expected negative result for a probe.
			continue
		}
		if err := docmirror.ValidateContent(resp, probe.kind, s.Strict); err != nil {
			lastErr = err
			continue
		}

		return &docmirror.Acquisition{
			Body:  resp.Body,
			Kind:  probe.kind,
			Title: firstHeading(resp.Body),
			Links: s.discoverLinks(ctx, target),
		}, nil
	}

	return nil, lastErr
}

// discoverLinks fetches the rendered page and extracts internal anchors.
// Discovery is best-effort; failures yield no links, never an error.
func (s *SuffixProbe) discoverLinks(ctx context.Context, target string) []string {
	if s.Links == nil {
		return nil
	}
	resp, err := s.Fetcher.Fetch(ctx, target)
	if err != nil || resp.Status != http.StatusOK {
		return nil
	}
	links, err := s.Links.ExtractLinks(string(resp.Body), target)
	if err != nil {
		return nil
	}
	return links
}

// firstHeading returns the text of the first level-1 heading in a Markdown
// body, or "".
func firstHeading(body []byte) string {
	for _, line := range strings.Split(string(body), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return ""
}
