package crawl_test

import (
	"context"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/crawl"
	"github.com/fwojciec/docmirror/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScope(t *testing.T, baseURL string) *docmirror.Scope {
	t.Helper()
	scope, err := docmirror.NewScope(baseURL, nil)
	require.NoError(t, err)
	return scope
}

func TestSuffixProbe_prefers_mdx(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			switch url {
			case "https://docs.example.com/guide/intro.mdx":
				return &docmirror.Response{Status: 200, ContentType: "text/markdown", Body: []byte("# Intro\n\nMDX body")}, nil
			case "https://docs.example.com/guide/intro.md":
				t.Fatal(".md must not be probed when .mdx succeeds")
			}
			return &docmirror.Response{Status: 404}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	acq, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	require.NoError(t, err)
	assert.Equal(t, docmirror.KindMDX, acq.Kind)
	assert.Equal(t, "Intro", acq.Title)
	assert.Equal(t, []byte("# Intro\n\nMDX body"), acq.Body)
}

func TestSuffixProbe_falls_back_to_md(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			if url == "https://docs.example.com/guide/intro.md" {
				return &docmirror.Response{Status: 200, ContentType: "text/plain", Body: []byte("# Intro")}, nil
			}
			return &docmirror.Response{Status: 404}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	acq, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	require.NoError(t, err)
	assert.Equal(t, docmirror.KindMarkdown, acq.Kind)
}

func TestSuffixProbe_html_probe_response_is_error_page(t *testing.T) {
	t.Parallel()

	// The site answers every path with a styled 200 HTML page. Neither
	// probe may accept it as source content.
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			return &docmirror.Response{
				Status:      200,
				ContentType: "text/html; charset=utf-8",
				Body:        []byte("<!DOCTYPE html><html><body>Page not found</body></html>"),
			}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	_, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
}

func TestSuffixProbe_both_probes_404(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			return &docmirror.Response{Status: 404}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	_, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/missing")
	assert.Equal(t, docmirror.ENOTFOUND, docmirror.ErrorCode(err))
}

func TestSuffixProbe_transient_error_not_masked_by_second_probe(t *testing.T) {
	t.Parallel()

	var mdProbed bool
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			if url == "https://docs.example.com/guide/intro.md" {
				mdProbed = true
			}
			return nil, docmirror.Errorf(docmirror.EUNAVAILABLE, "connection reset")
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	_, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	assert.Equal(t, docmirror.EUNAVAILABLE, docmirror.ErrorCode(err))
	assert.False(t, mdProbed, "network failure on .mdx must surface, not continue to .md")
}

func TestSuffixProbe_discovers_links_from_rendered_page(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			switch url {
			case "https://docs.example.com/guide/intro.mdx":
				return &docmirror.Response{Status: 200, ContentType: "text/markdown", Body: []byte("# Intro")}, nil
			case "https://docs.example.com/guide/intro":
				return &docmirror.Response{Status: 200, ContentType: "text/html", Body: []byte("<html>...</html>")}, nil
			}
			return &docmirror.Response{Status: 404}, nil
		},
	}
	links := &mock.LinkExtractor{
		ExtractLinksFn: func(html, baseURL string) ([]string, error) {
			return []string{"https://docs.example.com/guide/next"}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Links:       links,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		RetryDelays: fastDelays(),
	}

	acq, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://docs.example.com/guide/next"}, acq.Links)
}

func TestSuffixProbe_strict_rejects_plain_prose(t *testing.T) {
	t.Parallel()

	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*docmirror.Response, error) {
			if url == "https://docs.example.com/guide/intro.mdx" {
				return &docmirror.Response{Status: 200, ContentType: "text/plain", Body: []byte("just some words with no structure at all")}, nil
			}
			return &docmirror.Response{Status: 404}, nil
		},
	}

	strategy := &crawl.SuffixProbe{
		Fetcher:     fetcher,
		Scope:       newScope(t, "https://docs.example.com/guide"),
		Strict:      true,
		RetryDelays: fastDelays(),
	}

	_, err := strategy.Acquire(context.Background(), "https://docs.example.com/guide/intro")
	assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
}
