package docmirror_test

import (
	"regexp"
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trailing slash trimmed", "https://docs.example.com/guide/", "https://docs.example.com/guide"},
		{"fragment stripped", "https://docs.example.com/guide#intro", "https://docs.example.com/guide"},
		{"query stripped", "https://docs.example.com/guide?v=2", "https://docs.example.com/guide"},
		{"bare host", "https://docs.example.com/", "https://docs.example.com"},
		{"already canonical", "https://docs.example.com/guide/intro", "https://docs.example.com/guide/intro"},
		{"surrounding whitespace", " https://docs.example.com/guide ", "https://docs.example.com/guide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := docmirror.NormalizeURL(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeURL_Equivalence(t *testing.T) {
	t.Parallel()

	// A path and its trailing-slash form identify the same target.
	a, err := docmirror.NormalizeURL("https://docs.example.com/guide/page")
	require.NoError(t, err)
	b, err := docmirror.NormalizeURL("https://docs.example.com/guide/page/")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestNormalizeURL_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
	}{
		{"relative", "/guide/intro"},
		{"no host", "https:///guide"},
		{"bad scheme", "ftp://example.com/docs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := docmirror.NormalizeURL(tt.in)
			assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
		})
	}
}

func TestScope_Allows(t *testing.T) {
	t.Parallel()

	scope, err := docmirror.NewScope("https://docs.example.com/guide/", nil)
	require.NoError(t, err)

	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"base itself", "https://docs.example.com/guide", true},
		{"nested page", "https://docs.example.com/guide/intro", true},
		{"other host", "https://other.example.com/guide/intro", false},
		{"above prefix", "https://docs.example.com/blog/post", false},
		{"sibling sharing the prefix string", "https://docs.example.com/guidebook/intro", false},
		{"sibling with suffix after prefix", "https://docs.example.com/guide-old/page", false},
		{"framework internals", "https://docs.example.com/guide/_next/data.json", false},
		{"static asset", "https://docs.example.com/guide/logo.svg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, scope.Allows(tt.url))
		})
	}
}

func TestScope_Allows_ExcludePatterns(t *testing.T) {
	t.Parallel()

	scope, err := docmirror.NewScope("https://docs.example.com/", []*regexp.Regexp{
		regexp.MustCompile(`/changelog/`),
	})
	require.NoError(t, err)

	assert.True(t, scope.Allows("https://docs.example.com/guide/intro"))
	assert.False(t, scope.Allows("https://docs.example.com/changelog/2024"))
}

func TestURLFilter_NilMatchesAll(t *testing.T) {
	t.Parallel()

	var f *docmirror.URLFilter
	assert.True(t, f.Match("https://example.com/anything"))
}

func TestURLFilter_IncludeExclude(t *testing.T) {
	t.Parallel()

	f := &docmirror.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/docs/`)},
		Exclude: []*regexp.Regexp{regexp.MustCompile(`/docs/internal/`)},
	}

	assert.True(t, f.Match("https://example.com/docs/intro"))
	assert.False(t, f.Match("https://example.com/blog/post"))
	assert.False(t, f.Match("https://example.com/docs/internal/secrets"))
}
