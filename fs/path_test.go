package fs_test

import (
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMapper(t *testing.T, baseURL string, policy docmirror.ExtensionPolicy) *fs.Mapper {
	t.Helper()
	scope, err := docmirror.NewScope(baseURL, nil)
	require.NoError(t, err)
	return fs.NewMapper(scope, policy)
}

func TestMapper_mirrors_url_hierarchy(t *testing.T) {
	t.Parallel()

	mapper := newMapper(t, "https://docs.example.com/guide/", docmirror.PolicyPreserve)

	tests := []struct {
		name   string
		target string
		kind   docmirror.ContentKind
		want   string
	}{
		{"base maps to directory index", "https://docs.example.com/guide", docmirror.KindMarkdown, "guide/index.md"},
		{"leaf page", "https://docs.example.com/guide/intro", docmirror.KindMarkdown, "guide/intro.md"},
		{"nested page", "https://docs.example.com/guide/deploy/docker", docmirror.KindMarkdown, "guide/deploy/docker.md"},
		{"mdx source keeps extension", "https://docs.example.com/guide/intro", docmirror.KindMDX, "guide/intro.mdx"},
		{"converted html gets md", "https://docs.example.com/guide/intro", docmirror.KindHTML, "guide/intro.md"},
		{"percent-encoded segment decoded", "https://docs.example.com/guide/caf%C3%A9", docmirror.KindMarkdown, "guide/café.md"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := mapper.Map(tt.target, tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapper_site_root_base(t *testing.T) {
	t.Parallel()

	mapper := newMapper(t, "https://docs.example.com", docmirror.PolicyPreserve)

	got, err := mapper.Map("https://docs.example.com", docmirror.KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "index.md", got)

	got, err = mapper.Map("https://docs.example.com/intro", docmirror.KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, "intro.md", got)
}

func TestMapper_force_md_policy(t *testing.T) {
	t.Parallel()

	mapper := newMapper(t, "https://docs.example.com/guide", docmirror.PolicyForceMD)

	got, err := mapper.Map("https://docs.example.com/guide/intro", docmirror.KindMDX)
	require.NoError(t, err)
	assert.Equal(t, "guide/intro.md", got, "force-md must never produce .mdx")
}

func TestMapper_is_deterministic(t *testing.T) {
	t.Parallel()

	mapper := newMapper(t, "https://docs.example.com/guide", docmirror.PolicyPreserve)

	first, err := mapper.Map("https://docs.example.com/guide/intro", docmirror.KindMarkdown)
	require.NoError(t, err)
	second, err := mapper.Map("https://docs.example.com/guide/intro", docmirror.KindMarkdown)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMapper_rejects_traversal(t *testing.T) {
	t.Parallel()

	mapper := newMapper(t, "https://docs.example.com/guide", docmirror.PolicyPreserve)

	tests := []struct {
		name   string
		target string
	}{
		{"encoded dot-dot", "https://docs.example.com/guide/%2e%2e/secrets"},
		{"encoded slash inside segment", "https://docs.example.com/guide/a%2f..%2fb"},
		{"encoded backslash", "https://docs.example.com/guide/a%5c..%5cb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := mapper.Map(tt.target, docmirror.KindMarkdown)
			assert.Equal(t, docmirror.EFORBIDDEN, docmirror.ErrorCode(err))
		})
	}
}
