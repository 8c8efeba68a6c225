package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/docmirror"
	"github.com/fwojciec/docmirror/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content from a full page", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html><head><title>Configuration Guide</title></head>
<body>
	<nav><a href="/">Home</a><a href="/docs">Docs</a></nav>
	<main>
		<h1>Configuration Guide</h1>
		<p>This guide explains every configuration option in detail, covering
		defaults, environment overrides, and the precedence rules between them.</p>
		<p>Options are read from the config file first, then the environment,
		then command line flags, with later sources taking precedence.</p>
	</main>
	<footer>Copyright</footer>
</body></html>`

		extractor := trafilatura.NewExtractor()
		result, err := extractor.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "precedence rules")
		assert.NotContains(t, result.ContentHTML, "Copyright")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		extractor := trafilatura.NewExtractor()
		_, err := extractor.Extract("")

		assert.Equal(t, docmirror.EINVALID, docmirror.ErrorCode(err))
	})
}
