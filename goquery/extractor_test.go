package goquery_test

import (
	"testing"

	"github.com/sitedigest/sitedigest"
	"github.com/sitedigest/sitedigest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sitedigest.Extractor at compile time.
var _ sitedigest.Extractor = (*goquery.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and article content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Ten Tips for Faster Go</title></head>
<body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Ten Tips for Faster Go</h1>
<p>Profiling should always come before optimizing.</p>
<p>Allocations dominate most hot paths.</p>
</article>
<footer>Copyright 2025</footer>
</body>
</html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Ten Tips for Faster Go", result.Title)
		assert.Contains(t, result.Text, "Profiling should always come before optimizing.")
		assert.Contains(t, result.Text, "Allocations dominate most hot paths.")
		assert.NotContains(t, result.Text, "Home")
		assert.NotContains(t, result.Text, "Copyright 2025")
	})

	t.Run("prefers article over loose paragraphs", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
<p>Outside paragraph.</p>
<article><p>Inside the article.</p></article>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Inside the article.")
		assert.NotContains(t, result.Text, "Outside paragraph.")
	})

	t.Run("falls back to main then div.content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
<div class="content"><p>Content div text here.</p></div>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Content div text here.")
	})

	t.Run("falls back to og:title when title element missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="Share Title"></head>
<body><article><p>Body text.</p></article></body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Share Title", result.Title)
	})

	t.Run("missing title and body yield empty strings, not an error", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		result, err := ext.Extract(`<html><head></head><body></body></html>`)

		require.NoError(t, err)
		assert.Empty(t, result.Title)
		assert.Empty(t, result.Text)
	})

	t.Run("removes script and style content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
<article>
<p>Visible text.</p>
<script>var hidden = "tracking";</script>
<style>.x { color: red }</style>
</article>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "Visible text.")
		assert.NotContains(t, result.Text, "tracking")
		assert.NotContains(t, result.Text, "color: red")
	})

	t.Run("joins headings and paragraphs with blank lines", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>T</title></head><body>
<main><h2>Heading</h2><p>First paragraph.</p></main>
</body></html>`

		ext := goquery.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "Heading\n\nFirst paragraph.", result.Text)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		ext := goquery.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, sitedigest.EINVALID, sitedigest.ErrorCode(err))
	})
}
