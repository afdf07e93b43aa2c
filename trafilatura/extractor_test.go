package trafilatura_test

import (
	"testing"

	"github.com/sitedigest/sitedigest"
	"github.com/sitedigest/sitedigest/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Extractor implements sitedigest.Extractor at compile time.
var _ sitedigest.Extractor = (*trafilatura.Extractor)(nil)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title and main content", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Understanding Goroutines</title></head>
<body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Understanding Goroutines</h1>
<p>Goroutines are lightweight threads managed by the Go runtime, and this post explains how the scheduler multiplexes them onto OS threads.</p>
<p>The scheduler uses a work-stealing algorithm to keep every processor busy without starving any single queue of runnable goroutines.</p>
</article>
<footer>Copyright 2025</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.Text, "lightweight threads managed by the Go runtime")
		assert.Contains(t, result.Text, "work-stealing algorithm")
	})

	t.Run("removes navigation boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want readers to find.</p>
</main>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Text, "actual content we want")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, sitedigest.EINVALID, sitedigest.ErrorCode(err))
	})
}
