package sitedigest

import "context"

// Summarizer produces an SEO-oriented summary of page content.
// It represents the remote text-generation capability so it can be swapped
// for a deterministic stub in tests.
type Summarizer interface {
	// Summarize returns a concise, SEO-optimized summary of the content.
	// The title gives the model context about the page.
	// Fails with EAPI when the remote call fails or returns an
	// unexpected shape.
	Summarize(ctx context.Context, title, content string) (string, error)
}
