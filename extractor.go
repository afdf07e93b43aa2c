package sitedigest

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title. Empty when no title-like element exists.
	Title string

	// Text is the main textual body with boilerplate (nav, footer,
	// sidebar) removed. Empty when the heuristics find nothing.
	Text string
}

// Extractor extracts the title and main text from HTML pages.
// Extraction is best-effort: an empty title or body is a valid result,
// not an error.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}
