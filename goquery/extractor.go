// Package goquery provides a CSS-selector based implementation of
// sitedigest.Extractor for blog pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/sitedigest/sitedigest"
)

// containerSelectors are tried in order to locate the main content.
// The first match wins; blogs without a recognizable container fall back
// to paragraph-level extraction over the whole document.
var containerSelectors = []string{"article", "main", "div.content"}

// boilerplateSelector matches elements removed before text extraction.
const boilerplateSelector = "script, style, noscript, nav, header, footer, aside, form"

// blockSelector matches the paragraph-level elements whose text makes up
// the extracted body.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, blockquote"

// Ensure Extractor implements sitedigest.Extractor at compile time.
var _ sitedigest.Extractor = (*Extractor)(nil)

// Extractor extracts the title and main text from blog HTML using CSS
// selector heuristics.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
// Extraction is best-effort: a page without a title or recognizable body
// yields empty strings, not an error.
func (e *Extractor) Extract(rawHTML string) (*sitedigest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitedigest.Errorf(sitedigest.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "parsing HTML: %v", err)
	}

	title := extractTitle(doc)

	doc.Find(boilerplateSelector).Remove()

	scope := doc.Find("body")
	if scope.Length() == 0 {
		scope = doc.Selection
	}
	for _, sel := range containerSelectors {
		if container := doc.Find(sel).First(); container.Length() > 0 {
			scope = container
			break
		}
	}

	return &sitedigest.ExtractResult{
		Title: title,
		Text:  extractBlocks(scope),
	}, nil
}

// extractTitle returns the <title> text, falling back to og:title metadata.
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		return strings.TrimSpace(og)
	}
	return ""
}

// extractBlocks concatenates the text of paragraph-level elements within
// the selection, joined by blank lines. Falls back to the selection's full
// text when no block elements exist.
func extractBlocks(scope *goquery.Selection) string {
	var blocks []string
	scope.Find(blockSelector).Each(func(_ int, sel *goquery.Selection) {
		// Skip elements that contain other block elements so nested
		// structures (e.g. a list inside a blockquote) are not doubled.
		if sel.Find(blockSelector).Length() > 0 {
			return
		}
		if text := strings.TrimSpace(sel.Text()); text != "" {
			blocks = append(blocks, text)
		}
	})

	if len(blocks) == 0 {
		return strings.TrimSpace(scope.Text())
	}

	return strings.Join(blocks, "\n\n")
}
