// Package trafilatura provides a sitedigest.Extractor built on
// go-trafilatura's boilerplate removal.
package trafilatura

import (
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"github.com/sitedigest/sitedigest"
	"golang.org/x/net/html"
)

// Ensure Extractor implements sitedigest.Extractor at compile time.
var _ sitedigest.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the title and main text from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the page title and main text.
func (e *Extractor) Extract(rawHTML string) (*sitedigest.ExtractResult, error) {
	if rawHTML == "" {
		return nil, sitedigest.Errorf(sitedigest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "extracting content: %v", err)
	}

	var text string
	if result.ContentNode != nil {
		text = nodeText(result.ContentNode)
	}

	return &sitedigest.ExtractResult{
		Title: result.Metadata.Title,
		Text:  text,
	}, nil
}

// nodeText collects the text content of an html.Node tree, with block
// elements separated by blank lines.
func nodeText(n *html.Node) string {
	var blocks []string
	var current strings.Builder

	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			blocks = append(blocks, text)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			current.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && isBlockElement(n.Data) {
			flush()
		}
	}
	walk(n)
	flush()

	return strings.Join(blocks, "\n\n")
}

func isBlockElement(tag string) bool {
	switch tag {
	case "p", "h1", "h2", "h3", "h4", "h5", "h6", "li", "blockquote", "pre", "div":
		return true
	}
	return false
}
