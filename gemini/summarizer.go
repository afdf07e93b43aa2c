// Package gemini implements the sitedigest.Summarizer interface using
// Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/sitedigest/sitedigest"
	"google.golang.org/genai"
)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// maxContentChars bounds the content sent per request. Longer bodies are
// truncated rather than rejected; the opening of a post carries most of the
// SEO-relevant signal.
const maxContentChars = 60000

// Ensure Summarizer implements sitedigest.Summarizer at compile time.
var _ sitedigest.Summarizer = (*Summarizer)(nil)

// Summarizer produces SEO summaries using the Gemini API.
type Summarizer struct {
	client *genai.Client
	model  string
}

// Option configures a Summarizer.
type Option func(*Summarizer)

// WithModel overrides the model name. Defaults to DefaultModel.
func WithModel(model string) Option {
	return func(s *Summarizer) {
		if model != "" {
			s.model = model
		}
	}
}

// NewSummarizer creates a new Summarizer.
func NewSummarizer(client *genai.Client, opts ...Option) *Summarizer {
	s := &Summarizer{client: client, model: DefaultModel}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Summarize returns a concise, SEO-optimized summary of the content.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	if title == "" && content == "" {
		return "", sitedigest.Errorf(sitedigest.EINVALID, "nothing to summarize: title and content are both empty")
	}

	prompt := BuildPrompt(title, content)
	config := BuildConfig()

	result, err := s.client.Models.GenerateContent(ctx, s.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: prompt}},
		}},
		config,
	)
	if err != nil {
		return "", sitedigest.Errorf(sitedigest.EAPI, "gemini request failed: %v", err)
	}
	if result == nil {
		return "", sitedigest.Errorf(sitedigest.EAPI, "gemini returned nil result")
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return "", sitedigest.Errorf(sitedigest.EAPI, "gemini returned empty summary")
	}

	return summary, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are an SEO copywriter. Write a concise, search-engine-optimized summary of the blog post you are given: two to three sentences, leading with the primary topic keywords, in plain prose without headings or markdown.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildPrompt builds the user prompt containing the post title and content.
func BuildPrompt(title, content string) string {
	if len(content) > maxContentChars {
		content = content[:maxContentChars]
	}

	var sb strings.Builder
	sb.WriteString("<post>\n")
	fmt.Fprintf(&sb, "<title>%s</title>\n", title)
	fmt.Fprintf(&sb, "<content>%s</content>\n", content)
	sb.WriteString("</post>\n\n")
	sb.WriteString("Summarize this blog post for search engine discoverability.")
	return sb.String()
}
