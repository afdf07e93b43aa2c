package mock

import (
	"context"

	"github.com/sitedigest/sitedigest"
)

var _ sitedigest.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of sitedigest.Analyzer.
type Analyzer struct {
	AnalyzeSitemapFn func(ctx context.Context, sitemapURL string) (*sitedigest.AnalysisResult, error)
}

func (a *Analyzer) AnalyzeSitemap(ctx context.Context, sitemapURL string) (*sitedigest.AnalysisResult, error) {
	return a.AnalyzeSitemapFn(ctx, sitemapURL)
}
