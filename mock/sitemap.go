// Package mock provides function-field test doubles for the sitedigest
// domain interfaces.
package mock

import (
	"context"

	"github.com/sitedigest/sitedigest"
)

var _ sitedigest.SitemapService = (*SitemapService)(nil)

// SitemapService is a mock implementation of sitedigest.SitemapService.
type SitemapService struct {
	DiscoverURLsFn func(ctx context.Context, sitemapURL string, filter *sitedigest.URLFilter) ([]string, error)
}

func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *sitedigest.URLFilter) ([]string, error) {
	return s.DiscoverURLsFn(ctx, sitemapURL, filter)
}
