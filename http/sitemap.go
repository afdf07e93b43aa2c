package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/sitedigest/sitedigest"
)

// Ensure SitemapService implements sitedigest.SitemapService.
var _ sitedigest.SitemapService = (*SitemapService)(nil)

// SitemapService discovers page URLs from an XML sitemap via HTTP.
// Unlike crawler-style discovery there is no robots.txt probing: the caller
// supplies the sitemap URL directly.
type SitemapService struct {
	client *http.Client
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{client: client}
}

// DiscoverURLs fetches and parses the sitemap at sitemapURL and returns
// every <loc> value in document order. Sitemap indexes are resolved
// recursively; duplicate URLs keep their first position.
func (s *SitemapService) DiscoverURLs(ctx context.Context, sitemapURL string, filter *sitedigest.URLFilter) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	parsed, err := url.Parse(sitemapURL)
	if err != nil || !parsed.IsAbs() {
		return nil, sitedigest.Errorf(sitedigest.EINVALID, "invalid sitemap URL %q", sitemapURL)
	}

	seen := make(map[string]bool)
	urls, err := s.processSitemap(ctx, sitemapURL, seen)
	if err != nil {
		return nil, err
	}

	// Deduplicate URLs, preserving first occurrence
	seenURLs := make(map[string]bool)
	var deduped []string
	for _, u := range urls {
		if !seenURLs[u] {
			seenURLs[u] = true
			deduped = append(deduped, u)
		}
	}

	if len(deduped) == 0 {
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "sitemap %s contains no URL entries", sitemapURL)
	}

	if filter != nil {
		var filtered []string
		for _, u := range deduped {
			if filter.Match(u) {
				filtered = append(filtered, u)
			}
		}
		return filtered, nil
	}

	return deduped, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, seen map[string]bool) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Avoid processing the same sitemap twice
	if seen[sitemapURL] {
		return nil, nil
	}
	seen[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(body); err != nil {
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "parsing sitemap XML at %s: %v", sitemapURL, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "empty sitemap XML at %s", sitemapURL)
	}

	switch root.Tag {
	case "sitemapindex":
		return s.processSitemapIndex(ctx, root, seen)
	case "urlset":
		return parseURLSet(root), nil
	default:
		return nil, sitedigest.Errorf(sitedigest.EPARSE, "unexpected root element <%s> in %s", root.Tag, sitemapURL)
	}
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, seen map[string]bool) ([]string, error) {
	var allURLs []string

	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}

		urls, err := s.processSitemap(ctx, sitemapURL, seen)
		if err != nil {
			return nil, err
		}
		allURLs = append(allURLs, urls...)
	}

	return allURLs, nil
}

// parseURLSet extracts URLs from a <urlset> element.
func parseURLSet(root *etree.Element) []string {
	var urls []string
	for _, urlEl := range root.SelectElements("url") {
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, sitedigest.Errorf(sitedigest.EINVALID, "creating request for %s: %v", targetURL, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, sitedigest.Errorf(sitedigest.EFETCH, "fetching %s: %v", targetURL, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, sitedigest.Errorf(sitedigest.EFETCH, "HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}
