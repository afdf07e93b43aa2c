package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/sitedigest/sitedigest"
	sdhttp "github.com/sitedigest/sitedigest/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves the given path→body map, replacing {{BASE}} in each
// body with the server's own URL.
func newTestServer(t *testing.T, pages map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	return srv
}

func TestSitemapService_DiscoverURLs_PreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/one</loc></url>
  <url><loc>{{BASE}}/blog/two</loc></url>
  <url><loc>{{BASE}}/blog/three</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{"/sitemap.xml": sitemapXML})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{
		srv.URL + "/blog/one",
		srv.URL + "/blog/two",
		srv.URL + "/blog/three",
	}, urls)
}

func TestSitemapService_DiscoverURLs_DeduplicatesKeepingFirst(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/one</loc></url>
  <url><loc>{{BASE}}/blog/two</loc></url>
  <url><loc>{{BASE}}/blog/one</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{"/sitemap.xml": sitemapXML})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/one", srv.URL + "/blog/two"}, urls)
}

func TestSitemapService_DiscoverURLs_SitemapIndex(t *testing.T) {
	t.Parallel()

	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-news.xml</loc></sitemap>
</sitemapindex>`

	sitemapBlog := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/post</loc></url>
</urlset>`

	sitemapNews := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/news/story</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":      sitemapIndex,
		"/sitemap-blog.xml": sitemapBlog,
		"/sitemap-news.xml": sitemapNews,
	})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/post", srv.URL + "/news/story"}, urls)
}

func TestSitemapService_DiscoverURLs_WithFilter(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/post</loc></url>
  <url><loc>{{BASE}}/about</loc></url>
  <url><loc>{{BASE}}/blog/other</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{"/sitemap.xml": sitemapXML})
	defer srv.Close()

	filter := &sitedigest.URLFilter{
		Include: []*regexp.Regexp{regexp.MustCompile(`/blog/`)},
	}

	svc := sdhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", filter)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/post", srv.URL + "/blog/other"}, urls)
}

func TestSitemapService_DiscoverURLs_FetchFailure(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.Error(t, err)
	assert.Equal(t, sitedigest.EFETCH, sitedigest.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_MalformedXML(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"/sitemap.xml": `<urlset><url><loc>broken`})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.Error(t, err)
	assert.Equal(t, sitedigest.EPARSE, sitedigest.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_UnexpectedRoot(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t, map[string]string{"/sitemap.xml": `<html><body>not a sitemap</body></html>`})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.Error(t, err)
	assert.Equal(t, sitedigest.EPARSE, sitedigest.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_NoEntries(t *testing.T) {
	t.Parallel()

	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"></urlset>`

	srv := newTestServer(t, map[string]string{"/sitemap.xml": sitemapXML})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	_, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.Error(t, err)
	assert.Equal(t, sitedigest.EPARSE, sitedigest.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_InvalidURL(t *testing.T) {
	t.Parallel()

	svc := sdhttp.NewSitemapService(nil)
	_, err := svc.DiscoverURLs(context.Background(), "not a url", nil)

	require.Error(t, err)
	assert.Equal(t, sitedigest.EINVALID, sitedigest.ErrorCode(err))
}

func TestSitemapService_DiscoverURLs_IndexCycle(t *testing.T) {
	t.Parallel()

	// An index that references itself must not loop forever.
	sitemapIndex := `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
  <sitemap><loc>{{BASE}}/sitemap-blog.xml</loc></sitemap>
</sitemapindex>`

	sitemapBlog := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/blog/post</loc></url>
</urlset>`

	srv := newTestServer(t, map[string]string{
		"/sitemap.xml":      sitemapIndex,
		"/sitemap-blog.xml": sitemapBlog,
	})
	defer srv.Close()

	svc := sdhttp.NewSitemapService(srv.Client())
	urls, err := svc.DiscoverURLs(context.Background(), srv.URL+"/sitemap.xml", nil)

	require.NoError(t, err)
	assert.Equal(t, []string{srv.URL + "/blog/post"}, urls)
}
