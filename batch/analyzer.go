// Package batch drives the full analysis pipeline for one sitemap URL:
// discover page URLs, fetch and extract each page, summarize it, and write
// the accumulated records to a spreadsheet.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/sitedigest/sitedigest"
	"golang.org/x/sync/errgroup"
)

// DefaultOutputPath is where the spreadsheet lands when no path is configured.
const DefaultOutputPath = "blog_analysis.xlsx"

// noTitleFallback substitutes for pages whose title could not be extracted.
const noTitleFallback = "No title"

// Ensure Analyzer implements sitedigest.Analyzer at compile time.
var _ sitedigest.Analyzer = (*Analyzer)(nil)

// Analyzer orchestrates one batch run. A single bad page never aborts the
// batch: per-URL failures are recorded as skipped items and processing
// continues. Only a failed sitemap fetch or a failed spreadsheet write
// fails the run.
type Analyzer struct {
	Sitemaps   sitedigest.SitemapService
	Fetcher    sitedigest.Fetcher
	Extractor  sitedigest.Extractor
	Summarizer sitedigest.Summarizer
	Writer     sitedigest.RecordWriter

	// Filter restricts which sitemap URLs are analyzed. Nil means all.
	Filter *sitedigest.URLFilter

	// Limiter, if set, rate-limits page fetches per host.
	Limiter *HostLimiter

	// OutputPath is where the spreadsheet is written.
	// Defaults to DefaultOutputPath.
	OutputPath string

	// Concurrency bounds how many URLs are processed at once.
	// Values below 1 mean sequential processing.
	Concurrency int

	// RetryDelays enables bounded retry of summarization calls.
	// Nil means a single attempt per page.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// AnalyzeSitemap runs the pipeline for one sitemap URL.
func (a *Analyzer) AnalyzeSitemap(ctx context.Context, sitemapURL string) (*sitedigest.AnalysisResult, error) {
	logger := a.Logger
	if logger == nil {
		logger = slog.Default()
	}

	urls, err := a.Sitemaps.DiscoverURLs(ctx, sitemapURL, a.Filter)
	if err != nil {
		return &sitedigest.AnalysisResult{Status: sitedigest.StatusFailure}, err
	}

	logger.Info("batch started", "sitemap", sitemapURL, "urls", len(urls))

	// Results are index-addressed so output order matches sitemap order
	// regardless of concurrency.
	items := make([]sitedigest.ItemResult, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	concurrency := a.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	g.SetLimit(concurrency)

	for i, pageURL := range urls {
		g.Go(func() error {
			items[i] = a.processURL(gctx, pageURL, logger)
			// Per-item failures are recorded, never propagated: a
			// returned error would cancel the remaining items.
			return nil
		})
	}
	_ = g.Wait()

	result := &sitedigest.AnalysisResult{
		TotalURLs:  len(urls),
		OutputPath: a.outputPath(),
		Items:      items,
	}

	if err := ctx.Err(); err != nil {
		result.Status = sitedigest.StatusFailure
		return result, err
	}

	var records []sitedigest.BlogRecord
	for _, item := range items {
		if item.Status == sitedigest.ItemOK {
			records = append(records, *item.Record)
		}
	}
	result.AnalyzedCount = len(records)

	if err := a.Writer.WriteRecords(ctx, result.OutputPath, records); err != nil {
		result.Status = sitedigest.StatusFailure
		return result, err
	}

	if len(records) == len(urls) {
		result.Status = sitedigest.StatusSuccess
	} else {
		result.Status = sitedigest.StatusPartial
	}

	logger.Info("batch finished",
		"sitemap", sitemapURL,
		"status", result.Status,
		"analyzed", result.AnalyzedCount,
		"skipped", result.TotalURLs-result.AnalyzedCount,
		"output", result.OutputPath,
	)

	return result, nil
}

// processURL fetches, extracts, and summarizes a single page.
// Every failure becomes a skipped item.
func (a *Analyzer) processURL(ctx context.Context, pageURL string, logger *slog.Logger) sitedigest.ItemResult {
	skip := func(err error) sitedigest.ItemResult {
		logger.Warn("skipping page", "url", pageURL, "reason", sitedigest.ErrorMessage(err))
		return sitedigest.ItemResult{URL: pageURL, Status: sitedigest.ItemSkipped, Err: err}
	}

	if a.Limiter != nil {
		parsed, err := url.Parse(pageURL)
		if err != nil {
			return skip(sitedigest.Errorf(sitedigest.EINVALID, "invalid page URL %q: %v", pageURL, err))
		}
		if err := a.Limiter.Wait(ctx, parsed.Host); err != nil {
			return skip(err)
		}
	}

	html, err := a.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return skip(err)
	}

	extracted, err := a.Extractor.Extract(html)
	if err != nil {
		return skip(err)
	}

	title := extracted.Title
	if title == "" {
		title = noTitleFallback
	}

	summary, err := a.summarize(ctx, extracted.Title, extracted.Text, logger)
	if err != nil {
		return skip(err)
	}

	return sitedigest.ItemResult{
		URL:    pageURL,
		Status: sitedigest.ItemOK,
		Record: &sitedigest.BlogRecord{Title: title, URL: pageURL, Summary: summary},
	}
}

// summarize performs the summarization call, with bounded retry when
// RetryDelays is configured.
func (a *Analyzer) summarize(ctx context.Context, title, content string, logger *slog.Logger) (string, error) {
	if len(a.RetryDelays) == 0 {
		return a.Summarizer.Summarize(ctx, title, content)
	}

	return SummarizeWithRetry(ctx, func(ctx context.Context) (string, error) {
		return a.Summarizer.Summarize(ctx, title, content)
	}, func(format string, args ...any) {
		logger.Debug(fmt.Sprintf(format, args...))
	}, a.RetryDelays)
}

func (a *Analyzer) outputPath() string {
	if a.OutputPath != "" {
		return a.OutputPath
	}
	return DefaultOutputPath
}
