package sitedigest

import "context"

// Status is the overall outcome of one batch run.
type Status string

// Status values for AnalysisResult.
const (
	// StatusSuccess means every discovered URL produced a record.
	StatusSuccess Status = "success"

	// StatusPartial means some URLs were skipped but the batch completed
	// and the spreadsheet was written.
	StatusPartial Status = "partial"

	// StatusFailure means the sitemap could not be read or the output
	// could not be written. No usable output exists.
	StatusFailure Status = "failure"
)

// ItemStatus is the per-URL outcome within a batch.
type ItemStatus string

// ItemStatus values for ItemResult.
const (
	ItemOK      ItemStatus = "ok"
	ItemSkipped ItemStatus = "skipped"
)

// ItemResult records what happened to a single URL. A skipped item carries
// the reason; it never aborts the batch.
type ItemResult struct {
	URL    string
	Status ItemStatus

	// Record is set when Status is ItemOK.
	Record *BlogRecord

	// Err is set when Status is ItemSkipped.
	Err error
}

// AnalysisResult is produced once per batch run.
type AnalysisResult struct {
	Status        Status
	AnalyzedCount int
	TotalURLs     int
	OutputPath    string

	// Items holds the per-URL outcomes in sitemap order.
	Items []ItemResult
}

// Analyzer runs the full pipeline for one sitemap URL.
type Analyzer interface {
	// AnalyzeSitemap discovers URLs from the sitemap, processes each one,
	// and writes the accumulated records to a spreadsheet. A failed
	// sitemap fetch or spreadsheet write fails the batch; a failed page
	// is skipped and the batch continues.
	AnalyzeSitemap(ctx context.Context, sitemapURL string) (*AnalysisResult, error)
}
