package sitedigest

import "context"

// BlogRecord is one analyzed blog post: the extracted title, the page URL,
// and the generated SEO summary. Records are immutable once created and are
// held in sitemap order for the duration of one batch run.
type BlogRecord struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Validate returns an error if the record contains invalid fields.
func (r *BlogRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	return nil
}

// RecordWriter serializes records into a tabular file on disk.
type RecordWriter interface {
	// WriteRecords writes the records to path with a header row followed
	// by one row per record, preserving order. An existing file at path
	// is overwritten. Fails with EIO when the file cannot be written.
	WriteRecords(ctx context.Context, path string, records []BlogRecord) error
}
