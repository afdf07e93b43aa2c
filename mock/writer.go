package mock

import (
	"context"

	"github.com/sitedigest/sitedigest"
)

var _ sitedigest.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of sitedigest.RecordWriter.
type RecordWriter struct {
	WriteRecordsFn func(ctx context.Context, path string, records []sitedigest.BlogRecord) error
}

func (w *RecordWriter) WriteRecords(ctx context.Context, path string, records []sitedigest.BlogRecord) error {
	return w.WriteRecordsFn(ctx, path, records)
}
