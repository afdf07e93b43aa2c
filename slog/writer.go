package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitedigest/sitedigest"
)

// Ensure LoggingRecordWriter implements sitedigest.RecordWriter.
var _ sitedigest.RecordWriter = (*LoggingRecordWriter)(nil)

// LoggingRecordWriter wraps a RecordWriter with logging.
type LoggingRecordWriter struct {
	next   sitedigest.RecordWriter
	logger *slog.Logger
}

// NewLoggingRecordWriter creates a new LoggingRecordWriter.
func NewLoggingRecordWriter(next sitedigest.RecordWriter, logger *slog.Logger) *LoggingRecordWriter {
	return &LoggingRecordWriter{next: next, logger: logger}
}

// WriteRecords delegates to the wrapped writer and logs the operation.
func (w *LoggingRecordWriter) WriteRecords(ctx context.Context, path string, records []sitedigest.BlogRecord) (err error) {
	defer func(begin time.Time) {
		w.logger.Info("spreadsheet write",
			"path", path,
			"rows", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return w.next.WriteRecords(ctx, path, records)
}
