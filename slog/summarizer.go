package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/sitedigest/sitedigest"
)

// Ensure LoggingSummarizer implements sitedigest.Summarizer.
var _ sitedigest.Summarizer = (*LoggingSummarizer)(nil)

// LoggingSummarizer wraps a Summarizer with logging.
type LoggingSummarizer struct {
	next   sitedigest.Summarizer
	logger *slog.Logger
}

// NewLoggingSummarizer creates a new LoggingSummarizer.
func NewLoggingSummarizer(next sitedigest.Summarizer, logger *slog.Logger) *LoggingSummarizer {
	return &LoggingSummarizer{next: next, logger: logger}
}

// Summarize delegates to the wrapped summarizer and logs the operation.
func (s *LoggingSummarizer) Summarize(ctx context.Context, title, content string) (summary string, err error) {
	defer func(begin time.Time) {
		s.logger.Info("summarize",
			"title", title,
			"content_len", len(content),
			"summary_len", len(summary),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Summarize(ctx, title, content)
}
