package batch

import (
	"context"
	"time"
)

// SummarizeFunc is the signature for a single summarization attempt.
type SummarizeFunc func(ctx context.Context) (string, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for summarization retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// SummarizeWithRetry attempts a summarization call with backoff retry.
// len(delays) retries follow the initial attempt, waiting delays[i] before
// retry i. A nil or empty delays slice means a single attempt. The logger
// function, if provided, is called for each retry attempt.
func SummarizeWithRetry(ctx context.Context, fn SummarizeFunc, logger LogFunc, delays []time.Duration) (string, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		summary, err := fn(ctx)
		if err == nil {
			return summary, nil
		}
		lastErr = err

		// Don't retry after the last attempt
		if attempt >= maxAttempts-1 {
			break
		}

		// Check context before sleeping
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry summarize (attempt %d): %v", attempt+2, err)
		}

		// Wait before next attempt
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}
