package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetry calls fetch until it succeeds, waiting delays[i] before
// retry i+1, for len(delays)+1 attempts in total. Errors that cannot
// improve on retry (ENOTFOUND, EINVALID) are returned immediately.
// Retries are logged at debug level when logger is non-nil.
func FetchWithRetry(ctx context.Context, url string, fetch FetchFunc, delays []time.Duration, logger *slog.Logger) (string, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		lastErr = err

		if !retryable(err) || attempt >= maxAttempts-1 {
			break
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if logger != nil {
			logger.Debug("retrying fetch", "url", url, "attempt", attempt+2, "err", err)
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return "", lastErr
}

func retryable(err error) bool {
	switch readweb.ErrorCode(err) {
	case readweb.ENOTFOUND, readweb.EINVALID:
		return false
	}
	return true
}
