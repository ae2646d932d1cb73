package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

var _ readweb.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetched for extraction. Missing pages are
// routine during a crawl and log at info; other failures log at warn.
type LoggingFetcher struct {
	next   readweb.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher wraps next.
func NewLoggingFetcher(next readweb.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", url, "bytes", len(html), "duration", time.Since(begin)}
		switch {
		case err == nil:
			f.logger.Debug("fetch", attrs...)
		case readweb.ErrorCode(err) == readweb.ENOTFOUND:
			f.logger.Info("page not found", attrs...)
		default:
			f.logger.Warn("fetch failed", append(attrs, "code", readweb.ErrorCode(err), "err", err)...)
		}
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
