package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

var _ readweb.SitemapService = (*LoggingSitemapService)(nil)

// LoggingSitemapService logs the URLs a crawl discovered and the filter
// that shaped them. A failed discovery ends the crawl, so it logs at warn.
type LoggingSitemapService struct {
	next   readweb.SitemapService
	logger *slog.Logger
}

// NewLoggingSitemapService wraps next.
func NewLoggingSitemapService(next readweb.SitemapService, logger *slog.Logger) *LoggingSitemapService {
	return &LoggingSitemapService{next: next, logger: logger}
}

func (s *LoggingSitemapService) DiscoverURLs(ctx context.Context, baseURL string, filter *readweb.URLFilter) (urls []string, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", baseURL, "count", len(urls), "duration", time.Since(begin)}
		if filter != nil {
			attrs = append(attrs, "include", len(filter.Include), "exclude", len(filter.Exclude))
		}
		if err != nil {
			s.logger.Warn("sitemap discovery failed", append(attrs, "err", err)...)
			return
		}
		s.logger.Debug("sitemap discovery", attrs...)
	}(time.Now())
	return s.next.DiscoverURLs(ctx, baseURL, filter)
}
