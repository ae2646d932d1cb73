package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure LoggingExtractor implements readweb.Extractor.
var _ readweb.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps a fallback Extractor with logging.
type LoggingExtractor struct {
	next   readweb.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next readweb.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor.
func (e *LoggingExtractor) Extract(html string, pageURL string) (result *readweb.ExtractResult, err error) {
	defer func(begin time.Time) {
		length := 0
		if result != nil {
			length = result.Length
		}
		e.logger.Debug("fallback extract",
			"url", pageURL,
			"length", length,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html, pageURL)
}

// Ensure LoggingContentExtractor implements readweb.ContentExtractor.
var _ readweb.ContentExtractor = (*LoggingContentExtractor)(nil)

// LoggingContentExtractor wraps a ContentExtractor and logs the strategy
// that produced each page.
type LoggingContentExtractor struct {
	next   readweb.ContentExtractor
	logger *slog.Logger
}

// NewLoggingContentExtractor creates a new LoggingContentExtractor.
func NewLoggingContentExtractor(next readweb.ContentExtractor, logger *slog.Logger) *LoggingContentExtractor {
	return &LoggingContentExtractor{next: next, logger: logger}
}

// ExtractHTML delegates to the wrapped extractor.
func (e *LoggingContentExtractor) ExtractHTML(ctx context.Context, pageURL string, html string) (x *readweb.Extraction, err error) {
	defer func(begin time.Time) {
		attrs := []any{"url", pageURL}
		if x != nil {
			attrs = append(attrs, "method", x.Method, "chars", len(x.Markdown))
			if x.PresetID != "" {
				attrs = append(attrs, "preset", x.PresetID)
			}
		}
		attrs = append(attrs, "duration", time.Since(begin), "err", err)
		e.logger.Info("extract", attrs...)
	}(time.Now())
	return e.next.ExtractHTML(ctx, pageURL, html)
}
