package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure LoggingNormalizer implements readweb.Normalizer.
var _ readweb.Normalizer = (*LoggingNormalizer)(nil)

// LoggingNormalizer wraps a Normalizer with logging.
type LoggingNormalizer struct {
	next   readweb.Normalizer
	logger *slog.Logger
}

// NewLoggingNormalizer creates a new LoggingNormalizer.
func NewLoggingNormalizer(next readweb.Normalizer, logger *slog.Logger) *LoggingNormalizer {
	return &LoggingNormalizer{next: next, logger: logger}
}

// Normalize delegates to the wrapped normalizer.
func (n *LoggingNormalizer) Normalize(markup string, baseURL string) (doc readweb.Document, err error) {
	defer func(begin time.Time) {
		n.logger.Debug("normalize",
			"base_url", baseURL,
			"bytes", len(markup),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Normalize(markup, baseURL)
}

// Ensure LoggingConverter implements readweb.Converter.
var _ readweb.Converter = (*LoggingConverter)(nil)

// LoggingConverter wraps a Converter with logging.
type LoggingConverter struct {
	next   readweb.Converter
	logger *slog.Logger
}

// NewLoggingConverter creates a new LoggingConverter.
func NewLoggingConverter(next readweb.Converter, logger *slog.Logger) *LoggingConverter {
	return &LoggingConverter{next: next, logger: logger}
}

// Convert delegates to the wrapped converter.
func (c *LoggingConverter) Convert(html string) (markdown string, err error) {
	defer func(begin time.Time) {
		c.logger.Debug("convert",
			"html_bytes", len(html),
			"markdown_bytes", len(markdown),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Convert(html)
}
