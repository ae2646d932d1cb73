package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure LoggingSuggester implements readweb.Suggester.
var _ readweb.Suggester = (*LoggingSuggester)(nil)

// LoggingSuggester wraps a Suggester with logging.
type LoggingSuggester struct {
	next   readweb.Suggester
	logger *slog.Logger
}

// NewLoggingSuggester creates a new LoggingSuggester.
func NewLoggingSuggester(next readweb.Suggester, logger *slog.Logger) *LoggingSuggester {
	return &LoggingSuggester{next: next, logger: logger}
}

// Suggest delegates to the wrapped suggester.
func (s *LoggingSuggester) Suggest(ctx context.Context, fixture *readweb.Fixture) (suggestion *readweb.Suggestion, err error) {
	defer func(begin time.Time) {
		var steps int
		var accepted bool
		if suggestion != nil {
			steps, accepted = suggestion.Steps, suggestion.Accepted
		}
		var url string
		if fixture != nil {
			url = fixture.URL
		}
		s.logger.Info("suggest preset",
			"url", url,
			"steps", steps,
			"accepted", accepted,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Suggest(ctx, fixture)
}
