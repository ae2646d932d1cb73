package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure LoggingPresetService implements readweb.PresetService.
var _ readweb.PresetService = (*LoggingPresetService)(nil)

// LoggingPresetService wraps a PresetService with logging.
type LoggingPresetService struct {
	next   readweb.PresetService
	logger *slog.Logger
}

// NewLoggingPresetService creates a new LoggingPresetService.
func NewLoggingPresetService(next readweb.PresetService, logger *slog.Logger) *LoggingPresetService {
	return &LoggingPresetService{next: next, logger: logger}
}

func (s *LoggingPresetService) CreatePreset(ctx context.Context, preset *readweb.StoredPreset) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create preset",
			"site_pattern", preset.SitePattern,
			"id", preset.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreatePreset(ctx, preset)
}

func (s *LoggingPresetService) FindPresetByID(ctx context.Context, id string) (preset *readweb.StoredPreset, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find preset",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPresetByID(ctx, id)
}

func (s *LoggingPresetService) FindPresets(ctx context.Context, filter readweb.PresetFilter) (presets []*readweb.StoredPreset, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find presets",
			"count", len(presets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPresets(ctx, filter)
}

func (s *LoggingPresetService) FindPresetsForURL(ctx context.Context, rawURL string) (presets []*readweb.StoredPreset, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find presets for url",
			"url", rawURL,
			"count", len(presets),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindPresetsForURL(ctx, rawURL)
}

func (s *LoggingPresetService) DeletePreset(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete preset",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeletePreset(ctx, id)
}
