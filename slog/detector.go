package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/readweb"
)

// Ensure LoggingPresetDetector implements readweb.PresetDetector.
var _ readweb.PresetDetector = (*LoggingPresetDetector)(nil)

// LoggingPresetDetector wraps a PresetDetector and logs which built-in
// preset was detected.
type LoggingPresetDetector struct {
	next   readweb.PresetDetector
	logger *slog.Logger
}

// NewLoggingPresetDetector creates a new LoggingPresetDetector.
func NewLoggingPresetDetector(next readweb.PresetDetector, logger *slog.Logger) *LoggingPresetDetector {
	return &LoggingPresetDetector{next: next, logger: logger}
}

// Detect delegates to the wrapped detector.
func (d *LoggingPresetDetector) Detect(doc readweb.Document) (*readweb.BuiltinPreset, string, bool) {
	begin := time.Now()
	preset, markup, ok := d.next.Detect(doc)

	framework := "(none)"
	if ok {
		framework = string(preset.Framework)
	}
	d.logger.Debug("builtin preset detection",
		"framework", framework,
		"duration", time.Since(begin),
	)
	return preset, markup, ok
}
