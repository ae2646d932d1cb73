package readweb

import "context"

// Suggestion is the outcome of an iterative preset suggestion session.
type Suggestion struct {
	// Preset is the last preset that extracted non-empty content, or nil
	// when no attempt succeeded.
	Preset *Preset

	// Markdown is the extraction produced by Preset.
	Markdown string

	// Accepted reports whether the suggester confirmed the result.
	Accepted bool

	// Steps is the number of presets attempted.
	Steps int
}

// Suggester proposes a preset for a page by repeatedly applying candidate
// presets and reacting to validation feedback.
type Suggester interface {
	// Suggest returns a preset for the fixture page.
	// Returns EINVALID if the fixture has no HTML.
	Suggest(ctx context.Context, fixture *Fixture) (*Suggestion, error)
}
