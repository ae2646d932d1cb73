package readweb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"
)

// Preset describes how to locate and clean one site's main content.
// Each entry is a CSS selector. Presets are values: callers pass them by
// value and never mutate the slices after construction.
type Preset struct {
	// PresetMatchDetectors identify the site layout. Every detector must
	// match at least one node for the preset to apply.
	PresetMatchDetectors []string `json:"preset_match_detectors"`

	// MainContentSelectors select the containers holding readable content.
	MainContentSelectors []string `json:"main_content_selectors"`

	// MainContentFilters remove noise from inside the selected content.
	MainContentFilters []string `json:"main_content_filters"`
}

// Validate returns an error if the preset violates its shape contract.
func (p *Preset) Validate() error {
	if len(p.PresetMatchDetectors) == 0 {
		return Errorf(EINVALID, "preset_match_detectors requires at least one selector")
	}
	if len(p.MainContentSelectors) == 0 {
		return Errorf(EINVALID, "main_content_selectors requires at least one selector")
	}
	return nil
}

// Selectors returns every selector of the preset: detectors, then main
// content selectors, then filters.
func (p Preset) Selectors() []string {
	all := make([]string, 0, len(p.PresetMatchDetectors)+len(p.MainContentSelectors)+len(p.MainContentFilters))
	all = append(all, p.PresetMatchDetectors...)
	all = append(all, p.MainContentSelectors...)
	all = append(all, p.MainContentFilters...)
	return all
}

// MarshalJSON encodes nil lists as empty arrays so the output always
// satisfies ParsePreset.
func (p Preset) MarshalJSON() ([]byte, error) {
	type wire Preset
	w := wire(p)
	if w.PresetMatchDetectors == nil {
		w.PresetMatchDetectors = []string{}
	}
	if w.MainContentSelectors == nil {
		w.MainContentSelectors = []string{}
	}
	if w.MainContentFilters == nil {
		w.MainContentFilters = []string{}
	}
	return json.Marshal(w)
}

// ParsePreset strictly decodes a preset from JSON. Unknown fields, missing
// or null lists, wrong types, trailing data and shape violations are all
// reported as EINVALID.
func ParsePreset(r io.Reader) (*Preset, error) {
	var raw struct {
		PresetMatchDetectors *[]string `json:"preset_match_detectors"`
		MainContentSelectors *[]string `json:"main_content_selectors"`
		MainContentFilters   *[]string `json:"main_content_filters"`
	}

	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, Errorf(EINVALID, "malformed preset: %v", err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, Errorf(EINVALID, "malformed preset: unexpected data after preset object")
	}

	switch {
	case raw.PresetMatchDetectors == nil:
		return nil, Errorf(EINVALID, "preset_match_detectors required")
	case raw.MainContentSelectors == nil:
		return nil, Errorf(EINVALID, "main_content_selectors required")
	case raw.MainContentFilters == nil:
		return nil, Errorf(EINVALID, "main_content_filters required")
	}

	p := &Preset{
		PresetMatchDetectors: *raw.PresetMatchDetectors,
		MainContentSelectors: *raw.MainContentSelectors,
		MainContentFilters:   *raw.MainContentFilters,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// ParsePresetBytes is a convenience wrapper around ParsePreset.
func ParsePresetBytes(data []byte) (*Preset, error) {
	return ParsePreset(bytes.NewReader(data))
}

// StoredPreset is an accepted preset persisted for reuse on a site.
type StoredPreset struct {
	ID string `json:"id"`

	// SitePattern is a glob matched against a URL's host and path,
	// e.g. "docs.example.com/**".
	SitePattern string `json:"sitePattern"`

	Preset Preset `json:"preset"`

	// ContentHash identifies the preset content independent of its ID.
	ContentHash string    `json:"contentHash"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate returns an error if the stored preset contains invalid fields.
func (s *StoredPreset) Validate() error {
	if s.SitePattern == "" {
		return Errorf(EINVALID, "preset site pattern required")
	}
	return s.Preset.Validate()
}

// PresetService represents a service for managing accepted presets.
type PresetService interface {
	// CreatePreset stores a new preset.
	// Returns ECONFLICT if the same preset is already stored for the pattern.
	CreatePreset(ctx context.Context, preset *StoredPreset) error

	// FindPresetByID retrieves a preset by ID.
	// Returns ENOTFOUND if preset does not exist.
	FindPresetByID(ctx context.Context, id string) (*StoredPreset, error)

	// FindPresets retrieves presets matching the filter.
	FindPresets(ctx context.Context, filter PresetFilter) ([]*StoredPreset, error)

	// FindPresetsForURL retrieves presets whose site pattern matches the
	// URL, most recently created first.
	FindPresetsForURL(ctx context.Context, rawURL string) ([]*StoredPreset, error)

	// DeletePreset permanently removes a preset.
	// Returns ENOTFOUND if preset does not exist.
	DeletePreset(ctx context.Context, id string) error
}

// PresetFilter represents a filter for FindPresets.
type PresetFilter struct {
	ID          *string `json:"id"`
	SitePattern *string `json:"sitePattern"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
