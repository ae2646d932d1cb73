package mock

import (
	"context"

	"github.com/fwojciec/readweb"
)

var (
	_ readweb.PresetService = (*PresetService)(nil)
	_ readweb.Suggester     = (*Suggester)(nil)
)

// PresetService is a mock implementation of readweb.PresetService.
type PresetService struct {
	CreatePresetFn      func(ctx context.Context, preset *readweb.StoredPreset) error
	FindPresetByIDFn    func(ctx context.Context, id string) (*readweb.StoredPreset, error)
	FindPresetsFn       func(ctx context.Context, filter readweb.PresetFilter) ([]*readweb.StoredPreset, error)
	FindPresetsForURLFn func(ctx context.Context, url string) ([]*readweb.StoredPreset, error)
	DeletePresetFn      func(ctx context.Context, id string) error
}

func (s *PresetService) CreatePreset(ctx context.Context, preset *readweb.StoredPreset) error {
	return s.CreatePresetFn(ctx, preset)
}

func (s *PresetService) FindPresetByID(ctx context.Context, id string) (*readweb.StoredPreset, error) {
	return s.FindPresetByIDFn(ctx, id)
}

func (s *PresetService) FindPresets(ctx context.Context, filter readweb.PresetFilter) ([]*readweb.StoredPreset, error) {
	return s.FindPresetsFn(ctx, filter)
}

func (s *PresetService) FindPresetsForURL(ctx context.Context, url string) ([]*readweb.StoredPreset, error) {
	return s.FindPresetsForURLFn(ctx, url)
}

func (s *PresetService) DeletePreset(ctx context.Context, id string) error {
	return s.DeletePresetFn(ctx, id)
}

// Suggester is a mock implementation of readweb.Suggester.
type Suggester struct {
	SuggestFn func(ctx context.Context, fixture *readweb.Fixture) (*readweb.Suggestion, error)
}

func (s *Suggester) Suggest(ctx context.Context, fixture *readweb.Fixture) (*readweb.Suggestion, error) {
	return s.SuggestFn(ctx, fixture)
}
