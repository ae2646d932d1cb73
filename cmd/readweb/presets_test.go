package main_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/readweb"
	main "github.com/fwojciec/readweb/cmd/readweb"
	"github.com/fwojciec/readweb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresetsListCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists ID, site pattern and date", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("")
		deps.Presets = &mock.PresetService{
			FindPresetsFn: func(_ context.Context, filter readweb.PresetFilter) ([]*readweb.StoredPreset, error) {
				assert.Nil(t, filter.SitePattern)
				return []*readweb.StoredPreset{
					{ID: "p1", SitePattern: "docs.example.com/**", CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)},
					{ID: "p2", SitePattern: "blog.example.com/**", CreatedAt: time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)},
				}, nil
			},
		}

		err := (&main.PresetsListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, ""+
			"p1  docs.example.com/**  2026-03-01\n"+
			"p2  blog.example.com/**  2026-02-01\n", stdout.String())
	})

	t.Run("filters by site pattern", func(t *testing.T) {
		t.Parallel()

		var got *string
		deps, _, _ := newDeps("")
		deps.Presets = &mock.PresetService{
			FindPresetsFn: func(_ context.Context, filter readweb.PresetFilter) ([]*readweb.StoredPreset, error) {
				got = filter.SitePattern
				return nil, nil
			},
		}

		err := (&main.PresetsListCmd{Site: "docs.example.com/**"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "docs.example.com/**", *got)
	})

	t.Run("shows helpful message when no presets exist", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("")
		deps.Presets = &mock.PresetService{
			FindPresetsFn: func(context.Context, readweb.PresetFilter) ([]*readweb.StoredPreset, error) {
				return []*readweb.StoredPreset{}, nil
			},
		}

		err := (&main.PresetsListCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No presets found")
	})
}

func TestPresetsAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores the preset from stdin", func(t *testing.T) {
		t.Parallel()

		var saved *readweb.StoredPreset
		deps, stdout, _ := newDeps(presetJSON("#app", ".article", ".share"))
		deps.Presets = &mock.PresetService{
			CreatePresetFn: func(_ context.Context, p *readweb.StoredPreset) error {
				p.ID = "p1"
				saved = p
				return nil
			},
		}

		err := (&main.PresetsAddCmd{SitePattern: "docs.example.com/**", Preset: "-"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "p1\n", stdout.String())
		require.NotNil(t, saved)
		assert.Equal(t, "docs.example.com/**", saved.SitePattern)
		assert.Equal(t, []string{"#app"}, saved.Preset.PresetMatchDetectors)
	})

	t.Run("propagates conflicts", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(presetJSON("#app", ".article", ".share"))
		deps.Presets = &mock.PresetService{
			CreatePresetFn: func(context.Context, *readweb.StoredPreset) error {
				return readweb.Errorf(readweb.ECONFLICT, "preset already stored for this site pattern")
			},
		}

		err := (&main.PresetsAddCmd{SitePattern: "docs.example.com/**", Preset: "-"}).Run(deps)

		assert.Equal(t, readweb.ECONFLICT, readweb.ErrorCode(err))
	})

	t.Run("rejects malformed preset before storing", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(`{"preset_match_detectors": []}`)
		deps.Presets = &mock.PresetService{}

		err := (&main.PresetsAddCmd{SitePattern: "docs.example.com/**", Preset: "-"}).Run(deps)

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
	})
}

func TestPresetsDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes by ID", func(t *testing.T) {
		t.Parallel()

		var deleted string
		deps, stdout, _ := newDeps("")
		deps.Presets = &mock.PresetService{
			DeletePresetFn: func(_ context.Context, id string) error {
				deleted = id
				return nil
			},
		}

		err := (&main.PresetsDeleteCmd{ID: "p1"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "p1", deleted)
		assert.Equal(t, "Deleted preset p1\n", stdout.String())
	})

	t.Run("propagates not found", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("")
		deps.Presets = &mock.PresetService{
			DeletePresetFn: func(context.Context, string) error {
				return readweb.Errorf(readweb.ENOTFOUND, "preset not found")
			},
		}

		err := (&main.PresetsDeleteCmd{ID: "nope"}).Run(deps)

		assert.Equal(t, readweb.ENOTFOUND, readweb.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})
}
