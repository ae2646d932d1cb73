package main_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/fwojciec/readweb"
	main "github.com/fwojciec/readweb/cmd/readweb"
	"github.com/fwojciec/readweb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixtures(fixture *readweb.Fixture) *mock.FixtureStore {
	return &mock.FixtureStore{
		LoadFn: func(_ context.Context, name string) (*readweb.Fixture, error) {
			if fixture == nil {
				return nil, readweb.Errorf(readweb.ENOTFOUND, "fixture %q not found", name)
			}
			return fixture, nil
		},
	}
}

func suggesting(s *readweb.Suggestion) *mock.Suggester {
	return &mock.Suggester{
		SuggestFn: func(context.Context, *readweb.Fixture) (*readweb.Suggestion, error) {
			return s, nil
		},
	}
}

func TestSuggestCmd_Run(t *testing.T) {
	t.Parallel()

	suggested := &readweb.Preset{
		PresetMatchDetectors: []string{"#app"},
		MainContentSelectors: []string{".article"},
		MainContentFilters:   []string{".share"},
	}
	fixture := &readweb.Fixture{URL: "https://docs.example.com/guide/intro", HTML: page}

	t.Run("prints the accepted preset", func(t *testing.T) {
		t.Parallel()

		deps, stdout, stderr := newDeps("")
		deps.Fixtures = fixtures(fixture)
		deps.Suggester = suggesting(&readweb.Suggestion{Preset: suggested, Accepted: true, Steps: 2})

		err := (&main.SuggestCmd{Fixture: "intro"}).Run(deps)

		require.NoError(t, err)
		got, err := readweb.ParsePresetBytes(stdout.Bytes())
		require.NoError(t, err)
		assert.Equal(t, suggested, got)
		assert.Empty(t, stderr.String())
	})

	t.Run("warns when the preset was not accepted", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps("")
		deps.Fixtures = fixtures(fixture)
		deps.Suggester = suggesting(&readweb.Suggestion{Preset: suggested, Steps: 5})

		err := (&main.SuggestCmd{Fixture: "intro"}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stderr.String(), "not confirmed after 5 attempt(s)")
	})

	t.Run("fails without a working preset", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps("")
		deps.Fixtures = fixtures(fixture)
		deps.Suggester = suggesting(&readweb.Suggestion{Steps: 5})

		err := (&main.SuggestCmd{Fixture: "intro"}).Run(deps)

		assert.Equal(t, readweb.ENOTREADABLE, readweb.ErrorCode(err))
		assert.Empty(t, stdout.String())
	})

	t.Run("saves for the fixture host by default", func(t *testing.T) {
		t.Parallel()

		var saved *readweb.StoredPreset
		deps, _, stderr := newDeps("")
		deps.Fixtures = fixtures(fixture)
		deps.Suggester = suggesting(&readweb.Suggestion{Preset: suggested, Accepted: true, Steps: 1})
		deps.Presets = &mock.PresetService{
			CreatePresetFn: func(_ context.Context, p *readweb.StoredPreset) error {
				p.ID = "preset-1"
				saved = p
				return nil
			},
		}

		err := (&main.SuggestCmd{Fixture: "intro", Save: true}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, "docs.example.com/**", saved.SitePattern)
		assert.Equal(t, *suggested, saved.Preset)
		assert.Contains(t, stderr.String(), "Saved preset preset-1")
	})

	t.Run("saves for an explicit site pattern", func(t *testing.T) {
		t.Parallel()

		var pattern string
		deps, _, _ := newDeps("")
		deps.Fixtures = fixtures(&readweb.Fixture{HTML: page})
		deps.Suggester = suggesting(&readweb.Suggestion{Preset: suggested, Accepted: true, Steps: 1})
		deps.Presets = &mock.PresetService{
			CreatePresetFn: func(_ context.Context, p *readweb.StoredPreset) error {
				pattern = p.SitePattern
				return nil
			},
		}

		err := (&main.SuggestCmd{Fixture: "intro", Save: true, SitePattern: "example.com/blog/**"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "example.com/blog/**", pattern)
	})

	t.Run("requires a site pattern when the fixture has no URL", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps("")
		deps.Fixtures = fixtures(&readweb.Fixture{HTML: page})
		deps.Suggester = suggesting(&readweb.Suggestion{Preset: suggested, Accepted: true, Steps: 1})
		deps.Presets = &mock.PresetService{}

		err := (&main.SuggestCmd{Fixture: "intro", Save: true}).Run(deps)

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
	})

	t.Run("propagates missing fixture", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps("")
		deps.Fixtures = fixtures(nil)

		err := (&main.SuggestCmd{Fixture: "nope"}).Run(deps)

		assert.Equal(t, readweb.ENOTFOUND, readweb.ErrorCode(err))
	})
}

func TestFixtureCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("saves the fetched page", func(t *testing.T) {
		t.Parallel()

		var saved *readweb.Fixture
		deps, stdout, _ := newDeps("")
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return page, nil
			},
		}
		deps.Fixtures = &mock.FixtureStore{
			SaveFn: func(_ context.Context, f *readweb.Fixture) (string, error) {
				saved = f
				return "fixtures/example.com_docs.json", nil
			},
		}

		err := (&main.FixtureCmd{URL: "https://example.com/docs"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "fixtures/example.com_docs.json\n", stdout.String())
		require.NotNil(t, saved)
		assert.Equal(t, "https://example.com/docs", saved.URL)
		assert.Equal(t, page, saved.HTML)
	})

	t.Run("propagates fetch errors", func(t *testing.T) {
		t.Parallel()

		fetchErr := errors.New("connection refused")
		deps, _, _ := newDeps("")
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", fetchErr
			},
		}
		deps.Fixtures = &mock.FixtureStore{}

		err := (&main.FixtureCmd{URL: "https://example.com/docs"}).Run(deps)

		assert.ErrorIs(t, err, fetchErr)
	})
}

// decodeJSON is a small helper for commands printing JSON.
func decodeJSON(t *testing.T, data []byte, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(data, v))
}
