package readweb_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/readweb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePreset(t *testing.T) {
	t.Parallel()

	t.Run("decodes a complete preset", func(t *testing.T) {
		t.Parallel()

		p, err := readweb.ParsePreset(strings.NewReader(`{
			"preset_match_detectors": [".main"],
			"main_content_selectors": ["#p"],
			"main_content_filters": [".sponsored"]
		}`))

		require.NoError(t, err)
		assert.Equal(t, []string{".main"}, p.PresetMatchDetectors)
		assert.Equal(t, []string{"#p"}, p.MainContentSelectors)
		assert.Equal(t, []string{".sponsored"}, p.MainContentFilters)
	})

	t.Run("accepts empty filters", func(t *testing.T) {
		t.Parallel()

		p, err := readweb.ParsePresetBytes([]byte(`{"preset_match_detectors":["a"],"main_content_selectors":["b"],"main_content_filters":[]}`))

		require.NoError(t, err)
		assert.Empty(t, p.MainContentFilters)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"unknown field", `{"preset_match_detectors":["a"],"main_content_selectors":["b"],"main_content_filters":[],"url":"x"}`},
		{"missing detectors", `{"main_content_selectors":["b"],"main_content_filters":[]}`},
		{"missing main selectors", `{"preset_match_detectors":["a"],"main_content_filters":[]}`},
		{"missing filters", `{"preset_match_detectors":["a"],"main_content_selectors":["b"]}`},
		{"null detectors", `{"preset_match_detectors":null,"main_content_selectors":["b"],"main_content_filters":[]}`},
		{"empty detectors", `{"preset_match_detectors":[],"main_content_selectors":["b"],"main_content_filters":[]}`},
		{"empty main selectors", `{"preset_match_detectors":["a"],"main_content_selectors":[],"main_content_filters":[]}`},
		{"wrong type", `{"preset_match_detectors":"a","main_content_selectors":["b"],"main_content_filters":[]}`},
		{"trailing data", `{"preset_match_detectors":["a"],"main_content_selectors":["b"],"main_content_filters":[]} {}`},
		{"not json", `preset`},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := readweb.ParsePreset(strings.NewReader(tt.input))

			assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
		})
	}
}

func TestPreset_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires detectors", func(t *testing.T) {
		t.Parallel()

		p := readweb.Preset{MainContentSelectors: []string{"main"}}

		err := p.Validate()

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
		assert.Contains(t, readweb.ErrorMessage(err), "preset_match_detectors")
	})

	t.Run("requires main content selectors", func(t *testing.T) {
		t.Parallel()

		p := readweb.Preset{PresetMatchDetectors: []string{"body"}}

		err := p.Validate()

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
		assert.Contains(t, readweb.ErrorMessage(err), "main_content_selectors")
	})

	t.Run("filters are optional", func(t *testing.T) {
		t.Parallel()

		p := readweb.Preset{PresetMatchDetectors: []string{"body"}, MainContentSelectors: []string{"main"}}

		assert.NoError(t, p.Validate())
	})
}

func TestPreset_MarshalJSON(t *testing.T) {
	t.Parallel()

	p := readweb.Preset{PresetMatchDetectors: []string{"body"}, MainContentSelectors: []string{"main"}}

	data, err := json.Marshal(p)

	require.NoError(t, err)
	assert.JSONEq(t, `{"preset_match_detectors":["body"],"main_content_selectors":["main"],"main_content_filters":[]}`, string(data))

	parsed, err := readweb.ParsePresetBytes(data)
	require.NoError(t, err)
	assert.Equal(t, p.PresetMatchDetectors, parsed.PresetMatchDetectors)
}

func TestPreset_Selectors(t *testing.T) {
	t.Parallel()

	p := readweb.Preset{
		PresetMatchDetectors: []string{"header"},
		MainContentSelectors: []string{"main", "article"},
		MainContentFilters:   []string{".ad"},
	}

	assert.Equal(t, []string{"header", "main", "article", ".ad"}, p.Selectors())
}

func TestStoredPreset_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires site pattern", func(t *testing.T) {
		t.Parallel()

		s := readweb.StoredPreset{Preset: readweb.Preset{PresetMatchDetectors: []string{"a"}, MainContentSelectors: []string{"b"}}}

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(s.Validate()))
	})

	t.Run("validates preset shape", func(t *testing.T) {
		t.Parallel()

		s := readweb.StoredPreset{SitePattern: "example.com/**"}

		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(s.Validate()))
	})
}

func TestFixture_Validate(t *testing.T) {
	t.Parallel()

	f := readweb.Fixture{URL: "https://example.com"}

	assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(f.Validate()))
}
