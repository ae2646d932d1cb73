package readweb_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/readweb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCriticalFeedback(t *testing.T) {
	t.Parallel()

	got := readweb.RenderCriticalFeedback([]readweb.ValidationProblem{
		readweb.InvalidSelectorsDetected{Selectors: []string{"div:contains(", "a[href"}},
		readweb.PresetMatchDetectorsDidNotHitAnyNode{Selectors: []string{"#nav"}},
		readweb.MainContentSelectorsDidNotHitAnyNode{Selectors: []string{"#main"}},
		readweb.NthChildSelectorsDetected{Selectors: []string{"li:nth-child(2)"}},
	})

	assert.Equal(t, "- These selectors are syntactically invalid or unsupported: div:contains(, a[href. Fix unmatched parentheses, typos, or remove unsupported pseudo-selectors.\n"+
		"- These preset match selectors matched nothing: #nav. Choose stable site-wide elements (e.g., header, nav, footer) that exist across pages.\n"+
		"- These main content selectors matched nothing: #main. Target the container that holds the readable article or body content.", got)
}

func TestRenderNonCriticalFeedback(t *testing.T) {
	t.Parallel()

	got := readweb.RenderNonCriticalFeedback([]readweb.ValidationProblem{
		readweb.MainContentFiltersDoNotApply{Selectors: []string{".ad"}},
		readweb.NthChildSelectorsDetected{Selectors: []string{"li:nth-child(2)"}},
		readweb.ContainsPseudoSelectorDetected{Selectors: []string{"p:contains('x')"}},
		readweb.NestedMainContentSelectors{Relations: []readweb.SelectorRelation{
			{Outer: "#content", Inner: ".block"},
			{Outer: ".block", Inner: ".inner"},
		}},
	})

	assert.Equal(t, "- These filters do not match within the selected main content: .ad. Remove them or scope them to elements inside the main content.\n"+
		"- Avoid nth-child/of-type in these selectors: li:nth-child(2). The DOM structure can change; prefer stable attributes or classes.\n"+
		"- Avoid :contains(...) in these selectors: p:contains('x'). Prefer structural or attribute-based targeting.\n"+
		"- Some main content selectors are nested within others: #content → .block; .block → .inner. Use a single parent-level selector to avoid duplication and brittleness.", got)
}

func TestRenderFeedback(t *testing.T) {
	t.Parallel()

	t.Run("empty when nothing to report", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, readweb.RenderFeedback(readweb.Problems{}, "  "))
	})

	t.Run("preview only", func(t *testing.T) {
		t.Parallel()

		got := readweb.RenderFeedback(readweb.Problems{}, "Hello")

		assert.Equal(t, "\n\nExtraction preview (markdown):\nHello", got)
	})

	t.Run("problems then preview", func(t *testing.T) {
		t.Parallel()

		got := readweb.RenderFeedback(readweb.Problems{
			NonCritical: []readweb.ValidationProblem{readweb.MainContentFiltersDoNotApply{Selectors: []string{".ad"}}},
		}, "Hello")

		assert.Equal(t, "Please fix the following issues in your next attempt:\n"+
			"- These filters do not match within the selected main content: .ad. Remove them or scope them to elements inside the main content.\n"+
			"\n\nExtraction preview (markdown):\nHello", got)
	})
}

func TestRenderApplyFailure(t *testing.T) {
	t.Parallel()

	got := readweb.RenderApplyFailure(readweb.MainContentSelectorsFailed{Selectors: []string{"#missing"}})

	assert.Equal(t, "Please fix the following issues in your next attempt:\n"+
		"- These main content selectors matched nothing: #missing. Target the container that holds the readable article or body content.", got)
	assert.Empty(t, readweb.RenderApplyFailure(readweb.ApplyOK{Markup: "<p>x</p>"}))
}

func TestFailureFor(t *testing.T) {
	t.Parallel()

	r, ok := readweb.FailureFor(readweb.PresetMatchDetectorsDidNotHitAnyNode{Selectors: []string{"#nav"}})
	require.True(t, ok)
	assert.Equal(t, readweb.PresetMatchDetectorsFailed{Selectors: []string{"#nav"}}, r)

	_, ok = readweb.FailureFor(readweb.NthChildSelectorsDetected{})
	assert.False(t, ok)
}

func TestProblems_MarshalJSON(t *testing.T) {
	t.Parallel()

	p := readweb.Problems{
		Critical: []readweb.ValidationProblem{readweb.InvalidSelectorsDetected{Selectors: []string{"a["}}},
		NonCritical: []readweb.ValidationProblem{readweb.NestedMainContentSelectors{Relations: []readweb.SelectorRelation{
			{Outer: "main", Inner: "article"},
		}}},
	}

	data, err := json.Marshal(p)

	require.NoError(t, err)
	assert.JSONEq(t, `{
		"critical": [{"type": "invalid_selectors_detected", "selectors": ["a["]}],
		"nonCritical": [{"type": "nested_selectors_detected_in_main_content_selectors", "relations": [{"outer": "main", "inner": "article"}]}]
	}`, string(data))
}

func TestApplyOK_MarshalJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(readweb.ApplyResult(readweb.ApplyOK{Markup: "<p>x</p>"}))

	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ok","markup":"<p>x</p>"}`, string(data))
}
