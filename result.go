package readweb

import "encoding/json"

// Apply result kinds as reported on the wire.
const (
	KindInvalidSelectorsFailed     = "invalid_selectors_failed"
	KindPresetMatchDetectorsFailed = "preset_match_detectors_failed"
	KindMainContentSelectorsFailed = "main_content_selectors_failed"
	KindOK                         = "ok"
)

// ApplyResult is the outcome of applying a preset to a document. The set
// of implementations is closed: ApplyOK on success, one failure type per
// critical validation problem.
type ApplyResult interface {
	Kind() string
	applyResult()
}

// InvalidSelectorsFailed reports that extraction was refused because
// selectors failed to parse.
type InvalidSelectorsFailed struct {
	Selectors []string
}

// PresetMatchDetectorsFailed reports that the page does not have the
// layout the preset was built for.
type PresetMatchDetectorsFailed struct {
	Selectors []string
}

// MainContentSelectorsFailed reports main content selectors that matched
// nothing.
type MainContentSelectorsFailed struct {
	Selectors []string
}

// ApplyOK carries the extracted main content markup, which may be empty.
type ApplyOK struct {
	Markup string
}

func (InvalidSelectorsFailed) Kind() string     { return KindInvalidSelectorsFailed }
func (PresetMatchDetectorsFailed) Kind() string { return KindPresetMatchDetectorsFailed }
func (MainContentSelectorsFailed) Kind() string { return KindMainContentSelectorsFailed }
func (ApplyOK) Kind() string                    { return KindOK }

func (InvalidSelectorsFailed) applyResult()     {}
func (PresetMatchDetectorsFailed) applyResult() {}
func (MainContentSelectorsFailed) applyResult() {}
func (ApplyOK) applyResult()                    {}

func (r InvalidSelectorsFailed) MarshalJSON() ([]byte, error) {
	return marshalSelectors(r.Kind(), r.Selectors)
}

func (r PresetMatchDetectorsFailed) MarshalJSON() ([]byte, error) {
	return marshalSelectors(r.Kind(), r.Selectors)
}

func (r MainContentSelectorsFailed) MarshalJSON() ([]byte, error) {
	return marshalSelectors(r.Kind(), r.Selectors)
}

func (r ApplyOK) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Markup string `json:"markup"`
	}{r.Kind(), r.Markup})
}

// FailureFor maps a critical validation problem to the apply failure it
// causes. It returns false for non-critical problems.
func FailureFor(p ValidationProblem) (ApplyResult, bool) {
	switch p := p.(type) {
	case InvalidSelectorsDetected:
		return InvalidSelectorsFailed{Selectors: p.Selectors}, true
	case PresetMatchDetectorsDidNotHitAnyNode:
		return PresetMatchDetectorsFailed{Selectors: p.Selectors}, true
	case MainContentSelectorsDidNotHitAnyNode:
		return MainContentSelectorsFailed{Selectors: p.Selectors}, true
	default:
		return nil, false
	}
}
