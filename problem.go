package readweb

import "encoding/json"

// Validation problem kinds as reported on the wire.
const (
	KindInvalidSelectorsDetected   = "invalid_selectors_detected"
	KindPresetMatchDetectorsNoHit  = "preset_match_detectors_did_not_hit_any_node"
	KindMainContentSelectorsNoHit  = "main_content_selectors_failed"
	KindFiltersDoNotApply          = "main_content_filters_do_not_apply_to_main_content"
	KindNthChildSelectorsDetected  = "nth_child_selectors_detected"
	KindContainsSelectorDetected   = "contains_pseudo_selector_detected"
	KindNestedMainContentSelectors = "nested_selectors_detected_in_main_content_selectors"
)

// ValidationProblem is a finding produced by validating a preset against a
// document. The set of implementations is closed; switch over the concrete
// types below.
type ValidationProblem interface {
	// Kind returns the wire name of the problem.
	Kind() string

	// Critical reports whether the problem blocks extraction.
	Critical() bool

	validationProblem()
}

// InvalidSelectorsDetected lists selectors the selector engine rejected.
type InvalidSelectorsDetected struct {
	Selectors []string
}

// PresetMatchDetectorsDidNotHitAnyNode lists detectors matching nothing.
type PresetMatchDetectorsDidNotHitAnyNode struct {
	Selectors []string
}

// MainContentSelectorsDidNotHitAnyNode lists main content selectors
// matching nothing.
type MainContentSelectorsDidNotHitAnyNode struct {
	Selectors []string
}

// MainContentFiltersDoNotApply lists filters that match nothing inside the
// selected main content.
type MainContentFiltersDoNotApply struct {
	Selectors []string
}

// NthChildSelectorsDetected lists selectors using positional pseudo-classes.
type NthChildSelectorsDetected struct {
	Selectors []string
}

// ContainsPseudoSelectorDetected lists selectors using :contains().
type ContainsPseudoSelectorDetected struct {
	Selectors []string
}

// NestedMainContentSelectors lists pairs of main content selectors where
// the outer selector's matches contain the inner selector's matches.
// Direct relations come before transitive ones.
type NestedMainContentSelectors struct {
	Relations []SelectorRelation
}

// SelectorRelation is an outer → inner containment between two selectors.
type SelectorRelation struct {
	Outer string `json:"outer"`
	Inner string `json:"inner"`
}

func (InvalidSelectorsDetected) Kind() string             { return KindInvalidSelectorsDetected }
func (PresetMatchDetectorsDidNotHitAnyNode) Kind() string { return KindPresetMatchDetectorsNoHit }
func (MainContentSelectorsDidNotHitAnyNode) Kind() string { return KindMainContentSelectorsNoHit }
func (MainContentFiltersDoNotApply) Kind() string         { return KindFiltersDoNotApply }
func (NthChildSelectorsDetected) Kind() string            { return KindNthChildSelectorsDetected }
func (ContainsPseudoSelectorDetected) Kind() string       { return KindContainsSelectorDetected }
func (NestedMainContentSelectors) Kind() string           { return KindNestedMainContentSelectors }

func (InvalidSelectorsDetected) Critical() bool             { return true }
func (PresetMatchDetectorsDidNotHitAnyNode) Critical() bool { return true }
func (MainContentSelectorsDidNotHitAnyNode) Critical() bool { return true }
func (MainContentFiltersDoNotApply) Critical() bool         { return false }
func (NthChildSelectorsDetected) Critical() bool            { return false }
func (ContainsPseudoSelectorDetected) Critical() bool       { return false }
func (NestedMainContentSelectors) Critical() bool           { return false }

func (InvalidSelectorsDetected) validationProblem()             {}
func (PresetMatchDetectorsDidNotHitAnyNode) validationProblem() {}
func (MainContentSelectorsDidNotHitAnyNode) validationProblem() {}
func (MainContentFiltersDoNotApply) validationProblem()         {}
func (NthChildSelectorsDetected) validationProblem()            {}
func (ContainsPseudoSelectorDetected) validationProblem()       {}
func (NestedMainContentSelectors) validationProblem()           {}

func (p InvalidSelectorsDetected) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p PresetMatchDetectorsDidNotHitAnyNode) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p MainContentSelectorsDidNotHitAnyNode) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p MainContentFiltersDoNotApply) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p NthChildSelectorsDetected) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p ContainsPseudoSelectorDetected) MarshalJSON() ([]byte, error) {
	return marshalSelectors(p.Kind(), p.Selectors)
}

func (p NestedMainContentSelectors) MarshalJSON() ([]byte, error) {
	relations := p.Relations
	if relations == nil {
		relations = []SelectorRelation{}
	}
	return json.Marshal(struct {
		Type      string             `json:"type"`
		Relations []SelectorRelation `json:"relations"`
	}{p.Kind(), relations})
}

func marshalSelectors(kind string, selectors []string) ([]byte, error) {
	if selectors == nil {
		selectors = []string{}
	}
	return json.Marshal(struct {
		Type      string   `json:"type"`
		Selectors []string `json:"selectors"`
	}{kind, selectors})
}

// Problems holds the outcome of validating a preset. Critical problems are
// ordered by priority: invalid selectors, then unmatched detectors, then
// unmatched main content selectors.
type Problems struct {
	Critical    []ValidationProblem `json:"critical"`
	NonCritical []ValidationProblem `json:"nonCritical"`
}

// HasCritical reports whether any problem blocks extraction.
func (p Problems) HasCritical() bool {
	return len(p.Critical) > 0
}

// Empty reports whether validation found nothing at all.
func (p Problems) Empty() bool {
	return len(p.Critical) == 0 && len(p.NonCritical) == 0
}

// MarshalJSON encodes empty lists as empty arrays.
func (p Problems) MarshalJSON() ([]byte, error) {
	type wire Problems
	w := wire(p)
	if w.Critical == nil {
		w.Critical = []ValidationProblem{}
	}
	if w.NonCritical == nil {
		w.NonCritical = []ValidationProblem{}
	}
	return json.Marshal(w)
}
