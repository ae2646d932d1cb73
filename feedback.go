package readweb

import (
	"fmt"
	"strings"
)

const (
	feedbackPreamble = "Please fix the following issues in your next attempt:"
	previewPreamble  = "Extraction preview (markdown):"
)

// RenderCriticalFeedback renders one line per critical problem in the form
// shown to a preset-suggesting agent. Non-critical problems are ignored.
func RenderCriticalFeedback(problems []ValidationProblem) string {
	var lines []string
	for _, p := range problems {
		switch p := p.(type) {
		case InvalidSelectorsDetected:
			lines = append(lines, invalidSelectorsLine(p.Selectors))
		case PresetMatchDetectorsDidNotHitAnyNode:
			lines = append(lines, detectorsLine(p.Selectors))
		case MainContentSelectorsDidNotHitAnyNode:
			lines = append(lines, mainContentLine(p.Selectors))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderNonCriticalFeedback renders one line per advisory problem.
// Critical problems are ignored.
func RenderNonCriticalFeedback(problems []ValidationProblem) string {
	var lines []string
	for _, p := range problems {
		switch p := p.(type) {
		case MainContentFiltersDoNotApply:
			lines = append(lines, fmt.Sprintf("- These filters do not match within the selected main content: %s. Remove them or scope them to elements inside the main content.", joinSelectors(p.Selectors)))
		case NthChildSelectorsDetected:
			lines = append(lines, fmt.Sprintf("- Avoid nth-child/of-type in these selectors: %s. The DOM structure can change; prefer stable attributes or classes.", joinSelectors(p.Selectors)))
		case ContainsPseudoSelectorDetected:
			lines = append(lines, fmt.Sprintf("- Avoid :contains(...) in these selectors: %s. Prefer structural or attribute-based targeting.", joinSelectors(p.Selectors)))
		case NestedMainContentSelectors:
			rels := make([]string, len(p.Relations))
			for i, r := range p.Relations {
				rels[i] = r.Outer + " → " + r.Inner
			}
			lines = append(lines, fmt.Sprintf("- Some main content selectors are nested within others: %s. Use a single parent-level selector to avoid duplication and brittleness.", strings.Join(rels, "; ")))
		}
	}
	return strings.Join(lines, "\n")
}

// RenderProblems renders every problem under the fix-these preamble.
// It returns an empty string when there is nothing to report.
func RenderProblems(problems Problems) string {
	var parts []string
	if s := RenderCriticalFeedback(problems.Critical); s != "" {
		parts = append(parts, s)
	}
	if s := RenderNonCriticalFeedback(problems.NonCritical); s != "" {
		parts = append(parts, s)
	}
	if len(parts) == 0 {
		return ""
	}
	return feedbackPreamble + "\n" + strings.Join(parts, "\n")
}

// RenderFeedback renders the problems followed by a markdown preview of
// the extraction. Either part is omitted when empty.
func RenderFeedback(problems Problems, markdownPreview string) string {
	var parts []string
	if s := RenderProblems(problems); s != "" {
		parts = append(parts, s)
	}
	if strings.TrimSpace(markdownPreview) != "" {
		parts = append(parts, "\n\n"+previewPreamble+"\n"+markdownPreview)
	}
	return strings.Join(parts, "\n")
}

// RenderApplyFailure renders a failed ApplyResult with the wording of its
// critical validation problem. It returns an empty string for ApplyOK.
func RenderApplyFailure(r ApplyResult) string {
	var line string
	switch r := r.(type) {
	case InvalidSelectorsFailed:
		line = invalidSelectorsLine(r.Selectors)
	case PresetMatchDetectorsFailed:
		line = detectorsLine(r.Selectors)
	case MainContentSelectorsFailed:
		line = mainContentLine(r.Selectors)
	default:
		return ""
	}
	return feedbackPreamble + "\n" + line
}

func invalidSelectorsLine(selectors []string) string {
	return fmt.Sprintf("- These selectors are syntactically invalid or unsupported: %s. Fix unmatched parentheses, typos, or remove unsupported pseudo-selectors.", joinSelectors(selectors))
}

func detectorsLine(selectors []string) string {
	return fmt.Sprintf("- These preset match selectors matched nothing: %s. Choose stable site-wide elements (e.g., header, nav, footer) that exist across pages.", joinSelectors(selectors))
}

func mainContentLine(selectors []string) string {
	return fmt.Sprintf("- These main content selectors matched nothing: %s. Target the container that holds the readable article or body content.", joinSelectors(selectors))
}

func joinSelectors(selectors []string) string {
	return strings.Join(selectors, ", ")
}
