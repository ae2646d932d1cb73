package goquery

import (
	"regexp"

	"github.com/fwojciec/readweb"
	"golang.org/x/net/html"
)

var (
	nthChildPattern = regexp.MustCompile(`(?i):(?:nth-child|nth-last-child|nth-of-type|nth-last-of-type)\s*\(`)
	containsPattern = regexp.MustCompile(`(?i):contains\s*\(`)
)

// Validate checks the preset against the document. Critical problems are
// ordered by priority. Advisory checks run only when every selector
// compiles.
func (d *Document) Validate(p readweb.Preset) readweb.Problems {
	return d.validate(p, compileSelectors(p.Selectors()))
}

func (d *Document) validate(p readweb.Preset, compiled compiledSelectors) readweb.Problems {
	problems := readweb.Problems{Critical: d.critical(p, compiled)}
	if len(compiled.invalid) == 0 {
		problems.NonCritical = d.nonCritical(p, compiled)
	}
	return problems
}

func (d *Document) critical(p readweb.Preset, compiled compiledSelectors) []readweb.ValidationProblem {
	var problems []readweb.ValidationProblem
	if len(compiled.invalid) > 0 {
		problems = append(problems, readweb.InvalidSelectorsDetected{Selectors: compiled.invalid})
	}
	if missed := d.unmatched(p.PresetMatchDetectors, compiled); len(missed) > 0 {
		problems = append(problems, readweb.PresetMatchDetectorsDidNotHitAnyNode{Selectors: missed})
	}
	if missed := d.unmatched(p.MainContentSelectors, compiled); len(missed) > 0 {
		problems = append(problems, readweb.MainContentSelectorsDidNotHitAnyNode{Selectors: missed})
	}
	return problems
}

// unmatched returns the valid selectors that match no node.
func (d *Document) unmatched(selectors []string, compiled compiledSelectors) []string {
	var missed []string
	for _, s := range selectors {
		m, ok := compiled.valid[s]
		if !ok {
			continue
		}
		if len(d.find(m)) == 0 {
			missed = append(missed, s)
		}
	}
	return missed
}

func (d *Document) nonCritical(p readweb.Preset, compiled compiledSelectors) []readweb.ValidationProblem {
	var problems []readweb.ValidationProblem

	if ineffective := d.ineffectiveFilters(p, compiled); len(ineffective) > 0 {
		problems = append(problems, readweb.MainContentFiltersDoNotApply{Selectors: ineffective})
	}
	if matched := matching(p.Selectors(), nthChildPattern); len(matched) > 0 {
		problems = append(problems, readweb.NthChildSelectorsDetected{Selectors: matched})
	}
	if matched := matching(p.Selectors(), containsPattern); len(matched) > 0 {
		problems = append(problems, readweb.ContainsPseudoSelectorDetected{Selectors: matched})
	}
	if relations := d.nestedRelations(p.MainContentSelectors, compiled); len(relations) > 0 {
		problems = append(problems, readweb.NestedMainContentSelectors{Relations: relations})
	}

	return problems
}

// ineffectiveFilters returns filters matching neither a main content node
// nor anything inside one.
func (d *Document) ineffectiveFilters(p readweb.Preset, compiled compiledSelectors) []string {
	main := make(map[*html.Node]bool)
	for _, s := range p.MainContentSelectors {
		if m, ok := compiled.valid[s]; ok {
			for _, n := range d.find(m) {
				main[n] = true
			}
		}
	}

	var ineffective []string
	for _, s := range p.MainContentFilters {
		m, ok := compiled.valid[s]
		if !ok {
			continue
		}
		if !anyWithin(d.find(m), main) {
			ineffective = append(ineffective, s)
		}
	}
	return ineffective
}

// nestedRelations finds ordered pairs of main content selectors where a
// node matched by the first is, or contains, a node matched by the second.
// Direct relations are returned before transitive ones.
func (d *Document) nestedRelations(selectors []string, compiled compiledSelectors) []readweb.SelectorRelation {
	var relations []readweb.SelectorRelation
	edges := make(map[readweb.SelectorRelation]bool)

	for _, outer := range selectors {
		for _, inner := range selectors {
			if outer == inner {
				continue
			}
			rel := readweb.SelectorRelation{Outer: outer, Inner: inner}
			if edges[rel] {
				continue
			}
			mo, ok := compiled.valid[outer]
			if !ok {
				continue
			}
			mi, ok := compiled.valid[inner]
			if !ok {
				continue
			}
			if anyWithin(d.find(mi), nodeSet(d.find(mo))) {
				edges[rel] = true
				relations = append(relations, rel)
			}
		}
	}

	transitive := func(r readweb.SelectorRelation) bool {
		for _, mid := range selectors {
			if mid == r.Outer || mid == r.Inner {
				continue
			}
			if edges[readweb.SelectorRelation{Outer: r.Outer, Inner: mid}] &&
				edges[readweb.SelectorRelation{Outer: mid, Inner: r.Inner}] {
				return true
			}
		}
		return false
	}

	var direct, indirect []readweb.SelectorRelation
	for _, r := range relations {
		if transitive(r) {
			indirect = append(indirect, r)
		} else {
			direct = append(direct, r)
		}
	}
	return append(direct, indirect...)
}

// anyWithin reports whether any node is in set or has an ancestor in set.
func anyWithin(nodes []*html.Node, set map[*html.Node]bool) bool {
	for _, n := range nodes {
		for cur := n; cur != nil; cur = cur.Parent {
			if set[cur] {
				return true
			}
		}
	}
	return false
}

func nodeSet(nodes []*html.Node) map[*html.Node]bool {
	set := make(map[*html.Node]bool, len(nodes))
	for _, n := range nodes {
		set[n] = true
	}
	return set
}

func matching(selectors []string, pattern *regexp.Regexp) []string {
	var matched []string
	for _, s := range selectors {
		if pattern.MatchString(s) {
			matched = append(matched, s)
		}
	}
	return matched
}
