package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readweb"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Apply validates the preset and extracts the main content when no
// critical problem exists. Otherwise it reports the highest-priority
// critical problem as a failure.
func (d *Document) Apply(p readweb.Preset) readweb.ApplyResult {
	compiled := compileSelectors(p.Selectors())
	return d.guarded(p, compiled, d.critical(p, compiled))
}

// Check validates the preset and applies it, compiling and matching the
// selectors once.
func (d *Document) Check(p readweb.Preset) (readweb.Problems, readweb.ApplyResult) {
	compiled := compileSelectors(p.Selectors())
	problems := d.validate(p, compiled)
	return problems, d.guarded(p, compiled, problems.Critical)
}

// ApplyUnchecked extracts the main content without validating the preset.
// Selectors that fail to parse match nothing.
func (d *Document) ApplyUnchecked(p readweb.Preset) readweb.ApplyResult {
	return d.extract(p, compileSelectors(p.Selectors()))
}

func (d *Document) guarded(p readweb.Preset, compiled compiledSelectors, critical []readweb.ValidationProblem) readweb.ApplyResult {
	if len(critical) > 0 {
		if failure, ok := readweb.FailureFor(critical[0]); ok {
			return failure
		}
	}
	return d.extract(p, compiled)
}

// extract copies every matched node into the body of a fresh working
// document, newline separated, and removes the filtered nodes from it.
// Copying nodes rather than re-parsing serialized markup keeps fragments
// such as table cells intact.
func (d *Document) extract(p readweb.Preset, compiled compiledSelectors) readweb.ApplyResult {
	working, body := newWorkingDocument()
	first := true
	for _, s := range p.MainContentSelectors {
		m, ok := compiled.valid[s]
		if !ok {
			continue
		}
		for _, n := range d.doc.FindMatcher(m).Clone().Nodes {
			if !first {
				body.AppendChild(&html.Node{Type: html.TextNode, Data: "\n"})
			}
			body.AppendChild(n)
			first = false
		}
	}

	for _, s := range p.MainContentFilters {
		if m, ok := compiled.valid[s]; ok {
			working.FindMatcher(m).Remove()
		}
	}

	// A filter may remove the body itself.
	if working.Find("body").Length() == 0 {
		return readweb.ApplyOK{}
	}
	markup, err := working.Find("body").First().Html()
	if err != nil || strings.TrimSpace(markup) == "" {
		return readweb.ApplyOK{}
	}
	return readweb.ApplyOK{Markup: markup}
}

// newWorkingDocument returns an empty document and its body element.
func newWorkingDocument() (*goquery.Document, *html.Node) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	root.AppendChild(&html.Node{Type: html.ElementNode, Data: "head", DataAtom: atom.Head})
	root.AppendChild(body)
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(root)
	return goquery.NewDocumentFromNode(doc), body
}
