package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/readweb"
	"golang.org/x/net/html"
)

var _ readweb.Document = (*Document)(nil)

// Document is a normalized page. It is never mutated after normalization:
// validation only reads it and extraction works on a fresh copy of the
// matched fragments.
type Document struct {
	doc *goquery.Document
}

func newDocument(doc *goquery.Document) *Document {
	return &Document{doc: doc}
}

// NewDocument parses markup without normalizing it. It is meant for
// markup that is already normalized, such as a stored fixture.
func NewDocument(markup string) (*Document, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, readweb.Errorf(readweb.EINTERNAL, "failed to parse HTML: %v", err)
	}
	return newDocument(goquery.NewDocumentFromNode(root)), nil
}

// HTML returns the inner markup of the body, or of the whole tree when the
// document has no body.
func (d *Document) HTML() (string, error) {
	return bodyHTML(d.doc)
}

// Selection exposes the underlying document for read-only queries.
func (d *Document) Selection() *goquery.Selection {
	return d.doc.Selection
}

// find returns the nodes matching m in document order.
func (d *Document) find(m cascadia.Selector) []*html.Node {
	return d.doc.FindMatcher(m).Nodes
}

func bodyHTML(doc *goquery.Document) (string, error) {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return doc.Html()
	}
	return body.Html()
}

// compiledSelectors holds the outcome of compiling a list of selectors.
type compiledSelectors struct {
	valid   map[string]cascadia.Selector
	invalid []string
}

// compileSelectors compiles every selector with the selector engine.
// Invalid selectors are reported once each, in first-seen order.
func compileSelectors(selectors []string) compiledSelectors {
	c := compiledSelectors{valid: make(map[string]cascadia.Selector)}
	seen := make(map[string]bool)
	for _, s := range selectors {
		if seen[s] {
			continue
		}
		seen[s] = true

		sel, err := cascadia.Compile(s)
		if err != nil {
			c.invalid = append(c.invalid, s)
			continue
		}
		c.valid[s] = sel
	}
	return c
}
