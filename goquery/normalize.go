package goquery

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/readweb"
	whatwgUrl "github.com/nlnwa/whatwg-url/url"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var _ readweb.Normalizer = (*Normalizer)(nil)

// TruncationSuffix is appended to truncated text and attribute values.
const TruncationSuffix = " (truncated...)"

// Default normalization limits, counted in characters.
const (
	DefaultMaxTextLength = 120
	DefaultMaxAttrLength = 100
)

// DefaultAllowedAttributes lists the attributes kept by normalization in
// addition to data-* attributes.
var DefaultAllowedAttributes = []string{
	"id", "class", "href", "lang", "title", "alt", "value", "name",
	"placeholder", "checked", "selected", "disabled", "readonly",
	"action", "method", "src",
}

// noiseSelector matches elements that never render readable content.
const noiseSelector = "script, style, link[rel], iframe, embed, object, meta, svg, path, canvas, video, audio, picture, source, track"

// absoluteURLPattern matches http(s) and protocol-relative URLs.
var absoluteURLPattern = regexp.MustCompile(`(?i)^(?:https?:)?//`)

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithMaxTextLength sets the text node truncation length. Zero disables
// text truncation.
func WithMaxTextLength(n int) Option {
	return func(nz *Normalizer) {
		nz.maxTextLength = n
	}
}

// WithMaxAttrLength sets the attribute value truncation length, suffix
// included. Zero disables attribute truncation.
func WithMaxAttrLength(n int) Option {
	return func(nz *Normalizer) {
		nz.maxAttrLength = n
	}
}

// WithAllowedAttributes replaces the attribute allow-list. data-*
// attributes are always kept.
func WithAllowedAttributes(names ...string) Option {
	return func(nz *Normalizer) {
		nz.allowed = toSet(names)
	}
}

// WithClassifier sets the classifier used to drop volatile identifiers.
// A nil classifier keeps every identifier.
func WithClassifier(c *readweb.Classifier) Option {
	return func(nz *Normalizer) {
		nz.classifier = c
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(nz *Normalizer) {
		nz.logger = logger
	}
}

// Normalizer strips noise and volatile identifiers from page markup.
// A Normalizer is immutable after construction and safe for concurrent use.
type Normalizer struct {
	maxTextLength int
	maxAttrLength int
	allowed       map[string]bool
	classifier    *readweb.Classifier
	logger        *slog.Logger
	urlParser     whatwgUrl.Parser
}

// NewNormalizer creates a Normalizer with the default limits, allow-list
// and classifier.
func NewNormalizer(opts ...Option) *Normalizer {
	nz := &Normalizer{
		maxTextLength: DefaultMaxTextLength,
		maxAttrLength: DefaultMaxAttrLength,
		allowed:       toSet(DefaultAllowedAttributes),
		classifier:    readweb.NewDefaultClassifier(),
		logger:        slog.Default(),
		urlParser:     whatwgUrl.NewParser(whatwgUrl.WithPercentEncodeSinglePercentSign()),
	}
	for _, opt := range opts {
		opt(nz)
	}
	return nz
}

// NewContentNormalizer creates a Normalizer for final content extraction:
// text and attribute values are never truncated.
func NewContentNormalizer(opts ...Option) *Normalizer {
	return NewNormalizer(append([]Option{WithMaxTextLength(0), WithMaxAttrLength(0)}, opts...)...)
}

// Normalize parses markup and returns the normalized Document. It never
// fails on malformed markup.
func (nz *Normalizer) Normalize(markup string, baseURL string) (readweb.Document, error) {
	// Entity-encoded tags must become real tags, not literal text.
	decoded := html.UnescapeString(markup)

	parsed, err := html.Parse(strings.NewReader(decoded))
	if err != nil {
		return nil, readweb.Errorf(readweb.EINTERNAL, "failed to parse HTML: %v", err)
	}

	root := scopeToBody(parsed)
	doc := goquery.NewDocumentFromNode(root)

	doc.Find(noiseSelector).Remove()
	removeComments(root)
	if nz.maxTextLength > 0 {
		truncateText(root, nz.maxTextLength)
	}
	nz.filterAttributes(root)
	prune(root)
	if baseURL != "" {
		nz.rewriteURLs(root, baseURL)
	}
	if nz.maxAttrLength > 0 {
		truncateAttributes(root, nz.maxAttrLength)
	}

	return newDocument(doc), nil
}

// scopeToBody moves the children of the first body element into a fresh
// document with an attribute-less body. Without a body, the parsed tree is
// used unchanged.
func scopeToBody(parsed *html.Node) *html.Node {
	body := findElement(parsed, atom.Body)
	if body == nil {
		return parsed
	}

	root := &html.Node{Type: html.DocumentNode}
	htmlEl := &html.Node{Type: html.ElementNode, Data: "html", DataAtom: atom.Html}
	bodyEl := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	root.AppendChild(htmlEl)
	htmlEl.AppendChild(bodyEl)

	for c := body.FirstChild; c != nil; {
		next := c.NextSibling
		body.RemoveChild(c)
		bodyEl.AppendChild(c)
		c = next
	}
	return root
}

func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}

func removeComments(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if c.Type == html.CommentNode {
			n.RemoveChild(c)
		} else {
			removeComments(c)
		}
		c = next
	}
}

func truncateText(n *html.Node, limit int) {
	if n.Type == html.TextNode {
		n.Data = truncate(n.Data, limit, false)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		truncateText(c, limit)
	}
}

// truncate shortens s to limit characters. When fit is set, the suffix is
// counted within the limit; otherwise it is appended after it.
func truncate(s string, limit int, fit bool) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	keep := limit
	if fit {
		keep = max(0, limit-len([]rune(TruncationSuffix)))
	}
	return string(runes[:keep]) + TruncationSuffix
}

// filterAttributes applies the allow-list and drops identifiers the
// classifier flags as machine generated.
func (nz *Normalizer) filterAttributes(n *html.Node) {
	if n.Type == html.ElementNode && len(n.Attr) > 0 {
		kept := n.Attr[:0]
		for _, a := range n.Attr {
			isData := strings.HasPrefix(a.Key, "data-")
			if !isData && !nz.allowed[a.Key] {
				continue
			}
			switch {
			case a.Key == "id" || isData:
				if nz.isVolatile(a.Val) {
					continue
				}
			case a.Key == "class":
				a.Val = nz.stableClasses(a.Val)
				if a.Val == "" {
					continue
				}
			}
			kept = append(kept, a)
		}
		n.Attr = kept
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nz.filterAttributes(c)
	}
}

func (nz *Normalizer) isVolatile(token string) bool {
	return nz.classifier != nil && nz.classifier.IsGibberish(token)
}

func (nz *Normalizer) stableClasses(class string) string {
	var kept []string
	for _, token := range strings.Fields(class) {
		if !nz.isVolatile(token) {
			kept = append(kept, token)
		}
	}
	return strings.Join(kept, " ")
}

// prune removes elements with no attributes and no children until none
// remain. The document structure elements are never removed.
func prune(root *html.Node) {
	for pruneOnce(root) {
	}
}

func pruneOnce(n *html.Node) bool {
	removed := false
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if isPrunable(c) {
			n.RemoveChild(c)
			removed = true
		} else if pruneOnce(c) {
			removed = true
		}
		c = next
	}
	return removed
}

func isPrunable(n *html.Node) bool {
	if n.Type != html.ElementNode || len(n.Attr) > 0 || n.FirstChild != nil {
		return false
	}
	switch n.DataAtom {
	case atom.Html, atom.Body:
		return false
	}
	return true
}

var urlAttributes = map[string]bool{"href": true, "src": true, "action": true}

// rewriteURLs turns same-host absolute URLs into host-relative ones.
func (nz *Normalizer) rewriteURLs(root *html.Node, baseURL string) {
	base, err := nz.urlParser.Parse(baseURL)
	if err != nil {
		nz.logger.Warn("skipping URL rewrite: invalid base URL", "url", baseURL, "err", err)
		return
	}
	host := base.Hostname()

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for i, a := range n.Attr {
				if !urlAttributes[a.Key] || !absoluteURLPattern.MatchString(a.Val) {
					continue
				}
				u, err := base.Parse(a.Val)
				if err != nil || u.Hostname() != host {
					continue
				}
				rel := u.Pathname() + u.Search() + u.Hash()
				if rel == "" {
					rel = "/"
				}
				n.Attr[i].Val = rel
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
}

func truncateAttributes(n *html.Node, limit int) {
	if n.Type == html.ElementNode {
		for i, a := range n.Attr {
			if a.Key == "id" || a.Key == "class" {
				continue
			}
			n.Attr[i].Val = truncate(a.Val, limit, true)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		truncateAttributes(c, limit)
	}
}

func toSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, name := range names {
		set[name] = true
	}
	return set
}
