// Package trafilatura implements readweb.Extractor on top of go-trafilatura.
package trafilatura

import (
	"bytes"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fwojciec/readweb"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements readweb.Extractor at compile time.
var _ readweb.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct {
	fallback bool
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithFallback toggles trafilatura's readability and dom-distiller
// fallbacks. Enabled by default.
func WithFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.fallback = enabled
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{fallback: true}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*readweb.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readweb.Errorf(readweb.ENOTREADABLE, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: e.fallback,
	}
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, readweb.Errorf(readweb.EINVALID, "invalid page URL %q", pageURL)
		}
		opts.OriginalURL = u
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, readweb.Errorf(readweb.ENOTREADABLE, "trafilatura is not applicable to this page: %v", err)
	}
	if result.ContentNode == nil {
		return nil, readweb.Errorf(readweb.ENOTREADABLE, "trafilatura found no content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	meta := result.Metadata
	res := &readweb.ExtractResult{
		Title:       meta.Title,
		Byline:      meta.Author,
		Excerpt:     meta.Description,
		SiteName:    meta.Sitename,
		Lang:        meta.Language,
		Length:      utf8.RuneCountInString(strings.TrimSpace(result.ContentText)),
		ContentHTML: contentHTML,
	}
	if !meta.Date.IsZero() {
		res.PublishedTime = meta.Date.Format(time.RFC3339)
	}
	return res, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", readweb.Errorf(readweb.EINTERNAL, "render content: %v", err)
	}
	return buf.String(), nil
}
