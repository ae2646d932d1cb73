// Package readability implements readweb.Extractor on top of go-readability.
package readability

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/readweb"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements readweb.Extractor at compile time.
var _ readweb.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. A page without
// readable text is reported as ENOTREADABLE.
func (e *Extractor) Extract(rawHTML string, pageURL string) (*readweb.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, readweb.Errorf(readweb.ENOTREADABLE, "empty HTML input")
	}

	var base *url.URL
	if pageURL != "" {
		u, err := url.Parse(pageURL)
		if err != nil {
			return nil, readweb.Errorf(readweb.EINVALID, "invalid page URL %q", pageURL)
		}
		base = u
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), base)
	if err != nil {
		return nil, readweb.Errorf(readweb.EINTERNAL, "readability failed to apply: %v", err)
	}

	text := strings.TrimSpace(article.TextContent)
	if text == "" || strings.TrimSpace(article.Content) == "" {
		return nil, readweb.Errorf(readweb.ENOTREADABLE, "readability is not applicable to this page")
	}

	return &readweb.ExtractResult{
		Title:       article.Title,
		Byline:      article.Byline,
		Excerpt:     article.Excerpt,
		SiteName:    article.SiteName,
		Length:      utf8.RuneCountInString(text),
		ContentHTML: article.Content,
	}, nil
}
