package crawl

import (
	"context"
	"unicode/utf8"

	"github.com/fwojciec/readweb"
)

// Comparison is the outcome of one extraction strategy on a page.
type Comparison struct {
	Method   readweb.ExtractionMethod
	Markdown string
	Chars    int
	Tokens   int
	Err      error
}

// Compare runs every strategy on the page independently, in pipeline
// order: the given preset, built-in presets, the fallback extractor and the
// literal body. A nil preset is reported as an EINVALID error for that
// strategy. Tokens are counted when counter is non-nil.
func (e *Extractor) Compare(ctx context.Context, pageURL, html string, preset *readweb.Preset, counter readweb.TokenCounter) ([]Comparison, error) {
	doc, err := e.Normalizer.Normalize(html, "")
	if err != nil {
		return nil, err
	}

	results := make([]Comparison, 0, 4)

	c := Comparison{Method: readweb.MethodPreset}
	if preset == nil {
		c.Err = readweb.Errorf(readweb.EINVALID, "no preset given")
	} else {
		c.Markdown, c.Err = e.viaPreset(doc, *preset)
	}
	results = append(results, c)

	c = Comparison{Method: readweb.MethodBuiltin}
	c.Markdown, _, c.Err = e.viaBuiltin(doc)
	results = append(results, c)

	c = Comparison{Method: readweb.MethodReadability}
	c.Markdown, _, c.Err = e.viaFallback(html, pageURL)
	results = append(results, c)

	c = Comparison{Method: readweb.MethodLiteral}
	c.Markdown, c.Err = e.viaLiteral(doc)
	results = append(results, c)

	for i := range results {
		r := &results[i]
		if r.Err != nil {
			r.Markdown = ""
			continue
		}
		r.Chars = utf8.RuneCountInString(r.Markdown)
		if counter != nil && r.Markdown != "" {
			tokens, err := counter.CountTokens(ctx, r.Markdown)
			if err != nil {
				return nil, err
			}
			r.Tokens = tokens
		}
	}
	return results, nil
}

// ContentDiffers compares the fallback extraction of a page fetched over
// plain HTTP with one rendered in a browser. Returns true if the rendered
// content is more than 50% longer, suggesting JavaScript adds meaningful
// content. Extraction errors also return true.
func ContentDiffers(httpHTML, browserHTML, pageURL string, extractor readweb.Extractor) bool {
	httpResult, err := extractor.Extract(httpHTML, pageURL)
	if err != nil {
		return true
	}

	browserResult, err := extractor.Extract(browserHTML, pageURL)
	if err != nil {
		return true
	}

	httpLen := httpResult.Length
	browserLen := browserResult.Length

	if httpLen == 0 && browserLen > 0 {
		return true
	}
	return float64(browserLen) > float64(httpLen)*1.5
}
