package mock

import (
	"context"

	"github.com/fwojciec/readweb"
)

var (
	_ readweb.Extractor        = (*Extractor)(nil)
	_ readweb.ContentExtractor = (*ContentExtractor)(nil)
	_ readweb.PresetDetector   = (*PresetDetector)(nil)
	_ readweb.Converter        = (*Converter)(nil)
	_ readweb.TokenCounter     = (*TokenCounter)(nil)
)

// Extractor is a mock implementation of readweb.Extractor.
type Extractor struct {
	ExtractFn func(html, pageURL string) (*readweb.ExtractResult, error)
}

func (e *Extractor) Extract(html, pageURL string) (*readweb.ExtractResult, error) {
	return e.ExtractFn(html, pageURL)
}

// ContentExtractor is a mock implementation of readweb.ContentExtractor.
type ContentExtractor struct {
	ExtractHTMLFn func(ctx context.Context, pageURL, html string) (*readweb.Extraction, error)
}

func (e *ContentExtractor) ExtractHTML(ctx context.Context, pageURL, html string) (*readweb.Extraction, error) {
	return e.ExtractHTMLFn(ctx, pageURL, html)
}

// PresetDetector is a mock implementation of readweb.PresetDetector.
type PresetDetector struct {
	DetectFn func(doc readweb.Document) (*readweb.BuiltinPreset, string, bool)
}

func (d *PresetDetector) Detect(doc readweb.Document) (*readweb.BuiltinPreset, string, bool) {
	return d.DetectFn(doc)
}

// Converter is a mock implementation of readweb.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

// TokenCounter is a mock implementation of readweb.TokenCounter.
type TokenCounter struct {
	CountTokensFn func(ctx context.Context, text string) (int, error)
}

func (c *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	return c.CountTokensFn(ctx, text)
}
