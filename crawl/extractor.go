package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/goquery"
)

var _ readweb.ContentExtractor = (*Extractor)(nil)

// Extractor turns a page into markdown by trying increasingly generic
// strategies: stored presets for the site, built-in framework presets, the
// heuristic fallback extractor and finally the whole normalized body.
type Extractor struct {
	Fetcher    readweb.Fetcher
	Normalizer readweb.Normalizer
	Converter  readweb.Converter

	// Optional strategies. A nil strategy is skipped.
	Presets  readweb.PresetService
	Builtins readweb.PresetDetector
	Fallback readweb.Extractor

	Logger *slog.Logger
}

// Extract fetches the URL and extracts its content.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (*readweb.Extraction, error) {
	if e.Fetcher == nil {
		return nil, readweb.Errorf(readweb.EINVALID, "extractor has no fetcher")
	}
	html, err := e.Fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	return e.ExtractHTML(ctx, pageURL, html)
}

// ExtractHTML extracts already fetched markup. The first strategy producing
// non-blank markdown wins; the literal strategy always produces a result.
func (e *Extractor) ExtractHTML(ctx context.Context, pageURL string, html string) (*readweb.Extraction, error) {
	doc, err := e.Normalizer.Normalize(html, "")
	if err != nil {
		return nil, err
	}

	x := &readweb.Extraction{URL: pageURL, Title: goquery.Title(html)}

	if e.Presets != nil && pageURL != "" {
		presets, err := e.Presets.FindPresetsForURL(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("find presets: %w", err)
		}
		for _, sp := range presets {
			md, err := e.viaPreset(doc, sp.Preset)
			if err != nil {
				e.logger().Debug("stored preset skipped", "url", pageURL, "preset", sp.ID, "err", err)
				continue
			}
			x.Method, x.Markdown, x.PresetID = readweb.MethodPreset, md, sp.ID
			return x, nil
		}
	}

	if md, framework, err := e.viaBuiltin(doc); err == nil {
		e.logger().Debug("builtin preset matched", "url", pageURL, "framework", framework)
		x.Method, x.Markdown = readweb.MethodBuiltin, md
		return x, nil
	}

	if md, title, err := e.viaFallback(html, pageURL); err == nil {
		if x.Title == "" {
			x.Title = title
		}
		x.Method, x.Markdown = readweb.MethodReadability, md
		return x, nil
	} else if readweb.ErrorCode(err) != readweb.ENOTREADABLE {
		e.logger().Warn("fallback extractor failed", "url", pageURL, "err", err)
	}

	md, err := e.viaLiteral(doc)
	if err != nil {
		return nil, err
	}
	x.Method, x.Markdown = readweb.MethodLiteral, md
	return x, nil
}

// viaPreset applies a preset with validation.
func (e *Extractor) viaPreset(doc readweb.Document, preset readweb.Preset) (string, error) {
	ok, isOK := doc.Apply(preset).(readweb.ApplyOK)
	if !isOK {
		return "", readweb.Errorf(readweb.ENOTREADABLE, "preset does not apply")
	}
	return e.convert(ok.Markup)
}

func (e *Extractor) viaBuiltin(doc readweb.Document) (string, readweb.Framework, error) {
	if e.Builtins == nil {
		return "", readweb.FrameworkUnknown, readweb.Errorf(readweb.ENOTREADABLE, "no builtin presets")
	}
	bp, markup, ok := e.Builtins.Detect(doc)
	if !ok {
		return "", readweb.FrameworkUnknown, readweb.Errorf(readweb.ENOTREADABLE, "no builtin preset applies")
	}
	md, err := e.convert(markup)
	return md, bp.Framework, err
}

func (e *Extractor) viaFallback(html, pageURL string) (string, string, error) {
	if e.Fallback == nil {
		return "", "", readweb.Errorf(readweb.ENOTREADABLE, "no fallback extractor")
	}
	res, err := e.Fallback.Extract(html, pageURL)
	if err != nil {
		return "", "", err
	}
	md, err := e.convert(res.ContentHTML)
	return md, res.Title, err
}

// viaLiteral converts the whole normalized body. A page without text
// yields empty markdown rather than an error.
func (e *Extractor) viaLiteral(doc readweb.Document) (string, error) {
	markup, err := doc.HTML()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(markup) == "" {
		return "", nil
	}
	md, err := e.Converter.Convert(markup)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}

// convert renders markup as markdown. Blank output is ENOTREADABLE so the
// next strategy gets a chance.
func (e *Extractor) convert(markup string) (string, error) {
	if strings.TrimSpace(markup) == "" {
		return "", readweb.Errorf(readweb.ENOTREADABLE, "extraction is empty")
	}
	md, err := e.Converter.Convert(markup)
	if err != nil {
		return "", err
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", readweb.Errorf(readweb.ENOTREADABLE, "extraction has no text")
	}
	return md, nil
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}
