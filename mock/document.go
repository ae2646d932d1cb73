package mock

import "github.com/fwojciec/readweb"

var (
	_ readweb.Normalizer = (*Normalizer)(nil)
	_ readweb.Document   = (*Document)(nil)
)

// Normalizer is a mock implementation of readweb.Normalizer.
type Normalizer struct {
	NormalizeFn func(markup, baseURL string) (readweb.Document, error)
}

func (n *Normalizer) Normalize(markup, baseURL string) (readweb.Document, error) {
	return n.NormalizeFn(markup, baseURL)
}

// Document is a mock implementation of readweb.Document.
type Document struct {
	HTMLFn           func() (string, error)
	ValidateFn       func(preset readweb.Preset) readweb.Problems
	ApplyFn          func(preset readweb.Preset) readweb.ApplyResult
	CheckFn          func(preset readweb.Preset) (readweb.Problems, readweb.ApplyResult)
	ApplyUncheckedFn func(preset readweb.Preset) readweb.ApplyResult
}

func (d *Document) HTML() (string, error) {
	return d.HTMLFn()
}

func (d *Document) Validate(preset readweb.Preset) readweb.Problems {
	return d.ValidateFn(preset)
}

func (d *Document) Apply(preset readweb.Preset) readweb.ApplyResult {
	return d.ApplyFn(preset)
}

func (d *Document) Check(preset readweb.Preset) (readweb.Problems, readweb.ApplyResult) {
	return d.CheckFn(preset)
}

func (d *Document) ApplyUnchecked(preset readweb.Preset) readweb.ApplyResult {
	return d.ApplyUncheckedFn(preset)
}
