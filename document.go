package readweb

// Document is a normalized page tree. It is read-only after construction
// and owned by the caller that created it. Every method is a pure function
// of the document and its arguments.
type Document interface {
	// HTML serializes the normalized markup.
	HTML() (string, error)

	// Validate checks a preset against the document.
	Validate(preset Preset) Problems

	// Apply validates the preset and, when no critical problem exists,
	// extracts the main content. Otherwise it returns the failure matching
	// the highest-priority critical problem.
	Apply(preset Preset) ApplyResult

	// Check runs Validate and Apply in one pass over the selectors and
	// returns both outcomes.
	Check(preset Preset) (Problems, ApplyResult)

	// ApplyUnchecked extracts the main content without validating. Selectors
	// that fail to parse match nothing.
	ApplyUnchecked(preset Preset) ApplyResult
}

// Normalizer turns raw markup into a Document stripped of noise and
// volatile identifiers.
type Normalizer interface {
	// Normalize parses markup tolerantly. When baseURL is non-empty,
	// same-host absolute links are rewritten to host-relative form.
	// Malformed markup and an unparseable baseURL never cause an error.
	Normalize(markup string, baseURL string) (Document, error)
}
