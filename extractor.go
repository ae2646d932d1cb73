package readweb

// ExtractResult holds the content and metadata a fallback extractor found
// on a page.
type ExtractResult struct {
	Title         string
	Byline        string
	Excerpt       string
	SiteName      string
	Lang          string
	PublishedTime string

	// Length is the number of characters of readable text.
	Length int

	// ContentHTML is the main content as clean HTML.
	ContentHTML string
}

// Extractor finds main content without a preset, using heuristics.
type Extractor interface {
	// Extract processes raw HTML and returns the main content. pageURL is
	// used to resolve relative links and may be empty.
	// Returns ENOTREADABLE if the page has no extractable content.
	Extract(html string, pageURL string) (*ExtractResult, error)
}
