package readweb

import "context"

// ExtractionMethod names the strategy that produced an Extraction.
type ExtractionMethod string

// Extraction strategies in the order they are attempted.
const (
	MethodPreset      ExtractionMethod = "preset"
	MethodBuiltin     ExtractionMethod = "builtin"
	MethodReadability ExtractionMethod = "readability"
	MethodLiteral     ExtractionMethod = "literal"
)

// Extraction is the readable content of one page.
type Extraction struct {
	URL      string           `json:"url"`
	Title    string           `json:"title"`
	Method   ExtractionMethod `json:"method"`
	Markdown string           `json:"markdown"`

	// PresetID is set when Method is MethodPreset.
	PresetID string `json:"presetId,omitempty"`
}

// Page returns the extraction as a page to store.
func (x *Extraction) Page() *Page {
	return &Page{
		URL:      x.URL,
		Title:    x.Title,
		Method:   x.Method,
		PresetID: x.PresetID,
		Content:  x.Markdown,
	}
}

// ContentExtractor turns pages into readable markdown.
type ContentExtractor interface {
	// ExtractHTML extracts already fetched markup.
	ExtractHTML(ctx context.Context, pageURL string, html string) (*Extraction, error)
}

// Converter renders extracted markup, such as ApplyOK markup, as markdown.
type Converter interface {
	Convert(html string) (string, error)
}

// TokenCounter measures markdown in model tokens. Extraction methods are
// compared by how much text each hands to a model.
type TokenCounter interface {
	// CountTokens returns zero for blank text.
	CountTokens(ctx context.Context, text string) (int, error)
}
