package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/readweb"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ readweb.TokenCounter = (*TokenCounter)(nil)

// TokenCounter measures extracted markdown in model tokens, offline, so
// extraction methods can be compared by what they would cost to feed to
// the model that suggests presets.
type TokenCounter struct {
	model string
	tok   *tokenizer.LocalTokenizer
}

// NewTokenCounter loads the local tokenizer for model. An unknown model is
// EINVALID.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, readweb.Errorf(readweb.EINVALID, "no local tokenizer for model %q: %v", model, err)
	}
	return &TokenCounter{model: model, tok: tok}, nil
}

// CountTokens returns the token count of text. Blank text, such as the
// markdown of an extraction that found nothing, counts as zero.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens(genai.Text(text), nil)
	if err != nil {
		return 0, readweb.Errorf(readweb.EINTERNAL, "count tokens with %s: %v", tc.model, err)
	}
	return int(result.TotalTokens), nil
}
