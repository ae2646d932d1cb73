package crawl_test

import (
	"context"
	"errors"
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
	"github.com/fwojciec/readweb/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Compare(t *testing.T) {
	t.Parallel()

	t.Run("reports every strategy in pipeline order", func(t *testing.T) {
		t.Parallel()

		e := newExtractor()
		e.Fallback = &mock.Extractor{
			ExtractFn: func(_, _ string) (*readweb.ExtractResult, error) {
				return &readweb.ExtractResult{ContentHTML: "<p>Readable é.</p>"}, nil
			},
		}
		counter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, text string) (int, error) {
				return len(text) / 4, nil
			},
		}

		got, err := e.Compare(context.Background(), "https://example.com/", sitePage, &sitePreset, counter)

		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, []readweb.ExtractionMethod{
			readweb.MethodPreset, readweb.MethodBuiltin, readweb.MethodReadability, readweb.MethodLiteral,
		}, []readweb.ExtractionMethod{got[0].Method, got[1].Method, got[2].Method, got[3].Method})

		assert.NoError(t, got[0].Err)
		assert.Equal(t, "Stored preset content.", got[0].Markdown)
		assert.Equal(t, utf8.RuneCountInString("Stored preset content."), got[0].Chars)
		assert.Equal(t, len("Stored preset content.")/4, got[0].Tokens)

		assert.Equal(t, readweb.ENOTREADABLE, readweb.ErrorCode(got[1].Err), "no builtin preset fits the page")
		assert.Empty(t, got[1].Markdown)
		assert.Zero(t, got[1].Tokens)

		assert.NoError(t, got[2].Err)
		assert.Equal(t, 11, got[2].Chars, "chars count runes")

		assert.NoError(t, got[3].Err)
		assert.Contains(t, got[3].Markdown, "Buy now")
	})

	t.Run("reports missing preset", func(t *testing.T) {
		t.Parallel()

		got, err := newExtractor().Compare(context.Background(), "", articlePage, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(got[0].Err))
		assert.NoError(t, got[1].Err)
		assert.Equal(t, "Article body.", got[1].Markdown)
		assert.Zero(t, got[1].Tokens, "no counter, no tokens")
	})

	t.Run("returns token counter errors", func(t *testing.T) {
		t.Parallel()

		counter := &mock.TokenCounter{
			CountTokensFn: func(_ context.Context, _ string) (int, error) {
				return 0, errors.New("tokenizer unavailable")
			},
		}

		_, err := newExtractor().Compare(context.Background(), "", plainPage, nil, counter)

		assert.EqualError(t, err, "tokenizer unavailable")
	})
}

func TestContentDiffers(t *testing.T) {
	t.Parallel()

	result := func(length int) *readweb.ExtractResult {
		return &readweb.ExtractResult{Length: length}
	}
	failure := readweb.Errorf(readweb.ENOTREADABLE, "not applicable")

	tests := []struct {
		name        string
		httpResult  *readweb.ExtractResult
		httpErr     error
		browserRes  *readweb.ExtractResult
		browserErr  error
		wantDiffers bool
	}{
		{"browser content more than 50% longer", result(13), nil, result(58), nil, true},
		{"similar lengths", result(17), nil, result(17), nil, false},
		{"exactly 50% longer", result(10), nil, result(15), nil, false},
		{"http extraction fails", nil, failure, result(11), nil, true},
		{"browser extraction fails", result(12), nil, nil, failure, true},
		{"http content empty", result(0), nil, result(15), nil, true},
		{"both empty", result(0), nil, result(0), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			extractor := &mock.Extractor{
				ExtractFn: func(html, pageURL string) (*readweb.ExtractResult, error) {
					assert.Equal(t, "https://example.com/", pageURL)
					if html == "http-html" {
						return tt.httpResult, tt.httpErr
					}
					return tt.browserRes, tt.browserErr
				},
			}

			got := crawl.ContentDiffers("http-html", "browser-html", "https://example.com/", extractor)

			assert.Equal(t, tt.wantDiffers, got)
		})
	}
}
