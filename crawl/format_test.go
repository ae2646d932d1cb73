package crawl_test

import (
	"testing"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/crawl"
	"github.com/stretchr/testify/assert"
)

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/very/long/path/to/documentation"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../to/documentation", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns URL unchanged when exactly max length", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com"
		assert.Equal(t, url, crawl.TruncateURL(url, len(url)))
	})

	t.Run("returns empty string when maxLen is zero", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
	})

	t.Run("returns empty string when maxLen is negative", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		// When maxLen < 4, we can't fit "..." prefix, so return URL prefix
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
		assert.Equal(t, "ht", crawl.TruncateURL("https://example.com", 2))
		assert.Equal(t, "h", crawl.TruncateURL("https://example.com", 1))
	})

	t.Run("handles short URL with small maxLen", func(t *testing.T) {
		t.Parallel()
		// URL shorter than maxLen should return unchanged
		assert.Equal(t, "ab", crawl.TruncateURL("ab", 3))
		assert.Equal(t, "a", crawl.TruncateURL("a", 2))
	})
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	t.Run("formats bytes as B", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "512 B", crawl.FormatBytes(512))
	})

	t.Run("formats kilobytes as KB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	})

	t.Run("formats megabytes as MB", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
	})
}

func TestFormatTokens(t *testing.T) {
	t.Parallel()

	t.Run("formats small token counts", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~500 tokens", crawl.FormatTokens(500))
	})

	t.Run("formats large token counts as k", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~10k tokens", crawl.FormatTokens(10000))
	})

	t.Run("rounds token counts", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "~2k tokens", crawl.FormatTokens(1500))
	})
}

func TestResult_Summary(t *testing.T) {
	t.Parallel()

	t.Run("lists failures, tokens and methods", func(t *testing.T) {
		t.Parallel()

		r := &crawl.Result{
			Saved:  12,
			Failed: 3,
			Bytes:  2048,
			Tokens: 1500,
			Methods: map[readweb.ExtractionMethod]int{
				readweb.MethodReadability: 2,
				readweb.MethodBuiltin:     10,
			},
		}

		assert.Equal(t, "Saved 12 pages (3 failed), 2.0 KB, ~2k tokens [builtin: 10, readability: 2]", r.Summary())
	})

	t.Run("omits empty parts", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "Saved 0 pages, 0 B", (&crawl.Result{}).Summary())
	})
}
