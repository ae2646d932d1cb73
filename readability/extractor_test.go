package readability_test

import (
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/readweb"
	"github.com/fwojciec/readweb/readability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func page(head, body string) string {
	return "<!DOCTYPE html>\n<html>\n<head>" + head + "</head>\n<body>" + body + "</body>\n</html>"
}

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   \n\t"} {
		_, err := readability.NewExtractor().Extract(in, "")
		require.Error(t, err)
		assert.Equal(t, readweb.ENOTREADABLE, readweb.ErrorCode(err))
	}
}

func TestExtractor_RejectsInvalidPageURL(t *testing.T) {
	t.Parallel()

	_, err := readability.NewExtractor().Extract(page("", "<p>x</p>"), "http://[::1")

	require.Error(t, err)
	assert.Equal(t, readweb.EINVALID, readweb.ErrorCode(err))
}

func TestExtractor_Metadata(t *testing.T) {
	t.Parallel()

	html := page(`<title>Page Title</title>`,
		`<article><p>This is the main article content that should be preserved in the output.</p></article>`)

	result, err := readability.NewExtractor().Extract(html, "https://example.com/post")

	require.NoError(t, err)
	assert.Equal(t, "Page Title", result.Title)
	assert.Positive(t, result.Length)
	assert.LessOrEqual(t, result.Length, utf8.RuneCountInString(html))
}

func TestExtractor_RemovesBoilerplate(t *testing.T) {
	t.Parallel()

	const keep = "This is the main article content that should be preserved in the output."

	tests := []struct {
		name   string
		body   string
		absent string
	}{
		{
			name:   "navigation",
			body:   `<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav><article><p>` + keep + `</p></article>`,
			absent: "Home Nav Link",
		},
		{
			name:   "footer",
			body:   `<article><p>` + keep + `</p></article><footer><p>Footer copyright text 2024</p></footer>`,
			absent: "Footer copyright text",
		},
		{
			name:   "sidebar",
			body:   `<aside class="sidebar"><p>Sidebar navigation content</p></aside><article><p>` + keep + `</p></article>`,
			absent: "Sidebar navigation content",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := readability.NewExtractor().Extract(page("<title>Test</title>", tt.body), "")

			require.NoError(t, err)
			assert.Contains(t, result.ContentHTML, "main article content")
			assert.NotContains(t, result.ContentHTML, tt.absent)
		})
	}
}

func TestExtractor_PreservesStructure(t *testing.T) {
	t.Parallel()

	const filler = `<p>Documentation pages explain concepts in prose, and the prose needs to be long enough to be scored as content.</p>`

	tests := []struct {
		name  string
		body  string
		wants []string
	}{
		{
			name:  "headings",
			body:  `<article><h1>Main Heading</h1>` + filler + `<h2>Subheading Level Two</h2>` + filler + `</article>`,
			wants: []string{"Subheading Level Two", "<h2"},
		},
		{
			name:  "lists",
			body:  `<article>` + filler + `<ul><li>First item in the list</li><li>Second item in the list</li></ul></article>`,
			wants: []string{"<ul", "<li"},
		},
		{
			name:  "tables",
			body:  `<article>` + filler + `<table><tr><th>Option</th><th>Default</th></tr><tr><td>timeout</td><td>30s</td></tr></table></article>`,
			wants: []string{"<table", "timeout"},
		},
		{
			name:  "links",
			body:  `<article>` + filler + `<p>Read the <a href="https://example.com/guide">installation guide</a> before you start with anything else.</p></article>`,
			wants: []string{"<a", "installation guide"},
		},
		{
			name:  "code blocks",
			body:  `<article>` + filler + `<pre><code>npm install my-package</code></pre></article>`,
			wants: []string{"<pre", "npm install my-package"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result, err := readability.NewExtractor().Extract(page("<title>Docs</title>", tt.body), "https://example.com/docs/")

			require.NoError(t, err)
			for _, want := range tt.wants {
				assert.Contains(t, result.ContentHTML, want)
			}
		})
	}
}
