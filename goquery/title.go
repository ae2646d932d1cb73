package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Title returns the page title from raw markup: the Open Graph title when
// present, otherwise the title element. Normalization removes the head, so
// titles must be read before it.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	if content, ok := doc.Find("meta[property='og:title']").First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
