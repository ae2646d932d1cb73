// Package htmltomarkdown implements readweb.Converter with html-to-markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/readweb"
)

// Ensure Converter implements readweb.Converter at compile time.
var _ readweb.Converter = (*Converter)(nil)

// Converter renders extracted markup as Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a Converter with the base, commonmark and table
// plugins.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert transforms HTML content into Markdown. The result is trimmed, so a
// fragment without text converts to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", readweb.Errorf(readweb.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", readweb.Errorf(readweb.EINTERNAL, "convert to markdown: %v", err)
	}
	return strings.TrimSpace(md), nil
}
