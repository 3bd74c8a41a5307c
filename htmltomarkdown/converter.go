// Package htmltomarkdown renders sanitized listicle HTML as Markdown, a
// compact form for inspecting what an extractor will see.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/listicle"
)

// Ensure Converter implements listicle.Converter at compile time.
var _ listicle.Converter = (*Converter)(nil)

// Converter implements listicle.Converter. Spec tables on ranking pages are
// kept as Markdown tables.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
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

// Convert implements listicle.Converter.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", listicle.Errorf(listicle.EINVALID, "empty HTML input")
	}

	md, err := c.conv.ConvertString(html)
	if err != nil {
		return "", listicle.WrapError(listicle.EINTERNAL, err, "converting HTML to markdown")
	}
	return strings.TrimSpace(md), nil
}
