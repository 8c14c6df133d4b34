package page

import (
	"bytes"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// mdParser is a pre-configured goldmark instance with the GFM table
// extension. Raw HTML stays enabled so pseudo-elements written in markdown
// sources survive conversion and reach the expander.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// FromMarkdown converts markdown source to HTML.
func FromMarkdown(markdown []byte) (string, error) {
	if len(markdown) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert(markdown, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ToMarkdown converts an HTML document to markdown, for terminal preview.
func ToMarkdown(doc string) (string, error) {
	if doc == "" {
		return "", nil
	}
	markdown, err := htmltomarkdown.ConvertString(doc)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}
