package page

import (
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// minifier handles HTML documents and their embedded style blocks.
var minifier = newMinifier()

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	return m
}

// Minify compacts an HTML document, including inline style blocks.
func Minify(doc string) (string, error) {
	return minifier.String("text/html", doc)
}

// MinifyCSS compacts a standalone stylesheet.
func MinifyCSS(sheet string) (string, error) {
	return minifier.String("text/css", sheet)
}
