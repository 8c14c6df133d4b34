// Package page assembles final HTML documents around the rewrite core:
// stylesheet injection, markdown conversion and minification.
package page

import (
	"regexp"
	"strings"
)

// styleHeader marks generated style blocks so reprocessing a document
// appends to the existing block instead of stacking duplicates.
const styleHeader = "/* Generated by AI CSS Framework */"

const generatedBlockOpen = "<style type=\"text/css\">\n" + styleHeader + "\n"

var (
	headCloseRe = regexp.MustCompile(`(?i)</head\s*>`)
	headOpenRe  = regexp.MustCompile(`(?i)<head[^>]*>`)
	htmlOpenRe  = regexp.MustCompile(`(?i)<html[^>]*>`)
)

// InjectStylesheet places css into doc inside a marked style block. An
// existing generated block absorbs the new rules; otherwise the block goes
// at the end of head, creating head right after the html open tag when the
// document has none. Documents without an html tag get the block prepended.
// Empty css leaves doc untouched.
func InjectStylesheet(doc, css string) string {
	if css == "" {
		return doc
	}
	if idx := strings.Index(doc, generatedBlockOpen); idx >= 0 {
		if end := strings.Index(doc[idx:], "</style>"); end >= 0 {
			insert := idx + end
			return doc[:insert] + css + doc[insert:]
		}
	}
	block := generatedBlockOpen + css + "</style>"
	return placeInHead(doc, block)
}

// InjectStylesheetLink references an external stylesheet instead of
// inlining rules. Re-injecting the same href is a no-op.
func InjectStylesheetLink(doc, href string) string {
	link := `<link rel="stylesheet" href="` + href + `">`
	if strings.Contains(doc, link) {
		return doc
	}
	return placeInHead(doc, link)
}

func placeInHead(doc, block string) string {
	if loc := headCloseRe.FindStringIndex(doc); loc != nil {
		return doc[:loc[0]] + block + "\n" + doc[loc[0]:]
	}
	if loc := headOpenRe.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n" + block + doc[loc[1]:]
	}
	if loc := htmlOpenRe.FindStringIndex(doc); loc != nil {
		return doc[:loc[1]] + "\n<head>\n" + block + "\n</head>" + doc[loc[1]:]
	}
	return block + "\n" + doc
}
