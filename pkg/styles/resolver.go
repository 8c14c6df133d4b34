// Package styles resolves natural-language style descriptions into CSS
// declarations. The rule-based Resolver works from fixed keyword tables;
// RemoteResolver delegates to an external service and falls back to the
// tables when the service is unreachable.
package styles

import (
	"context"
	"regexp"
	"strings"

	"github.com/mazznoer/csscolorparser"
)

// Color words in match order: the first word found in a phrase wins.
var colorNames = []string{
	"red", "blue", "green", "yellow", "purple", "cyan", "magenta", "white",
	"black", "gray", "orange", "pink", "brown", "navy", "teal",
	"primary", "secondary", "success", "danger", "warning", "info",
}

var colorValues = map[string]string{
	"red":       "#ff0000",
	"blue":      "#0000ff",
	"green":     "#00ff00",
	"yellow":    "#ffff00",
	"purple":    "#800080",
	"cyan":      "#00ffff",
	"magenta":   "#ff00ff",
	"white":     "#ffffff",
	"black":     "#000000",
	"gray":      "#808080",
	"orange":    "#ffa500",
	"pink":      "#ffc0cb",
	"brown":     "#a52a2a",
	"navy":      "#000080",
	"teal":      "#008080",
	"primary":   "var(--color-primary)",
	"secondary": "var(--color-secondary)",
	"success":   "var(--color-success)",
	"danger":    "var(--color-danger)",
	"warning":   "var(--color-warning)",
	"info":      "var(--color-info)",
}

var backgroundNames = []string{
	"red", "blue", "green", "yellow", "purple", "cyan", "magenta", "white",
	"black", "gray", "orange", "pink", "brown", "navy", "teal", "transparent",
	"primary", "secondary", "success", "danger", "warning", "info",
}

func backgroundValue(name string) string {
	if name == "transparent" {
		return "transparent"
	}
	return colorValues[name]
}

// Size words in match order; the first word contained in a phrase wins.
var sizeNames = []string{
	"tiny", "very small", "small", "medium", "large", "very large", "huge", "enormous",
}

var fontSizes = map[string]string{
	"tiny":       "0.5rem",
	"very small": "0.75rem",
	"small":      "0.875rem",
	"medium":     "1rem",
	"large":      "1.25rem",
	"very large": "1.5rem",
	"huge":       "2rem",
	"enormous":   "3rem",
}

var spacingNames = []string{
	"none", "tiny", "very small", "small", "medium", "large", "very large", "huge", "enormous",
}

var spacingValues = map[string]string{
	"none":       "0",
	"tiny":       "0.125rem",
	"very small": "0.25rem",
	"small":      "0.5rem",
	"medium":     "1rem",
	"large":      "1.5rem",
	"very large": "2rem",
	"huge":       "3rem",
	"enormous":   "4rem",
}

// stylePatterns are shorthand names carrying a whole declaration block.
var stylePatterns = []struct {
	name  string
	props map[string]string
}{
	{"centered", map[string]string{
		"display":         "flex",
		"justify-content": "center",
		"align-items":     "center",
	}},
	{"shadow", map[string]string{
		"box-shadow": "0 2px 5px rgba(0, 0, 0, 0.2)",
	}},
	{"rounded", map[string]string{
		"border-radius": "0.25rem",
	}},
	{"no-border", map[string]string{
		"border": "none",
	}},
}

var (
	dimensionRe = regexp.MustCompile(`(width|height)(\s+is|:)?\s+(\d+)(px|%|rem|em)?`)
	radiusRe    = regexp.MustCompile(`(border[\s-]*radius|rounded)(\s+with|\s+is|:)?\s+(\d+)(px|rem|em)?`)
	classRe     = regexp.MustCompile(`class\s+([a-zA-Z0-9_-]+)`)
	contentRe   = regexp.MustCompile(`content\s+"([^"]+)"`)
)

// Resolver maps descriptions to CSS declarations using the keyword tables.
// It is stateless; the zero value is ready to use.
type Resolver struct{}

// NewResolver returns a table-driven resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveStyle implements the style resolution contract used by pkg/rewrite.
// It never fails; unknown phrases simply contribute nothing.
func (r *Resolver) ResolveStyle(_ context.Context, description string) (map[string]string, error) {
	return Resolve(description), nil
}

// Resolve turns a comma-separated description into CSS declarations. Each
// phrase is matched independently: pattern shorthands first, then keyword
// tables gated on context words ("text", "background", "font", ...), then
// numeric dimension and radius forms. A non-empty description that matches
// nothing yields a minimal default so styled elements never come out bare.
func Resolve(description string) map[string]string {
	props := make(map[string]string)
	phrases := splitPhrases(description)

	for _, phrase := range phrases {
		for _, pat := range stylePatterns {
			if strings.Contains(phrase, pat.name) {
				for k, v := range pat.props {
					props[k] = v
				}
			}
		}
	}

	for _, phrase := range phrases {
		if strings.Contains(phrase, "text") {
			if name, ok := firstMatch(phrase, colorNames); ok {
				props["color"] = colorValues[name]
			} else if hex, ok := colorFromPhrase(phrase); ok {
				props["color"] = hex
			}
		}
		if strings.Contains(phrase, "background") {
			if name, ok := firstMatch(phrase, backgroundNames); ok {
				props["background-color"] = backgroundValue(name)
			} else if hex, ok := colorFromPhrase(phrase); ok {
				props["background-color"] = hex
			}
		}
		if strings.Contains(phrase, "font") || strings.Contains(phrase, "text") {
			if name, ok := firstMatch(phrase, sizeNames); ok {
				props["font-size"] = fontSizes[name]
			}
		}
		if strings.Contains(phrase, "bold") {
			props["font-weight"] = "700"
		} else if strings.Contains(phrase, "light") && strings.Contains(phrase, "weight") {
			props["font-weight"] = "300"
		}
		if strings.Contains(phrase, "text") {
			switch {
			case strings.Contains(phrase, "center"):
				props["text-align"] = "center"
			case strings.Contains(phrase, "right"):
				props["text-align"] = "right"
			case strings.Contains(phrase, "justify"):
				props["text-align"] = "justify"
			}
		}
		if strings.Contains(phrase, "padding") {
			if name, ok := firstMatch(phrase, spacingNames); ok {
				props["padding"] = spacingValues[name]
			}
		}
		if strings.Contains(phrase, "margin") {
			if name, ok := firstMatch(phrase, spacingNames); ok {
				props["margin"] = spacingValues[name]
			}
		}
	}

	for _, phrase := range phrases {
		// Phrases carrying embedded class or content directives are left
		// to the directive parser.
		if classRe.MatchString(phrase) || contentRe.MatchString(phrase) {
			continue
		}
		if m := dimensionRe.FindStringSubmatch(phrase); m != nil {
			unit := m[4]
			if unit == "" {
				unit = "px"
			}
			props[m[1]] = m[3] + unit
		}
		if m := radiusRe.FindStringSubmatch(phrase); m != nil {
			unit := m[4]
			if unit == "" {
				unit = "px"
			}
			props["border-radius"] = m[3] + unit
		}
	}

	if len(props) == 0 && description != "" {
		props["color"] = "#333333"
		props["background-color"] = "#ffffff"
		props["padding"] = "1rem"
	}
	return props
}

func splitPhrases(description string) []string {
	parts := strings.Split(description, ",")
	phrases := make([]string, 0, len(parts))
	for _, p := range parts {
		phrases = append(phrases, strings.ToLower(strings.TrimSpace(p)))
	}
	return phrases
}

// firstMatch returns the first name contained in the phrase, in table order.
func firstMatch(phrase string, names []string) (string, bool) {
	for _, name := range names {
		if strings.Contains(phrase, name) {
			return name, true
		}
	}
	return "", false
}

// colorFromPhrase tries each word of the phrase as a CSS color literal,
// catching named colors, hex and functional notations outside the fixed
// table.
func colorFromPhrase(phrase string) (string, bool) {
	for _, word := range strings.Fields(phrase) {
		if c, err := csscolorparser.Parse(word); err == nil {
			return c.HexString(), true
		}
	}
	return "", false
}
