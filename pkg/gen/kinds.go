// Package gen renders replacement fragments for pseudo-element kinds.
package gen

import (
	"context"
	"fmt"
	"strings"

	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
)

// placeholderImage is the default src for image elements lacking one.
const placeholderImage = "https://via.placeholder.com/300x200"

// Generator builds HTML fragments from parsed directives. Style directives
// resolve through the injected resolver and come back as unnamed rules;
// class names are assigned by the caller.
type Generator struct {
	resolver rewrite.StyleResolver
}

// NewGenerator wires a generator to its style resolver.
func NewGenerator(resolver rewrite.StyleResolver) *Generator {
	return &Generator{resolver: resolver}
}

// kindRenderer builds the fragment for one kind from its directives and a
// prebuilt class attribute (empty or ` class="..."`).
type kindRenderer func(dirs map[string]string, attrs string) string

// kindRenderers maps pseudo-element kinds to fragment builders.
// Adding a new kind = adding one entry here.
var kindRenderers = map[string]kindRenderer{
	"button":   renderButton,
	"input":    renderInput,
	"textarea": renderTextarea,
	"a":        renderLink,
	"img":      renderImage,
	"p":        textRenderer("p"),
	"h1":       textRenderer("h1"),
	"h2":       textRenderer("h2"),
	"h3":       textRenderer("h3"),
	"div":      renderContainer,
}

// Generate renders the fragment for kind. Unknown kinds degrade to a
// generic container and the composite "html" kind dispatches on its
// description, so every call yields usable markup unless the resolver
// itself fails.
func (g *Generator) Generate(ctx context.Context, kind string, dirs map[string]string) (string, []rewrite.StyleRule, error) {
	var rules []rewrite.StyleRule
	if style := dirs["style"]; style != "" {
		props, err := g.resolver.ResolveStyle(ctx, style)
		if err != nil {
			return "", nil, fmt.Errorf("resolve style %q: %w", style, err)
		}
		if len(props) > 0 {
			rules = append(rules, rewrite.StyleRule{
				Properties: props,
				Source:     "<" + rewrite.TagPrefix + kind + ">",
			})
		}
	}

	attrs := classAttr(dirs)

	var frag string
	switch {
	case kind == "html":
		frag = renderComposite(dirs)
	default:
		render, ok := kindRenderers[kind]
		if !ok {
			render = renderContainer
		}
		frag = render(dirs, attrs)
	}
	return frag, rules, nil
}

func classAttr(dirs map[string]string) string {
	class := dirs["class"]
	if class == "" {
		return ""
	}
	return ` class="` + class + `"`
}

// value returns the directive value or fallback when absent or empty.
func value(dirs map[string]string, key, fallback string) string {
	if v := dirs[key]; v != "" {
		return v
	}
	return fallback
}

func renderButton(dirs map[string]string, attrs string) string {
	return `<button type="button"` + attrs + `>` + value(dirs, "text", "Button") + `</button>`
}

func renderInput(dirs map[string]string, attrs string) string {
	return `<input type="` + value(dirs, "type", "text") + `" placeholder="` + dirs["placeholder"] + `"` + attrs + `>`
}

func renderTextarea(dirs map[string]string, attrs string) string {
	return `<textarea placeholder="` + dirs["placeholder"] + `"` + attrs + `>` + dirs["content"] + `</textarea>`
}

func renderLink(dirs map[string]string, attrs string) string {
	return `<a href="` + value(dirs, "href", "#") + `"` + attrs + `>` + value(dirs, "text", "Link") + `</a>`
}

func renderImage(dirs map[string]string, attrs string) string {
	return `<img src="` + value(dirs, "src", placeholderImage) + `" alt="` + dirs["alt"] + `"` + attrs + `>`
}

func textRenderer(tag string) kindRenderer {
	fallback := strings.ToUpper(tag) + " Text"
	return func(dirs map[string]string, attrs string) string {
		return "<" + tag + attrs + ">" + value(dirs, "text", fallback) + "</" + tag + ">"
	}
}

// renderContainer handles div and every unregistered kind.
func renderContainer(dirs map[string]string, attrs string) string {
	return "<div" + attrs + ">" + containerContent(dirs) + "</div>"
}

// containerContent prefers explicit content, then the element's body text,
// then a generic marker so containers never render empty.
func containerContent(dirs map[string]string) string {
	if content := dirs["content"]; content != "" {
		return content
	}
	if text := strings.TrimSpace(dirs["text"]); text != "" {
		return text
	}
	return "AI-generated content"
}
