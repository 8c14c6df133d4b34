// expand.go drives pseudo-element expansion over scanned regions.
package rewrite

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds content-directive recursion.
const DefaultMaxDepth = 50

// styleKind is the pseudo-element kind whose body declares selector rules
// instead of rendering markup: <aistyle>.
const styleKind = "style"

// ErrInvalidEncoding is returned when input is not valid UTF-8. It is the
// only condition that aborts processing.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

// StyleResolver turns a natural-language style description into CSS
// declarations, property name to value.
type StyleResolver interface {
	ResolveStyle(ctx context.Context, description string) (map[string]string, error)
}

// MarkupGenerator renders the replacement fragment for a pseudo-element
// kind. It returns the fragment plus any style rules the fragment needs;
// class names for those rules are assigned by the caller, never by the
// generator. A non-nil error with a non-empty fragment means the fragment
// is usable but degraded.
type MarkupGenerator interface {
	Generate(ctx context.Context, kind string, directives map[string]string) (string, []StyleRule, error)
}

// Options tunes an Expander.
type Options struct {
	MaxDepth int         // recursion ceiling; DefaultMaxDepth when <= 0
	Prefix   string      // class name prefix; DefaultClassPrefix when empty
	Logger   *zap.Logger // nil disables logging
}

// Expander rewrites one document: pseudo-elements become generated markup,
// reserved style attributes become class references, and every distinct
// style lands in the registry exactly once. Each Expander owns its registry,
// so use one per document; separate documents can then be processed in
// parallel without coordination.
type Expander struct {
	resolver  StyleResolver
	generator MarkupGenerator
	reg       *StyleRegistry
	maxDepth  int
	log       *zap.Logger
}

// NewExpander wires an expander from its two collaborators.
func NewExpander(resolver StyleResolver, generator MarkupGenerator, opts Options) *Expander {
	maxDepth := opts.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{
		resolver:  resolver,
		generator: generator,
		reg:       NewStyleRegistry(opts.Prefix),
		maxDepth:  maxDepth,
		log:       logger.Named("rewrite"),
	}
}

// Registry exposes the expander's style registry.
func (e *Expander) Registry() *StyleRegistry {
	return e.reg
}

// Expand processes one document and returns the rewritten markup together
// with the stylesheet collected along the way. Malformed regions, depth
// overruns and collaborator failures degrade to warnings; the only error is
// input that cannot be read as UTF-8. Running the output through Expand
// again yields the same markup.
func (e *Expander) Expand(ctx context.Context, input string) (*Result, error) {
	if !utf8.ValidString(input) {
		return nil, ErrInvalidEncoding
	}
	res := &Result{}
	markup := e.expandLayer(ctx, input, 0, res)
	markup = e.rewriteAttrs(ctx, markup, res)
	res.Markup = markup
	res.Stylesheet = e.reg.Stylesheet()
	for _, w := range res.Warnings {
		e.log.Warn(w.Message, zap.String("kind", string(w.Kind)), zap.Int("offset", w.Offset))
	}
	e.log.Debug("document expanded",
		zap.Int("elements", res.Expanded),
		zap.Int("attributes", res.Attributes),
		zap.Int("classes", e.reg.Len()),
		zap.Int("warnings", len(res.Warnings)))
	return res, nil
}

// expandLayer scans text and splices replacements for the pseudo-element
// regions found. Text containing none comes back byte-identical.
func (e *Expander) expandLayer(ctx context.Context, text string, depth int, res *Result) string {
	sc := Scan(text)
	res.Warnings = append(res.Warnings, sc.Warnings...)
	if !sc.hasElements() {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, region := range sc.Regions {
		if region.Type == RegionAiElement {
			b.WriteString(e.expandElement(ctx, text, region, depth, res))
			continue
		}
		b.WriteString(text[region.Start:region.End])
	}
	return b.String()
}

// expandElement renders the replacement for one pseudo-element region.
func (e *Expander) expandElement(ctx context.Context, text string, region Region, depth int, res *Result) string {
	if region.Kind == styleKind {
		e.collectGlobalRules(ctx, text, region, res)
		return ""
	}

	dirs := e.elementDirectives(ctx, text, region, depth, res)

	frag, rules, err := e.generator.Generate(ctx, region.Kind, dirs)
	if err != nil {
		res.AddWarning(WarnCollaborator, region.Start, "generate <%s>: %v", region.Tag, err)
		if frag == "" {
			// Nothing usable came back; keep the original element text.
			return text[region.Start:region.End]
		}
	}
	for _, rule := range rules {
		class := e.reg.Intern(rule)
		frag = injectClass(frag, class)
	}
	res.Expanded++
	return frag
}

// elementDirectives gathers directives for a region: open-tag attributes
// first, body directives overriding them, and the leftover body text filling
// in as the implicit label when neither text nor content was given.
// Directive values are unescaped one layer; content is then expanded a layer
// deeper so innermost elements resolve first.
func (e *Expander) elementDirectives(ctx context.Context, text string, region Region, depth int, res *Result) map[string]string {
	dirs := make(map[string]string)

	openTag := text[region.Start:region.InnerStart]
	if region.SelfClosing {
		openTag = text[region.Start:region.End]
	}
	for _, d := range ParseTagDirectives(openTag) {
		dirs[d.Name] = unescapeLayer(d.Value)
	}

	if !region.SelfClosing {
		body := text[region.InnerStart:region.InnerEnd]
		parsed := ParseDirectives(body, 0)
		for _, d := range parsed {
			dirs[d.Name] = unescapeLayer(d.Value)
		}
		_, hasContent := dirs["content"]
		_, hasText := dirs["text"]
		if !hasContent && !hasText {
			if leftover := leftoverText(body, parsed); leftover != "" {
				dirs["text"] = e.expandNested(ctx, leftover, depth, res)
			}
		}
	}

	if content, ok := dirs["content"]; ok {
		dirs["content"] = e.expandNested(ctx, content, depth, res)
	}
	return dirs
}

// expandNested expands pseudo-elements inside an extracted value one level
// deeper. Branches beyond the depth ceiling are left literal with a warning,
// one warning per refused branch.
func (e *Expander) expandNested(ctx context.Context, s string, depth int, res *Result) string {
	if !strings.Contains(s, "<"+TagPrefix) {
		return s
	}
	if depth+1 > e.maxDepth {
		res.AddWarning(WarnRecursionLimit, 0, "nesting depth %d exceeds limit %d; leaving content literal", depth+1, e.maxDepth)
		return s
	}
	return e.expandLayer(ctx, s, depth+1, res)
}

// collectGlobalRules reads "selector: description" lines from a style
// pseudo-element body and registers the resolved declarations under the
// selector. The element itself renders to nothing.
func (e *Expander) collectGlobalRules(ctx context.Context, text string, region Region, res *Result) {
	if region.SelfClosing {
		return
	}
	body := text[region.InnerStart:region.InnerEnd]
	for _, line := range strings.Split(body, "\n") {
		sel, desc, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		sel = strings.TrimSpace(sel)
		desc = strings.Trim(strings.TrimSpace(desc), `"'`)
		if sel == "" || desc == "" {
			continue
		}
		props, err := e.resolver.ResolveStyle(ctx, desc)
		if err != nil {
			res.AddWarning(WarnCollaborator, region.Start, "resolve style for %q: %v", sel, err)
			continue
		}
		e.reg.SetSelector(sel, props)
	}
}
