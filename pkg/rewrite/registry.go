// registry.go interns style rules and mints the class names that serve them.
package rewrite

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultClassPrefix is used when a registry is created with an empty prefix.
const DefaultClassPrefix = "ai-"

// StyleRule is a set of CSS declarations destined for one generated class.
// Two rules are the same rule when their properties match; Source is
// provenance for diagnostics and never participates in identity.
type StyleRule struct {
	Properties map[string]string
	Source     string
}

// StyleRegistry deduplicates style rules within one document and assigns
// stable class names in first-use order. It also collects selector-addressed
// rules contributed by global style blocks. Not safe for concurrent use;
// give each document its own registry.
type StyleRegistry struct {
	prefix   string
	next     int
	bySig    map[string]string    // signature -> class name
	rules    map[string]StyleRule // class name -> rule
	order    []string             // class names, first-use order
	selOrder []string             // selectors, first-use order
	selRules map[string]map[string]string
}

// NewStyleRegistry returns an empty registry minting names as prefix plus a
// decimal counter: ai-0, ai-1, ...
func NewStyleRegistry(prefix string) *StyleRegistry {
	if prefix == "" {
		prefix = DefaultClassPrefix
	}
	return &StyleRegistry{
		prefix:   prefix,
		bySig:    make(map[string]string),
		rules:    make(map[string]StyleRule),
		selRules: make(map[string]map[string]string),
	}
}

// Intern returns the class name serving rule, minting a new one on first
// use. Rules with equal properties share a class regardless of where they
// came from.
func (r *StyleRegistry) Intern(rule StyleRule) string {
	sig := styleSignature(rule.Properties)
	if name, ok := r.bySig[sig]; ok {
		return name
	}
	name := fmt.Sprintf("%s%d", r.prefix, r.next)
	r.next++
	r.bySig[sig] = name
	r.rules[name] = StyleRule{Properties: copyProps(rule.Properties), Source: rule.Source}
	r.order = append(r.order, name)
	return name
}

// SetSelector records a selector-addressed rule. Repeated selectors merge
// property-wise with later writes winning, keeping the selector's original
// position in the emission order.
func (r *StyleRegistry) SetSelector(selector string, props map[string]string) {
	if len(props) == 0 {
		return
	}
	if cur, ok := r.selRules[selector]; ok {
		for k, v := range props {
			cur[k] = v
		}
		return
	}
	r.selRules[selector] = copyProps(props)
	r.selOrder = append(r.selOrder, selector)
}

// Len reports how many class rules have been interned.
func (r *StyleRegistry) Len() int {
	return len(r.order)
}

// ClassNames returns the minted class names in first-use order.
func (r *StyleRegistry) ClassNames() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Rule returns the rule registered under a class name.
func (r *StyleRegistry) Rule(name string) (StyleRule, bool) {
	rule, ok := r.rules[name]
	return rule, ok
}

// Stylesheet renders every registered rule: selector rules first, then class
// rules in first-use order. Properties are written sorted so equal registries
// produce byte-identical output.
func (r *StyleRegistry) Stylesheet() string {
	if len(r.order) == 0 && len(r.selOrder) == 0 {
		return ""
	}
	var b strings.Builder
	for _, sel := range r.selOrder {
		writeRule(&b, sel, r.selRules[sel])
	}
	for _, name := range r.order {
		writeRule(&b, "."+name, r.rules[name].Properties)
	}
	return b.String()
}

func writeRule(b *strings.Builder, selector string, props map[string]string) {
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, k := range sortedKeys(props) {
		fmt.Fprintf(b, "  %s: %s;\n", k, props[k])
	}
	b.WriteString("}\n")
}

// styleSignature produces the canonical identity string for a property set.
func styleSignature(props map[string]string) string {
	var b strings.Builder
	for _, k := range sortedKeys(props) {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(props[k])
		b.WriteByte(';')
	}
	return b.String()
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyProps(m map[string]string) map[string]string {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
