// directive.go extracts styling directives from pseudo-element bodies and tags.
package rewrite

import (
	"strings"
	"unicode"
)

// Directive is one name/value pair read from a pseudo-element.
type Directive struct {
	Name       string
	Value      string // raw value, escape layers intact
	QuoteDepth int    // literal nesting depth the value was read at

	// span of the whole directive in the parsed text, keyword through
	// closing quote, used to compute the leftover body text
	start int
	end   int
}

// directiveNames lists the recognized directive keywords. A "with" before
// "style" is ordinary prose and needs no special handling here; it is only
// trimmed when computing leftover text.
var directiveNames = []string{
	"content", "style", "text", "class", "href", "src", "alt", "type", "placeholder",
}

// ParseDirectives extracts directives from a pseudo-element body. Later
// occurrences of the same name win over earlier ones when collapsed to a
// map; callers see all of them here. Values come back raw, with their
// escape layers intact.
//
// depth is the raw nesting depth of body: value boundaries are quotes
// carrying that depth's delimiter run, so bodies still wrapped in outer
// escape layers parse without truncating at inner quotes. A value
// containing a complete nested pseudo-element is read through the element's
// close tag, keeping the nested markup intact.
func ParseDirectives(body string, depth int) []Directive {
	var out []Directive
	pos := 0
	for pos < len(body) {
		name, nameEnd := directiveAt(body, pos)
		if name == "" {
			pos++
			continue
		}
		vs := nameEnd
		for vs < len(body) && isSpaceByte(body[vs]) {
			vs++
		}
		if vs == nameEnd || vs >= len(body) {
			// keyword not followed by whitespace and a value: plain prose
			pos = nameEnd
			continue
		}
		// At depth d the opening quote sits behind its own escape run.
		qPos := vs
		for qPos < len(body) && body[qPos] == '\\' {
			qPos++
		}
		if qPos >= len(body) {
			pos = nameEnd
			continue
		}
		q := body[qPos]
		if (q != '"' && q != '\'') || !delimiterAt(body, qPos, depth) {
			pos = nameEnd
			continue
		}
		vEnd, ok := directiveValueEnd(body, qPos+1, q, depth)
		if !ok {
			// unterminated value: ignore the keyword, keep scanning
			pos = nameEnd
			continue
		}
		start := pos
		if name == "style" {
			start = withPrefixStart(body, pos)
		}
		out = append(out, Directive{
			Name:       name,
			Value:      body[qPos+1 : vEnd-escapeRunLen(depth)],
			QuoteDepth: depth,
			start:      start,
			end:        vEnd + 1,
		})
		pos = vEnd + 1
	}
	return out
}

// DirectiveMap collapses directives to name -> value, later entries winning.
func DirectiveMap(dirs []Directive) map[string]string {
	m := make(map[string]string, len(dirs))
	for _, d := range dirs {
		m[d.Name] = d.Value
	}
	return m
}

// directiveAt matches a directive keyword at pos, requiring a word boundary
// on both sides.
func directiveAt(body string, pos int) (string, int) {
	if pos > 0 && isWordByte(body[pos-1]) {
		return "", pos
	}
	for _, name := range directiveNames {
		if !strings.HasPrefix(body[pos:], name) {
			continue
		}
		end := pos + len(name)
		if end < len(body) && isWordByte(body[end]) {
			continue
		}
		return name, end
	}
	return "", pos
}

// directiveValueEnd finds the quote terminating a directive value opened
// just before from. Only a quote carrying the delimiter run for this depth
// terminates; escaped quotes belong to the value. A nested pseudo-element
// suspends termination until its close tag, and comments are skipped whole.
func directiveValueEnd(body string, from int, quote byte, depth int) (int, bool) {
	pos := from
	for pos < len(body) {
		c := body[pos]
		if c == quote && delimiterAt(body, pos, depth) {
			return pos, true
		}
		if c == '<' {
			if strings.HasPrefix(body[pos:], commentOpen) {
				cend := strings.Index(body[pos+len(commentOpen):], commentClose)
				if cend < 0 {
					return 0, false
				}
				pos += len(commentOpen) + cend + len(commentClose)
				continue
			}
			if n, nEnd := tagNameAt(body, pos); n != "" && isAiTag(n) {
				end, selfClosing, ok := lexicalTagEnd(body, nEnd)
				if ok && !selfClosing {
					if _, closeEnd, found := matchingClose(body, n, end); found {
						pos = closeEnd
						continue
					}
				}
				if ok {
					pos = end
					continue
				}
			}
		}
		pos++
	}
	return 0, false
}

// withPrefixStart extends a style directive's span backwards over an
// immediately preceding "with", so leftover-text computation drops the
// whole "with style \"...\"" phrase.
func withPrefixStart(body string, pos int) int {
	i := pos
	for i > 0 && isSpaceByte(body[i-1]) {
		i--
	}
	if i >= 4 && body[i-4:i] == "with" && (i == 4 || !isWordByte(body[i-5])) {
		return i - 4
	}
	return pos
}

// leftoverText returns the body text remaining after directive spans are
// removed, trimmed of surrounding whitespace. It supplies the implicit
// label for elements written without an explicit text or content directive.
func leftoverText(body string, dirs []Directive) string {
	if len(dirs) == 0 {
		return strings.TrimSpace(body)
	}
	var b strings.Builder
	last := 0
	for _, d := range dirs {
		if d.start >= last {
			b.WriteString(body[last:d.start])
			last = d.end
		}
	}
	if last < len(body) {
		b.WriteString(body[last:])
	}
	return strings.TrimSpace(b.String())
}

// ParseTagDirectives reads directives written as attributes on a
// pseudo-element open tag, e.g. <aibutton text="Save" style="blue">.
// Only quoted values are honored; attribute names match case-insensitively.
func ParseTagDirectives(openTag string) []Directive {
	var out []Directive
	pos := 0
	if len(openTag) > 0 && openTag[0] == '<' {
		_, pos = tagNameAt(openTag, 0)
	}
	for pos < len(openTag) {
		for pos < len(openTag) && isSpaceByte(openTag[pos]) {
			pos++
		}
		if pos >= len(openTag) || openTag[pos] == '>' {
			break
		}
		if openTag[pos] == '/' || openTag[pos] == '<' {
			pos++
			continue
		}

		aStart := pos
		for pos < len(openTag) && !isSpaceByte(openTag[pos]) && openTag[pos] != '=' && openTag[pos] != '>' && openTag[pos] != '/' {
			pos++
		}
		if pos == aStart {
			pos++
			continue
		}
		aName := strings.ToLower(openTag[aStart:pos])

		for pos < len(openTag) && isSpaceByte(openTag[pos]) {
			pos++
		}
		if pos >= len(openTag) || openTag[pos] != '=' {
			continue
		}
		pos++
		for pos < len(openTag) && isSpaceByte(openTag[pos]) {
			pos++
		}
		if pos >= len(openTag) {
			break
		}

		if q := openTag[pos]; q == '"' || q == '\'' {
			vEnd, ok := findStringEnd(openTag, pos+1, q)
			if !ok {
				break
			}
			if isDirectiveName(aName) {
				out = append(out, Directive{
					Name:  aName,
					Value: openTag[pos+1 : vEnd],
					start: aStart,
					end:   vEnd + 1,
				})
			}
			pos = vEnd + 1
			continue
		}
		// unquoted attribute value: skipped, same rule as body directives
		for pos < len(openTag) && !isSpaceByte(openTag[pos]) && openTag[pos] != '>' {
			pos++
		}
	}
	return out
}

func isDirectiveName(name string) bool {
	for _, d := range directiveNames {
		if d == name {
			return true
		}
	}
	return false
}

func isWordByte(c byte) bool {
	return c == '_' || c == '-' || unicode.IsLetter(rune(c)) || unicode.IsDigit(rune(c))
}
