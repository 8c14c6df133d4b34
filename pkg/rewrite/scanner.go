// scanner.go locates pseudo-element and reserved-attribute regions in markup.
package rewrite

import (
	"fmt"
	"strings"
	"unicode"
)

const (
	// TagPrefix marks pseudo-element tag names: <aibutton>, <aidiv>, ...
	// Matching is case-sensitive; tags are expected lowercase.
	TagPrefix = "ai"
	// StyleAttr is the reserved attribute carrying a natural-language style
	// description on an ordinary tag.
	StyleAttr = "aicss"

	commentOpen  = "<!--"
	commentClose = "-->"
)

// ScanResult holds the regions located in one pass over the input, plus any
// warnings raised for malformed spans that were recovered as plain markup.
type ScanResult struct {
	Regions  []Region
	Warnings []Warning
}

// AddWarning records a scan warning.
func (sr *ScanResult) AddWarning(kind WarningKind, offset int, format string, args ...interface{}) {
	sr.Warnings = append(sr.Warnings, Warning{
		Kind:    kind,
		Offset:  offset,
		Message: fmt.Sprintf(format, args...),
	})
}

// hasElements reports whether any pseudo-element region was found.
func (sr *ScanResult) hasElements() bool {
	for _, r := range sr.Regions {
		if r.Type == RegionAiElement {
			return true
		}
	}
	return false
}

// Scan classifies input into a tiling sequence of regions. It never fails:
// malformed constructs degrade to plain markup, with a warning where the
// reserved syntax itself was broken.
//
// Comments take precedence over everything, so pseudo-elements and reserved
// attributes inside <!-- --> stay inert. Same-tag nesting inside a
// pseudo-element body is counted lexically, independent of quote state, so
// escaped quotes in nested directive values cannot derail the close search.
func Scan(input string) *ScanResult {
	res := &ScanResult{}
	pos := 0
	textStart := 0

	flush := func(end int) {
		if end > textStart {
			res.Regions = append(res.Regions, Region{Type: RegionMarkup, Start: textStart, End: end})
		}
	}

	for pos < len(input) {
		if input[pos] != '<' {
			pos++
			continue
		}

		if strings.HasPrefix(input[pos:], commentOpen) {
			flush(pos)
			end := strings.Index(input[pos+len(commentOpen):], commentClose)
			if end < 0 {
				// An unterminated comment swallows the rest of the input,
				// matching how browsers recover. Inert either way.
				res.Regions = append(res.Regions, Region{Type: RegionComment, Start: pos, End: len(input)})
				pos = len(input)
			} else {
				stop := pos + len(commentOpen) + end + len(commentClose)
				res.Regions = append(res.Regions, Region{Type: RegionComment, Start: pos, End: stop})
				pos = stop
			}
			textStart = pos
			continue
		}

		name, nameEnd := tagNameAt(input, pos)
		if name == "" {
			// "</...", "<!DOCTYPE", or a stray '<': plain markup.
			pos++
			continue
		}

		if isAiTag(name) {
			region, endPos, ok := scanAiElement(input, pos, name, nameEnd, res)
			if !ok {
				pos = endPos
				continue
			}
			flush(pos)
			res.Regions = append(res.Regions, region)
			pos = region.End
			textStart = pos
			continue
		}

		spans, tagEnd, ok := scanOrdinaryTag(input, nameEnd, res)
		if !ok {
			pos++
			continue
		}
		for _, sp := range spans {
			flush(sp.start)
			res.Regions = append(res.Regions, Region{
				Type:          RegionAttrValue,
				Start:         sp.start,
				End:           sp.end,
				OwnerTag:      name,
				ValueStart:    sp.valueStart,
				ValueEnd:      sp.valueEnd,
				ClassValStart: sp.classValStart,
				ClassValEnd:   sp.classValEnd,
			})
			textStart = sp.end
		}
		pos = tagEnd
	}

	flush(len(input))
	return res
}

// isAiTag reports whether name is a pseudo-element tag name: the reserved
// prefix followed by at least one more character.
func isAiTag(name string) bool {
	return len(name) > len(TagPrefix) && strings.HasPrefix(name, TagPrefix)
}

// tagNameAt reads a tag name starting right after the '<' at pos.
// Returns "" when pos does not open a named tag.
func tagNameAt(input string, pos int) (string, int) {
	i := pos + 1
	if i >= len(input) || !isTagNameStart(input[i]) {
		return "", pos
	}
	start := i
	for i < len(input) && isTagNameChar(input[i]) {
		i++
	}
	return input[start:i], i
}

func isTagNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isTagNameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '-'
}

func isSpaceByte(c byte) bool {
	return unicode.IsSpace(rune(c))
}

// scanAiElement reads a pseudo-element starting at start. On success it
// returns the complete region and ok=true. On a malformed element it adds a
// warning and returns ok=false with the position scanning should resume at,
// leaving the broken span to accumulate as plain markup.
func scanAiElement(input string, start int, name string, nameEnd int, res *ScanResult) (Region, int, bool) {
	gt, selfClosing, ok := findTagEnd(input, nameEnd)
	if !ok {
		res.AddWarning(WarnMalformed, start, "unterminated <%s> tag", name)
		return Region{}, start + 1, false
	}
	kind := name[len(TagPrefix):]
	if selfClosing {
		return Region{
			Type:        RegionAiElement,
			Start:       start,
			End:         gt,
			Tag:         name,
			Kind:        kind,
			InnerStart:  gt,
			InnerEnd:    gt,
			SelfClosing: true,
		}, gt, true
	}
	closeStart, closeEnd, found := matchingClose(input, name, gt)
	if !found {
		res.AddWarning(WarnMalformed, start, "missing </%s>; treating <%s> as plain markup", name, name)
		return Region{}, gt, false
	}
	return Region{
		Type:       RegionAiElement,
		Start:      start,
		End:        closeEnd,
		Tag:        name,
		Kind:       kind,
		InnerStart: gt,
		InnerEnd:   closeStart,
	}, closeEnd, true
}

// findTagEnd scans from right after a tag name to the closing '>', skipping
// quoted attribute values so a '>' inside quotes does not end the tag.
// Returns the index just past '>', whether the tag is self-closing, and
// whether a closing '>' exists at all.
func findTagEnd(input string, from int) (int, bool, bool) {
	pos := from
	for pos < len(input) {
		switch c := input[pos]; c {
		case '>':
			selfClosing := pos > from && input[pos-1] == '/'
			return pos + 1, selfClosing, true
		case '"', '\'':
			end, ok := findStringEnd(input, pos+1, c)
			if !ok {
				return 0, false, false
			}
			pos = end + 1
		default:
			pos++
		}
	}
	return 0, false, false
}

// lexicalTagEnd finds the next '>' with no quote tracking at all. Used when
// the tag sits inside an escaped directive value, where quote characters
// belong to a deeper layer and must not be interpreted.
func lexicalTagEnd(input string, from int) (int, bool, bool) {
	idx := strings.IndexByte(input[from:], '>')
	if idx < 0 {
		return 0, false, false
	}
	end := from + idx + 1
	selfClosing := idx > 0 && input[from+idx-1] == '/'
	return end, selfClosing, true
}

// matchingClose finds the close tag matching name, searching from the given
// offset. Same-tag opens increment a nesting count and closes decrement it;
// the search is lexical (quote state ignored) but skips comments entirely.
func matchingClose(input, name string, from int) (int, int, bool) {
	depth := 0
	pos := from
	for pos < len(input) {
		idx := strings.IndexByte(input[pos:], '<')
		if idx < 0 {
			break
		}
		pos += idx
		if strings.HasPrefix(input[pos:], commentOpen) {
			cend := strings.Index(input[pos+len(commentOpen):], commentClose)
			if cend < 0 {
				break
			}
			pos += len(commentOpen) + cend + len(commentClose)
			continue
		}
		if pos+1 < len(input) && input[pos+1] == '/' {
			if end, ok := closeTagEnd(input, pos, name); ok {
				if depth == 0 {
					return pos, end, true
				}
				depth--
				pos = end
				continue
			}
			pos++
			continue
		}
		if n, nEnd := tagNameAt(input, pos); n == name {
			end, selfClosing, ok := lexicalTagEnd(input, nEnd)
			if !ok {
				pos = nEnd
				continue
			}
			if !selfClosing {
				depth++
			}
			pos = end
			continue
		}
		pos++
	}
	return 0, 0, false
}

// closeTagEnd matches "</name >" (optional trailing spaces) at pos and
// returns the index just past '>'.
func closeTagEnd(input string, pos int, name string) (int, bool) {
	i := pos + 2
	if !strings.HasPrefix(input[i:], name) {
		return 0, false
	}
	i += len(name)
	if i < len(input) && isTagNameChar(input[i]) {
		return 0, false // longer tag name, e.g. </aidivx>
	}
	for i < len(input) && isSpaceByte(input[i]) {
		i++
	}
	if i < len(input) && input[i] == '>' {
		return i + 1, true
	}
	return 0, false
}

// attrSpan records one reserved attribute found while walking an ordinary
// tag, with offsets into the scanned input.
type attrSpan struct {
	start         int // first byte of the attribute name
	end           int // just past the closing quote
	valueStart    int
	valueEnd      int
	classValStart int // value span of a class attribute on the same tag, or -1
	classValEnd   int
}

// scanOrdinaryTag walks the attributes of a non-pseudo-element tag looking
// for the reserved style attribute. ok=false means the tag never terminates
// and should be treated as plain text from its '<'.
func scanOrdinaryTag(input string, nameEnd int, res *ScanResult) ([]attrSpan, int, bool) {
	pos := nameEnd
	var spans []attrSpan
	classValStart, classValEnd := -1, -1

	for pos < len(input) {
		for pos < len(input) && isSpaceByte(input[pos]) {
			pos++
		}
		if pos >= len(input) {
			break
		}
		switch input[pos] {
		case '>':
			return finishTag(spans, classValStart, classValEnd), pos + 1, true
		case '/':
			if pos+1 < len(input) && input[pos+1] == '>' {
				return finishTag(spans, classValStart, classValEnd), pos + 2, true
			}
			pos++
			continue
		case '<':
			// A new tag begins before this one closed; give up on it.
			return nil, 0, false
		}

		aStart := pos
		for pos < len(input) && !isSpaceByte(input[pos]) && input[pos] != '=' && input[pos] != '>' && input[pos] != '/' && input[pos] != '<' {
			pos++
		}
		if pos == aStart {
			pos++
			continue
		}
		aName := input[aStart:pos]

		for pos < len(input) && isSpaceByte(input[pos]) {
			pos++
		}
		if pos >= len(input) || input[pos] != '=' {
			continue // bare attribute
		}
		pos++
		for pos < len(input) && isSpaceByte(input[pos]) {
			pos++
		}
		if pos >= len(input) {
			break
		}

		if q := input[pos]; q == '"' || q == '\'' {
			vStart := pos + 1
			vEnd, ok := findStringEnd(input, vStart, q)
			if !ok {
				if strings.EqualFold(aName, StyleAttr) {
					res.AddWarning(WarnMalformed, aStart, "unterminated %s attribute value", StyleAttr)
				}
				return nil, 0, false
			}
			if strings.EqualFold(aName, StyleAttr) {
				spans = append(spans, attrSpan{start: aStart, end: vEnd + 1, valueStart: vStart, valueEnd: vEnd})
			} else if strings.EqualFold(aName, "class") && classValStart < 0 {
				classValStart, classValEnd = vStart, vEnd
			}
			pos = vEnd + 1
			continue
		}

		// Unquoted value. A reserved attribute written this way is ignored.
		for pos < len(input) && !isSpaceByte(input[pos]) && input[pos] != '>' {
			pos++
		}
	}
	return nil, 0, false
}

// finishTag stamps the tag's class value span onto every reserved-attribute
// span found in it.
func finishTag(spans []attrSpan, classValStart, classValEnd int) []attrSpan {
	for i := range spans {
		spans[i].classValStart = classValStart
		spans[i].classValEnd = classValEnd
	}
	return spans
}
