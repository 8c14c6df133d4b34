// rewriter.go replaces reserved style attributes with class references.
package rewrite

import (
	"context"
	"sort"
	"strings"
)

// textEdit is one splice against the document text: delete [pos,end) and
// write repl in its place.
type textEdit struct {
	pos  int
	end  int
	repl string
}

// rewriteAttrs runs the second pass over already-expanded markup, turning
// every reserved style attribute into a class reference. Running after
// element expansion means attributes carried by generated fragments get
// rewritten too. When the owning tag already has a class attribute the new
// class is merged into it instead of duplicating the attribute; otherwise
// the reserved attribute is replaced in place. Unresolvable descriptions
// drop the attribute, leaving the element unstyled.
func (e *Expander) rewriteAttrs(ctx context.Context, text string, res *Result) string {
	// Scan warnings are dropped here: malformed spans surviving from the
	// first pass were already reported there.
	sc := Scan(text)
	var edits []textEdit
	for _, region := range sc.Regions {
		if region.Type != RegionAttrValue {
			continue
		}
		desc := unescapeLayer(text[region.ValueStart:region.ValueEnd])
		props, err := e.resolver.ResolveStyle(ctx, desc)
		if err != nil {
			res.AddWarning(WarnCollaborator, region.Start, "resolve %s on <%s>: %v", StyleAttr, region.OwnerTag, err)
			edits = append(edits, dropAttrEdit(text, region))
			continue
		}
		if len(props) == 0 {
			edits = append(edits, dropAttrEdit(text, region))
			continue
		}
		class := e.reg.Intern(StyleRule{
			Properties: props,
			Source:     "<" + region.OwnerTag + " " + StyleAttr + ">",
		})
		if region.ClassValStart >= 0 {
			// Append to the existing class list and drop the reserved
			// attribute.
			edits = append(edits,
				textEdit{pos: region.ClassValEnd, end: region.ClassValEnd, repl: " " + class},
				dropAttrEdit(text, region))
		} else {
			edits = append(edits, textEdit{pos: region.Start, end: region.End, repl: `class="` + class + `"`})
		}
		res.Attributes++
	}
	if len(edits) == 0 {
		return text
	}
	return applyEdits(text, edits)
}

// dropAttrEdit removes an attribute region along with one preceding space
// so the tag does not keep a double gap.
func dropAttrEdit(text string, region Region) textEdit {
	start := region.Start
	if start > 0 && (text[start-1] == ' ' || text[start-1] == '\t') {
		start--
	}
	return textEdit{pos: start, end: region.End}
}

// applyEdits splices edits into text. Edits must not overlap; they are
// applied in position order.
func applyEdits(text string, edits []textEdit) string {
	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].pos != edits[j].pos {
			return edits[i].pos < edits[j].pos
		}
		return edits[i].end < edits[j].end
	})
	var b strings.Builder
	b.Grow(len(text))
	last := 0
	for _, ed := range edits {
		if ed.pos < last {
			continue
		}
		b.WriteString(text[last:ed.pos])
		b.WriteString(ed.repl)
		last = ed.end
	}
	b.WriteString(text[last:])
	return b.String()
}

// injectClass adds class to the root tag of fragment, appending to an
// existing class attribute when the tag already carries one.
func injectClass(fragment, class string) string {
	lt := strings.IndexByte(fragment, '<')
	if lt < 0 {
		return fragment
	}
	_, nameEnd := tagNameAt(fragment, lt)
	if nameEnd == lt {
		return fragment
	}
	gt, selfClosing, ok := findTagEnd(fragment, nameEnd)
	if !ok {
		return fragment
	}
	if _, ve, ok := classValueSpan(fragment[:gt], nameEnd); ok {
		return fragment[:ve] + " " + class + fragment[ve:]
	}
	insert := gt - 1
	if selfClosing && insert > 0 && fragment[insert-1] == '/' {
		insert--
	}
	return fragment[:insert] + ` class="` + class + `"` + fragment[insert:]
}

// classValueSpan finds the value span of a class attribute inside an open
// tag, walking attributes the same way the scanner does.
func classValueSpan(tag string, from int) (int, int, bool) {
	pos := from
	for pos < len(tag) {
		for pos < len(tag) && isSpaceByte(tag[pos]) {
			pos++
		}
		if pos >= len(tag) || tag[pos] == '>' {
			return 0, 0, false
		}
		if tag[pos] == '/' {
			pos++
			continue
		}
		aStart := pos
		for pos < len(tag) && !isSpaceByte(tag[pos]) && tag[pos] != '=' && tag[pos] != '>' && tag[pos] != '/' {
			pos++
		}
		if pos == aStart {
			pos++
			continue
		}
		aName := tag[aStart:pos]
		for pos < len(tag) && isSpaceByte(tag[pos]) {
			pos++
		}
		if pos >= len(tag) || tag[pos] != '=' {
			continue
		}
		pos++
		for pos < len(tag) && isSpaceByte(tag[pos]) {
			pos++
		}
		if pos >= len(tag) {
			return 0, 0, false
		}
		if q := tag[pos]; q == '"' || q == '\'' {
			vEnd, ok := findStringEnd(tag, pos+1, q)
			if !ok {
				return 0, 0, false
			}
			if strings.EqualFold(aName, "class") {
				return pos + 1, vEnd, true
			}
			pos = vEnd + 1
			continue
		}
		for pos < len(tag) && !isSpaceByte(tag[pos]) && tag[pos] != '>' {
			pos++
		}
	}
	return 0, 0, false
}
