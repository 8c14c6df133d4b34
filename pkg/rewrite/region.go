// region.go defines the region model produced by the scanner.
package rewrite

// RegionType classifies a contiguous span of a scanned document.
type RegionType int

const (
	RegionMarkup    RegionType = iota // ordinary markup, passed through verbatim
	RegionComment                     // <!-- ... --> including both markers
	RegionAttrValue                   // reserved style attribute on an ordinary tag
	RegionAiElement                   // pseudo-element from open tag through matching close
)

// Region is a half-open byte range [Start,End) of the scanned input.
// The scanner guarantees that regions tile the input: sorted by Start,
// non-overlapping, and covering every byte.
type Region struct {
	Type  RegionType
	Start int
	End   int

	// Pseudo-element fields, set when Type == RegionAiElement.
	Tag         string // full tag name, e.g. "aibutton"
	Kind        string // tag name with the reserved prefix stripped, e.g. "button"
	InnerStart  int    // body range; InnerStart == InnerEnd for self-closing tags
	InnerEnd    int
	SelfClosing bool

	// Attribute fields, set when Type == RegionAttrValue. The region spans
	// the attribute name through its closing quote; ValueStart/ValueEnd
	// bound the value with quotes excluded.
	OwnerTag   string // tag carrying the attribute, e.g. "div"
	ValueStart int
	ValueEnd   int
	// Value span of a class attribute on the same tag, or -1 when the tag
	// has none. Lets the rewrite step merge instead of duplicating the
	// attribute.
	ClassValStart int
	ClassValEnd   int
}
