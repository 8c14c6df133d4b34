package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireTiling checks the scanner's structural guarantee: regions are
// sorted, non-overlapping, and cover the input exactly.
func requireTiling(t *testing.T, input string, sc *ScanResult) {
	t.Helper()
	last := 0
	for i, r := range sc.Regions {
		require.Equal(t, last, r.Start, "region %d does not start where the previous ended", i)
		require.GreaterOrEqual(t, r.End, r.Start, "region %d is inverted", i)
		last = r.End
	}
	require.Equal(t, len(input), last, "regions do not cover the input")
}

func TestScan_EmptyInput(t *testing.T) {
	sc := Scan("")
	assert.Empty(t, sc.Regions)
	assert.Empty(t, sc.Warnings)
}

func TestScan_PlainMarkup(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"text only", "hello world"},
		{"ordinary tags", "<p>hello <b>world</b></p>"},
		{"doctype and entities", "<!DOCTYPE html><p>a &amp; b</p>"},
		{"stray angle bracket", "<p>1 < 2</p>"},
		{"close tag alone", "</div>"},
		{"tag with class only", `<div class="card">x</div>`},
		{"prefix-free custom tag", "<aside>x</aside>"},
		{"bare prefix tag", "<ai>x</ai>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Scan(tt.input)
			requireTiling(t, tt.input, sc)
			require.Len(t, sc.Regions, 1)
			assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
			assert.Empty(t, sc.Warnings)
		})
	}
}

func TestScan_Comment(t *testing.T) {
	input := "a<!-- b --><p>c</p>"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 3)
	assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
	assert.Equal(t, RegionComment, sc.Regions[1].Type)
	assert.Equal(t, "<!-- b -->", input[sc.Regions[1].Start:sc.Regions[1].End])
	assert.Equal(t, RegionMarkup, sc.Regions[2].Type)
}

func TestScan_UnterminatedCommentRunsToEnd(t *testing.T) {
	input := "a<!-- never closed"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 2)
	assert.Equal(t, RegionComment, sc.Regions[1].Type)
	assert.Equal(t, len(input), sc.Regions[1].End)
}

func TestScan_CommentHidesElements(t *testing.T) {
	input := `<!-- <aibutton>text 'X'</aibutton> --><!-- <div aicss="blue">y</div> -->`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 2)
	assert.Equal(t, RegionComment, sc.Regions[0].Type)
	assert.Equal(t, RegionComment, sc.Regions[1].Type)
	assert.False(t, sc.hasElements())
}

func TestScan_SimpleElement(t *testing.T) {
	input := "<p>a</p><aibutton>Save</aibutton><p>b</p>"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 3)

	r := sc.Regions[1]
	assert.Equal(t, RegionAiElement, r.Type)
	assert.Equal(t, "aibutton", r.Tag)
	assert.Equal(t, "button", r.Kind)
	assert.False(t, r.SelfClosing)
	assert.Equal(t, "Save", input[r.InnerStart:r.InnerEnd])
	assert.Equal(t, "<aibutton>Save</aibutton>", input[r.Start:r.End])
}

func TestScan_SelfClosingElement(t *testing.T) {
	input := `x<aiimg src="pic.png"/>y`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 3)

	r := sc.Regions[1]
	assert.Equal(t, RegionAiElement, r.Type)
	assert.Equal(t, "img", r.Kind)
	assert.True(t, r.SelfClosing)
	assert.Equal(t, r.InnerStart, r.InnerEnd)
}

func TestScan_ElementAttributeWithGt(t *testing.T) {
	input := `<aibutton text="a > b">x</aibutton>`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	r := sc.Regions[0]
	assert.Equal(t, RegionAiElement, r.Type)
	assert.Equal(t, "x", input[r.InnerStart:r.InnerEnd])
}

func TestScan_NestedSameTag(t *testing.T) {
	input := "<aidiv>a<aidiv>b</aidiv>c</aidiv>"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	r := sc.Regions[0]
	assert.Equal(t, "a<aidiv>b</aidiv>c", input[r.InnerStart:r.InnerEnd])
}

// The close search counts same-tag nesting lexically, so a nested element
// living inside a quoted directive value still pairs the outer close tag at
// the right depth.
func TestScan_NestingIndependentOfQuotes(t *testing.T) {
	input := `<aidiv>content "<div><aidiv>content "Y"</aidiv></div>" with style "S"</aidiv>`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	r := sc.Regions[0]
	assert.Equal(t, RegionAiElement, r.Type)
	assert.Equal(t, len(input), r.End)
	assert.Equal(t, `content "<div><aidiv>content "Y"</aidiv></div>" with style "S"`, input[r.InnerStart:r.InnerEnd])
}

func TestScan_CloseSearchSkipsComments(t *testing.T) {
	input := "<aidiv>a<!-- </aidiv> -->b</aidiv>"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	assert.Equal(t, "a<!-- </aidiv> -->b", input[sc.Regions[0].InnerStart:sc.Regions[0].InnerEnd])
}

func TestScan_UnclosedElementDegradesToMarkup(t *testing.T) {
	input := "<p><aibutton>no close"
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
	require.Len(t, sc.Warnings, 1)
	assert.Equal(t, WarnMalformed, sc.Warnings[0].Kind)
	assert.Contains(t, sc.Warnings[0].Message, "aibutton")
}

func TestScan_UnterminatedOpenTag(t *testing.T) {
	input := `<aibutton text="x`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
	require.NotEmpty(t, sc.Warnings)
	assert.Equal(t, WarnMalformed, sc.Warnings[0].Kind)
}

func TestScan_StyleAttribute(t *testing.T) {
	input := `<div aicss="blue text">x</div>`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 3)

	r := sc.Regions[1]
	assert.Equal(t, RegionAttrValue, r.Type)
	assert.Equal(t, "div", r.OwnerTag)
	assert.Equal(t, "blue text", input[r.ValueStart:r.ValueEnd])
	assert.Equal(t, `aicss="blue text"`, input[r.Start:r.End])
	assert.Equal(t, -1, r.ClassValStart)
}

func TestScan_StyleAttributeVariants(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue string
	}{
		{"single quotes", `<div aicss='red'>x</div>`, "red"},
		{"uppercase name", `<div AICSS="red">x</div>`, "red"},
		{"second attribute", `<div id="a" aicss="red">x</div>`, "red"},
		{"empty value", `<div aicss="">x</div>`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := Scan(tt.input)
			requireTiling(t, tt.input, sc)
			var attr *Region
			for i := range sc.Regions {
				if sc.Regions[i].Type == RegionAttrValue {
					attr = &sc.Regions[i]
					break
				}
			}
			require.NotNil(t, attr, "no attribute region found")
			assert.Equal(t, tt.wantValue, tt.input[attr.ValueStart:attr.ValueEnd])
		})
	}
}

func TestScan_StyleAttributeWithClass(t *testing.T) {
	input := `<div class="card" aicss="blue">x</div>`
	sc := Scan(input)
	requireTiling(t, input, sc)

	var attr *Region
	for i := range sc.Regions {
		if sc.Regions[i].Type == RegionAttrValue {
			attr = &sc.Regions[i]
		}
	}
	require.NotNil(t, attr)
	require.GreaterOrEqual(t, attr.ClassValStart, 0)
	assert.Equal(t, "card", input[attr.ClassValStart:attr.ClassValEnd])
}

func TestScan_UnquotedStyleAttributeIgnored(t *testing.T) {
	input := `<div aicss=blue>x</div>`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
	assert.Empty(t, sc.Warnings)
}

func TestScan_UnterminatedStyleAttribute(t *testing.T) {
	input := `<div aicss="blue`
	sc := Scan(input)
	requireTiling(t, input, sc)
	require.Len(t, sc.Regions, 1)
	assert.Equal(t, RegionMarkup, sc.Regions[0].Type)
	require.Len(t, sc.Warnings, 1)
	assert.Equal(t, WarnMalformed, sc.Warnings[0].Kind)
	assert.Contains(t, sc.Warnings[0].Message, StyleAttr)
}

func TestScan_MixedDocument(t *testing.T) {
	input := `<html><body><!-- note --><aibutton>Go</aibutton><p aicss="big">t</p></body></html>`
	sc := Scan(input)
	requireTiling(t, input, sc)

	var kinds []RegionType
	for _, r := range sc.Regions {
		kinds = append(kinds, r.Type)
	}
	assert.Equal(t, []RegionType{
		RegionMarkup, RegionComment, RegionAiElement, RegionMarkup, RegionAttrValue, RegionMarkup,
	}, kinds)
}
