package rewrite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStyleRegistry_InternMintsSequentialNames(t *testing.T) {
	reg := NewStyleRegistry("")
	a := reg.Intern(StyleRule{Properties: map[string]string{"color": "red"}})
	b := reg.Intern(StyleRule{Properties: map[string]string{"color": "blue"}})
	assert.Equal(t, "ai-0", a)
	assert.Equal(t, "ai-1", b)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"ai-0", "ai-1"}, reg.ClassNames())
}

func TestStyleRegistry_CustomPrefix(t *testing.T) {
	reg := NewStyleRegistry("gen-")
	assert.Equal(t, "gen-0", reg.Intern(StyleRule{Properties: map[string]string{"margin": "0"}}))
}

func TestStyleRegistry_DeduplicatesEqualProperties(t *testing.T) {
	reg := NewStyleRegistry("")
	a := reg.Intern(StyleRule{
		Properties: map[string]string{"color": "red", "padding": "1rem"},
		Source:     "<aibutton>",
	})
	// Same properties, different provenance and insertion order.
	b := reg.Intern(StyleRule{
		Properties: map[string]string{"padding": "1rem", "color": "red"},
		Source:     "<div aicss>",
	})
	assert.Equal(t, a, b)
	assert.Equal(t, 1, reg.Len())

	rule, ok := reg.Rule(a)
	require.True(t, ok)
	assert.Equal(t, "<aibutton>", rule.Source, "first registration wins")
}

func TestStyleRegistry_InternCopiesProperties(t *testing.T) {
	props := map[string]string{"color": "red"}
	reg := NewStyleRegistry("")
	name := reg.Intern(StyleRule{Properties: props})
	props["color"] = "green"

	rule, ok := reg.Rule(name)
	require.True(t, ok)
	assert.Equal(t, "red", rule.Properties["color"])
}

func TestStyleRegistry_Stylesheet(t *testing.T) {
	reg := NewStyleRegistry("")
	reg.SetSelector("h1", map[string]string{"font-size": "2rem"})
	reg.Intern(StyleRule{Properties: map[string]string{"color": "blue", "background-color": "white"}})

	want := "h1 {\n" +
		"  font-size: 2rem;\n" +
		"}\n" +
		".ai-0 {\n" +
		"  background-color: white;\n" +
		"  color: blue;\n" +
		"}\n"
	assert.Equal(t, want, reg.Stylesheet())
}

func TestStyleRegistry_EmptyStylesheet(t *testing.T) {
	assert.Empty(t, NewStyleRegistry("").Stylesheet())
}

func TestStyleRegistry_SelectorMerge(t *testing.T) {
	reg := NewStyleRegistry("")
	reg.SetSelector("body", map[string]string{"color": "black", "margin": "0"})
	reg.SetSelector("p", map[string]string{"color": "gray"})
	reg.SetSelector("body", map[string]string{"color": "navy"})

	sheet := reg.Stylesheet()
	assert.Contains(t, sheet, "color: navy;")
	assert.Contains(t, sheet, "margin: 0;")
	assert.NotContains(t, sheet, "color: black;")
	// body keeps its original position ahead of p
	assert.Less(t, strings.Index(sheet, "body {"), strings.Index(sheet, "p {"))
}

func TestStyleRegistry_EmptySelectorPropsIgnored(t *testing.T) {
	reg := NewStyleRegistry("")
	reg.SetSelector("h1", nil)
	assert.Empty(t, reg.Stylesheet())
}
