package page

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify(t *testing.T) {
	doc := "<html>\n  <body>\n    <p>hello   world</p>\n  </body>\n</html>\n"
	out, err := Minify(doc)
	require.NoError(t, err)
	assert.Less(t, len(out), len(doc))
	assert.Contains(t, out, "hello world")
}

func TestMinify_InlineStyles(t *testing.T) {
	doc := `<html><head><style type="text/css">.ai-0 {
  padding: 1rem;
}
</style></head><body><p>x</p></body></html>`
	out, err := Minify(doc)
	require.NoError(t, err)
	assert.Contains(t, out, ".ai-0{padding:1rem}")
}

func TestMinifyCSS(t *testing.T) {
	out, err := MinifyCSS(".ai-0 {\n  padding: 1rem;\n}\n.ai-1 {\n  margin: 0;\n}\n")
	require.NoError(t, err)
	assert.Equal(t, ".ai-0{padding:1rem}.ai-1{margin:0}", strings.TrimSpace(out))
}
