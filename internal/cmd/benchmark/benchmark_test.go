package benchmark

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

func TestDescriptionsResolve(t *testing.T) {
	// every benchmark description must produce at least one declaration,
	// otherwise the timings measure the empty path
	for _, desc := range descriptions {
		props := styles.Resolve(desc)
		assert.NotEmpty(t, props, desc)
	}
}

func TestRunBenchmark_Table(t *testing.T) {
	require.NoError(t, runBenchmark("table", true))
}

func TestRunBenchmark_JSON(t *testing.T) {
	require.NoError(t, runBenchmark("json", true))
}

func TestRunBenchmark_InvalidFormat(t *testing.T) {
	err := runBenchmark("xml", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestNewCmdBenchmark(t *testing.T) {
	cmd := NewCmdBenchmark()

	assert.Equal(t, "benchmark", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}
