package configcmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, runPath(NewCmdPath()))
}

func TestNewCmdConfig_Subcommands(t *testing.T) {
	cmd := NewCmdConfig()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"show", "test", "clear", "path"} {
		assert.True(t, names[want], "missing subcommand %q", want)
	}
}
