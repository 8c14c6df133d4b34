package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdFish creates the fish completion command.
func NewCmdFish() *cobra.Command {
	return &cobra.Command{
		Use:   "fish",
		Short: "Generate fish completion script",
		Long: `Generate fish completion script for aicss.

To load completions in your current shell session:

  aicss completion fish | source

To load completions for every new session:

  aicss completion fish > ~/.config/fish/completions/aicss.fish`,
		Example: `  # Load in current session
  aicss completion fish | source

  # Install permanently
  aicss completion fish > ~/.config/fish/completions/aicss.fish`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
		},
	}
}
