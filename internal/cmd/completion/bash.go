package completion

import (
	"github.com/spf13/cobra"
)

// NewCmdBash creates the bash completion command.
func NewCmdBash() *cobra.Command {
	return &cobra.Command{
		Use:   "bash",
		Short: "Generate bash completion script",
		Long: `Generate bash completion script for aicss.

To load completions in your current shell session:

  source <(aicss completion bash)

To load completions for every new session:

  # Linux
  aicss completion bash > /etc/bash_completion.d/aicss

  # macOS (requires bash-completion)
  aicss completion bash > $(brew --prefix)/etc/bash_completion.d/aicss`,
		Example: `  # Load in current session
  source <(aicss completion bash)

  # Install permanently (Linux)
  aicss completion bash | sudo tee /etc/bash_completion.d/aicss > /dev/null

  # Install permanently (macOS with Homebrew)
  aicss completion bash > $(brew --prefix)/etc/bash_completion.d/aicss`,
		Args:                  cobra.NoArgs,
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
		},
	}
}
