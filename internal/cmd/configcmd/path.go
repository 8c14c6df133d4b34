package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/config"
)

// NewCmdPath creates the config path command.
func NewCmdPath() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Long:  `Print the path of the configuration file aicss reads.`,
		Example: `  # Edit the config directly
  $EDITOR "$(aicss config path)"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPath(cmd)
		},
	}

	return cmd
}

func runPath(cmd *cobra.Command) error {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		fmt.Println(path)
		return nil
	}
	fmt.Println(config.DefaultConfigPath())
	return nil
}
