// Package root provides the root command for the aicss CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/cmd/benchmark"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/completion"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/configcmd"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/generate"
	initcmd "github.com/open-cli-collective/aicss-cli/internal/cmd/init"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/minify"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/preview"
	"github.com/open-cli-collective/aicss-cli/internal/cmd/process"
	"github.com/open-cli-collective/aicss-cli/internal/version"
)

// NewCmdRoot creates the root command for aicss.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aicss",
		Short: "AI pseudo-element processor for HTML and Markdown",
		Long: `aicss rewrites HTML documents that use AI pseudo-elements.

Elements like <aibutton> and attributes like aicss="blue background"
are expanded into standard markup with generated CSS classes, so you
can describe intent in the document and let the processor produce the
styling.

Get started by running: aicss process index.html`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/aicss/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")

	// Set version template
	cmd.SetVersionTemplate("aicss version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(process.NewCmdProcess())
	cmd.AddCommand(process.NewCmdWatch())
	cmd.AddCommand(generate.NewCmdGenerate())
	cmd.AddCommand(preview.NewCmdPreview())
	cmd.AddCommand(minify.NewCmdMinify())
	cmd.AddCommand(benchmark.NewCmdBenchmark())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
