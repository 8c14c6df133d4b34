// Package generate provides the generate command: one-off CSS from a
// natural-language description.
package generate

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/internal/logging"
	"github.com/open-cli-collective/aicss-cli/internal/view"
	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

type generateOptions struct {
	description string
	selector    string
	service     string
	format      string
	noColor     bool
	verbose     bool
}

// NewCmdGenerate creates the generate command.
func NewCmdGenerate() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate <description>",
		Short: "Generate CSS from a natural-language description",
		Long: `Generate a CSS rule from a plain-English style description.

The description goes through the same rule tables the process command
uses, so the output matches what a document carrying the same aicss
attribute would receive.`,
		Example: `  # Generate a rule for the default selector
  aicss generate "blue background, white text, rounded corners"

  # Name the selector
  aicss generate "bold, large text" --selector .headline

  # JSON for scripting
  aicss generate "centered, with shadow" -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.description = args[0]
			opts.format, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.selector, "selector", "s", "element", "CSS selector for the generated rule")
	cmd.Flags().StringVar(&opts.service, "style-service", "", "Base URL of a remote style service (default from config)")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	if strings.TrimSpace(opts.selector) == "" {
		return fmt.Errorf("selector must not be empty")
	}

	cfg, err := config.LoadWithEnv(configPath(cmd))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if !cmd.Flags().Changed("output") && cfg.OutputFormat != "" {
		opts.format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(opts.format); err != nil {
		return err
	}
	if cmd.Flags().Changed("style-service") {
		cfg.StyleService = opts.service
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'aicss init' to reconfigure)", err)
	}
	cfg.NormalizeService()

	logger := logging.New(opts.verbose, opts.noColor)
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	props, err := resolveProps(ctx, cfg, logger, opts.description)
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.format), opts.noColor)
	if opts.format == "json" {
		return renderer.RenderJSON(struct {
			Selector   string            `json:"selector"`
			Properties map[string]string `json:"properties"`
		}{opts.selector, props})
	}

	reg := rewrite.NewStyleRegistry("")
	reg.SetSelector(opts.selector, props)
	renderer.RenderText(strings.TrimRight(reg.Stylesheet(), "\n"))
	return nil
}

// resolveProps answers the declarations for one description. A blank
// description gets neutral defaults instead of going through the resolver.
func resolveProps(ctx context.Context, cfg *config.Config, logger *zap.Logger, description string) (map[string]string, error) {
	if strings.TrimSpace(description) == "" {
		return map[string]string{
			"color":            "#333333",
			"background-color": "#f5f5f5",
			"padding":          "1rem",
		}, nil
	}

	var resolver rewrite.StyleResolver
	if cfg.StyleService != "" {
		resolver = styles.NewRemoteResolver(cfg.StyleService, cfg.ServiceToken, logger)
	} else {
		resolver = styles.NewResolver()
	}

	props, err := resolver.ResolveStyle(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve style: %w", err)
	}
	return props, nil
}

// configPath honors the persistent --config flag.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
