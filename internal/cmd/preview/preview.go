// Package preview provides the preview command: expanded documents
// rendered as Markdown for a quick terminal look.
package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/internal/logging"
	"github.com/open-cli-collective/aicss-cli/internal/view"
	"github.com/open-cli-collective/aicss-cli/pkg/gen"
	"github.com/open-cli-collective/aicss-cli/pkg/page"
	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

type previewOptions struct {
	file    string
	raw     bool
	format  string
	noColor bool
	verbose bool
}

// NewCmdPreview creates the preview command.
func NewCmdPreview() *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <file>",
		Short: "Preview a processed document in the terminal",
		Long: `Run a document through the rewrite engine and print the result as
Markdown, without writing any files.

Use --raw to see the expanded HTML (including the generated <style>
block) instead.`,
		Example: `  # Preview the expanded content
  aicss preview index.html

  # See the expanded HTML
  aicss preview index.html --raw`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.file = args[0]
			opts.format, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			return runPreview(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Show the expanded HTML instead of Markdown")

	return cmd
}

func runPreview(cmd *cobra.Command, opts *previewOptions) error {
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
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'aicss init' to reconfigure)", err)
	}
	cfg.NormalizeService()

	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.file, err)
	}

	doc := string(data)
	ext := strings.ToLower(filepath.Ext(opts.file))
	if ext == ".md" || ext == ".markdown" {
		doc, err = page.FromMarkdown(data)
		if err != nil {
			return fmt.Errorf("failed to convert %s: %w", opts.file, err)
		}
	}

	logger := logging.New(opts.verbose, opts.noColor)
	defer func() { _ = logger.Sync() }()

	var resolver rewrite.StyleResolver
	if cfg.StyleService != "" {
		resolver = styles.NewRemoteResolver(cfg.StyleService, cfg.ServiceToken, logger)
	} else {
		resolver = styles.NewResolver()
	}
	exp := rewrite.NewExpander(resolver, gen.NewGenerator(resolver), rewrite.Options{
		MaxDepth: cfg.MaxDepth,
		Prefix:   cfg.ClassPrefix,
		Logger:   logger,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	res, err := exp.Expand(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to process %s: %w", opts.file, err)
	}

	renderer := view.NewRenderer(view.Format(opts.format), opts.noColor)

	if opts.format == "json" {
		markdown, _ := page.ToMarkdown(res.Markup)
		return renderer.RenderJSON(struct {
			File     string `json:"file"`
			Elements int    `json:"elements"`
			Classes  int    `json:"classes"`
			Warnings int    `json:"warnings"`
			Markdown string `json:"markdown"`
		}{opts.file, res.Expanded, exp.Registry().Len(), len(res.Warnings), markdown})
	}

	renderer.RenderKeyValue("File", opts.file)
	renderer.RenderKeyValue("Elements", fmt.Sprintf("%d", res.Expanded))
	renderer.RenderKeyValue("Classes", fmt.Sprintf("%d", exp.Registry().Len()))
	fmt.Println()

	if opts.raw {
		doc := res.Markup
		if res.Stylesheet != "" {
			doc = page.InjectStylesheet(doc, res.Stylesheet)
		}
		fmt.Println(doc)
		return nil
	}

	markdown, err := page.ToMarkdown(res.Markup)
	if err != nil {
		// Fall back to raw markup if conversion fails
		fmt.Println("(Failed to convert to Markdown, showing raw HTML)")
		fmt.Println()
		fmt.Println(res.Markup)
		return nil
	}
	fmt.Println(markdown)

	if res.Stylesheet != "" {
		fmt.Println()
		fmt.Println("```css")
		fmt.Print(res.Stylesheet)
		fmt.Println("```")
	}

	return nil
}

// configPath honors the persistent --config flag.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
