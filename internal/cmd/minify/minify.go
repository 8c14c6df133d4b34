// Package minify provides the minify command for processed output.
package minify

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/view"
	"github.com/open-cli-collective/aicss-cli/pkg/page"
)

// NewCmdMinify creates the minify command.
func NewCmdMinify() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "minify <input> <output>",
		Short: "Minify an HTML or CSS file",
		Long: `Minify a file, including any inline <style> blocks in HTML.

The input type is picked by extension: .css files go through the CSS
minifier, everything else is treated as HTML.`,
		Example: `  # Minify processed output
  aicss minify dist/index.html dist/index.min.html

  # Minify a stylesheet
  aicss minify dist/styles.css dist/styles.min.css`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runMinify(args[0], args[1], noColor)
		},
	}

	return cmd
}

func runMinify(input, output string, noColor bool) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	var minified string
	if strings.EqualFold(filepath.Ext(input), ".css") {
		minified, err = page.MinifyCSS(string(data))
	} else {
		minified, err = page.Minify(string(data))
	}
	if err != nil {
		return fmt.Errorf("failed to minify %s: %w", input, err)
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(output), err)
	}
	if err := os.WriteFile(output, []byte(minified), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	renderer := view.NewRenderer(view.FormatTable, noColor)
	renderer.Success(fmt.Sprintf("Minified %s saved to %s (%d -> %d bytes)",
		input, output, len(data), len(minified)))
	return nil
}
