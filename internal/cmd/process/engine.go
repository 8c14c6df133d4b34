// Package process provides the commands that push documents through the
// rewrite engine: one-shot processing and directory watching.
package process

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/pkg/gen"
	"github.com/open-cli-collective/aicss-cli/pkg/page"
	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

// engine carries everything needed to process one document. The resolver
// and generator are shared across documents; each document gets its own
// expander so class counters start at zero per file.
type engine struct {
	resolver   rewrite.StyleResolver
	generator  *gen.Generator
	maxDepth   int
	prefix     string
	stylesheet string // external stylesheet name; empty means inline <style>
	logger     *zap.Logger
}

// newEngine builds the document engine from the merged configuration.
func newEngine(cfg *config.Config, logger *zap.Logger) engine {
	var resolver rewrite.StyleResolver
	if cfg.StyleService != "" {
		resolver = styles.NewRemoteResolver(cfg.StyleService, cfg.ServiceToken, logger)
	} else {
		resolver = styles.NewResolver()
	}
	return engine{
		resolver:   resolver,
		generator:  gen.NewGenerator(resolver),
		maxDepth:   cfg.MaxDepth,
		prefix:     cfg.ClassPrefix,
		stylesheet: cfg.Stylesheet,
		logger:     logger,
	}
}

// result summarizes one processed file.
type result struct {
	File       string   `json:"file"`
	Output     string   `json:"output"`
	Elements   int      `json:"elements"`
	Attributes int      `json:"attributes"`
	Classes    int      `json:"classes"`
	Warnings   []string `json:"warnings,omitempty"`
	Error      string   `json:"error,omitempty"`
}

// processDocument reads one source file, expands it, and writes the result.
// Markdown sources are converted to HTML first and change extension on the
// way out. CSS sources are copied through untouched.
func (e engine) processDocument(ctx context.Context, inPath, outPath string) (result, error) {
	res := result{File: inPath, Output: outPath}

	data, err := os.ReadFile(inPath)
	if err != nil {
		return res, fmt.Errorf("failed to read %s: %w", inPath, err)
	}

	if strings.EqualFold(filepath.Ext(inPath), ".css") {
		if err := writeFile(outPath, string(data)); err != nil {
			return res, err
		}
		return res, nil
	}

	doc := string(data)
	if isMarkdown(inPath) {
		doc, err = page.FromMarkdown(data)
		if err != nil {
			return res, fmt.Errorf("failed to convert %s: %w", inPath, err)
		}
	}

	exp := rewrite.NewExpander(e.resolver, e.generator, rewrite.Options{
		MaxDepth: e.maxDepth,
		Prefix:   e.prefix,
		Logger:   e.logger,
	})
	expanded, err := exp.Expand(ctx, doc)
	if err != nil {
		return res, fmt.Errorf("failed to process %s: %w", inPath, err)
	}

	markup := expanded.Markup
	if expanded.Stylesheet != "" {
		if e.stylesheet != "" {
			cssPath := filepath.Join(filepath.Dir(outPath), e.stylesheet)
			if err := writeFile(cssPath, expanded.Stylesheet); err != nil {
				return res, err
			}
			markup = page.InjectStylesheetLink(markup, filepath.ToSlash(e.stylesheet))
		} else {
			markup = page.InjectStylesheet(markup, expanded.Stylesheet)
		}
	}

	if err := writeFile(outPath, markup); err != nil {
		return res, err
	}

	res.Elements = expanded.Expanded
	res.Attributes = expanded.Attributes
	res.Classes = exp.Registry().Len()
	for _, w := range expanded.Warnings {
		res.Warnings = append(res.Warnings, w.Message)
	}
	return res, nil
}

// processable reports whether the pipeline handles this file type.
func processable(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".html", ".htm", ".md", ".markdown", ".css":
		return true
	}
	return false
}

func isMarkdown(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".md" || ext == ".markdown"
}

// outputName maps a source filename to its processed counterpart.
// Markdown becomes HTML, everything else keeps its name.
func outputName(name string) string {
	if isMarkdown(name) {
		return strings.TrimSuffix(name, filepath.Ext(name)) + ".html"
	}
	return name
}

// derivedStylesheet names the per-document stylesheet written next to an
// output file when external stylesheets are enabled for a directory run.
func derivedStylesheet(outName string) string {
	return strings.TrimSuffix(outName, filepath.Ext(outName)) + ".css"
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
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

// addEngineFlags registers the flags shared by process and watch.
func addEngineFlags(cmd *cobra.Command, maxDepth *int, prefix, stylesheet, service *string) {
	cmd.Flags().IntVar(maxDepth, "max-depth", 0, "Nesting depth limit for generated content (default from config)")
	cmd.Flags().StringVar(prefix, "class-prefix", "", "Prefix for minted class names (default from config)")
	cmd.Flags().StringVar(stylesheet, "stylesheet", "", "Write collected CSS to an external file next to each output document instead of inlining it")
	cmd.Flags().StringVar(service, "style-service", "", "Base URL of a remote style service (default from config)")
}

// applyEngineFlags overlays flag values onto the loaded config. Only flags
// the user actually set win over config file and environment.
func applyEngineFlags(cfg *config.Config, cmd *cobra.Command, maxDepth int, prefix, stylesheet, service string) {
	if cmd.Flags().Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if cmd.Flags().Changed("class-prefix") {
		cfg.ClassPrefix = prefix
	}
	if cmd.Flags().Changed("stylesheet") {
		cfg.Stylesheet = stylesheet
	}
	if cmd.Flags().Changed("style-service") {
		cfg.StyleService = service
	}
}
