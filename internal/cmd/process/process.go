package process

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/internal/logging"
	"github.com/open-cli-collective/aicss-cli/internal/view"
)

type processOptions struct {
	input      string
	dest       string
	format     string
	noColor    bool
	verbose    bool
	force      bool
	maxDepth   int
	prefix     string
	stylesheet string
	service    string
	workers    int
}

// NewCmdProcess creates the process command.
func NewCmdProcess() *cobra.Command {
	opts := &processOptions{}

	cmd := &cobra.Command{
		Use:   "process <input> [output]",
		Short: "Rewrite AI pseudo-elements into plain HTML and CSS",
		Long: `Process HTML or Markdown files containing <ai*> pseudo-elements and
aicss attributes.

Pseudo-elements are replaced with generated markup, style descriptions
become CSS classes, and the collected stylesheet is injected into each
document (or written next to it with --stylesheet).

The input may be a single file or a directory; directories are processed
recursively and CSS files are copied through. Without an output argument
results land in an "output" directory. An output argument naming an
existing directory (or ending with a slash) keeps the input filename.`,
		Example: `  # Process one file into the default output directory
  aicss process index.html

  # Process into an explicit file
  aicss process index.html dist/index.html --force

  # Process a whole site
  aicss process site/ dist/

  # Write styles to an external stylesheet instead of a <style> block
  aicss process index.html dist/index.html --stylesheet styles.css`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.input = args[0]
			if len(args) > 1 {
				opts.dest = args[1]
			}
			opts.format, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			return runProcess(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite an existing output file")
	cmd.Flags().IntVar(&opts.workers, "workers", 0, "Documents processed in parallel (default from config)")
	addEngineFlags(cmd, &opts.maxDepth, &opts.prefix, &opts.stylesheet, &opts.service)

	return cmd
}

func runProcess(cmd *cobra.Command, opts *processOptions) error {
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
	applyEngineFlags(cfg, cmd, opts.maxDepth, opts.prefix, opts.stylesheet, opts.service)
	if cmd.Flags().Changed("workers") {
		cfg.Workers = opts.workers
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'aicss init' to reconfigure)", err)
	}
	cfg.NormalizeService()

	info, err := os.Stat(opts.input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	if !info.IsDir() && !processable(opts.input) {
		return fmt.Errorf("unsupported file type %q (expected .html, .htm, .md, or .css)", filepath.Ext(opts.input))
	}

	dest, err := resolveDest(opts.input, opts.dest, !info.IsDir(), opts.force)
	if err != nil {
		return err
	}

	logger := logging.New(opts.verbose, opts.noColor)
	defer func() { _ = logger.Sync() }()
	eng := newEngine(cfg, logger)
	renderer := view.NewRenderer(view.Format(opts.format), opts.noColor)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var results []result
	var runErr error
	if info.IsDir() {
		results, runErr = processDir(ctx, eng, opts.input, dest, cfg.Workers)
	} else {
		r, err := eng.processDocument(ctx, opts.input, dest)
		if err != nil {
			return err
		}
		r.File = opts.input
		results = []result{r}
	}

	if err := renderSummary(renderer, opts.format, results); err != nil {
		return err
	}
	return runErr
}

// resolveDest applies the output path rules: default to an "output"
// directory preserving the input name, treat trailing-slash and existing
// directories as containers, and refuse to touch the input itself.
func resolveDest(input, dest string, isFile, force bool) (string, error) {
	absIn, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}

	base := filepath.Base(absIn)
	if isFile {
		base = outputName(base)
	}

	switch {
	case dest == "":
		dest = filepath.Join("output", base)
	case strings.HasSuffix(dest, "/") || strings.HasSuffix(dest, string(os.PathSeparator)):
		dest = filepath.Join(dest, base)
	default:
		if info, err := os.Stat(dest); err == nil && info.IsDir() {
			dest = filepath.Join(dest, base)
		}
	}

	absOut, err := filepath.Abs(dest)
	if err != nil {
		return "", err
	}
	if absIn == absOut {
		return "", fmt.Errorf("output path %s would overwrite the input; pick a different output", dest)
	}
	if info, err := os.Stat(absOut); err == nil && !info.IsDir() && !force {
		return "", fmt.Errorf("output file %s already exists (use --force to overwrite)", dest)
	}
	return absOut, nil
}

// processDir walks the input tree and processes every supported file into
// destRoot, preserving relative paths. The walk skips anything under
// destRoot so reruns never consume their own output.
func processDir(ctx context.Context, eng engine, root, destRoot string, workers int) ([]result, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var inputs []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == destRoot {
				return filepath.SkipDir
			}
			return nil
		}
		if processable(d.Name()) {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", root, err)
	}

	results := make([]result, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, inPath := range inputs {
		rel, err := filepath.Rel(absRoot, inPath)
		if err != nil {
			return nil, err
		}
		outPath := filepath.Join(destRoot, filepath.Dir(rel), outputName(filepath.Base(rel)))
		g.Go(func() error {
			fileEng := eng
			if eng.stylesheet != "" {
				fileEng.stylesheet = derivedStylesheet(filepath.Base(outPath))
			}
			r, err := fileEng.processDocument(ctx, inPath, outPath)
			r.File = rel
			if err != nil {
				r.Error = err.Error()
			}
			results[i] = r
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Error != "" {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("failed to process %d of %d files", failed, len(results))
	}
	return results, nil
}

func renderSummary(renderer *view.Renderer, format string, results []result) error {
	if format == "json" {
		return renderer.RenderJSON(results)
	}

	headers := []string{"FILE", "ELEMENTS", "ATTRS", "CLASSES", "WARNINGS"}
	rows := make([][]string, 0, len(results))
	totalElements, totalClasses, failed := 0, 0, 0
	for _, r := range results {
		rows = append(rows, []string{
			r.File,
			strconv.Itoa(r.Elements),
			strconv.Itoa(r.Attributes),
			strconv.Itoa(r.Classes),
			strconv.Itoa(len(r.Warnings)),
		})
		totalElements += r.Elements
		totalClasses += r.Classes
		if r.Error != "" {
			failed++
		}
	}
	renderer.RenderTable(headers, rows)

	for _, r := range results {
		if r.Error != "" {
			renderer.Error(fmt.Sprintf("%s: %s", r.File, r.Error))
		}
	}
	if failed == 0 {
		renderer.Success(fmt.Sprintf("Processed %d file(s): %d elements expanded, %d classes generated",
			len(results), totalElements, totalClasses))
	}
	return nil
}
