package process

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/internal/logging"
	"github.com/open-cli-collective/aicss-cli/internal/view"
)

// debounceDelay batches the rapid-fire events editors emit for one save.
const debounceDelay = 200 * time.Millisecond

type watchOptions struct {
	dir        string
	dest       string
	noColor    bool
	verbose    bool
	maxDepth   int
	prefix     string
	stylesheet string
	service    string
}

// NewCmdWatch creates the watch command.
func NewCmdWatch() *cobra.Command {
	opts := &watchOptions{}

	cmd := &cobra.Command{
		Use:   "watch <directory> [output]",
		Short: "Watch a directory and reprocess files as they change",
		Long: `Watch a directory tree for changes to HTML and Markdown files and run
each changed file through the rewrite engine.

Output defaults to an "output" directory. Files inside the output
directory are ignored, so processing results never trigger another run.
Stop with Ctrl-C.`,
		Example: `  # Watch the current site tree
  aicss watch site/

  # Watch with an explicit output directory
  aicss watch site/ dist/`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.dir = args[0]
			if len(args) > 1 {
				opts.dest = args[1]
			}
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			opts.verbose, _ = cmd.Flags().GetBool("verbose")
			return runWatch(cmd, opts)
		},
	}

	addEngineFlags(cmd, &opts.maxDepth, &opts.prefix, &opts.stylesheet, &opts.service)

	return cmd
}

func runWatch(cmd *cobra.Command, opts *watchOptions) error {
	cfg, err := config.LoadWithEnv(configPath(cmd))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyEngineFlags(cfg, cmd, opts.maxDepth, opts.prefix, opts.stylesheet, opts.service)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w (run 'aicss init' to reconfigure)", err)
	}
	cfg.NormalizeService()

	info, err := os.Stat(opts.dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", opts.dir)
	}

	absRoot, err := filepath.Abs(opts.dir)
	if err != nil {
		return err
	}
	dest := opts.dest
	if dest == "" {
		dest = "output"
	}
	absDest, err := filepath.Abs(dest)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(absDest, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	logger := logging.New(opts.verbose, opts.noColor)
	defer func() { _ = logger.Sync() }()
	eng := newEngine(cfg, logger)
	renderer := view.NewRenderer(view.FormatTable, opts.noColor)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// fsnotify does not recurse; register every subdirectory.
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path == absDest {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.dir, err)
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	renderer.RenderText(fmt.Sprintf("Watching %s (output: %s)", opts.dir, dest))

	return watchLoop(ctx, eng, renderer, watcher, absRoot, absDest)
}

func watchLoop(ctx context.Context, eng engine, renderer *view.Renderer, watcher *fsnotify.Watcher, absRoot, absDest string) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(debounceDelay)
	if !timer.Stop() {
		<-timer.C
	}

	for {
		select {
		case <-ctx.Done():
			renderer.RenderText("Stopping file watcher...")
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if inside(ev.Name, absDest) {
				continue
			}
			if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
				// new subdirectory: watch it too
				_ = watcher.Add(ev.Name)
				continue
			}
			if !watchable(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(debounceDelay)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			renderer.Error(fmt.Sprintf("watch error: %v", err))

		case <-timer.C:
			processPending(ctx, eng, renderer, pending, absRoot, absDest)
		}
	}
}

// processPending runs each queued file through the engine and reports the
// outcome. Files deleted between event and processing are skipped.
func processPending(ctx context.Context, eng engine, renderer *view.Renderer, pending map[string]struct{}, absRoot, absDest string) {
	for path := range pending {
		delete(pending, path)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		rel, err := filepath.Rel(absRoot, path)
		if err != nil {
			continue
		}
		outPath := filepath.Join(absDest, filepath.Dir(rel), outputName(filepath.Base(rel)))

		fileEng := eng
		if eng.stylesheet != "" {
			fileEng.stylesheet = derivedStylesheet(filepath.Base(outPath))
		}
		res, err := fileEng.processDocument(ctx, path, outPath)
		if err != nil {
			renderer.Error(fmt.Sprintf("%s: %v", rel, err))
			continue
		}

		msg := fmt.Sprintf("%s: %d elements, %d classes", rel, res.Elements, res.Classes)
		if len(res.Warnings) > 0 {
			renderer.Warning(fmt.Sprintf("%s (%d warnings)", msg, len(res.Warnings)))
		} else {
			renderer.Success(msg)
		}
	}
}

// watchable reports whether a changed file should be reprocessed.
func watchable(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".md", ".markdown":
		return true
	}
	return false
}

// inside reports whether path sits at or underneath root.
func inside(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(os.PathSeparator)))
}
