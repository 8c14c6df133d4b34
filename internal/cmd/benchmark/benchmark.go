// Package benchmark provides the benchmark command for the style
// resolver rule tables.
package benchmark

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/view"
	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

// descriptions is the fixed workload: a spread of table lookups, pattern
// shorthands, and dimension phrases.
var descriptions = []string{
	"blue background, white text, rounded corners",
	"primary color, bold, large text, centered, with shadow",
	"flex, space between, padding medium, gray background",
	"full width, small rounded corners, thin border, light gray background",
	"absolute position, top right corner, red background, white text, bold, small padding",
}

const (
	warmupRounds = 3
	runsPerDesc  = 10
)

type timing struct {
	Description string  `json:"description"`
	AvgMillis   float64 `json:"avg_ms"`
}

// NewCmdBenchmark creates the benchmark command.
func NewCmdBenchmark() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "benchmark",
		Short: "Measure style resolution speed",
		Long: `Resolve a fixed set of style descriptions repeatedly and report the
average time per description.`,
		Example: `  # Run the benchmark
  aicss benchmark`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, _ := cmd.Flags().GetString("output")
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runBenchmark(format, noColor)
		},
	}

	return cmd
}

func runBenchmark(format string, noColor bool) error {
	if err := view.ValidateFormat(format); err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(format), noColor)

	if format != "json" {
		renderer.RenderText("Warming up...")
	}
	for i := 0; i < warmupRounds; i++ {
		for _, desc := range descriptions {
			styles.Resolve(desc)
		}
	}

	timings := make([]timing, 0, len(descriptions))
	total := 0.0
	for _, desc := range descriptions {
		start := time.Now()
		for i := 0; i < runsPerDesc; i++ {
			styles.Resolve(desc)
		}
		avg := float64(time.Since(start).Microseconds()) / 1000.0 / float64(runsPerDesc)
		total += avg
		timings = append(timings, timing{Description: desc, AvgMillis: avg})
	}

	if format == "json" {
		return renderer.RenderJSON(timings)
	}

	headers := []string{"DESCRIPTION", "AVG (MS)"}
	rows := make([][]string, 0, len(timings))
	for _, tm := range timings {
		rows = append(rows, []string{
			view.Truncate(tm.Description, 60),
			fmt.Sprintf("%.3f", tm.AvgMillis),
		})
	}
	renderer.RenderTable(headers, rows)
	renderer.RenderText(fmt.Sprintf("\nOverall average: %.3fms per description (%d runs each)",
		total/float64(len(descriptions)), runsPerDesc))
	return nil
}
