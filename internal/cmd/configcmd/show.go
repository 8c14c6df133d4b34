package configcmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current aicss configuration with value source indicators.`,
		Example: `  # Show current config
  aicss config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(noColor)
		},
	}

	return cmd
}

func runShow(noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	configPath := config.DefaultConfigPath()

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides and defaults
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Printf("%-15s", label+":")
		if value == "" {
			_, _ = dim.Println("-")
			return
		}

		// Mask tokens
		display := value
		if strings.Contains(strings.ToLower(label), "token") && len(value) > 8 {
			display = value[:4] + strings.Repeat("*", len(value)-8) + value[len(value)-4:]
		}

		fmt.Print(display)

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "default"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" && v == value {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "default"
		}

		_, _ = dim.Printf("  (source: %s)\n", source)
	}

	printField("Class prefix", cfg.ClassPrefix, fileCfg.ClassPrefix, "AICSS_CLASS_PREFIX")
	printField("Max depth", strconv.Itoa(cfg.MaxDepth), strconv.Itoa(fileCfg.MaxDepth), "AICSS_MAX_DEPTH")
	printField("Workers", strconv.Itoa(cfg.Workers), strconv.Itoa(fileCfg.Workers), "AICSS_WORKERS")
	printField("Stylesheet", cfg.Stylesheet, fileCfg.Stylesheet, "AICSS_STYLESHEET")
	printField("Style service", cfg.StyleService, fileCfg.StyleService, "AICSS_STYLE_SERVICE")
	printField("Service token", cfg.ServiceToken, fileCfg.ServiceToken, "AICSS_SERVICE_TOKEN", "AICSS_TOKEN")
	printField("Output format", cfg.OutputFormat, fileCfg.OutputFormat, "AICSS_OUTPUT_FORMAT")

	fmt.Println()
	_, _ = dim.Printf("Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Println("(file not found)")
	}

	return nil
}
