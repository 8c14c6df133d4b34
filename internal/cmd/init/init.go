// Package init provides the init command for aicss.
package init

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/aicss-cli/internal/config"
	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
	"github.com/open-cli-collective/aicss-cli/pkg/styles"
)

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	var (
		service  string
		prefix   string
		noVerify bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize aicss configuration",
		Long: `Initialize aicss with your preferred defaults.

This command will guide you through setting up the class prefix used
for generated CSS classes and, optionally, a style resolution service.
The configuration will be saved to ~/.config/aicss/config.yml.

Without a style service, descriptions are resolved locally from the
built-in rule tables. No configuration is required for that; running
init just saves you from repeating flags.`,
		Example: `  # Interactive setup
  aicss init

  # Pre-populate the style service URL
  aicss init --service http://localhost:8080`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(service, prefix, noVerify)
		},
	}

	cmd.Flags().StringVar(&service, "service", "", "Style service URL (e.g., http://localhost:8080)")
	cmd.Flags().StringVar(&prefix, "class-prefix", "", "Prefix for generated CSS class names")
	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip service connection verification")

	return cmd
}

func runInit(prefillService, prefillPrefix string, noVerify bool) error {
	configPath := config.DefaultConfigPath()

	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Println("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{ClassPrefix: rewrite.DefaultClassPrefix}

	// Use prefilled values or prompt
	if prefillService != "" {
		cfg.StyleService = prefillService
	}
	if prefillPrefix != "" {
		cfg.ClassPrefix = prefillPrefix
	}

	// Build the form
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Class prefix").
				Description("Prepended to every generated CSS class name").
				Placeholder(rewrite.DefaultClassPrefix).
				Value(&cfg.ClassPrefix).
				Validate(func(s string) error {
					if s == "" {
						return fmt.Errorf("class prefix is required")
					}
					if strings.ContainsAny(s, " \t\n\"'<>") {
						return fmt.Errorf("class prefix must be usable inside a class attribute")
					}
					return nil
				}),

			huh.NewInput().
				Title("Style service URL (optional)").
				Description("Leave empty to resolve styles locally").
				Placeholder("http://localhost:8080").
				Value(&cfg.StyleService).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
						return fmt.Errorf("service URL must start with http:// or https://")
					}
					return nil
				}),

			huh.NewInput().
				Title("Service token (optional)").
				Description("Bearer token sent to the style service").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.ServiceToken),

			huh.NewInput().
				Title("External stylesheet (optional)").
				Description("Write generated CSS to this file instead of a <style> block").
				Placeholder("styles.css").
				Value(&cfg.Stylesheet),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	// Normalize and validate
	cfg.NormalizeService()
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Verify the service connection unless skipped or unset
	if !noVerify && cfg.StyleService != "" {
		fmt.Print("Verifying connection... ")
		if err := verifyConnection(cfg); err != nil {
			fmt.Println("failed!")
			return fmt.Errorf("connection verification failed: %w", err)
		}
		fmt.Println("success!")
	}

	// Save configuration
	if err := cfg.Save(configPath); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	fmt.Println("\nYou're all set! Try running:")
	fmt.Println("  aicss process index.html")
	fmt.Println(`  aicss generate "blue background, rounded corners"`)

	return nil
}

func verifyConnection(cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	resolver := styles.NewRemoteResolver(cfg.StyleService, cfg.ServiceToken, zap.NewNop())
	err := resolver.Ping(ctx)
	if err == nil {
		return nil
	}

	var svcErr *styles.ServiceError
	if errors.As(err, &svcErr) {
		switch svcErr.StatusCode {
		case 401:
			return fmt.Errorf("authentication failed - check your service token")
		case 403:
			return fmt.Errorf("access denied - check your service token")
		default:
			return fmt.Errorf("unexpected status code: %d", svcErr.StatusCode)
		}
	}

	return err
}
