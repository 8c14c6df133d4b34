package configcmd

import (
	"fmt"
	"net/http"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/aicss-cli/internal/config"
)

// NewCmdTest creates the config test command.
func NewCmdTest() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Test connectivity to the style service",
		Long:  `Test that aicss can reach the configured style service. Without a service configured, styles are resolved locally and there is nothing to test.`,
		Example: `  # Test connection
  aicss config test`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runTest(noColor, nil)
		},
	}

	return cmd
}

func runTest(noColor bool, httpClient *http.Client, cfgs ...*config.Config) error {
	if noColor {
		color.NoColor = true
	}

	var cfg *config.Config
	if len(cfgs) > 0 && cfgs[0] != nil {
		cfg = cfgs[0]
	} else {
		var err error
		cfg, err = config.LoadWithEnv(config.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w (run 'aicss init' to configure)", err)
		}

		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config: %w (run 'aicss init' to configure)", err)
		}
	}
	cfg.NormalizeService()

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	if cfg.StyleService == "" {
		green.Println("✓ No style service configured")
		fmt.Println("\nStyles are resolved locally from the built-in rule tables.")
		fmt.Println("Set one with: aicss init --service <URL>")
		return nil
	}

	fmt.Printf("Testing connection to %s...\n", cfg.StyleService)

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	req, err := http.NewRequest("GET", cfg.StyleService+"/v1/health", nil)
	if err != nil {
		return err
	}

	if cfg.ServiceToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.ServiceToken)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		red.Println("✗ Connection failed:", err)
		fmt.Println("\nCheck your service URL with: aicss config show")
		fmt.Println("Reconfigure with: aicss init")
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == 401 {
		red.Println("✗ Authentication failed: 401 Unauthorized")
		fmt.Println("\nCheck your service token with: aicss config show")
		fmt.Println("Reconfigure with: aicss init")
		return fmt.Errorf("authentication failed")
	}
	if resp.StatusCode == 403 {
		red.Println("✗ Access denied: 403 Forbidden")
		fmt.Println("\nCheck your service token.")
		return fmt.Errorf("access denied")
	}
	if resp.StatusCode != 200 {
		red.Printf("✗ Unexpected response: %d\n", resp.StatusCode)
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	green.Println("✓ Connection successful")
	green.Println("✓ Style service healthy")
	fmt.Printf("\nResolving styles via: %s\n", cfg.StyleService)

	return nil
}
