// Package config provides configuration management for aicss.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/aicss-cli/pkg/rewrite"
)

// DefaultWorkers is the number of documents processed concurrently.
const DefaultWorkers = 4

// Config holds the aicss configuration.
type Config struct {
	ClassPrefix  string `yaml:"class_prefix,omitempty"`
	MaxDepth     int    `yaml:"max_depth,omitempty"`
	Workers      int    `yaml:"workers,omitempty"`
	Stylesheet   string `yaml:"stylesheet,omitempty"`
	StyleService string `yaml:"style_service,omitempty"`
	ServiceToken string `yaml:"service_token,omitempty"`
	OutputFormat string `yaml:"output_format,omitempty"`
}

// ApplyDefaults fills zero values with the built-in defaults.
func (c *Config) ApplyDefaults() {
	if c.ClassPrefix == "" {
		c.ClassPrefix = rewrite.DefaultClassPrefix
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = rewrite.DefaultMaxDepth
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.ClassPrefix == "" {
		return errors.New("class_prefix is required")
	}
	if strings.ContainsAny(c.ClassPrefix, " \t\n\"'<>") {
		return errors.New("class_prefix must be usable inside a class attribute")
	}
	if c.MaxDepth < 1 {
		return errors.New("max_depth must be at least 1")
	}
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}

	// Local style services commonly run over plain http.
	if c.StyleService != "" &&
		!strings.HasPrefix(c.StyleService, "https://") &&
		!strings.HasPrefix(c.StyleService, "http://") {
		return errors.New("style_service must be an http or https URL")
	}

	return nil
}

// NormalizeService strips any trailing slash from the style service URL.
func (c *Config) NormalizeService() {
	c.StyleService = strings.TrimSuffix(c.StyleService, "/")
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
func (c *Config) LoadFromEnv() {
	if prefix := os.Getenv("AICSS_CLASS_PREFIX"); prefix != "" {
		c.ClassPrefix = prefix
	}
	if depth, ok := getEnvInt("AICSS_MAX_DEPTH"); ok {
		c.MaxDepth = depth
	}
	if workers, ok := getEnvInt("AICSS_WORKERS"); ok {
		c.Workers = workers
	}
	if sheet := os.Getenv("AICSS_STYLESHEET"); sheet != "" {
		c.Stylesheet = sheet
	}
	if svc := os.Getenv("AICSS_STYLE_SERVICE"); svc != "" {
		c.StyleService = svc
	}
	if token := getEnvWithFallback("AICSS_SERVICE_TOKEN", "AICSS_TOKEN"); token != "" {
		c.ServiceToken = token
	}
	if format := os.Getenv("AICSS_OUTPUT_FORMAT"); format != "" {
		c.OutputFormat = format
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// getEnvInt parses the named env var as a positive integer.
func getEnvInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "aicss", "config.yml")
	}

	// Fall back to ~/.config/aicss/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".aicss", "config.yml")
	}

	return filepath.Join(home, ".config", "aicss", "config.yml")
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// The file may hold a service token, so keep the directory user-only.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// Write with restricted permissions (user read/write only)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file, overrides with environment
// variables, and fills in defaults for anything still unset.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// If file doesn't exist, start with empty config
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	cfg.ApplyDefaults()
	return cfg, nil
}
