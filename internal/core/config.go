package core

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"stms-mcp/internal/errors"
)

// Config holds global configuration for stms-mcp.
type Config struct {
	API      APIConfig      `json:"api"`
	Defaults DefaultsConfig `json:"defaults"`
}

// APIConfig holds connection settings for the staging API.
type APIConfig struct {
	BaseURL        string `json:"base_url" env:"STMS_STAGING_URL"`
	Cookie         string `json:"-" env:"STMS_STAGING_COOKIE"`
	TimeoutSeconds int    `json:"timeout_seconds" env:"STMS_TIMEOUT_SECONDS"`
	RetryAttempts  uint   `json:"retry_attempts" env:"STMS_RETRY_ATTEMPTS"`
}

// DefaultsConfig holds default values for paged and sized operations.
type DefaultsConfig struct {
	PageSize       int `json:"page_size" env:"STMS_PAGE_SIZE"`
	ShiftPageSize  int `json:"shift_page_size" env:"STMS_SHIFT_PAGE_SIZE"`
	ReportMaxBytes int `json:"report_max_bytes" env:"STMS_REPORT_MAX_BYTES"`
	RawTextBytes   int `json:"raw_text_bytes" env:"STMS_RAW_TEXT_BYTES"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "https://stms-api.noonstg.partners",
			TimeoutSeconds: 30,
			RetryAttempts:  3,
		},
		Defaults: DefaultsConfig{
			PageSize:       20,
			ShiftPageSize:  50,
			ReportMaxBytes: 5000,
			RawTextBytes:   1000,
		},
	}
}

// LoadConfig loads configuration from config.json in the data directory.
// Falls back to default configuration if config.json doesn't exist.
// Environment variables override both file and default values.
func LoadConfig(dataDir string) (*Config, error) {
	cfg := DefaultConfig()

	// Try to load from config.json
	configPath := filepath.Join(dataDir, "config.json")
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigInvalid(fmt.Errorf("failed to parse config.json: %w", err))
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.ConfigInvalid(fmt.Errorf("failed to read config.json: %w", err))
	}
	// If file doesn't exist, we continue with defaults

	// Apply environment variable overrides
	if err := env.Parse(cfg); err != nil {
		return nil, errors.ConfigInvalid(fmt.Errorf("failed to apply environment overrides: %w", err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.ConfigInvalid(fmt.Errorf("invalid staging URL %q", c.API.BaseURL))
	}
	if c.API.TimeoutSeconds <= 0 {
		return errors.ConfigInvalid(fmt.Errorf("timeout_seconds must be positive, got %d", c.API.TimeoutSeconds))
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// CookieConfigured reports whether a staging session cookie is set.
func (c *Config) CookieConfigured() bool {
	return strings.TrimSpace(c.API.Cookie) != ""
}

// Redacted returns a copy of the resolved configuration safe for display,
// with the cookie replaced by a presence flag.
func (c *Config) Redacted() map[string]interface{} {
	return map[string]interface{}{
		"staging_url":       c.API.BaseURL,
		"cookie_configured": c.CookieConfigured(),
		"timeout_seconds":   c.API.TimeoutSeconds,
		"retry_attempts":    c.API.RetryAttempts,
		"page_size":         c.Defaults.PageSize,
		"shift_page_size":   c.Defaults.ShiftPageSize,
		"report_max_bytes":  c.Defaults.ReportMaxBytes,
	}
}
