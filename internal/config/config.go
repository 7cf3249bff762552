// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// LLM access
	APIKey   string `json:"api_key,omitempty"`   // Gemini API key
	ProxyURL string `json:"proxy_url,omitempty"` // Backend proxy endpoint; takes precedence over the API key

	// Persistence
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL; empty runs in-memory

	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Analysis behavior
	MaxConcurrent int    `json:"max_concurrent,omitempty"` // Documents parsed at once
	BatchPolicy   string `json:"batch_policy,omitempty"`   // "abort" or "skip"
	Verbose       bool   `json:"verbose,omitempty"`        // Print detailed debug information
}

// Batch policy values accepted in configuration
const (
	BatchAbort = "abort"
	BatchSkip  = "skip"
)

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.MaxConcurrent < 0 {
		return fmt.Errorf("config error: 'max_concurrent' must be non-negative")
	}
	if c.BatchPolicy != "" && c.BatchPolicy != BatchAbort && c.BatchPolicy != BatchSkip {
		return fmt.Errorf("config error: 'batch_policy' must be %q or %q", BatchAbort, BatchSkip)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.ProxyURL == "" {
		result.ProxyURL = defaults.ProxyURL
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.BatchPolicy == "" {
		result.BatchPolicy = defaults.BatchPolicy
	}

	// Int fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.MaxConcurrent == 0 {
		if defaults.MaxConcurrent > 0 {
			result.MaxConcurrent = defaults.MaxConcurrent
		} else {
			result.MaxConcurrent = 1 // Documents are parsed sequentially by default
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
