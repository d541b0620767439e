// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via
// CLI flags.
type Config struct {
	DictionariesDir string  `json:"dictionaries_dir,omitempty"` // Directory of dictionary overrides
	MinConfidence   float64 `json:"min_confidence,omitempty"`   // Minimum confidence for a skill to count (0.0-1.0)
	MaxSkills       int     `json:"max_skills,omitempty"`       // Total skill cap across streams (0 = unlimited)
	DisableFuzzy    bool    `json:"disable_fuzzy,omitempty"`    // Turn off the fuzzy normalization pass
	DisableAliases  bool    `json:"disable_aliases,omitempty"`  // Turn off the alias-table normalization pass
	Verbose         bool    `json:"verbose,omitempty"`          // Print detailed summaries
	JSONLogs        bool    `json:"json_logs,omitempty"`        // Emit logs as JSON instead of console format
	Debug           bool    `json:"debug,omitempty"`            // Enable debug-level logging
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// FromEnv builds a config from JOBSKILLS_* environment variables. Unset
// variables leave zero values; parse failures are reported.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DictionariesDir: os.Getenv("JOBSKILLS_DICTIONARIES_DIR"),
	}

	if v := os.Getenv("JOBSKILLS_MIN_CONFIDENCE"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid JOBSKILLS_MIN_CONFIDENCE %q: %w", v, err)
		}
		cfg.MinConfidence = f
	}
	if v := os.Getenv("JOBSKILLS_MAX_SKILLS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid JOBSKILLS_MAX_SKILLS %q: %w", v, err)
		}
		cfg.MaxSkills = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return fmt.Errorf("min_confidence must be between 0.0 and 1.0, got %v", c.MinConfidence)
	}
	if c.MaxSkills < 0 {
		return fmt.Errorf("max_skills must be non-negative, got %d", c.MaxSkills)
	}
	return nil
}

// Merge overlays non-zero values from other onto a copy of c.
func (c *Config) Merge(other *Config) *Config {
	merged := *c
	if other == nil {
		return &merged
	}
	if other.DictionariesDir != "" {
		merged.DictionariesDir = other.DictionariesDir
	}
	if other.MinConfidence != 0 {
		merged.MinConfidence = other.MinConfidence
	}
	if other.MaxSkills != 0 {
		merged.MaxSkills = other.MaxSkills
	}
	merged.DisableFuzzy = merged.DisableFuzzy || other.DisableFuzzy
	merged.DisableAliases = merged.DisableAliases || other.DisableAliases
	merged.Verbose = merged.Verbose || other.Verbose
	merged.JSONLogs = merged.JSONLogs || other.JSONLogs
	merged.Debug = merged.Debug || other.Debug
	return &merged
}
