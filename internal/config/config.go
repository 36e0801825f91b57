// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided
// via CLI flags or environment variables.
type Config struct {
	// Server
	Port        int    `json:"port,omitempty"`         // HTTP listen port
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Scoring
	SkillWeight        float64 `json:"skill_weight,omitempty"`         // Share of overall score from skills (0.0-1.0)
	ExperienceWeight   float64 `json:"experience_weight,omitempty"`    // Share of overall score from experience (0.0-1.0)
	DefaultSkillWeight int     `json:"default_skill_weight,omitempty"` // Weight for job skills without an explicit weight (1-100)

	// Batch
	Workers int `json:"workers,omitempty"` // Concurrent candidates scored per run

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration values.
func Defaults() Config {
	return Config{
		Port:               8080,
		SkillWeight:        0.7,
		ExperienceWeight:   0.3,
		DefaultSkillWeight: 50,
		Workers:            4,
	}
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
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.SkillWeight < 0 || c.SkillWeight > 1 {
		return fmt.Errorf("config error: 'skill_weight' must be between 0.0 and 1.0")
	}
	if c.ExperienceWeight < 0 || c.ExperienceWeight > 1 {
		return fmt.Errorf("config error: 'experience_weight' must be between 0.0 and 1.0")
	}
	if c.SkillWeight > 0 || c.ExperienceWeight > 0 {
		sum := c.SkillWeight + c.ExperienceWeight
		if sum < 0.999 || sum > 1.001 {
			return fmt.Errorf("config error: 'skill_weight' and 'experience_weight' must sum to 1.0")
		}
	}
	if c.DefaultSkillWeight < 0 || c.DefaultSkillWeight > 100 {
		return fmt.Errorf("config error: 'default_skill_weight' must be between 0 and 100")
	}
	if c.Workers < 0 {
		return fmt.Errorf("config error: 'workers' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with zero-value fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.SkillWeight == 0 && result.ExperienceWeight == 0 {
		result.SkillWeight = defaults.SkillWeight
		result.ExperienceWeight = defaults.ExperienceWeight
	}
	if result.DefaultSkillWeight == 0 {
		result.DefaultSkillWeight = defaults.DefaultSkillWeight
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
