// Package config handles configuration loading and validation for steplock.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hay-kot/steplock/internal/core/taskgen"
)

// Config holds the application configuration.
type Config struct {
	Theme     string          `yaml:"theme"`
	Checklist ChecklistConfig `yaml:"checklist"`
	Generator GeneratorConfig `yaml:"generator"`

	// DataDir is set by the caller, not from the config file.
	DataDir string `yaml:"-"`
}

// ChecklistConfig controls where checklist state lives.
type ChecklistConfig struct {
	// File overrides the snapshot path. Empty means <data-dir>/checklist.json.
	File string `yaml:"file"`
}

// GeneratorConfig configures the external text-generation service.
type GeneratorConfig struct {
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	APIKeyEnv      string `yaml:"api_key_env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	MaxRetries     int    `yaml:"max_retries"`
	MaxBatch       int    `yaml:"max_batch"`
}

// Timeout returns the request timeout as a duration.
func (g GeneratorConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSeconds) * time.Second
}

// APIKey reads the credential from the configured environment variable.
func (g GeneratorConfig) APIKey() string {
	return os.Getenv(g.APIKeyEnv)
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Theme: "tokyo-night",
		Generator: GeneratorConfig{
			BaseURL:        taskgen.DefaultBaseURL,
			Model:          taskgen.DefaultModel,
			APIKeyEnv:      "STEPLOCK_API_KEY",
			TimeoutSeconds: 30,
			MaxRetries:     taskgen.DefaultMaxRetries,
			MaxBatch:       taskgen.MaxBatch,
		},
	}
}

// Load reads the config file at path, layering it over defaults. A missing
// file is not an error; the defaults simply apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
