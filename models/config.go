// Package models defines the shared data structures of the brochure pipeline.
package models

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultModel     = "gpt-5-mini"
	DefaultWorkers   = 4
	DefaultOutputDir = "brochures"
)

// DefaultAllowedTLDs is the coarse suffix allowlist applied to fetch targets.
// It is a weak heuristic kept for compatibility, not a security boundary.
var DefaultAllowedTLDs = []string{".com", ".org", ".net"}

// Config holds runtime configuration for brochure builds.
// Values come from an optional YAML file plus CLI flags; the API key
// only ever comes from the environment.
type Config struct {
	Model        string
	Workers      int
	OutputDir    string
	AllowedTLDs  []string
	FetchTimeout time.Duration

	// APIKey is read from OPENAI_API_KEY, never from the config file.
	APIKey string
}

// fileConfig is the YAML shape; durations are strings like "10s".
type fileConfig struct {
	Model        string   `yaml:"model"`
	Workers      int      `yaml:"workers"`
	OutputDir    string   `yaml:"output_dir"`
	AllowedTLDs  []string `yaml:"allowed_tlds"`
	FetchTimeout string   `yaml:"fetch_timeout"`
}

// LoadConfig reads the YAML config at path and fills in defaults.
// A missing file is not an error; the defaults apply.
func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Model:        DefaultModel,
		Workers:      DefaultWorkers,
		OutputDir:    DefaultOutputDir,
		AllowedTLDs:  append([]string(nil), DefaultAllowedTLDs...),
		FetchTimeout: 10 * time.Second,
		APIKey:       os.Getenv("OPENAI_API_KEY"),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if fc.Model != "" {
		config.Model = fc.Model
	}
	if fc.Workers > 0 {
		config.Workers = fc.Workers
	}
	if fc.OutputDir != "" {
		config.OutputDir = fc.OutputDir
	}
	if len(fc.AllowedTLDs) > 0 {
		config.AllowedTLDs = fc.AllowedTLDs
	}
	if fc.FetchTimeout != "" {
		timeout, err := time.ParseDuration(fc.FetchTimeout)
		if err != nil {
			return nil, fmt.Errorf("invalid fetch_timeout: %w", err)
		}
		config.FetchTimeout = timeout
	}

	return config, nil
}
