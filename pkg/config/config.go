// Package config loads the optional YAML configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Output formats accepted by the merge command.
const (
	FormatText = "text"
	FormatHTML = "html"
)

// DefaultPath is the configuration file looked up when none is given.
const DefaultPath = ".textmerger.yaml"

type Config struct {
	Exclude         []string     `yaml:"exclude"`
	Workers         int          `yaml:"workers"`
	MaxFileSizeKB   int          `yaml:"max_file_size_kb"`
	NotebookOutputs bool         `yaml:"notebook_outputs"`
	DetectBinary    bool         `yaml:"detect_binary"`
	PDF             bool         `yaml:"pdf"`
	Output          OutputConfig `yaml:"output"`
}

type OutputConfig struct {
	Path   string `yaml:"path"`
	Format string `yaml:"format"`
	Tree   bool   `yaml:"tree"`
}

func DefaultConfig() *Config {
	return &Config{
		Exclude:         []string{},
		Workers:         0,
		MaxFileSizeKB:   0,
		NotebookOutputs: true,
		DetectBinary:    false,
		PDF:             true,
		Output: OutputConfig{
			Format: FormatText,
		},
	}
}

// LoadConfig reads path on top of the defaults. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	// Initialize Exclude slice if nil (for explicit null)
	if cfg.Exclude == nil {
		cfg.Exclude = []string{}
	}
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatText
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	if c.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb must not be negative, got %d", c.MaxFileSizeKB)
	}
	switch c.Output.Format {
	case FormatText, FormatHTML:
	default:
		return fmt.Errorf("output.format must be %q or %q, got %q", FormatText, FormatHTML, c.Output.Format)
	}
	return nil
}
