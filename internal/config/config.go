// Package config handles layered YAML configuration with environment overrides.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all addressbook configuration.
type Config struct {
	Book   Book   `yaml:"book"`
	Output Output `yaml:"output"`
	Log    Log    `yaml:"log"`
	Seed   string `yaml:"seed"` // Seed loaded by the shell; empty starts with no contacts.
}

// Book holds address book behavior settings.
type Book struct {
	Duplicates string `yaml:"duplicates"` // "overwrite" | "reject"
}

// Output holds rendering settings.
type Output struct {
	Format string `yaml:"format"` // "text" | "yaml"
	Color  string `yaml:"color"`  // "auto" | "always" | "never"
}

// Log holds diagnostic logging settings.
type Log struct {
	Level string `yaml:"level"` // "debug" | "info" | "warn" | "error"
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Book: Book{
			Duplicates: "overwrite",
		},
		Output: Output{
			Format: "text",
			Color:  "auto",
		},
		Log: Log{
			Level: "warn",
		},
	}
}

// Load reads a single YAML config file at path and returns a Config.
// For merging multiple config sources, use LoadLayered instead.
// If the file does not exist, defaults are returned without error.
// If the file contains invalid YAML or unknown fields, an error is returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return &cfg, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		// Comment-only YAML files produce EOF with no decoded content.
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// LoadLayered loads config from multiple paths with increasing priority.
// Later paths override earlier ones. Missing files are skipped.
func LoadLayered(paths ...string) (*Config, error) {
	cfg := DefaultConfig()

	for _, path := range paths {
		layer, err := loadLayer(path)
		if err != nil {
			return nil, err
		}
		if layer == nil {
			continue
		}
		cfg.merge(layer)
	}

	return &cfg, nil
}

// Validate checks that config values are usable.
func (c *Config) Validate() error {
	switch c.Book.Duplicates {
	case "overwrite", "reject":
	default:
		return fmt.Errorf("config: book.duplicates must be \"overwrite\" or \"reject\", got %q", c.Book.Duplicates)
	}
	switch c.Output.Format {
	case "text", "yaml":
	default:
		return fmt.Errorf("config: output.format must be \"text\" or \"yaml\", got %q", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("config: output.color must be \"auto\", \"always\" or \"never\", got %q", c.Output.Color)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	return nil
}

// ApplyEnv applies environment variable overrides to the config.
// Supported variables: ADDRESSBOOK_DUPLICATES, ADDRESSBOOK_FORMAT,
// ADDRESSBOOK_COLOR, ADDRESSBOOK_LOG_LEVEL, ADDRESSBOOK_SEED.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("ADDRESSBOOK_DUPLICATES"); v != "" {
		c.Book.Duplicates = v
	}
	if v := os.Getenv("ADDRESSBOOK_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("ADDRESSBOOK_COLOR"); v != "" {
		c.Output.Color = v
	}
	if v := os.Getenv("ADDRESSBOOK_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("ADDRESSBOOK_SEED"); v != "" {
		c.Seed = v
	}
}

// rawConfig mirrors Config but uses pointers to distinguish set vs unset fields.
type rawConfig struct {
	Book   *rawBook   `yaml:"book"`
	Output *rawOutput `yaml:"output"`
	Log    *rawLog    `yaml:"log"`
	Seed   *string    `yaml:"seed"`
}

type rawBook struct {
	Duplicates *string `yaml:"duplicates"`
}

type rawOutput struct {
	Format *string `yaml:"format"`
	Color  *string `yaml:"color"`
}

type rawLog struct {
	Level *string `yaml:"level"`
}

// loadLayer reads a single config file into a rawConfig for selective merging.
// Returns nil if the file does not exist. Rejects unknown fields.
func loadLayer(path string) (*rawConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if len(data) == 0 {
		return nil, nil
	}

	var raw rawConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return &raw, nil
}

// merge applies non-nil fields from a rawConfig layer onto this Config.
func (c *Config) merge(layer *rawConfig) {
	if layer.Book != nil && layer.Book.Duplicates != nil {
		c.Book.Duplicates = *layer.Book.Duplicates
	}
	if layer.Output != nil {
		if layer.Output.Format != nil {
			c.Output.Format = *layer.Output.Format
		}
		if layer.Output.Color != nil {
			c.Output.Color = *layer.Output.Color
		}
	}
	if layer.Log != nil && layer.Log.Level != nil {
		c.Log.Level = *layer.Log.Level
	}
	if layer.Seed != nil {
		c.Seed = *layer.Seed
	}
}
