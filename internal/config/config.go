package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iamjli/keggx/internal/catalog"
)

// Config defines configuration for the keggx CLI.
type Config struct {
	ListingURL  string        `yaml:"listing_url"`
	Template    string        `yaml:"template"`
	StripPrefix int           `yaml:"strip_prefix"`
	Output      string        `yaml:"output"`
	Extension   string        `yaml:"extension"`
	Workers     int           `yaml:"workers"`
	Timeout     time.Duration `yaml:"timeout"`
	Filter      string        `yaml:"filter"`
	Progress    bool          `yaml:"progress"`
	Manifest    bool          `yaml:"manifest"`
}

// Default returns a Config with sensible defaults for syncing human
// pathway KGML files from the KEGG REST API.
func Default() Config {
	return Config{
		ListingURL:  "http://rest.kegg.jp/list/pathway/hsa",
		Template:    "http://rest.kegg.jp/get/{id}/kgml",
		StripPrefix: 8,
		Output:      "pathways",
		Extension:   ".xml",
		Workers:     1,
		Timeout:     30 * time.Second,
	}
}

// yamlConfig is used for YAML unmarshaling with string durations.
type yamlConfig struct {
	ListingURL  string `yaml:"listing_url"`
	Template    string `yaml:"template"`
	StripPrefix *int   `yaml:"strip_prefix"`
	Output      string `yaml:"output"`
	Extension   string `yaml:"extension"`
	Workers     int    `yaml:"workers"`
	Timeout     string `yaml:"timeout"`
	Filter      string `yaml:"filter"`
	Progress    bool   `yaml:"progress"`
	Manifest    bool   `yaml:"manifest"`
}

// LoadFromFile loads configuration from a YAML file.
func LoadFromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return Config{}, fmt.Errorf("parse config file: %w", err)
	}

	cfg := Default()

	if yc.ListingURL != "" {
		cfg.ListingURL = yc.ListingURL
	}
	if yc.Template != "" {
		cfg.Template = yc.Template
	}
	if yc.StripPrefix != nil {
		cfg.StripPrefix = *yc.StripPrefix
	}
	if yc.Output != "" {
		cfg.Output = yc.Output
	}
	if yc.Extension != "" {
		cfg.Extension = yc.Extension
	}
	if yc.Workers != 0 {
		cfg.Workers = yc.Workers
	}
	if yc.Timeout != "" {
		d, err := time.ParseDuration(yc.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.Timeout = d
	}
	cfg.Filter = yc.Filter
	cfg.Progress = yc.Progress
	cfg.Manifest = yc.Manifest

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables use the KEGGX_ prefix.
func (c *Config) LoadFromEnv() error {
	if v := os.Getenv("KEGGX_LISTING_URL"); v != "" {
		c.ListingURL = v
	}
	if v := os.Getenv("KEGGX_TEMPLATE"); v != "" {
		c.Template = v
	}
	if v := os.Getenv("KEGGX_STRIP_PREFIX"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse KEGGX_STRIP_PREFIX: %w", err)
		}
		c.StripPrefix = n
	}
	if v := os.Getenv("KEGGX_OUTPUT"); v != "" {
		c.Output = v
	}
	if v := os.Getenv("KEGGX_EXTENSION"); v != "" {
		c.Extension = v
	}
	if v := os.Getenv("KEGGX_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse KEGGX_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("KEGGX_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse KEGGX_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := os.Getenv("KEGGX_FILTER"); v != "" {
		c.Filter = v
	}
	if v := os.Getenv("KEGGX_PROGRESS"); v != "" {
		c.Progress = v == "true" || v == "1"
	}
	if v := os.Getenv("KEGGX_MANIFEST"); v != "" {
		c.Manifest = v == "true" || v == "1"
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ListingURL == "" {
		return errors.New("config: listing_url is required")
	}
	if c.Template == "" {
		return errors.New("config: template is required")
	}
	if !strings.Contains(c.Template, catalog.Placeholder) {
		return fmt.Errorf("config: template must contain %s", catalog.Placeholder)
	}
	if c.StripPrefix < 0 {
		return errors.New("config: strip_prefix must not be negative")
	}
	if c.Output == "" {
		return errors.New("config: output is required")
	}
	if c.Workers <= 0 {
		return errors.New("config: workers must be positive")
	}
	if c.Timeout <= 0 {
		return errors.New("config: timeout must be positive")
	}
	return nil
}

// Merge merges override values into c, returning a new Config.
// Zero values in override are ignored.
func (c Config) Merge(override Config) Config {
	if override.ListingURL != "" {
		c.ListingURL = override.ListingURL
	}
	if override.Template != "" {
		c.Template = override.Template
	}
	if override.StripPrefix != 0 {
		c.StripPrefix = override.StripPrefix
	}
	if override.Output != "" {
		c.Output = override.Output
	}
	if override.Extension != "" {
		c.Extension = override.Extension
	}
	if override.Workers != 0 {
		c.Workers = override.Workers
	}
	if override.Timeout != 0 {
		c.Timeout = override.Timeout
	}
	if override.Filter != "" {
		c.Filter = override.Filter
	}
	if override.Progress {
		c.Progress = override.Progress
	}
	if override.Manifest {
		c.Manifest = override.Manifest
	}
	return c
}
