// Package config handles loading and managing vinrisk configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vinrisk/vinrisk/pkg/inventory"
)

// SampleDataFile is the dataset name searched for when no source is set.
const SampleDataFile = "sample_data.csv"

// Config is the top-level configuration for vinrisk.
type Config struct {
	Dataset   DatasetConfig   `yaml:"dataset"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Generator GeneratorConfig `yaml:"generator"`
	Server    ServerConfig    `yaml:"server"`
}

// DatasetConfig controls where vehicle records are loaded from.
type DatasetConfig struct {
	Source  string            `yaml:"source"` // path, file://, s3://, gs://, postgres://
	Table   string            `yaml:"table"`  // postgres sources only
	Columns inventory.Columns `yaml:"columns"`
	S3      S3Config          `yaml:"s3"`
}

// S3Config holds optional overrides for S3-compatible stores such as MinIO.
type S3Config struct {
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	AccessKey    string `yaml:"access_key"`
	SecretKey    string `yaml:"secret_key"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	ReferenceYear int `yaml:"reference_year"` // 0 means the current year
}

// GeneratorConfig controls the external text generator.
type GeneratorConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Model     string `yaml:"model"`
	Timeout   int    `yaml:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens"`

	// APIKey is only ever read from ANTHROPIC_API_KEY.
	APIKey string `yaml:"-"`
}

// TimeoutDuration returns Timeout as a time.Duration.
func (g GeneratorConfig) TimeoutDuration() time.Duration {
	return time.Duration(g.Timeout) * time.Second
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Addr returns the listen address.
func (s ServerConfig) Addr() string {
	return s.Host + ":" + s.Port
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Table:   "vehicle_inventory",
			Columns: inventory.DefaultColumns(),
		},
		Generator: GeneratorConfig{
			Enabled:   true,
			Model:     "claude-sonnet-4-20250514",
			Timeout:   30,
			MaxTokens: 500,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           "8000",
			AllowedOrigins: []string{"*"},
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides cfg from the process environment:
// CSV_DATA_PATH or VINRISK_DATA, USE_LLM, ANTHROPIC_API_KEY, VINRISK_MODEL,
// HOST and PORT.
func (c *Config) ApplyEnv() error {
	if v := firstEnv("VINRISK_DATA", "CSV_DATA_PATH"); v != "" {
		c.Dataset.Source = v
	}
	if v, ok := os.LookupEnv("USE_LLM"); ok && v != "" {
		enabled, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("USE_LLM: %w", err)
		}
		c.Generator.Enabled = enabled
	}
	if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
		c.Generator.APIKey = v
	}
	if v := os.Getenv("VINRISK_MODEL"); v != "" {
		c.Generator.Model = v
	}
	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if _, err := strconv.Atoi(v); err != nil {
			return fmt.Errorf("PORT: %q is not a number", v)
		}
		c.Server.Port = v
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", v)
}

// ErrNoDataset is returned by ResolveSource when nothing is configured and
// no sample dataset can be found.
var ErrNoDataset = errors.New("no dataset configured and " + SampleDataFile + " not found")

// ResolveSource returns the configured dataset source, falling back to a
// sample_data.csv found by walking up from dir.
func (c *Config) ResolveSource(dir string) (string, error) {
	if c.Dataset.Source != "" {
		return c.Dataset.Source, nil
	}
	if p := FindSampleData(dir); p != "" {
		return p, nil
	}
	return "", ErrNoDataset
}

// FindSampleData looks for sample_data.csv in dir and its parents, and in a
// testdata directory at each level. Returns "" if not found.
func FindSampleData(dir string) string {
	for {
		for _, candidate := range []string{
			filepath.Join(dir, SampleDataFile),
			filepath.Join(dir, "testdata", SampleDataFile),
		} {
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// FindConfigFile looks for .vinrisk/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".vinrisk", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
