package config

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/gramcli/gram/internal/core"
	logger "github.com/sirupsen/logrus"
)

// EnvConfigPath names the environment variable that points at a config file.
const EnvConfigPath = "GRAM_CONFIG"

// LocalConfigFile is the per-project config file name.
const LocalConfigFile = ".gram.yaml"

// ToolConfig describes one external quality tool.
type ToolConfig struct {
	Name    string   `yaml:"name"`
	Kind    string   `yaml:"kind"`
	Command string   `yaml:"command"`
	Args    []string `yaml:"args,omitempty"`
	// Timeout is a Go duration string such as "30s".
	Timeout string `yaml:"timeout,omitempty"`
	// Findings is "exit" (non-zero exit status) or "output" (any output).
	Findings string `yaml:"findings,omitempty"`
}

// TimeoutDuration parses Timeout, returning fallback when it is empty.
func (t ToolConfig) TimeoutDuration(fallback time.Duration) (time.Duration, error) {
	if t.Timeout == "" {
		return fallback, nil
	}
	return time.ParseDuration(t.Timeout)
}

// LintConfig configures the quality aggregator.
type LintConfig struct {
	// Tools replaces the built-in tool list when non-empty.
	Tools       []ToolConfig `yaml:"tools,omitempty"`
	TestPattern string       `yaml:"test_pattern,omitempty"`
}

// RatesConfig configures the fiat and crypto fetchers.
type RatesConfig struct {
	FiatURL    string   `yaml:"fiat_url,omitempty"`
	CryptoURL  string   `yaml:"crypto_url,omitempty"`
	Home       string   `yaml:"home,omitempty"`
	Currencies []string `yaml:"currencies,omitempty"`
	Coins      []string `yaml:"coins,omitempty"`
}

// ManifestConfig locates the remote version manifest.
type ManifestConfig struct {
	URL    string `yaml:"url,omitempty"`
	Format string `yaml:"format,omitempty"`
	Field  string `yaml:"field,omitempty"`
	// Pattern is used with the regex format.
	Pattern string `yaml:"pattern,omitempty"`
}

// UpdateConfig configures the self-updater.
type UpdateConfig struct {
	Repo     string         `yaml:"repo,omitempty"`
	Branch   string         `yaml:"branch,omitempty"`
	Manifest ManifestConfig `yaml:"manifest,omitempty"`
	Install  []string       `yaml:"install,omitempty"`
}

// ChatConfig configures the chat wrapper.
type ChatConfig struct {
	APIKey  string   `yaml:"api_key,omitempty"`
	Models  []string `yaml:"models,omitempty"`
	Timeout string   `yaml:"timeout,omitempty"`
}

// Config is the main configuration structure for gram.
type Config struct {
	Theme  string       `yaml:"theme,omitempty"`
	Banner bool         `yaml:"banner"`
	Lint   LintConfig   `yaml:"lint,omitempty"`
	Rates  RatesConfig  `yaml:"rates,omitempty"`
	Update UpdateConfig `yaml:"update,omitempty"`
	Chat   ChatConfig   `yaml:"chat,omitempty"`

	// Source is the file the config was read from; empty for defaults.
	Source string `yaml:"-"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Theme:  "gram",
		Banner: true,
		Lint: LintConfig{
			TestPattern: "*_test.go",
		},
		Rates: RatesConfig{
			FiatURL:    "https://api.exchangerate-api.com/v4/latest/USD",
			CryptoURL:  "https://api.coingecko.com/api/v3/simple/price",
			Home:       "RUB",
			Currencies: []string{"EUR", "GBP", "JPY", "CNY", "CAD", "AUD", "CHF"},
			Coins:      []string{"bitcoin", "ethereum"},
		},
		Update: UpdateConfig{
			Repo:   "https://github.com/gramcli/gram",
			Branch: "main",
			Manifest: ManifestConfig{
				URL:    "https://raw.githubusercontent.com/gramcli/gram/main/.gram-manifest.toml",
				Format: "toml",
				Field:  "project.version",
			},
			Install: []string{"go", "install", "./cmd/gram"},
		},
		Chat: ChatConfig{
			Models:  []string{"gemini-2.5-flash"},
			Timeout: "30s",
		},
	}
}

// Candidates returns the config file locations in lookup order.
// explicit comes from --config and wins over everything else.
func Candidates(explicit string) []string {
	var paths []string
	if explicit != "" {
		paths = append(paths, explicit)
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		paths = append(paths, filepath.Clean(env))
	}
	paths = append(paths, LocalConfigFile)

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "gram", "config.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gram", "config.yaml"))
	}
	return paths
}

// Load reads the first existing config file from Candidates(explicit),
// overlaying it onto Default(). A path given explicitly (flag or
// GRAM_CONFIG) must exist; the implicit locations are optional.
func Load(ctx context.Context, fsys core.FileSystem, explicit string) (*Config, error) {
	required := map[string]bool{}
	if explicit != "" {
		required[explicit] = true
	}
	if env := os.Getenv(EnvConfigPath); env != "" {
		required[filepath.Clean(env)] = true
	}

	for _, path := range Candidates(explicit) {
		data, err := fsys.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && !required[path] {
				continue
			}
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		}

		cfg, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("invalid config %q: %w", path, err)
		}
		cfg.Source = path
		logger.WithField("path", path).Debug("config loaded")
		return cfg, nil
	}

	logger.Debug("no config file found, using defaults")
	return Default(), nil
}

// Parse decodes YAML over the defaults with strict field checking and
// validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	decoder := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
