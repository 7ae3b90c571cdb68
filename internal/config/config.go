// Package config provides configuration management for ghostline.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config represents the ghostline configuration.
type Config struct {
	// TriggerKey is the key that requests a suggestion (bubbletea key name).
	TriggerKey string `yaml:"trigger_key"`

	// Provider is the active provider name: anthropic, openai or ollama.
	Provider string `yaml:"provider"`

	// Providers holds per-provider settings keyed by provider name.
	Providers map[string]ProviderConfig `yaml:"providers"`

	// Debug enables debug logging.
	Debug bool `yaml:"debug"`

	// LogFile is the debug log destination (empty = stderr).
	LogFile string `yaml:"log_file"`
}

// ProviderConfig holds settings for a single provider backend.
type ProviderConfig struct {
	Model     string `yaml:"model"`      // Provider-specific model identifier
	Endpoint  string `yaml:"endpoint"`   // API endpoint override (empty = default)
	MaxTokens int    `yaml:"max_tokens"` // Maximum output size
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		TriggerKey: "ctrl+x",
		Provider:   "anthropic",
		Providers: map[string]ProviderConfig{
			"anthropic": {Model: "claude-3-5-haiku-latest", MaxTokens: 256},
			"openai":    {Model: "gpt-4o-mini", MaxTokens: 256},
			"ollama":    {Model: "llama3.2", MaxTokens: 256},
		},
	}
}

// Load reads the config file (if present), fills in defaults, and applies
// environment overrides. A missing file is not an error; a malformed one is.
func Load() (*Config, error) {
	return LoadFrom(DefaultPaths().ConfigFile())
}

// LoadFrom loads configuration from an explicit path.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.applyDefaults()
	cfg.applyEnv()
	return cfg, nil
}

// applyDefaults fills zero values left by a partial config file.
func (c *Config) applyDefaults() {
	def := Default()
	if c.TriggerKey == "" {
		c.TriggerKey = def.TriggerKey
	}
	if c.Provider == "" {
		c.Provider = def.Provider
	}
	if c.Providers == nil {
		c.Providers = map[string]ProviderConfig{}
	}
	for name, dp := range def.Providers {
		pc, ok := c.Providers[name]
		if !ok {
			c.Providers[name] = dp
			continue
		}
		if pc.Model == "" {
			pc.Model = dp.Model
		}
		if pc.MaxTokens <= 0 {
			pc.MaxTokens = dp.MaxTokens
		}
		c.Providers[name] = pc
	}
}

// applyEnv applies GHOSTLINE_* environment overrides. The hosting shell sets
// these before the engine initializes; they win over the config file.
func (c *Config) applyEnv() {
	if v := os.Getenv("GHOSTLINE_TRIGGER_KEY"); v != "" {
		c.TriggerKey = v
	}
	if v := os.Getenv("GHOSTLINE_PROVIDER"); v != "" {
		c.Provider = v
	}
	if v := os.Getenv("GHOSTLINE_MODEL"); v != "" {
		pc := c.Providers[c.Provider]
		pc.Model = v
		c.Providers[c.Provider] = pc
	}
	if v := os.Getenv("GHOSTLINE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Debug = b
		}
	}
	if v := os.Getenv("GHOSTLINE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
}

// ProviderSettings returns the settings for the active provider.
func (c *Config) ProviderSettings() ProviderConfig {
	return c.Providers[c.Provider]
}

// Save writes the configuration to the default config file path.
func (c *Config) Save() error {
	path := DefaultPaths().ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
