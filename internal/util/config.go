package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// DefaultConfigFile is read from the working directory when --config is not given.
const DefaultConfigFile = ".surveydemo.yml"

// Environment variables understood besides the SURVEYDEMO_* overlay.
const (
	EnvEnvironmentID       = "FORMBRICKS_ENVIRONMENT_ID"
	EnvPublicEnvironmentID = "NEXT_PUBLIC_FORMBRICKS_ENVIRONMENT_ID"
	EnvDatabaseURL         = "DATABASE_URL"
)

// Config holds runtime settings and flags.
type Config struct {
	EnvironmentID string `yaml:"environment_id" koanf:"environment_id"`
	DSN           string `yaml:"dsn" koanf:"dsn"`
	Offline       bool   `yaml:"offline" koanf:"offline"`
	Theme         string `yaml:"theme" koanf:"theme"` // palette used for dark mode
	LogFile       string `yaml:"log_file" koanf:"log_file"`
	LogLevel      string `yaml:"log_level" koanf:"log_level"`
	JournalSize   int    `yaml:"journal_size" koanf:"journal_size"`
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() *Config {
	return &Config{
		Theme:       "slate",
		LogFile:     "surveydemo.log",
		LogLevel:    "info",
		JournalSize: 50,
	}
}

// Load reads configuration from the given YAML file, then overlays
// SURVEYDEMO_* variables and finally the well-known environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider("SURVEYDEMO_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SURVEYDEMO_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if v := firstEnv(EnvEnvironmentID, EnvPublicEnvironmentID); v != "" {
		cfg.EnvironmentID = v
	}
	if cfg.DSN == "" {
		cfg.DSN = os.Getenv(EnvDatabaseURL)
	}
	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.EnvironmentID) == "" {
		return fmt.Errorf("environment id is required (set %s)", EnvEnvironmentID)
	}
	if !c.Offline && c.DSN == "" {
		return fmt.Errorf("dsn is required unless offline (set %s or --offline)", EnvDatabaseURL)
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	if c.JournalSize < 0 {
		return fmt.Errorf("journal_size must be non-negative")
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
