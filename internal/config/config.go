// Package config loads the scadmin configuration file. Everything has a
// working default: a config file is only needed to point at a different
// backend, session store, or language.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultBaseURL is the production API endpoint used when neither the
	// config file nor the environment supplies one.
	DefaultBaseURL = "https://api.searchcasa.com"

	// EnvBaseURL overrides the API base URL from the environment. It wins
	// over the config file.
	EnvBaseURL = "SEARCHCASA_API_URL"

	// DefaultLanguage scopes rule reads when no language is configured.
	DefaultLanguage = "en"

	// Session store backends.
	SessionBackendFile  = "file"
	SessionBackendRedis = "redis"
)

// Config is the top-level scadmin configuration.
type Config struct {
	API      APIConfig     `yaml:"api"`
	Session  SessionConfig `yaml:"session"`
	Language string        `yaml:"language"`
	Profile  string        `yaml:"profile"`
}

// APIConfig configures the REST client.
type APIConfig struct {
	BaseURL string `yaml:"base_url"`
}

// SessionConfig selects and configures the session store backend.
type SessionConfig struct {
	Backend string      `yaml:"backend"`
	Path    string      `yaml:"path,omitempty"` // file backend
	Redis   RedisConfig `yaml:"redis,omitempty"`
}

// RedisConfig configures the Redis session backend.
type RedisConfig struct {
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

// Dir returns the scadmin config directory (~/.scadmin).
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("find home directory: %w", err)
	}
	return filepath.Join(home, ".scadmin"), nil
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads the config file at path, applies defaults and the environment
// override, and validates the result. A missing file yields the pure
// default configuration.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	default:
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if c.API.BaseURL == "" {
		c.API.BaseURL = DefaultBaseURL
	}
	if c.Language == "" {
		c.Language = DefaultLanguage
	}
	if c.Profile == "" {
		c.Profile = "default"
	}
	if c.Session.Backend == "" {
		c.Session.Backend = SessionBackendFile
	}
	if c.Session.Path == "" {
		dir, err := Dir()
		if err != nil {
			return err
		}
		c.Session.Path = filepath.Join(dir, "session.yaml")
	}
	if c.Session.Redis.Addr == "" {
		c.Session.Redis.Addr = "localhost:6379"
	}
	return nil
}

// Validate checks the configuration for contradictions after defaulting.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url cannot be empty")
	}
	switch c.Session.Backend {
	case SessionBackendFile, SessionBackendRedis:
	default:
		return fmt.Errorf("unknown session backend %q (must be %q or %q)",
			c.Session.Backend, SessionBackendFile, SessionBackendRedis)
	}
	if c.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}
	return nil
}
