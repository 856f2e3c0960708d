package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	validConfig := `api:
  base_url: "https://staging.searchcasa.com"
session:
  backend: redis
  redis:
    addr: "redis.internal:6379"
    db: 2
language: it
profile: staging
`
	err := os.WriteFile(configPath, []byte(validConfig), 0o644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://staging.searchcasa.com", cfg.API.BaseURL)
	assert.Equal(t, SessionBackendRedis, cfg.Session.Backend)
	assert.Equal(t, "redis.internal:6379", cfg.Session.Redis.Addr)
	assert.Equal(t, 2, cfg.Session.Redis.DB)
	assert.Equal(t, "it", cfg.Language)
	assert.Equal(t, "staging", cfg.Profile)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.API.BaseURL)
	assert.Equal(t, SessionBackendFile, cfg.Session.Backend)
	assert.Equal(t, DefaultLanguage, cfg.Language)
	assert.Equal(t, "default", cfg.Profile)
	assert.NotEmpty(t, cfg.Session.Path)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("api:\n  base_url: \"https://from-file\"\n"), 0o644)
	require.NoError(t, err)

	t.Setenv(EnvBaseURL, "https://from-env")

	cfg, err := Load(configPath)
	require.NoError(t, err)
	assert.Equal(t, "https://from-env", cfg.API.BaseURL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	err := os.WriteFile(configPath, []byte("api: [not a mapping"), 0o644)
	require.NoError(t, err)

	_, err = Load(configPath)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("unknown session backend", func(t *testing.T) {
		cfg := &Config{
			API:      APIConfig{BaseURL: DefaultBaseURL},
			Session:  SessionConfig{Backend: "etcd"},
			Language: "en",
		}
		err := cfg.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown session backend")
	})

	t.Run("empty base URL", func(t *testing.T) {
		cfg := &Config{
			Session:  SessionConfig{Backend: SessionBackendFile},
			Language: "en",
		}
		assert.Error(t, cfg.Validate())
	})
}
