// ABOUTME: Tests for configuration loading
// ABOUTME: Covers defaults, YAML files, and environment overrides

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"BOOKING_API_URL", "BOOKING_USERNAME", "BOOKING_PASSWORD", "BOOKING_TIMEOUT_SECONDS", "BOOKING_CONFIG"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Empty(t, cfg.Username)
}

func TestLoad_YAMLFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "api_url: http://booking.example.com\nusername: ada@example.com\ntimeout_seconds: 10\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://booking.example.com", cfg.APIURL)
	assert.Equal(t, "ada@example.com", cfg.Username)
	assert.Equal(t, 10, cfg.TimeoutSeconds)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://from-file.example.com\n"), 0o644))
	t.Setenv("BOOKING_API_URL", "http://from-env.example.com")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env.example.com", cfg.APIURL)
}

func TestLoad_FileFromEnvVar(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("username: env-file@example.com\n"), 0o644))
	t.Setenv("BOOKING_CONFIG", path)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "env-file@example.com", cfg.Username)
}

func TestLoad_MissingFileFails(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("BOOKING_TIMEOUT_SECONDS", "0")

	_, err := Load("")
	assert.Error(t, err)
}
