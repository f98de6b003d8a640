// ABOUTME: Configuration loader for the booking client
// ABOUTME: Merges .env, an optional YAML file, and environment variables

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultAPIURL matches the development server address of the booking API
	DefaultAPIURL = "http://127.0.0.1:8000"

	defaultTimeoutSeconds = 30
)

type Config struct {
	APIURL         string `yaml:"api_url"`
	Username       string `yaml:"username"`
	Password       string `yaml:"password"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Load builds the configuration. Precedence, lowest to highest:
// defaults, YAML file (path argument or BOOKING_CONFIG), environment
// variables. A .env file in the working directory is read into the
// environment first; a missing .env is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:         DefaultAPIURL,
		TimeoutSeconds: defaultTimeoutSeconds,
	}

	if path == "" {
		path = os.Getenv("BOOKING_CONFIG")
	}
	if path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	cfg.APIURL = getEnv("BOOKING_API_URL", cfg.APIURL)
	cfg.Username = getEnv("BOOKING_USERNAME", cfg.Username)
	cfg.Password = getEnv("BOOKING_PASSWORD", cfg.Password)
	cfg.TimeoutSeconds = getEnvInt("BOOKING_TIMEOUT_SECONDS", cfg.TimeoutSeconds)

	if cfg.TimeoutSeconds < 1 {
		return nil, fmt.Errorf("timeout must be at least 1 second, got %d", cfg.TimeoutSeconds)
	}

	return cfg, nil
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
