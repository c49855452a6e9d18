// Package common provides shared utilities for tradecast
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for tradecast
type Config struct {
	Environment string          `toml:"environment"`
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Auth        AuthConfig      `toml:"auth"`
	Predictor   PredictorConfig `toml:"predictor"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds storage configuration for the 2 store areas.
// Backend selects the implementation for both areas: "file" (default),
// "memory", or "badger".
type StorageConfig struct {
	Backend  string     `toml:"backend"`
	Users    AreaConfig `toml:"users"`    // username -> account record
	Activity AreaConfig `toml:"activity"` // username -> activity history
}

// AreaConfig holds path configuration for a storage area.
// The file backend treats Path as a JSON document path; the badger backend
// treats it as a directory.
type AreaConfig struct {
	Path string `toml:"path"`
}

// AuthConfig holds bearer token configuration for the REST API.
type AuthConfig struct {
	JWTSecret   string `toml:"jwt_secret"`
	TokenExpiry string `toml:"token_expiry"` // duration string, default "24h"
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// PredictorConfig holds prediction stub configuration.
// Seed 0 seeds the generator from the clock at startup.
type PredictorConfig struct {
	Seed int64 `toml:"seed"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Backend:  "file",
			Users:    AreaConfig{Path: "data/users.json"},
			Activity: AreaConfig{Path: "data/user_activity.json"},
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Predictor: PredictorConfig{
			Seed: 0,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("TRADECAST_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("TRADECAST_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("TRADECAST_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("TRADECAST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if backend := os.Getenv("TRADECAST_STORAGE_BACKEND"); backend != "" {
		config.Storage.Backend = backend
	}

	if path := os.Getenv("TRADECAST_DATA_PATH"); path != "" {
		if config.Storage.Backend == "badger" {
			config.Storage.Users.Path = filepath.Join(path, "users")
			config.Storage.Activity.Path = filepath.Join(path, "activity")
		} else {
			config.Storage.Users.Path = filepath.Join(path, "users.json")
			config.Storage.Activity.Path = filepath.Join(path, "user_activity.json")
		}
	}

	if v := os.Getenv("TRADECAST_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("TRADECAST_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
