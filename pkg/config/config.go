// Package config loads process configuration from the environment. All
// settings use the ATRIUM_ prefix; the loaded Config is constructed once
// at startup and injected explicitly — nothing in the service reads the
// environment after boot.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/quorali/atrium/pkg/directory/postgres"
	"github.com/quorali/atrium/pkg/observability"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database postgres.Config
	Token    TokenConfig
	LogLevel observability.LogLevel
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// TokenConfig holds bearer token settings. The secret is shared by every
// instance that must accept each other's tokens.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server:   loadServerConfig(),
		Database: loadDatabaseConfig(),
		Token:    loadTokenConfig(),
		LogLevel: parseLogLevel(getEnv("ATRIUM_LOG_LEVEL", "info")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Host:            getEnv("ATRIUM_HOST", "0.0.0.0"),
		Port:            getEnv("ATRIUM_PORT", "8080"),
		ReadTimeout:     getEnvDuration("ATRIUM_READ_TIMEOUT", 15*time.Second),
		WriteTimeout:    getEnvDuration("ATRIUM_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:     getEnvDuration("ATRIUM_IDLE_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvDuration("ATRIUM_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

func loadDatabaseConfig() postgres.Config {
	cfg := postgres.DefaultConfig()
	cfg.URL = getEnv("ATRIUM_POSTGRES_URL", "")
	if maxConns := getEnvInt("ATRIUM_POSTGRES_MAX_CONNS", 0); maxConns > 0 {
		cfg.MaxOpenConns = maxConns
	}
	if minConns := getEnvInt("ATRIUM_POSTGRES_MIN_CONNS", 0); minConns > 0 {
		cfg.MaxIdleConns = minConns
	}
	if timeout := getEnvDuration("ATRIUM_POSTGRES_TIMEOUT", 0); timeout > 0 {
		cfg.ConnectTimeout = timeout
	}
	return cfg
}

func loadTokenConfig() TokenConfig {
	return TokenConfig{
		Secret: getEnv("ATRIUM_TOKEN_SECRET", ""),
		TTL:    getEnvDuration("ATRIUM_TOKEN_TTL", 1*time.Hour),
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	if c.Database.URL == "" {
		return fmt.Errorf("postgres URL is required")
	}
	if c.Token.Secret == "" {
		return fmt.Errorf("token secret is required")
	}
	if c.Token.TTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}
	return nil
}

// parseLogLevel parses a log level string
func parseLogLevel(level string) observability.LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return observability.DebugLevel
	case "info":
		return observability.InfoLevel
	case "warn", "warning":
		return observability.WarnLevel
	case "error":
		return observability.ErrorLevel
	default:
		return observability.InfoLevel
	}
}

// getEnv returns an environment variable value or a default
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns an integer environment variable or a default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvDuration returns a duration environment variable or a default
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
