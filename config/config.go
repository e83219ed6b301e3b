// Package config provides configuration management for the fStopandGo API.
// It handles loading and validation of configuration values from environment
// variables, with support for required variables, default values, and
// collective error reporting: every problem found while loading is gathered
// and returned as a single error, so an operator sees the full list at once
// instead of fixing variables one restart at a time.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// DatabaseConfig holds the connection settings for the Postgres store.
// A single URL-style DSN is used so the same variable works locally and on
// hosting platforms that inject DATABASE_URL.
type DatabaseConfig struct {
	URL string
}

// AuthConfig holds authentication-related configuration.
type AuthConfig struct {
	JWTSecret   string        // Secret key for signing JWTs
	TokenExpiry time.Duration // Lifetime of issued bearer tokens
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port string // Port for the HTTP server
	// ClientOrigin is the single origin allowed by CORS. "*" opens the API
	// up, which is only suitable for development.
	ClientOrigin string
}

// AppConfig is the top-level configuration structure for the application.
type AppConfig struct {
	Database *DatabaseConfig
	Auth     *AuthConfig
	Server   *ServerConfig
}

// getRequiredEnv reads a required environment variable, appending to the
// errors slice if it is not set.
func getRequiredEnv(key string, errs *[]string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		*errs = append(*errs, fmt.Sprintf("missing required environment variable: %s", key))
		return ""
	}
	return value
}

// getOptionalEnv reads an optional environment variable with a default.
func getOptionalEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getOptionalEnvDuration reads an optional environment variable parsed as a
// time.Duration ("15m", "168h", ...). Uses defaultValue if unset; appends an
// error and falls back to the default if the value does not parse.
func getOptionalEnvDuration(key string, defaultValue time.Duration, errs *[]string) time.Duration {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	valueDuration, err := time.ParseDuration(valueStr)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("invalid value for %s: expected duration string, got '%s': %v", key, valueStr, err))
		return defaultValue
	}
	return valueDuration
}

// LoadConfig creates and returns an AppConfig by reading and validating
// environment variables. It collects all errors encountered during loading
// and returns a single aggregated error if any exist.
func LoadConfig() (*AppConfig, error) {
	var errs []string

	// Database configuration
	databaseURL := getRequiredEnv("DATABASE_URL", &errs)

	// Auth configuration. Tokens default to a 7 day lifetime.
	jwtSecret := getRequiredEnv("JWT_SECRET", &errs)
	tokenExpiry := getOptionalEnvDuration("JWT_EXPIRY", 168*time.Hour, &errs)
	if tokenExpiry <= 0 {
		errs = append(errs, fmt.Sprintf("invalid value for JWT_EXPIRY: must be positive, got %s", tokenExpiry))
	}

	// Server configuration
	serverPort := getOptionalEnv("PORT", "8080")
	clientOrigin := getOptionalEnv("CLIENT_ORIGIN", "*")

	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration errors:\n- %s", strings.Join(errs, "\n- "))
	}

	return &AppConfig{
		Database: &DatabaseConfig{URL: databaseURL},
		Auth: &AuthConfig{
			JWTSecret:   jwtSecret,
			TokenExpiry: tokenExpiry,
		},
		Server: &ServerConfig{
			Port:         serverPort,
			ClientOrigin: clientOrigin,
		},
	}, nil
}
