// Package adminapi is the client for the external admin REST backend the
// dashboard delegates profiles, timesheets, bank records and registration to.
package adminapi

import (
	"os"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend call.
const DefaultTimeout = 15 * time.Second

// Config holds the configuration for admin backend access.
type Config struct {
	// BaseURL is the backend root, e.g. https://api.example.com/api
	BaseURL string

	// Token is sent as a bearer token when set
	Token string

	// Timeout for API requests
	Timeout time.Duration
}

// DefaultConfig returns the default configuration, reading from environment variables.
func DefaultConfig() Config {
	return Config{
		BaseURL: strings.TrimRight(getEnv("ADMIN_API_BASE_URL", ""), "/"),
		Token:   getEnv("ADMIN_API_TOKEN", ""),
		Timeout: DefaultTimeout,
	}
}

// getEnv returns an environment variable value or a default if not set.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Enabled reports whether a backend is configured.
func (c Config) Enabled() bool {
	return c.BaseURL != ""
}
