// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"strconv"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Source   SourceConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	// PORT is honoured for hosting platforms that inject it.
	Port int `env:"SERVER_PORT" envAlt:"PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading the request (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing the response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 15s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// SourceConfig describes where the projects CSV comes from.
type SourceConfig struct {
	// URL is an http(s) URL, a file:// URL, a local path, or bundled:data/projects.csv
	// for the document embedded in the binary (default: bundled:data/projects.csv)
	// VITE_PROJECTS_CSV_URL is accepted so existing site deployments keep working.
	URL string `env:"PROJECTS_CSV_URL" envAlt:"VITE_PROJECTS_CSV_URL" default:"bundled:data/projects.csv"`

	// Charset of the document: utf-8, windows-1252 or iso-8859-1 (default: utf-8)
	Charset string `env:"PROJECTS_CSV_CHARSET" default:"utf-8"`

	// MaxBytes caps the size of a fetched document (default: 5MB)
	MaxBytes int64 `env:"PROJECTS_CSV_MAX_BYTES" default:"5242880"`

	// FetchTimeout bounds one fetch; 0 waits indefinitely (default: 0s)
	FetchTimeout time.Duration `env:"PROJECTS_FETCH_TIMEOUT" default:"0s"`

	// RefreshInterval re-runs the load cycle periodically; 0 loads once at startup (default: 0s)
	RefreshInterval time.Duration `env:"PROJECTS_REFRESH_INTERVAL" default:"0s"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the sustained rate per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// Burst is the number of requests allowed above the sustained rate (default: 20)
	Burst int `env:"RATE_LIMIT_BURST" default:"20"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// APIKeys guards POST /api/refresh. Empty leaves refresh open.
	APIKeys []string `env:"API_KEYS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// RequireAPIKey reports whether refresh requests must carry an API key.
func (c *SecurityConfig) RequireAPIKey() bool {
	return len(c.APIKeys) > 0
}
