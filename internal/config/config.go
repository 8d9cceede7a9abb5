// Package config loads the swim meet server settings from environment
// variables. Every field has a default except the ones the chosen store
// driver or auth provider needs; Validate reports all problems at once so
// a misconfigured server fails on startup.
package config

import (
	"strconv"
	"time"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Store    StoreConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Upload   UploadConfig
	Tenant   TenantConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// StoreConfig selects the swimmer repository.
type StoreConfig struct {
	// Driver is memory or postgres (default: memory)
	Driver string `env:"STORE_DRIVER" default:"memory"`

	// SeedFile is a YAML fixture loaded into the memory store on start.
	// Empty loads the built-in demo roster.
	SeedFile string `env:"SEED_FILE"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string, required for the postgres driver.
	// Supports both DATABASE_URL and DB_URL env vars.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// ConnectTimeout bounds the startup retry loop (default: 30s)
	ConnectTimeout time.Duration `env:"DB_CONNECT_TIMEOUT" default:"30s"`
}

// AuthConfig holds the hosted auth provider settings.
type AuthConfig struct {
	// URL is the auth provider base URL. Sign-in is disabled when empty.
	URL string `env:"AUTH_URL"`

	// JWTSecret verifies HS256 session tokens.
	JWTSecret string `env:"AUTH_JWT_SECRET"`

	Audience     string `env:"AUTH_AUDIENCE" default:"authenticated"`
	Issuer       string `env:"AUTH_ISSUER"`
	CookieName   string `env:"AUTH_COOKIE_NAME" default:"sm_session"`
	CookieSecure bool   `env:"AUTH_COOKIE_SECURE" default:"true"`

	// RedirectURL is where the provider sends the user after sign-in.
	RedirectURL string `env:"AUTH_REDIRECT_URL" default:"http://localhost:8080/auth/callback"`
}

// Enabled reports whether sign-in is configured.
func (c *AuthConfig) Enabled() bool {
	return c.URL != "" && c.JWTSecret != ""
}

// StorageConfig holds photo storage settings.
type StorageConfig struct {
	// Dir is where photos are written (default: ./data/photos)
	Dir string `env:"STORAGE_DIR" default:"./data/photos"`

	// PublicURL is the path prefix photos are served under (default: /media)
	PublicURL string `env:"STORAGE_PUBLIC_URL" default:"/media"`
}

// UploadConfig holds photo upload settings.
type UploadConfig struct {
	// MaxConcurrent is the maximum number of parallel uploads (default: 4)
	MaxConcurrent int `env:"UPLOAD_MAX_CONCURRENT" default:"4"`

	// MaxWaitTime is how long to wait for an upload slot (default: 10s)
	MaxWaitTime time.Duration `env:"UPLOAD_MAX_WAIT_TIME" default:"10s"`
}

// TenantConfig holds the tenant used for anonymous and single-tenant use.
type TenantConfig struct {
	DefaultID string `env:"TENANT_DEFAULT_ID" default:"00000000-0000-0000-0000-000000000001"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 120)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"120"`

	// UploadLimit is requests per minute for photo uploads (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`
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
