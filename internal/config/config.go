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
	Database DatabaseConfig
	Table    TableConfig
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

	// ReadTimeout is the maximum duration for reading request body (default: 15s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`

	// WriteTimeout is the maximum duration for writing response (default: 30s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// Storage drivers for column preferences and row data.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	RowsDemo = "demo"
)

// DatabaseConfig holds storage settings.
type DatabaseConfig struct {
	// Driver selects the preference store: memory, postgres or sqlite (default: memory)
	Driver string `env:"PREFS_DRIVER" default:"memory"`

	// Rows selects the row source: demo (generated data) or postgres (default: demo)
	Rows string `env:"ROWS_SOURCE" default:"demo"`

	// URL is the PostgreSQL connection string, required by the postgres driver
	// and the postgres row source.
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	// SQLitePath is the database file of the sqlite driver (default: hrconsole.db)
	SQLitePath string `env:"SQLITE_PATH" default:"hrconsole.db"`

	// MaxConns is the maximum number of connections in the pool (default: 20)
	MaxConns int `env:"DB_MAX_CONNS" default:"20"`

	// MinConns is the minimum number of connections to keep open (default: 2)
	MinConns int `env:"DB_MIN_CONNS" default:"2"`

	// MaxConnLifetime is the maximum lifetime of a connection (default: 1h)
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`

	// MaxConnIdleTime is the maximum idle time before a connection is closed (default: 30m)
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// TableConfig holds table rendering and catalog settings.
type TableConfig struct {
	// PageSize is the default number of rows per page (default: 20)
	PageSize int `env:"TABLE_PAGE_SIZE" default:"20"`

	// MaxPageSize caps the page size a request can ask for (default: 200)
	MaxPageSize int `env:"TABLE_MAX_PAGE_SIZE" default:"200"`

	// SkeletonRows is the placeholder row count while loading; 0 uses the page size
	SkeletonRows int `env:"TABLE_SKELETON_ROWS" default:"0"`

	// AnimationMS is the row fade-in duration in milliseconds (default: 400)
	AnimationMS int `env:"TABLE_ANIMATION_MS" default:"400"`

	// StaggerMS is the fade-in delay between consecutive rows (default: 50)
	StaggerMS int `env:"TABLE_STAGGER_MS" default:"50"`

	// ColumnsFile is an optional YAML catalog merged over the built-in tables
	ColumnsFile string `env:"TABLE_COLUMNS_FILE"`

	// WatchColumns reloads ColumnsFile when it changes (default: false)
	WatchColumns bool `env:"TABLE_WATCH_COLUMNS" default:"false"`

	// MaxConcurrentSaves is the maximum number of parallel preference writes (default: 8)
	MaxConcurrentSaves int `env:"TABLE_MAX_CONCURRENT_SAVES" default:"8"`

	// SaveWait is how long a write waits for a slot (default: 5s)
	SaveWait time.Duration `env:"TABLE_SAVE_WAIT" default:"5s"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 300)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"300"`

	// ColumnLimit is requests per minute for column settings endpoints (default: 120)
	ColumnLimit int `env:"RATE_LIMIT_COLUMNS" default:"120"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// EnableCSP enables Content-Security-Policy headers (default: true)
	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey protects the JSON column API with X-API-Key (default: false)
	RequireAPIKey bool `env:"REQUIRE_API_KEY" default:"false"`

	// APIKeys is a comma-separated list of accepted API keys
	APIKeys []string `env:"API_KEYS"`

	// OwnerCookie names the cookie carrying the anonymous preference owner (default: hrc_owner)
	OwnerCookie string `env:"OWNER_COOKIE" default:"hrc_owner"`

	// SecureCookies sets the Secure flag on cookies (default: false)
	SecureCookies bool `env:"SECURE_COOKIES" default:"false"`
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

// AnimationDuration returns AnimationMS as a duration.
func (c *TableConfig) AnimationDuration() time.Duration {
	return time.Duration(c.AnimationMS) * time.Millisecond
}

// StaggerDelay returns StaggerMS as a duration.
func (c *TableConfig) StaggerDelay() time.Duration {
	return time.Duration(c.StaggerMS) * time.Millisecond
}
