package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// LookupFunc resolves one environment variable. os.LookupEnv is the usual
// implementation; tests pass a map.
type LookupFunc func(name string) (string, bool)

var durationType = reflect.TypeOf(time.Duration(0))

// Load reads configuration from the process environment, applies defaults
// and validates the result.
func Load() (*Config, error) {
	return LoadFrom(os.LookupEnv)
}

// LoadFrom reads configuration through lookup. Every malformed or missing
// variable is reported, not just the first one.
func LoadFrom(lookup LookupFunc) (*Config, error) {
	cfg := &Config{}

	if err := decodeEnv(reflect.ValueOf(cfg).Elem(), lookup); err != nil {
		return nil, fmt.Errorf("config load: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// decodeEnv fills the tagged fields of v and its nested sections.
//
// Tags: env names the variable, envAlt a fallback variable, default the value
// used when both are unset and required="true" rejects an unset variable.
func decodeEnv(v reflect.Value, lookup LookupFunc) error {
	var errs []error
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field, fv := t.Field(i), v.Field(i)
		if !fv.CanSet() {
			continue
		}
		if field.Type.Kind() == reflect.Struct {
			if err := decodeEnv(fv, lookup); err != nil {
				errs = append(errs, err)
			}
			continue
		}

		name := field.Tag.Get("env")
		if name == "" {
			continue
		}
		raw, ok := lookupNonEmpty(lookup, name)
		if !ok {
			raw, ok = lookupNonEmpty(lookup, field.Tag.Get("envAlt"))
		}
		if !ok {
			if field.Tag.Get("required") == "true" {
				errs = append(errs, fmt.Errorf("required environment variable %s is not set", name))
				continue
			}
			raw = field.Tag.Get("default")
		}
		if raw == "" {
			continue
		}

		if err := setField(fv, raw); err != nil {
			errs = append(errs, fmt.Errorf("invalid value for %s=%q: %w", name, raw, err))
		}
	}
	return errors.Join(errs...)
}

func lookupNonEmpty(lookup LookupFunc, name string) (string, bool) {
	if name == "" {
		return "", false
	}
	v, ok := lookup(name)
	return v, ok && v != ""
}

// setField parses raw into field according to the field's type.
func setField(field reflect.Value, raw string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("invalid duration: %w", err)
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type().Elem().Kind())
		}
		field.Set(reflect.ValueOf(splitList(raw)))
	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	var errs []string
	errs = append(errs, c.Server.problems()...)
	errs = append(errs, c.Database.problems()...)
	errs = append(errs, c.Table.problems()...)
	errs = append(errs, c.Rate.problems()...)
	errs = append(errs, c.Security.problems()...)
	errs = append(errs, c.Logging.problems()...)

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}

func (c *ServerConfig) problems() []string {
	var errs []string
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Sprintf("SERVER_PORT (%d) must be 1-65535", c.Port))
	}
	if c.ReadTimeout < 0 {
		errs = append(errs, "SERVER_READ_TIMEOUT must be non-negative")
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, "SERVER_SHUTDOWN_TIMEOUT must be positive")
	}
	return errs
}

// problems checks that both the preference store and the row source can be
// opened with the given settings.
func (c *DatabaseConfig) problems() []string {
	var errs []string
	switch strings.ToLower(c.Driver) {
	case DriverMemory:
	case DriverPostgres:
		if c.URL == "" {
			errs = append(errs, "DATABASE_URL is required when PREFS_DRIVER is postgres")
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			errs = append(errs, "SQLITE_PATH is required when PREFS_DRIVER is sqlite")
		}
	default:
		errs = append(errs, fmt.Sprintf("PREFS_DRIVER (%q) must be one of: memory, postgres, sqlite", c.Driver))
	}

	switch strings.ToLower(c.Rows) {
	case RowsDemo:
	case DriverPostgres:
		if c.URL == "" {
			errs = append(errs, "DATABASE_URL is required when ROWS_SOURCE is postgres")
		}
	default:
		errs = append(errs, fmt.Sprintf("ROWS_SOURCE (%q) must be one of: demo, postgres", c.Rows))
	}

	if c.MaxConns <= 0 {
		errs = append(errs, "DB_MAX_CONNS must be positive")
	}
	if c.MinConns < 0 {
		errs = append(errs, "DB_MIN_CONNS must be non-negative")
	}
	if c.MaxConns < c.MinConns {
		errs = append(errs, fmt.Sprintf("DB_MAX_CONNS (%d) must be >= DB_MIN_CONNS (%d)", c.MaxConns, c.MinConns))
	}
	return errs
}

func (c *TableConfig) problems() []string {
	var errs []string
	if c.PageSize <= 0 {
		errs = append(errs, "TABLE_PAGE_SIZE must be positive")
	}
	if c.MaxPageSize < c.PageSize {
		errs = append(errs, fmt.Sprintf("TABLE_MAX_PAGE_SIZE (%d) must be >= TABLE_PAGE_SIZE (%d)", c.MaxPageSize, c.PageSize))
	}
	if c.SkeletonRows < 0 {
		errs = append(errs, "TABLE_SKELETON_ROWS must be non-negative")
	}
	if c.AnimationMS < 0 || c.StaggerMS < 0 {
		errs = append(errs, "TABLE_ANIMATION_MS and TABLE_STAGGER_MS must be non-negative")
	}

	if c.ColumnsFile != "" {
		switch strings.ToLower(filepath.Ext(c.ColumnsFile)) {
		case ".yaml", ".yml":
		default:
			errs = append(errs, fmt.Sprintf("TABLE_COLUMNS_FILE (%q) must be a .yaml or .yml catalog", c.ColumnsFile))
		}
	} else if c.WatchColumns {
		errs = append(errs, "TABLE_WATCH_COLUMNS requires TABLE_COLUMNS_FILE")
	}

	if c.MaxConcurrentSaves <= 0 {
		errs = append(errs, "TABLE_MAX_CONCURRENT_SAVES must be positive")
	}
	if c.SaveWait <= 0 {
		errs = append(errs, "TABLE_SAVE_WAIT must be positive")
	}
	return errs
}

func (c *RateLimitConfig) problems() []string {
	if !c.Enabled {
		return nil
	}
	var errs []string
	if c.RequestsPerMinute <= 0 {
		errs = append(errs, "RATE_LIMIT_REQUESTS_PER_MINUTE must be positive when rate limiting is enabled")
	}
	if c.ColumnLimit <= 0 {
		errs = append(errs, "RATE_LIMIT_COLUMNS must be positive when rate limiting is enabled")
	}
	return errs
}

func (c *SecurityConfig) problems() []string {
	var errs []string
	if c.RequireAPIKey && len(c.APIKeys) == 0 {
		errs = append(errs, "REQUIRE_API_KEY is true but API_KEYS is empty; configure at least one API key or disable auth")
	}
	if !validCookieName(c.OwnerCookie) {
		errs = append(errs, fmt.Sprintf("OWNER_COOKIE (%q) must be a non-empty cookie name", c.OwnerCookie))
	}
	for _, p := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			errs = append(errs, fmt.Sprintf("TRUSTED_PROXIES entry %q is neither a CIDR nor an IP address", p))
		}
	}
	return errs
}

// validCookieName reports whether name is an RFC 6265 token.
func validCookieName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if r <= ' ' || r >= 0x7f || strings.ContainsRune(`()<>@,;:\"/[]?={}`, r) {
			return false
		}
	}
	return true
}

func (c *LoggingConfig) problems() []string {
	var errs []string
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Level))
	}
	switch strings.ToLower(c.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Format))
	}
	return errs
}

// String returns a representation safe for logging: the database URL and
// API keys are masked.
func (c *Config) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Config{Server: {Host: %q, Port: %d}, ", c.Server.Host, c.Server.Port)
	fmt.Fprintf(&b, "Database: {Driver: %q, Rows: %q, URL: [MASKED], SQLitePath: %q, MaxConns: %d}, ",
		c.Database.Driver, c.Database.Rows, c.Database.SQLitePath, c.Database.MaxConns)
	fmt.Fprintf(&b, "Table: {PageSize: %d, SkeletonRows: %d, ColumnsFile: %q, Watch: %v, MaxConcurrentSaves: %d}, ",
		c.Table.PageSize, c.Table.SkeletonRows, c.Table.ColumnsFile, c.Table.WatchColumns, c.Table.MaxConcurrentSaves)
	fmt.Fprintf(&b, "Rate: {Enabled: %v, RequestsPerMinute: %d, ColumnLimit: %d}, ",
		c.Rate.Enabled, c.Rate.RequestsPerMinute, c.Rate.ColumnLimit)
	fmt.Fprintf(&b, "Security: {RequireAPIKey: %v, APIKeys: [%d MASKED], OwnerCookie: %q, TrustedProxies: %d}, ",
		c.Security.RequireAPIKey, len(c.Security.APIKeys), c.Security.OwnerCookie, len(c.Security.TrustedProxies))
	fmt.Fprintf(&b, "Logging: {Level: %q, Format: %q}}", c.Logging.Level, c.Logging.Format)
	return b.String()
}
