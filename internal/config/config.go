// Package config loads the dashboard configuration from environment variables
// with defaults, and validates every setting on startup to fail fast on
// misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Store    StoreConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
	Display  DisplayConfig
	Export   ExportConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware deadline for a single request.
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatabaseConfig holds PostgreSQL pool settings. URL is required only for
// the postgres store driver.
type DatabaseConfig struct {
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"10"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"2"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`

	// MigrateOnStart applies pending goose migrations before serving.
	MigrateOnStart bool `env:"DB_MIGRATE_ON_START" default:"true"`
}

// StoreConfig selects the data layer.
type StoreConfig struct {
	// Driver is "postgres" or "memory" (default: postgres)
	Driver string `env:"STORE_DRIVER" default:"postgres"`

	// FixturesPath is a YAML dataset; empty selects the embedded one.
	FixturesPath string `env:"STORE_FIXTURES_PATH"`

	// SeedOnStart upserts the fixtures into PostgreSQL before serving.
	// The memory store is always loaded from fixtures.
	SeedOnStart bool `env:"STORE_SEED_ON_START" default:"false"`
}

// RateLimitConfig holds per-IP rate limiting settings.
type RateLimitConfig struct {
	Enabled           bool `env:"RATE_LIMIT_ENABLED" default:"true"`
	RequestsPerMinute int  `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
	Burst             int  `env:"RATE_LIMIT_BURST" default:"20"`

	// ExportLimit is requests per minute for report downloads (default: 10)
	ExportLimit int `env:"RATE_LIMIT_EXPORT" default:"10"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	EnableCSP bool `env:"SECURITY_ENABLE_CSP" default:"true"`

	// RequireAPIKey guards the /api routes with X-API-Key.
	RequireAPIKey bool     `env:"REQUIRE_API_KEY" default:"false"`
	APIKeys       []string `env:"API_KEYS"`

	// CORSOrigins lists origins allowed to call /api (default: none)
	CORSOrigins []string `env:"CORS_ALLOWED_ORIGINS"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// DisplayConfig holds presentation settings.
type DisplayConfig struct {
	// PageSize is rows or cards per page (default: 10)
	PageSize int `env:"PAGE_SIZE" default:"10"`

	// TimeZone renders application times (default: Europe/Moscow)
	TimeZone string `env:"DISPLAY_TIMEZONE" default:"Europe/Moscow"`

	// RankingRefresh is the cron schedule of the rating cache refresh.
	RankingRefresh string `env:"RANKING_REFRESH_SCHEDULE" default:"*/5 * * * *"`
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	MaxConcurrent int           `env:"EXPORT_MAX_CONCURRENT" default:"4"`
	MaxWait       time.Duration `env:"EXPORT_MAX_WAIT" default:"10s"`

	// FontPath replaces the bundled PDF report font with a TTF file.
	FontPath string `env:"EXPORT_FONT_PATH"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Location returns the display time zone. Validate guarantees it loads.
func (c *DisplayConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}
