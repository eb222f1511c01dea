package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != DriverPostgres {
		t.Errorf("Store.Driver = %q, want %q", cfg.Store.Driver, DriverPostgres)
	}
	if !cfg.Database.MigrateOnStart {
		t.Error("Database.MigrateOnStart = false, want true")
	}
	if cfg.Display.PageSize != 10 {
		t.Errorf("Display.PageSize = %d, want 10", cfg.Display.PageSize)
	}
	if cfg.Display.RankingRefresh != "*/5 * * * *" {
		t.Errorf("Display.RankingRefresh = %q", cfg.Display.RankingRefresh)
	}
	if cfg.Export.MaxConcurrent != 4 {
		t.Errorf("Export.MaxConcurrent = %d, want 4", cfg.Export.MaxConcurrent)
	}
	if cfg.Export.MaxWait != 10*time.Second {
		t.Errorf("Export.MaxWait = %v, want 10s", cfg.Export.MaxWait)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want 100", cfg.Rate.RequestsPerMinute)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/test")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("EXPORT_MAX_WAIT", "1m30s")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PAGE_SIZE", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Export.MaxWait != 90*time.Second {
		t.Errorf("Export.MaxWait = %v, want 1m30s", cfg.Export.MaxWait)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Display.PageSize != 25 {
		t.Errorf("Display.PageSize = %d, want 25", cfg.Display.PageSize)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_URL", "postgres://localhost/alttest")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.URL != "postgres://localhost/alttest" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
}

func TestLoad_DatabaseURLOnlyForPostgres(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	if _, err := LoadFrom(getenv); err == nil || !strings.Contains(err.Error(), "DATABASE_URL is required") {
		t.Errorf("LoadFrom() error = %v, want missing DATABASE_URL", err)
	}

	env["STORE_DRIVER"] = DriverMemory
	cfg, err := LoadFrom(getenv)
	if err != nil {
		t.Fatalf("LoadFrom() with memory driver error = %v", err)
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %q, want empty", cfg.Database.URL)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	env := map[string]string{
		"STORE_DRIVER":    DriverMemory,
		"TRUSTED_PROXIES": "10.0.0.0/8, 172.16.0.0/12 , ,192.168.0.0/16",
	}

	cfg, err := LoadFrom(func(k string) string { return env[k] })
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	want := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(want) {
		t.Fatalf("TrustedProxies = %v, want %v", cfg.Security.TrustedProxies, want)
	}
	for i, v := range want {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	env := map[string]string{"STORE_DRIVER": DriverMemory, "SERVER_PORT": "eighty"}

	_, err := LoadFrom(func(k string) string { return env[k] })
	if err == nil || !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("LoadFrom() error = %v, want SERVER_PORT parse failure", err)
	}
}

func validConfig() *Config {
	return &Config{
		Server:   ServerConfig{Port: 8080, ShutdownTimeout: time.Second, RequestTimeout: time.Second},
		Database: DatabaseConfig{URL: "postgres://localhost/test", MaxConns: 10, MinConns: 2},
		Store:    StoreConfig{Driver: DriverPostgres},
		Rate:     RateLimitConfig{Enabled: true, RequestsPerMinute: 100, Burst: 20, ExportLimit: 10},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
		Display:  DisplayConfig{PageSize: 10, TimeZone: "Europe/Moscow", RankingRefresh: "*/5 * * * *"},
		Export:   ExportConfig{MaxConcurrent: 4, MaxWait: time.Second},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad port", mutate: func(c *Config) { c.Server.Port = 99999 }, wantErr: "SERVER_PORT"},
		{name: "bad driver", mutate: func(c *Config) { c.Store.Driver = "sqlite" }, wantErr: "STORE_DRIVER"},
		{name: "pool bounds", mutate: func(c *Config) { c.Database.MinConns = 50 }, wantErr: "DB_MAX_CONNS"},
		{name: "bad timezone", mutate: func(c *Config) { c.Display.TimeZone = "Mars/Olympus" }, wantErr: "DISPLAY_TIMEZONE"},
		{name: "bad cron", mutate: func(c *Config) { c.Display.RankingRefresh = "hourly-ish" }, wantErr: "RANKING_REFRESH_SCHEDULE"},
		{name: "zero page size", mutate: func(c *Config) { c.Display.PageSize = 0 }, wantErr: "PAGE_SIZE"},
		{name: "missing font", mutate: func(c *Config) { c.Export.FontPath = "/nonexistent.ttf" }, wantErr: "EXPORT_FONT_PATH"},
		{name: "api key required", mutate: func(c *Config) { c.Security.RequireAPIKey = true }, wantErr: "API_KEYS"},
		{name: "bad log format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "LOG_FORMAT"},
		{name: "rate disabled skips rate checks", mutate: func(c *Config) {
			c.Rate = RateLimitConfig{Enabled: false}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"SERVER_PORT", "LOG_LEVEL"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s", err, want)
		}
	}
}

func TestString_MasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.Database.URL = "postgres://user:secret@db/arena"
	cfg.Security.APIKeys = []string{"key-123"}

	s := cfg.String()
	if strings.Contains(s, "secret") || strings.Contains(s, "key-123") {
		t.Errorf("String() leaks secrets: %s", s)
	}
	if !strings.Contains(s, "[MASKED]") {
		t.Errorf("String() = %s, want masked URL", s)
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "127.0.0.1", Port: 9000}
	if got := c.Addr(); got != "127.0.0.1:9000" {
		t.Errorf("Addr() = %q", got)
	}
	c.Host = ""
	if got := c.Addr(); got != ":9000" {
		t.Errorf("Addr() = %q", got)
	}
}
