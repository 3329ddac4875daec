package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr     string
		BasePath string
	}
	DB struct {
		Driver string
		DSN    string
	}
	// Environment selects production or development behavior for logging
	// and error responses. Valid values: production, development.
	Environment string
	LogLevel    string
}

// Load reads config from environment (BOOKMARKS_ prefix) and optional
// bookmarks-server.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarks-server")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8000")
	v.SetDefault("http.base_path", "/api")
	v.SetDefault("environment", "development")

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.HTTP.BasePath = normalizeBasePath(v.GetString("http.base_path"))
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Environment = v.GetString("environment")
	cfg.LogLevel = v.GetString("log.level")

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKS_DB_DSN is required")
	}
	switch cfg.Environment {
	case "production", "development":
	default:
		return nil, fmt.Errorf("BOOKMARKS_ENVIRONMENT must be production or development, got %q", cfg.Environment)
	}

	return cfg, nil
}

// IsProduction reports whether the server runs with production behavior:
// terse logs and generic 500 bodies.
func (c *Config) IsProduction() bool { return c.Environment == "production" }

// normalizeBasePath ensures a leading slash and no trailing slash, so the
// route mount and Location headers agree. An empty or "/" base path means
// routes are mounted at the root.
func normalizeBasePath(p string) string {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		return ""
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return p
}
