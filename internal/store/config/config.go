// Package config handles configuration for the store, including defaults,
// an optional .env/environment overlay, and command-line flags.
package config

import (
	"log/slog"
	"os"
)

// Config holds runtime settings for the store.
//
// Fields:
//   - AccountsFile: path of the comma-separated accounts file.
//   - ProductsFile: path of the comma-separated products file.
//   - LogLevel: minimum log level ("debug", "info", "warn", "error").
type Config struct {
	AccountsFile string
	ProductsFile string
	LogLevel     string
}

// LoadDefaults populates Config with the conventional data-file locations.
func (c *Config) LoadDefaults() {
	c.AccountsFile = "accounts.txt"
	c.ProductsFile = "products.txt"
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional .env file and the environment, and finally from
// command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg, os.Args[1:])
	return cfg
}

// SlogLevel maps the configured level name onto a slog.Level. Unknown
// names fall back to Info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
