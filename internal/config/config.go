package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the engine's runtime configuration.
type Config struct {
	DatabaseDSN  string
	CatalogRoot  string
	Debug        bool
	DefaultDown  int
}

// LoadConfig loads configuration from a .env file (if present) and the
// environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseDSN: os.Getenv("DTS_DB_DSN"),
		CatalogRoot: os.Getenv("DTS_CATALOG_ROOT"),
		DefaultDown: 1,
	}

	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = "dts.db"
	}
	if cfg.CatalogRoot == "" {
		cfg.CatalogRoot = "."
	}

	if debugStr := os.Getenv("DTS_DEBUG"); debugStr != "" {
		if debug, err := strconv.ParseBool(debugStr); err == nil {
			cfg.Debug = debug
		}
	}

	if downStr := os.Getenv("DTS_DEFAULT_DOWN"); downStr != "" {
		if down, err := strconv.Atoi(downStr); err == nil && down >= -1 {
			cfg.DefaultDown = down
		}
	}

	return cfg
}
