// Package store persists enumerated reference trees so a navigation or
// passage query doesn't need to re-walk and re-resolve a document from
// scratch on every request.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens (creating if necessary) the sqlite database at dsn and
// runs migrations. dsn may be a file path or ":memory:".
func Connect(dsn string, debug bool) (*gorm.DB, error) {
	if dsn != ":memory:" {
		if dir := filepath.Dir(dsn); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("store: creating database directory: %w", err)
			}
		}
	}

	cfg := &gorm.Config{}
	if debug {
		cfg.Logger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return db, nil
}

// Migrate ensures the store's schema exists.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Document{}, &Tree{})
}
