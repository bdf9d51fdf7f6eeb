// nti-admin/config/database.go

package config

import (
	"log/slog"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the Postgres connection. TranslateError is required:
// the storage layer maps gorm.ErrDuplicatedKey to its own sentinel.
func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		slog.Error("database connection failed", "error", err)
		return nil, err
	}

	slog.Info("connected to database")
	return db, nil
}
