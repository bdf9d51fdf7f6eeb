// Package gormstore implements the store boundary on gorm/postgres.
// The DB must be opened with TranslateError so unique violations map
// onto gorm.ErrDuplicatedKey.
package gormstore

import (
	"errors"

	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/store"
)

// Store is the gorm-backed persistence adapter.
type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for read-side queries (listing,
// pagination, search) that do not go through the engine.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return store.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return store.ErrDuplicate
	}
	return err
}
