// nti-admin/internal/store/gormstore/activity.go

package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

// appendActivityTx inserts an audit entry and trims the table down to
// the retention cap inside the caller's transaction. A nil entry is a
// no-op so engine operations can skip logging selectively.
func appendActivityTx(tx *gorm.DB, entry *models.ActivityLog) error {
	if entry == nil {
		return nil
	}
	if err := tx.Create(entry).Error; err != nil {
		return err
	}
	return tx.Exec(
		`DELETE FROM activity_logs WHERE id NOT IN (SELECT id FROM activity_logs ORDER BY id DESC LIMIT ?)`,
		store.ActivityCap,
	).Error
}

func (s *Store) AppendActivity(ctx context.Context, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) ActivityEntries(ctx context.Context, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 || limit > store.ActivityCap {
		limit = store.ActivityCap
	}
	var entries []models.ActivityLog
	err := s.db.WithContext(ctx).Order("id DESC").Limit(limit).Find(&entries).Error
	return entries, translate(err)
}

func (s *Store) ClearActivity(ctx context.Context) error {
	return translate(s.db.WithContext(ctx).Exec(`DELETE FROM activity_logs`).Error)
}
