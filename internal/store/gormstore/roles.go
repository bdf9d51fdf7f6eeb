// nti-admin/internal/store/gormstore/roles.go

package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/models"
)

func (s *Store) RolePermissions(ctx context.Context, role string) ([]string, bool, error) {
	var r models.Role
	err := s.db.WithContext(ctx).Preload("Permissions").Where("name = ?", role).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, translate(err)
	}
	names := make([]string, 0, len(r.Permissions))
	for _, p := range r.Permissions {
		names = append(names, p.Name)
	}
	return names, true, nil
}

// ReplaceRolePermissions swaps the role's permission set for the given
// names. Names without a matching permission row are dropped.
func (s *Store) ReplaceRolePermissions(ctx context.Context, role string, perms []string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var r models.Role
		if err := tx.Where("name = ?", role).First(&r).Error; err != nil {
			return err
		}
		var rows []models.Permission
		if len(perms) > 0 {
			if err := tx.Where("name IN ?", perms).Find(&rows).Error; err != nil {
				return err
			}
		}
		return tx.Model(&r).Association("Permissions").Replace(rows)
	})
	return translate(err)
}

func (s *Store) Setting(ctx context.Context, key string) (string, bool, error) {
	var row models.Setting
	err := s.db.WithContext(ctx).Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, translate(err)
	}
	return row.Value, true, nil
}

func (s *Store) PutSetting(ctx context.Context, key, value string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Setting
		err := tx.Where("key = ?", key).First(&row).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return tx.Create(&models.Setting{Key: key, Value: value}).Error
		}
		if err != nil {
			return err
		}
		return tx.Model(&row).Update("value", value).Error
	})
	return translate(err)
}
