// nti-admin/internal/store/gormstore/migrate.go

package gormstore

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/models"
)

// Migrate creates or updates the schema for every model.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(
		&models.Department{},
		&models.PlanInstallment{},
		&models.Student{},
		&models.StudentSeq{},
		&models.Payment{},
		&models.YearPayment{},
		&models.Staff{},
		&models.SalaryPayment{},
		&models.Expense{},
		&models.Role{},
		&models.Permission{},
		&models.User{},
		&models.ActivityLog{},
		&models.Setting{},
	)
}

// Seed inserts the permission catalog, the fixed roles with their
// default sets and baseline settings. Existing rows are left alone so
// edited role sets survive restarts.
func (s *Store) Seed(ctx context.Context, catalog []models.Permission, defaults map[string][]string, settings map[string]string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range catalog {
			var existing models.Permission
			err := tx.Where("name = ?", p.Name).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&p).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
		for role, perms := range defaults {
			var existing models.Role
			err := tx.Where("name = ?", role).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			r := models.Role{Name: role}
			if err := tx.Create(&r).Error; err != nil {
				return err
			}
			if len(perms) == 0 {
				continue
			}
			var rows []models.Permission
			if err := tx.Where("name IN ?", perms).Find(&rows).Error; err != nil {
				return err
			}
			if err := tx.Model(&r).Association("Permissions").Replace(rows); err != nil {
				return err
			}
		}
		for key, value := range settings {
			var existing models.Setting
			err := tx.Where("key = ?", key).First(&existing).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := tx.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
					return err
				}
			} else if err != nil {
				return err
			}
		}
		return nil
	})
}

// EnsureAdmin provisions the bootstrap superadmin account when no user
// exists yet.
func (s *Store) EnsureAdmin(ctx context.Context, login, email, password, role string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		var r models.Role
		if err := tx.Where("name = ?", role).First(&r).Error; err != nil {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		return tx.Create(&models.User{
			Login:        login,
			Email:        email,
			FullName:     "Administrator",
			PasswordHash: string(hash),
			Status:       "active",
			RoleID:       r.ID,
		}).Error
	})
}
