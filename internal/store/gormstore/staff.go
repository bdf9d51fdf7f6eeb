// nti-admin/internal/store/gormstore/staff.go

package gormstore

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

func (s *Store) StaffByID(ctx context.Context, id uint) (models.Staff, error) {
	var staff models.Staff
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("SalaryPayments").
		First(&staff, id).Error
	return staff, translate(err)
}

func (s *Store) StaffList(ctx context.Context) ([]models.Staff, error) {
	var staff []models.Staff
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("SalaryPayments").
		Order("created_at DESC").
		Find(&staff).Error
	return staff, translate(err)
}

func (s *Store) CreateStaff(ctx context.Context, staff *models.Staff) error {
	return translate(s.db.WithContext(ctx).Create(staff).Error)
}

func (s *Store) DeleteStaff(ctx context.Context, id uint, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Staff{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		if err := tx.Where("staff_id = ?", id).Delete(&models.SalaryPayment{}).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) SalaryPaid(ctx context.Context, staffID uint, month, year int) (bool, error) {
	var p models.SalaryPayment
	err := s.db.WithContext(ctx).
		Where("staff_id = ? AND month = ? AND year = ?", staffID, month, year).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, translate(err)
}

func (s *Store) RecordSalary(ctx context.Context, payment *models.SalaryPayment, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) SalariesInYear(ctx context.Context, year int) ([]models.SalaryPayment, error) {
	var payments []models.SalaryPayment
	err := s.db.WithContext(ctx).
		Where("year = ?", year).
		Order("month ASC").
		Find(&payments).Error
	return payments, translate(err)
}
