// nti-admin/internal/store/gormstore/expenses.go

package gormstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

func (s *Store) Expenses(ctx context.Context) ([]models.Expense, error) {
	var expenses []models.Expense
	err := s.db.WithContext(ctx).Order("spent_at DESC").Find(&expenses).Error
	return expenses, translate(err)
}

func (s *Store) RecordExpense(ctx context.Context, expense *models.Expense, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(expense).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) DeleteExpense(ctx context.Context, id uint, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Expense{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) DepartmentByID(ctx context.Context, id uint) (models.Department, error) {
	var dep models.Department
	err := s.db.WithContext(ctx).Preload("Installments").First(&dep, id).Error
	return dep, translate(err)
}

func (s *Store) Departments(ctx context.Context) ([]models.Department, error) {
	var deps []models.Department
	err := s.db.WithContext(ctx).Preload("Installments").Order("name ASC").Find(&deps).Error
	return deps, translate(err)
}
