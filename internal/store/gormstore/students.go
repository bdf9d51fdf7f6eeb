// nti-admin/internal/store/gormstore/students.go

package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

func (s *Store) StudentByID(ctx context.Context, id uint) (models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("Payments").
		Preload("YearPayments").
		First(&student, id).Error
	return student, translate(err)
}

func (s *Store) Students(ctx context.Context) ([]models.Student, error) {
	var students []models.Student
	err := s.db.WithContext(ctx).
		Preload("Department").
		Preload("Payments").
		Preload("YearPayments").
		Order("created_at DESC").
		Find(&students).Error
	return students, translate(err)
}

// NextStudentSeq atomically reserves the next enrollment sequence for
// a (department, year) pair. Reserved numbers are never reused, so a
// failed enrollment leaves a gap rather than a duplicate code.
func (s *Store) NextStudentSeq(ctx context.Context, departmentID uint, year int) (int, error) {
	row := models.StudentSeq{DepartmentID: departmentID, Year: year, Seq: 1}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "department_id"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"seq": gorm.Expr("student_seqs.seq + 1")}),
		}).Create(&row).Error; err != nil {
			return err
		}
		return tx.Where("department_id = ? AND year = ?", departmentID, year).First(&row).Error
	})
	return row.Seq, translate(err)
}

func (s *Store) EnrollStudent(ctx context.Context, student *models.Student, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) RecordPayment(ctx context.Context, student *models.Student, payment *models.Payment, yp *models.YearPayment, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Student{}).
			Where("id = ? AND version = ?", student.ID, student.Version).
			Updates(map[string]interface{}{
				"paid_amount": student.PaidAmount,
				"version":     student.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrVersionConflict
		}
		if err := tx.Create(payment).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.YearPayment{}).
			Where("student_id = ? AND year = ?", student.ID, yp.Year).
			Updates(map[string]interface{}{
				"paid_amount":  yp.PaidAmount,
				"is_completed": yp.IsCompleted,
			}).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) AdvanceYear(ctx context.Context, student *models.Student, next *models.YearPayment, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Student{}).
			Where("id = ? AND version = ?", student.ID, student.Version).
			Updates(map[string]interface{}{
				"year":        student.Year,
				"total_fee":   student.TotalFee,
				"paid_amount": student.PaidAmount,
				"version":     student.Version + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrVersionConflict
		}
		if err := tx.Create(next).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}

func (s *Store) DeleteStudent(ctx context.Context, id uint, entry *models.ActivityLog) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Student{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return store.ErrNotFound
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ?", id).Delete(&models.YearPayment{}).Error; err != nil {
			return err
		}
		return appendActivityTx(tx, entry)
	})
	return translate(err)
}
