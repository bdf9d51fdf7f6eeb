// nti-admin/internal/store/inmem/staff.go

package inmem

import (
	"context"
	"sort"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

func cloneStaff(src *models.Staff) models.Staff {
	out := *src
	out.SalaryPayments = make([]models.SalaryPayment, len(src.SalaryPayments))
	copy(out.SalaryPayments, src.SalaryPayments)
	return out
}

func (s *Store) StaffByID(_ context.Context, id uint) (models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	staff, ok := s.staff[id]
	if !ok {
		return models.Staff{}, store.ErrNotFound
	}
	return cloneStaff(staff), nil
}

func (s *Store) StaffList(_ context.Context) ([]models.Staff, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]models.Staff, 0, len(s.staff))
	for _, staff := range s.staff {
		list = append(list, cloneStaff(staff))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (s *Store) CreateStaff(_ context.Context, staff *models.Staff) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff.ID = s.id()
	stored := cloneStaff(staff)
	s.staff[staff.ID] = &stored
	return nil
}

func (s *Store) DeleteStaff(_ context.Context, id uint, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.staff[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.staff, id)
	for key := range s.salaries {
		if key.staffID == id {
			delete(s.salaries, key)
		}
	}
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) SalaryPaid(_ context.Context, staffID uint, month, year int) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.salaries[salaryKey{staffID: staffID, month: month, year: year}], nil
}

func (s *Store) RecordSalary(_ context.Context, payment *models.SalaryPayment, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	staff, ok := s.staff[payment.StaffID]
	if !ok {
		return store.ErrNotFound
	}
	key := salaryKey{staffID: payment.StaffID, month: payment.Month, year: payment.Year}
	if s.salaries[key] {
		return store.ErrDuplicate
	}
	payment.ID = s.id()
	staff.SalaryPayments = append(staff.SalaryPayments, *payment)
	s.salaries[key] = true
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) SalariesInYear(_ context.Context, year int) ([]models.SalaryPayment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var payments []models.SalaryPayment
	for _, staff := range s.staff {
		for _, p := range staff.SalaryPayments {
			if p.Year == year {
				payments = append(payments, p)
			}
		}
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Month < payments[j].Month })
	return payments, nil
}

func (s *Store) Expenses(_ context.Context) ([]models.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	expenses := make([]models.Expense, 0, len(s.expenses))
	for _, e := range s.expenses {
		expenses = append(expenses, *e)
	}
	sort.Slice(expenses, func(i, j int) bool { return expenses[i].SpentAt.After(expenses[j].SpentAt) })
	return expenses, nil
}

func (s *Store) RecordExpense(_ context.Context, expense *models.Expense, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	expense.ID = s.id()
	stored := *expense
	s.expenses[expense.ID] = &stored
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id uint, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.expenses[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.expenses, id)
	s.appendActivityLocked(entry)
	return nil
}
