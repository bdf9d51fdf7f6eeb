// nti-admin/internal/store/inmem/students.go

package inmem

import (
	"context"
	"sort"

	"github.com/hamagold/nti-admin/internal/store"
	"github.com/hamagold/nti-admin/models"
)

func cloneStudent(src *models.Student) models.Student {
	out := *src
	out.Payments = make([]models.Payment, len(src.Payments))
	copy(out.Payments, src.Payments)
	out.YearPayments = make([]models.YearPayment, len(src.YearPayments))
	copy(out.YearPayments, src.YearPayments)
	return out
}

func (s *Store) StudentByID(_ context.Context, id uint) (models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	student, ok := s.students[id]
	if !ok {
		return models.Student{}, store.ErrNotFound
	}
	out := cloneStudent(student)
	if student.DepartmentID != nil {
		if dep, ok := s.departments[*student.DepartmentID]; ok {
			d := *dep
			out.Department = &d
		}
	}
	return out, nil
}

func (s *Store) Students(_ context.Context) ([]models.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	students := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		out := cloneStudent(student)
		if student.DepartmentID != nil {
			if dep, ok := s.departments[*student.DepartmentID]; ok {
				d := *dep
				out.Department = &d
			}
		}
		students = append(students, out)
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID > students[j].ID })
	return students, nil
}

func (s *Store) NextStudentSeq(_ context.Context, departmentID uint, year int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := seqKey{departmentID: departmentID, year: year}
	s.seqs[key]++
	return s.seqs[key], nil
}

func (s *Store) EnrollStudent(_ context.Context, student *models.Student, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.students {
		if existing.Code == student.Code {
			return store.ErrDuplicate
		}
	}
	student.ID = s.id()
	for i := range student.YearPayments {
		student.YearPayments[i].ID = s.id()
		student.YearPayments[i].StudentID = student.ID
	}
	stored := cloneStudent(student)
	s.students[student.ID] = &stored
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) RecordPayment(_ context.Context, student *models.Student, payment *models.Payment, yp *models.YearPayment, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.students[student.ID]
	if !ok {
		return store.ErrNotFound
	}
	if stored.Version != student.Version {
		return store.ErrVersionConflict
	}
	stored.PaidAmount = student.PaidAmount
	stored.Version++
	payment.ID = s.id()
	stored.Payments = append(stored.Payments, *payment)
	for i := range stored.YearPayments {
		if stored.YearPayments[i].Year == yp.Year {
			stored.YearPayments[i].PaidAmount = yp.PaidAmount
			stored.YearPayments[i].IsCompleted = yp.IsCompleted
		}
	}
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) AdvanceYear(_ context.Context, student *models.Student, next *models.YearPayment, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.students[student.ID]
	if !ok {
		return store.ErrNotFound
	}
	if stored.Version != student.Version {
		return store.ErrVersionConflict
	}
	stored.Year = student.Year
	stored.TotalFee = student.TotalFee
	stored.PaidAmount = student.PaidAmount
	stored.Version++
	next.ID = s.id()
	next.StudentID = stored.ID
	stored.YearPayments = append(stored.YearPayments, *next)
	s.appendActivityLocked(entry)
	return nil
}

func (s *Store) DeleteStudent(_ context.Context, id uint, entry *models.ActivityLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.students[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.students, id)
	s.appendActivityLocked(entry)
	return nil
}
