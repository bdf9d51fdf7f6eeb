// Package store defines the persistence boundary consumed by the
// ledger engine and the read-side projections. Implementations must
// keep each mutating call atomic: the dependent writes of a payment or
// a promotion either all commit or none do.
package store

import (
	"context"
	"errors"

	"github.com/hamagold/nti-admin/models"
)

// ActivityCap is the number of audit entries retained. Appending
// beyond the cap silently drops the oldest rows.
const ActivityCap = 100

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrVersionConflict is returned when a guarded write lost a race
	// against a concurrent mutation of the same row.
	ErrVersionConflict = errors.New("version conflict")
	// ErrDuplicate is returned when a uniqueness rule would be broken.
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the full persistence surface. Mutating methods that take an
// *models.ActivityLog persist the audit entry in the same transaction;
// a nil entry skips it.
type Store interface {
	// Students.
	StudentByID(ctx context.Context, id uint) (models.Student, error)
	Students(ctx context.Context) ([]models.Student, error)
	NextStudentSeq(ctx context.Context, departmentID uint, year int) (int, error)
	EnrollStudent(ctx context.Context, s *models.Student, entry *models.ActivityLog) error
	// RecordPayment persists the payment row, the updated student
	// balance and the updated year row as one unit, guarded by the
	// student's version.
	RecordPayment(ctx context.Context, s *models.Student, p *models.Payment, yp *models.YearPayment, entry *models.ActivityLog) error
	// AdvanceYear persists the new year row and the reset student row
	// as one unit, guarded by the student's version.
	AdvanceYear(ctx context.Context, s *models.Student, next *models.YearPayment, entry *models.ActivityLog) error
	DeleteStudent(ctx context.Context, id uint, entry *models.ActivityLog) error

	// Staff.
	StaffByID(ctx context.Context, id uint) (models.Staff, error)
	StaffList(ctx context.Context) ([]models.Staff, error)
	CreateStaff(ctx context.Context, s *models.Staff) error
	DeleteStaff(ctx context.Context, id uint, entry *models.ActivityLog) error
	SalaryPaid(ctx context.Context, staffID uint, month, year int) (bool, error)
	RecordSalary(ctx context.Context, p *models.SalaryPayment, entry *models.ActivityLog) error
	SalariesInYear(ctx context.Context, year int) ([]models.SalaryPayment, error)

	// Expenses.
	Expenses(ctx context.Context) ([]models.Expense, error)
	RecordExpense(ctx context.Context, e *models.Expense, entry *models.ActivityLog) error
	DeleteExpense(ctx context.Context, id uint, entry *models.ActivityLog) error

	// Departments.
	DepartmentByID(ctx context.Context, id uint) (models.Department, error)
	Departments(ctx context.Context) ([]models.Department, error)

	// Role permission sets. RolePermissions reports found=false when
	// no stored override exists for the role.
	RolePermissions(ctx context.Context, role string) (perms []string, found bool, err error)
	ReplaceRolePermissions(ctx context.Context, role string, perms []string) error

	// Activity log.
	AppendActivity(ctx context.Context, e *models.ActivityLog) error
	ActivityEntries(ctx context.Context, limit int) ([]models.ActivityLog, error)
	ClearActivity(ctx context.Context) error

	// Settings.
	Setting(ctx context.Context, key string) (value string, found bool, err error)
	PutSetting(ctx context.Context, key, value string) error
}
