// nti-admin/internal/ledger/staff.go

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// StaffInput carries a new staff member. DepartmentID is only kept for
// teachers.
type StaffInput struct {
	FullName      string
	Phone         string
	Role          string
	DepartmentID  *uint
	MonthlySalary decimal.Decimal
	JoinedAt      time.Time
}

func (e *Engine) AddStaff(ctx context.Context, actor Actor, in StaffInput) (models.Staff, error) {
	if err := e.authorize(ctx, actor, perm.PermAddStaff); err != nil {
		return models.Staff{}, err
	}
	if strings.TrimSpace(in.FullName) == "" {
		return models.Staff{}, fmt.Errorf("%w: full name is required", ErrValidation)
	}
	if in.Role != models.StaffRoleTeacher && in.Role != models.StaffRoleEmployee {
		return models.Staff{}, fmt.Errorf("%w: role must be %q or %q", ErrValidation, models.StaffRoleTeacher, models.StaffRoleEmployee)
	}
	if in.MonthlySalary.Cmp(decimal.Zero) <= 0 {
		return models.Staff{}, fmt.Errorf("%w: monthly salary must be positive", ErrValidation)
	}
	if in.Role != models.StaffRoleTeacher {
		in.DepartmentID = nil
	}
	if in.JoinedAt.IsZero() {
		in.JoinedAt = time.Now().UTC()
	}

	staff := models.Staff{
		FullName:      strings.TrimSpace(in.FullName),
		Phone:         in.Phone,
		Role:          in.Role,
		DepartmentID:  in.DepartmentID,
		MonthlySalary: in.MonthlySalary,
		JoinedAt:      in.JoinedAt,
	}
	if err := e.store.CreateStaff(ctx, &staff); err != nil {
		return models.Staff{}, err
	}
	if err := e.recorder.Record(ctx, models.ActivityEnrollment,
		fmt.Sprintf("Added %s %s", staff.Role, staff.FullName), actor.Name, nil); err != nil {
		return staff, err
	}
	return staff, nil
}

// SalaryInput carries one month's salary payment. A zero Amount takes
// the staff member's configured monthly salary.
type SalaryInput struct {
	StaffID uint
	Month   int
	Year    int
	Amount  decimal.Decimal
	Note    string
}

// AddSalaryPayment pays one (staff, month, year) exactly once. There
// is no rolling balance for staff: a month is payable iff no matching
// record exists yet.
func (e *Engine) AddSalaryPayment(ctx context.Context, actor Actor, in SalaryInput) (models.SalaryPayment, error) {
	if err := e.authorize(ctx, actor, perm.PermAddSalary); err != nil {
		return models.SalaryPayment{}, err
	}
	if in.Month < 1 || in.Month > 12 {
		return models.SalaryPayment{}, fmt.Errorf("%w: month must be between 1 and 12", ErrValidation)
	}
	if in.Year < 2000 || in.Year > 2200 {
		return models.SalaryPayment{}, fmt.Errorf("%w: implausible year %d", ErrValidation, in.Year)
	}

	staff, err := e.store.StaffByID(ctx, in.StaffID)
	if err != nil {
		return models.SalaryPayment{}, err
	}
	paid, err := e.store.SalaryPaid(ctx, staff.ID, in.Month, in.Year)
	if err != nil {
		return models.SalaryPayment{}, err
	}
	if paid {
		return models.SalaryPayment{}, fmt.Errorf("%w: salary for %02d/%d is already paid", ErrConflict, in.Month, in.Year)
	}

	amount := in.Amount
	if amount.IsZero() {
		amount = staff.MonthlySalary
	}
	if amount.Cmp(decimal.Zero) <= 0 {
		return models.SalaryPayment{}, fmt.Errorf("%w: salary amount must be positive", ErrValidation)
	}

	payment := models.SalaryPayment{
		StaffID: staff.ID,
		Month:   in.Month,
		Year:    in.Year,
		Amount:  amount,
		Note:    in.Note,
		PaidAt:  time.Now().UTC(),
	}
	entry := e.recorder.Entry(models.ActivitySalary,
		fmt.Sprintf("Salary of %s to %s for %02d/%d", currency.Format(amount), staff.FullName, in.Month, in.Year),
		actor.Name, &amount)
	if err := e.store.RecordSalary(ctx, &payment, entry); err != nil {
		return models.SalaryPayment{}, err
	}
	e.recorder.Announce(*entry)
	return payment, nil
}

func (e *Engine) DeleteStaff(ctx context.Context, actor Actor, staffID uint) error {
	if err := e.authorize(ctx, actor, perm.PermDeleteStaff); err != nil {
		return err
	}
	staff, err := e.store.StaffByID(ctx, staffID)
	if err != nil {
		return err
	}
	entry := e.recorder.Entry(models.ActivityDelete,
		fmt.Sprintf("Deleted %s %s", staff.Role, staff.FullName), actor.Name, nil)
	if err := e.store.DeleteStaff(ctx, staffID, entry); err != nil {
		return err
	}
	e.recorder.Announce(*entry)
	return nil
}
