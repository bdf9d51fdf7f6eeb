// nti-admin/internal/ledger/students.go

package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// EnrollInput carries the fields of a new enrollment. TotalFee may be
// nil to take the department's default yearly fee.
type EnrollInput struct {
	FirstName    string
	LastName     string
	Phone        string
	Address      string
	Room         string
	DepartmentID uint
	Year         int
	TotalFee     *decimal.Decimal
}

// StudentCode derives the human-readable code for an enrollment:
// NTI-<first three letters of the department, uppercased>-<year, two
// digits>-<sequence, three digits>. The sequence comes from an
// atomically reserved per-(department, year) counter.
func StudentCode(department string, year, seq int) string {
	letters := []rune(strings.ToUpper(department))
	if len(letters) > 3 {
		letters = letters[:3]
	}
	return fmt.Sprintf("NTI-%s-%02d-%03d", string(letters), year, seq)
}

// EnrollStudent creates the student together with the first year's
// ledger row.
func (e *Engine) EnrollStudent(ctx context.Context, actor Actor, in EnrollInput) (models.Student, error) {
	if err := e.authorize(ctx, actor, perm.PermAddStudent); err != nil {
		return models.Student{}, err
	}
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return models.Student{}, fmt.Errorf("%w: first and last name are required", ErrValidation)
	}
	if in.Year == 0 {
		in.Year = models.MinYear
	}
	if in.Year < models.MinYear || in.Year > models.MaxYear {
		return models.Student{}, fmt.Errorf("%w: year must be between %d and %d", ErrValidation, models.MinYear, models.MaxYear)
	}

	dep, err := e.store.DepartmentByID(ctx, in.DepartmentID)
	if err != nil {
		return models.Student{}, fmt.Errorf("%w: unknown department", ErrValidation)
	}
	fee := dep.DefaultYearlyFee
	if in.TotalFee != nil {
		fee = *in.TotalFee
	}
	if fee.Cmp(decimal.Zero) <= 0 {
		return models.Student{}, fmt.Errorf("%w: yearly fee must be positive", ErrValidation)
	}

	seq, err := e.store.NextStudentSeq(ctx, dep.ID, in.Year)
	if err != nil {
		return models.Student{}, err
	}

	now := time.Now().UTC()
	depID := dep.ID
	student := models.Student{
		Code:         StudentCode(dep.Name, in.Year, seq),
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Phone:        in.Phone,
		Address:      in.Address,
		Room:         in.Room,
		DepartmentID: &depID,
		Year:         in.Year,
		TotalFee:     fee,
		PaidAmount:   decimal.Zero,
		RegisteredAt: now,
		YearPayments: []models.YearPayment{{
			Year:       in.Year,
			TotalFee:   fee,
			PaidAmount: decimal.Zero,
		}},
	}

	entry := e.recorder.Entry(models.ActivityEnrollment,
		fmt.Sprintf("Enrolled %s (%s) into %s, year %d", student.FullName(), student.Code, dep.Name, in.Year),
		actor.Name, nil)
	if err := e.store.EnrollStudent(ctx, &student, entry); err != nil {
		return models.Student{}, err
	}
	e.recorder.Announce(*entry)
	return student, nil
}

// PaymentInput carries one tuition payment.
type PaymentInput struct {
	StudentID uint
	Amount    decimal.Decimal
	Note      string
}

// AddPayment appends a payment and rolls it into the student's current
// balance and year row. The amount must be positive and must not
// exceed the remaining balance; the payment row, balance update and
// year row update commit as one unit.
func (e *Engine) AddPayment(ctx context.Context, actor Actor, in PaymentInput) (models.Payment, error) {
	if err := e.authorize(ctx, actor, perm.PermAddPayment); err != nil {
		return models.Payment{}, err
	}
	if in.Amount.Cmp(decimal.Zero) <= 0 {
		return models.Payment{}, fmt.Errorf("%w: payment amount must be positive", ErrValidation)
	}

	student, err := e.store.StudentByID(ctx, in.StudentID)
	if err != nil {
		return models.Payment{}, err
	}
	if in.Amount.Cmp(student.Debt()) > 0 {
		return models.Payment{}, fmt.Errorf("%w: amount exceeds the remaining balance of %s",
			ErrValidation, currency.Format(student.Debt()))
	}
	row := student.CurrentYearPayment()
	if row == nil {
		return models.Payment{}, fmt.Errorf("%w: student %s has no ledger row for year %d", ErrPrecondition, student.Code, student.Year)
	}

	student.PaidAmount = student.PaidAmount.Add(in.Amount)
	updated := *row
	updated.PaidAmount = updated.PaidAmount.Add(in.Amount)
	updated.Sync()

	payment := models.Payment{
		StudentID: student.ID,
		Amount:    in.Amount,
		ReceiptNo: uuid.NewString(),
		Note:      in.Note,
		PaidAt:    time.Now().UTC(),
	}

	amount := in.Amount
	entry := e.recorder.Entry(models.ActivityPayment,
		fmt.Sprintf("Payment of %s from %s (%s)", currency.Format(in.Amount), student.FullName(), student.Code),
		actor.Name, &amount)
	if err := e.store.RecordPayment(ctx, &student, &payment, &updated, entry); err != nil {
		return models.Payment{}, err
	}
	e.recorder.Announce(*entry)
	return payment, nil
}

// ProgressToNextYear promotes a student whose current year is fully
// paid. The next year's fee resolves in three tiers: the explicit
// argument, the department default, the current fee carried forward.
// A failed gate leaves no trace: no mutation, no audit entry.
func (e *Engine) ProgressToNextYear(ctx context.Context, actor Actor, studentID uint, newFee *decimal.Decimal) (models.Student, error) {
	if err := e.authorize(ctx, actor, perm.PermProgressStudent); err != nil {
		return models.Student{}, err
	}
	if newFee != nil && newFee.Cmp(decimal.Zero) <= 0 {
		return models.Student{}, fmt.Errorf("%w: yearly fee must be positive", ErrValidation)
	}

	student, err := e.store.StudentByID(ctx, studentID)
	if err != nil {
		return models.Student{}, err
	}
	if student.PaidAmount.Cmp(student.TotalFee) < 0 {
		return models.Student{}, fmt.Errorf("%w: current year is not fully paid", ErrPrecondition)
	}
	if student.Year >= models.MaxYear {
		return models.Student{}, fmt.Errorf("%w: student is already in the final year", ErrPrecondition)
	}

	fee := student.TotalFee
	switch {
	case newFee != nil:
		fee = *newFee
	case student.Department != nil && student.Department.DefaultYearlyFee.Cmp(decimal.Zero) > 0:
		fee = student.Department.DefaultYearlyFee
	}

	student.Year++
	student.TotalFee = fee
	student.PaidAmount = decimal.Zero
	next := models.YearPayment{
		StudentID:  student.ID,
		Year:       student.Year,
		TotalFee:   fee,
		PaidAmount: decimal.Zero,
	}

	entry := e.recorder.Entry(models.ActivityYearProgress,
		fmt.Sprintf("%s (%s) progressed to year %d, fee %s", student.FullName(), student.Code, student.Year, currency.Format(fee)),
		actor.Name, nil)
	if err := e.store.AdvanceYear(ctx, &student, &next, entry); err != nil {
		return models.Student{}, err
	}
	e.recorder.Announce(*entry)

	student.YearPayments = append(student.YearPayments, next)
	return student, nil
}

// DeleteStudent removes a student and, with them, their payments and
// year rows. Deletion is always explicit; nothing else removes a
// student.
func (e *Engine) DeleteStudent(ctx context.Context, actor Actor, studentID uint) error {
	if err := e.authorize(ctx, actor, perm.PermDeleteStudent); err != nil {
		return err
	}
	student, err := e.store.StudentByID(ctx, studentID)
	if err != nil {
		return err
	}
	entry := e.recorder.Entry(models.ActivityDelete,
		fmt.Sprintf("Deleted student %s (%s)", student.FullName(), student.Code),
		actor.Name, nil)
	if err := e.store.DeleteStudent(ctx, studentID, entry); err != nil {
		return err
	}
	e.recorder.Announce(*entry)
	return nil
}
