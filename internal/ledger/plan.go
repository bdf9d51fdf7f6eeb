// nti-admin/internal/ledger/plan.go

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/perm"
)

// PlannedInstallment is one suggested payment of a department plan.
type PlannedInstallment struct {
	DueDate time.Time       `json:"dueDate"`
	Amount  decimal.Decimal `json:"amount"`
}

// InstallmentPreview evaluates the student's department payment plan
// against their current balance. Formulas see the variables total,
// paid and remaining. The preview is advisory: nothing is persisted
// and the ledger never consults it.
func (e *Engine) InstallmentPreview(ctx context.Context, actor Actor, studentID uint, now time.Time) ([]PlannedInstallment, error) {
	if err := e.authorize(ctx, actor, perm.PermViewPayments); err != nil {
		return nil, err
	}

	student, err := e.store.StudentByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.DepartmentID == nil {
		return nil, fmt.Errorf("%w: student has no department", ErrValidation)
	}
	dep, err := e.store.DepartmentByID(ctx, *student.DepartmentID)
	if err != nil {
		return nil, err
	}

	total, _ := student.TotalFee.Float64()
	paid, _ := student.PaidAmount.Float64()
	parameters := map[string]interface{}{
		"total":     total,
		"paid":      paid,
		"remaining": total - paid,
	}

	var plan []PlannedInstallment
	for _, inst := range dep.Installments {
		expr, err := govaluate.NewEvaluableExpression(inst.Formula)
		if err != nil {
			return nil, fmt.Errorf("%w: bad installment formula %q", ErrValidation, inst.Formula)
		}
		result, err := expr.Evaluate(parameters)
		if err != nil {
			return nil, fmt.Errorf("%w: could not evaluate formula %q", ErrValidation, inst.Formula)
		}
		value, ok := result.(float64)
		if !ok {
			return nil, fmt.Errorf("%w: formula %q is not numeric", ErrValidation, inst.Formula)
		}

		due := time.Date(now.Year(), time.Month(inst.Month), inst.Day, 0, 0, 0, 0, time.UTC)
		// Dates already behind us belong to the next cycle.
		if due.Before(now) {
			due = due.AddDate(1, 0, 0)
		}
		plan = append(plan, PlannedInstallment{
			DueDate: due,
			Amount:  decimal.NewFromFloat(value).Round(2),
		})
	}
	return plan, nil
}
