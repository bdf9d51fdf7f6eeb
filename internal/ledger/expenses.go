// nti-admin/internal/ledger/expenses.go

package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hamagold/nti-admin/internal/currency"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/models"
)

// ExpenseInput carries a new expense.
type ExpenseInput struct {
	Category string
	Amount   decimal.Decimal
	Note     string
	SpentAt  time.Time
}

func (e *Engine) AddExpense(ctx context.Context, actor Actor, in ExpenseInput) (models.Expense, error) {
	if err := e.authorize(ctx, actor, perm.PermAddExpense); err != nil {
		return models.Expense{}, err
	}
	if !models.ValidExpenseCategory(in.Category) {
		return models.Expense{}, fmt.Errorf("%w: unknown expense category %q", ErrValidation, in.Category)
	}
	if in.Amount.Cmp(decimal.Zero) <= 0 {
		return models.Expense{}, fmt.Errorf("%w: expense amount must be positive", ErrValidation)
	}
	if in.SpentAt.IsZero() {
		in.SpentAt = time.Now().UTC()
	}

	expense := models.Expense{
		Category: in.Category,
		Amount:   in.Amount,
		Note:     in.Note,
		SpentAt:  in.SpentAt,
	}
	amount := in.Amount
	entry := e.recorder.Entry(models.ActivityExpense,
		fmt.Sprintf("Expense of %s (%s)", currency.Format(in.Amount), in.Category),
		actor.Name, &amount)
	if err := e.store.RecordExpense(ctx, &expense, entry); err != nil {
		return models.Expense{}, err
	}
	e.recorder.Announce(*entry)
	return expense, nil
}

func (e *Engine) DeleteExpense(ctx context.Context, actor Actor, expenseID uint) error {
	if err := e.authorize(ctx, actor, perm.PermDeleteExpense); err != nil {
		return err
	}
	entry := e.recorder.Entry(models.ActivityDelete,
		fmt.Sprintf("Deleted expense %d", expenseID), actor.Name, nil)
	if err := e.store.DeleteExpense(ctx, expenseID, entry); err != nil {
		return err
	}
	e.recorder.Announce(*entry)
	return nil
}
