// nti-admin/models/expense.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense categories.
const (
	ExpenseElectricity = "electricity"
	ExpenseWater       = "water"
	ExpenseOther       = "other"
)

// Expense is a standalone institute expense with no relationships.
type Expense struct {
	gorm.Model
	Category string          `json:"category" gorm:"not null;index"`
	Amount   decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Note     string          `json:"note"`
	SpentAt  time.Time       `json:"spentAt" gorm:"not null;index"`
}

// ValidExpenseCategory reports whether the category is one of the
// fixed set.
func ValidExpenseCategory(category string) bool {
	switch category {
	case ExpenseElectricity, ExpenseWater, ExpenseOther:
		return true
	}
	return false
}
