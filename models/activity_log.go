// nti-admin/models/activity_log.go

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Activity log categories.
const (
	ActivityPayment      = "payment"
	ActivityYearProgress = "year_progress"
	ActivitySalary       = "salary"
	ActivityExpense      = "expense"
	ActivityEnrollment   = "enrollment"
	ActivityDelete       = "delete"
	ActivityPermission   = "permission"
	ActivityAccount      = "account"
	ActivitySetting      = "setting"
)

// ActivityLog is one entry of the bounded audit trail. Entries are
// append-only and read newest-first; only the most recent entries are
// retained.
type ActivityLog struct {
	gorm.Model
	Category    string           `json:"category" gorm:"not null;index"`
	Description string           `json:"description" gorm:"not null"`
	Amount      *decimal.Decimal `json:"amount,omitempty" gorm:"type:numeric(14,2)"`
	Actor       string           `json:"actor" gorm:"not null"`
}
