// nti-admin/models/salary_payment.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SalaryPayment records one month's salary handed to a staff member.
// (staff, month, year) is a natural key: a month is either paid once
// or not at all.
type SalaryPayment struct {
	gorm.Model
	StaffID uint            `json:"staffId" gorm:"not null;uniqueIndex:uniq_staff_month,priority:1"`
	Month   int             `json:"month" gorm:"not null;uniqueIndex:uniq_staff_month,priority:2"`
	Year    int             `json:"year" gorm:"not null;uniqueIndex:uniq_staff_month,priority:3"`
	Amount  decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	Note    string          `json:"note"`
	PaidAt  time.Time       `json:"paidAt" gorm:"not null"`
}
