// nti-admin/models/year_payment.go

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// YearPayment is the per-year ledger row of a student: the fee agreed
// for that year and how much of it has been collected. Exactly one row
// exists per (student, year); a new row is appended on enrollment and
// on every promotion.
type YearPayment struct {
	gorm.Model
	StudentID   uint            `json:"studentId" gorm:"not null;uniqueIndex:uniq_student_year,priority:1"`
	Year        int             `json:"year" gorm:"not null;uniqueIndex:uniq_student_year,priority:2"`
	TotalFee    decimal.Decimal `json:"totalFee" gorm:"type:numeric(14,2);not null"`
	PaidAmount  decimal.Decimal `json:"paidAmount" gorm:"type:numeric(14,2);not null"`
	IsCompleted bool            `json:"isCompleted" gorm:"not null;default:false"`
}

// Sync recomputes the completion flag from the amounts.
func (yp *YearPayment) Sync() {
	yp.IsCompleted = yp.PaidAmount.Cmp(yp.TotalFee) >= 0
}
