// nti-admin/models/payment.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment is a single tuition payment. Rows are append-only: once
// created they are never edited, only cascade-deleted with the student.
type Payment struct {
	gorm.Model
	StudentID uint            `json:"studentId" gorm:"not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(14,2);not null"`
	ReceiptNo string          `json:"receiptNo" gorm:"uniqueIndex;not null"`
	Note      string          `json:"note"`
	PaidAt    time.Time       `json:"paidAt" gorm:"not null;index"`
}
