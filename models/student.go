// nti-admin/models/student.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MinYear and MaxYear bound the academic years a student can be in.
const (
	MinYear = 1
	MaxYear = 5
)

// Student represents an enrolled student and the financial state of
// their current academic year. TotalFee and PaidAmount always refer to
// the current year; the per-year history lives in YearPayments.
type Student struct {
	gorm.Model
	Code         string          `json:"code" gorm:"uniqueIndex;not null"`
	FirstName    string          `json:"firstName" gorm:"not null"`
	LastName     string          `json:"lastName" gorm:"not null"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Room         string          `json:"room"`
	DepartmentID *uint           `json:"departmentId"`
	Year         int             `json:"year" gorm:"not null"`
	TotalFee     decimal.Decimal `json:"totalFee" gorm:"type:numeric(14,2);not null"`
	PaidAmount   decimal.Decimal `json:"paidAmount" gorm:"type:numeric(14,2);not null"`
	RegisteredAt time.Time       `json:"registeredAt"`

	// Version guards read-modify-write cycles against concurrent
	// mutation of the same student (two admins adding payments).
	Version int64 `json:"-" gorm:"not null;default:0"`

	Department   *Department   `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	Payments     []Payment     `json:"payments,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
	YearPayments []YearPayment `json:"yearPayments,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

// Debt returns the unpaid remainder of the current year's fee.
func (s *Student) Debt() decimal.Decimal {
	return s.TotalFee.Sub(s.PaidAmount)
}

// FullName joins the name parts for display and audit descriptions.
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// CurrentYearPayment returns the ledger row matching the student's
// current year, or nil when the rows were not loaded.
func (s *Student) CurrentYearPayment() *YearPayment {
	for i := range s.YearPayments {
		if s.YearPayments[i].Year == s.Year {
			return &s.YearPayments[i]
		}
	}
	return nil
}

// LastPaymentAt returns the timestamp of the most recent payment and
// whether any payment exists.
func (s *Student) LastPaymentAt() (time.Time, bool) {
	var latest time.Time
	found := false
	for i := range s.Payments {
		if !found || s.Payments[i].PaidAt.After(latest) {
			latest = s.Payments[i].PaidAt
			found = true
		}
	}
	return latest, found
}

// StudentSeq reserves per-(department, year) enrollment sequence
// numbers so two simultaneous enrollments can never produce the same
// student code.
type StudentSeq struct {
	ID           uint `gorm:"primaryKey"`
	DepartmentID uint `gorm:"uniqueIndex:uniq_dep_year,priority:1;not null"`
	Year         int  `gorm:"uniqueIndex:uniq_dep_year,priority:2;not null"`
	Seq          int  `gorm:"not null"`
}
