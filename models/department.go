// nti-admin/models/department.go

package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Department is shared reference data: students and staff point at it
// by id. Deleting a department does not cascade to existing students.
type Department struct {
	gorm.Model
	Name             string            `json:"name" gorm:"uniqueIndex;not null"`
	Icon             string            `json:"icon"`
	Color            string            `json:"color"`
	DefaultYearlyFee decimal.Decimal   `json:"defaultYearlyFee" gorm:"type:numeric(14,2);not null"`
	Installments     []PlanInstallment `json:"installments,omitempty" gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
}

// PlanInstallment is one entry of a department's suggested payment
// plan. Formula is evaluated against the student's balance with the
// variables total, paid and remaining.
type PlanInstallment struct {
	gorm.Model
	DepartmentID uint   `json:"departmentId" gorm:"not null;index"`
	Month        int    `json:"month" gorm:"not null"`
	Day          int    `json:"day" gorm:"not null"`
	Formula      string `json:"formula" gorm:"not null"`
}
