// nti-admin/models/staff.go

package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Staff roles. Department is only meaningful for teachers.
const (
	StaffRoleTeacher  = "teacher"
	StaffRoleEmployee = "employee"
)

// Staff represents a salaried member of the institute.
type Staff struct {
	gorm.Model
	FullName      string          `json:"fullName" gorm:"not null"`
	Phone         string          `json:"phone"`
	Role          string          `json:"role" gorm:"not null"`
	DepartmentID  *uint           `json:"departmentId"`
	MonthlySalary decimal.Decimal `json:"monthlySalary" gorm:"type:numeric(14,2);not null"`
	JoinedAt      time.Time       `json:"joinedAt"`

	Department     *Department     `json:"department,omitempty" gorm:"foreignKey:DepartmentID"`
	SalaryPayments []SalaryPayment `json:"salaryPayments,omitempty" gorm:"foreignKey:StaffID;constraint:OnDelete:CASCADE"`
}

// HasSalaryFor reports whether the given month is already paid. Months
// are independently payable; presence of a row is the whole check.
func (s *Staff) HasSalaryFor(month, year int) bool {
	for i := range s.SalaryPayments {
		if s.SalaryPayments[i].Month == month && s.SalaryPayments[i].Year == year {
			return true
		}
	}
	return false
}
