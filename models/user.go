// nti-admin/models/user.go

package models

import "gorm.io/gorm"

// User is an account that can sign in. Accounts are provisioned and
// removed only by a superadmin; each carries exactly one role.
type User struct {
	gorm.Model
	Login        string `json:"login" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	FullName     string `json:"fullName"`
	PasswordHash string `json:"-" gorm:"not null"`
	Status       string `json:"status" gorm:"not null;default:'active'"`
	RoleID       uint   `json:"roleId" gorm:"not null"`
	Role         *Role  `json:"role,omitempty" gorm:"foreignKey:RoleID"`
}
