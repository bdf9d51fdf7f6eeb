// nti-admin/models/role.go

package models

// Role is one of four fixed actor categories. Rows exist so a role's
// permission set can be edited and persisted; the superadmin set is
// fixed in code and never read from here.
type Role struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	Name        string       `json:"name" gorm:"uniqueIndex;not null"`
	Description string       `json:"description"`
	Permissions []Permission `json:"permissions" gorm:"many2many:role_permissions;"`
}

// Permission is a named capability, e.g. "add_student". Category
// groups permissions for display.
type Permission struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description"`
	Category    string `json:"category" gorm:"not null"`
}
