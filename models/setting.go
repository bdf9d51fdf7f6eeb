// nti-admin/models/setting.go

package models

import "gorm.io/gorm"

// Setting keys.
const (
	SettingNotificationDays = "notification_days"
)

// Setting is a single key/value configuration row.
type Setting struct {
	gorm.Model
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value" gorm:"not null"`
}
