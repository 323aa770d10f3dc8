package models

import (
	"time"

	"gorm.io/gorm"
)

// Timestamps is embedded by every persisted record. DeletedAt makes
// deletes soft and keeps tombstoned rows out of normal queries.
type Timestamps struct {
	CreatedAt time.Time      `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

// AllModels lists the tables owned by this service, in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&User{},
		&OtpData{},
		&UserSession{},
		&TempPhone{},
	}
}
