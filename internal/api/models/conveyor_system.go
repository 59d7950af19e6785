package models

import (
	"time"

	"gorm.io/gorm"
)

const DefaultConveyorColor = "#808080"

// ConveyorSystem is a tenant-level named grouping that edges may join.
// It lives independently of any single layout; deleting one detaches,
// never deletes, the edges that reference it.
type ConveyorSystem struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	TenantID    string `gorm:"type:uuid;index;not null"`
	Name        string `gorm:"not null"`
	Color       string `gorm:"not null;default:#808080"`
	Description string

	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (ConveyorSystem) TableName() string {
	return "conveyor_systems"
}
