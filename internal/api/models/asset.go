package models

import "time"

type AssetStatus string

const (
	AssetStatusOperational AssetStatus = "OPERATIONAL"
	AssetStatusMaintenance AssetStatus = "MAINTENANCE"
	AssetStatusDown        AssetStatus = "DOWN"
)

// Asset mirrors the asset directory record the layout engine consumes.
// The wider maintenance application owns these rows; this core only
// reads them for node validation and flow analysis. Capacity is the
// declared nominal throughput, unitless; nil means undeclared, which
// analysis treats as unconstrained.
type Asset struct {
	ID          string      `gorm:"primaryKey;type:uuid"`
	TenantID    string      `gorm:"type:uuid;index;not null"`
	Name        string      `gorm:"not null"`
	Code        string
	Status      AssetStatus `gorm:"not null;default:OPERATIONAL"`
	Capacity    *float64
	ImageURL    string
	Description string

	CreatedAt time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Asset) TableName() string {
	return "assets"
}
