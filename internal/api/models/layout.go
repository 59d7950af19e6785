package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// JSON stores a raw JSON document in a jsonb column without forcing a
// schema on it (canvas viewport, node/edge display metadata).
type JSON []byte

// Scan implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		*j = v
		return nil
	case string:
		*j = []byte(v)
		return nil
	default:
		return fmt.Errorf("cannot scan type %T into JSON", value)
	}
}

// Value implements driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return []byte(j), nil
}

// MarshalJSON implements json.Marshaler - returns raw JSON
func (j JSON) MarshalJSON() ([]byte, error) {
	if j == nil {
		return []byte("null"), nil
	}
	return j, nil
}

// UnmarshalJSON implements json.Unmarshaler - stores raw JSON
func (j *JSON) UnmarshalJSON(data []byte) error {
	if data == nil {
		*j = nil
		return nil
	}
	*j = data
	return nil
}

type EdgeType string

const (
	EdgeTypeConveyor EdgeType = "CONVEYOR"
	EdgeTypePipe     EdgeType = "PIPE"
	EdgeTypeManual   EdgeType = "MANUAL"
)

// ValidEdgeType reports whether t is one of the known edge types.
func ValidEdgeType(t EdgeType) bool {
	switch t {
	case EdgeTypeConveyor, EdgeTypePipe, EdgeTypeManual:
		return true
	}
	return false
}

// FactoryLayout is the unit of versioning and locking. The version only
// moves on accepted graph writes; lock toggles and metadata updates
// leave it untouched.
type FactoryLayout struct {
	ID          string `gorm:"primaryKey;type:uuid"`
	TenantID    string `gorm:"type:uuid;index;not null"`
	Name        string `gorm:"not null"`
	Description string
	Version     int  `gorm:"not null;default:1"`
	IsLocked    bool `gorm:"not null;default:false"`
	Viewport    JSON `gorm:"type:jsonb"`

	Nodes []LayoutNode `gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE"`
	Edges []LayoutEdge `gorm:"foreignKey:LayoutID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime;column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index;column:deleted_at"`
}

func (FactoryLayout) TableName() string {
	return "factory_layouts"
}

// LayoutNode places one asset on the layout canvas. The asset itself is
// owned by the wider asset directory; a node only carries the reference.
type LayoutNode struct {
	ID       string `gorm:"primaryKey;type:uuid"`
	LayoutID string `gorm:"type:uuid;index;not null"`
	TenantID string `gorm:"type:uuid;index;not null"`
	AssetID  string `gorm:"type:uuid;index;not null"`
	X        float64
	Y        float64
	Width    float64
	Height   float64
	Rotation float64
	Meta     JSON `gorm:"type:jsonb"`
}

func (LayoutNode) TableName() string {
	return "factory_layout_nodes"
}

// LayoutEdge is a directed physical connection between two nodes of the
// same layout. Self-loops are allowed but ignored by flow analysis.
type LayoutEdge struct {
	ID               string   `gorm:"primaryKey;type:uuid"`
	LayoutID         string   `gorm:"type:uuid;index;not null"`
	TenantID         string   `gorm:"type:uuid;index;not null"`
	SourceNodeID     string   `gorm:"type:uuid;not null"`
	TargetNodeID     string   `gorm:"type:uuid;not null"`
	Type             EdgeType `gorm:"not null;default:CONVEYOR"`
	Label            string
	ConveyorSystemID *string `gorm:"type:uuid;index"`
	Meta             JSON    `gorm:"type:jsonb"`
}

func (LayoutEdge) TableName() string {
	return "factory_layout_edges"
}
