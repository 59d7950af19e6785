package response

import (
	"api/internal/api/models"
	"time"
)

// LayoutSummary is the list view of a layout (no graph payload)
type LayoutSummary struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Version     int       `json:"version"`
	IsLocked    bool      `json:"isLocked"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// LayoutNode is one placed asset of a layout graph
type LayoutNode struct {
	ID       string      `json:"id"`
	AssetID  string      `json:"assetId"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	Meta     models.JSON `json:"meta"`
}

// LayoutEdge is one directed connection of a layout graph
type LayoutEdge struct {
	ID               string          `json:"id"`
	SourceNodeID     string          `json:"sourceNodeId"`
	TargetNodeID     string          `json:"targetNodeId"`
	Type             models.EdgeType `json:"type"`
	Label            string          `json:"label"`
	ConveyorSystemID *string         `json:"conveyorSystemId"`
	Meta             models.JSON     `json:"meta"`
}

// Layout is the full detail view: graph, version and lock state
type Layout struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Version     int          `json:"version"`
	IsLocked    bool         `json:"isLocked"`
	Viewport    models.JSON  `json:"viewport"`
	Nodes       []LayoutNode `json:"nodes"`
	Edges       []LayoutEdge `json:"edges"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}

// VersionConflict is the 409 payload of a rejected graph write. The
// client re-fetches the current graph and reconciles; the server never
// merges.
type VersionConflict struct {
	Message        string `json:"message"`
	CurrentVersion int    `json:"currentVersion"`
}
