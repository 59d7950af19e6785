package request

import "api/internal/api/models"

// CreateLayout is the request for creating an empty layout
type CreateLayout struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// UpdateLayoutMetadata patches display metadata; none of these fields
// participate in graph versioning
type UpdateLayoutMetadata struct {
	Name        *string      `json:"name,omitempty"`
	Description *string      `json:"description,omitempty"`
	Viewport    *models.JSON `json:"viewport,omitempty"`
}

// GraphNode is one node of a full-graph submission
type GraphNode struct {
	ID       string      `json:"id"`
	AssetID  string      `json:"assetId" validate:"required"`
	X        float64     `json:"x"`
	Y        float64     `json:"y"`
	Width    float64     `json:"width"`
	Height   float64     `json:"height"`
	Rotation float64     `json:"rotation"`
	Meta     models.JSON `json:"meta,omitempty"`
}

// GraphEdge is one edge of a full-graph submission
type GraphEdge struct {
	ID               string          `json:"id"`
	SourceNodeID     string          `json:"sourceNodeId" validate:"required"`
	TargetNodeID     string          `json:"targetNodeId" validate:"required"`
	Type             models.EdgeType `json:"type"`
	Label            string          `json:"label"`
	ConveyorSystemID *string         `json:"conveyorSystemId,omitempty"`
	Meta             models.JSON     `json:"meta,omitempty"`
}

// ReplaceGraph carries the client's whole canvas state plus the version
// it last observed. The submitted sets become the graph; nodes and
// edges omitted here are deleted.
type ReplaceGraph struct {
	Version int         `json:"version" validate:"required,min=1"`
	Nodes   []GraphNode `json:"nodes" validate:"dive"`
	Edges   []GraphEdge `json:"edges" validate:"dive"`
}
