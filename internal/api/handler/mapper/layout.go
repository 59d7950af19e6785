package mapper

import (
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// LayoutMapper handles mapping between layout models and DTOs
type LayoutMapper interface {
	GraphNodes(req []request.GraphNode) []models.LayoutNode
	GraphEdges(req []request.GraphEdge) []models.LayoutEdge
	PatchMetadata(req request.UpdateLayoutMetadata) map[string]interface{}
	ToLayoutResponse(layout models.FactoryLayout) response.Layout
	ToLayoutSummaries(layouts []models.FactoryLayout) []response.LayoutSummary
}

// LayoutMapperImpl implements LayoutMapper
type LayoutMapperImpl struct{}

// NewLayoutMapper creates a new LayoutMapper instance
func NewLayoutMapper() LayoutMapper {
	return &LayoutMapperImpl{}
}

// GraphNodes maps submitted nodes to models. Ownership fields and
// generated IDs are filled in by the layout service.
func (m *LayoutMapperImpl) GraphNodes(req []request.GraphNode) []models.LayoutNode {
	nodes := make([]models.LayoutNode, 0, len(req))
	for _, n := range req {
		nodes = append(nodes, models.LayoutNode{
			ID:       n.ID,
			AssetID:  n.AssetID,
			X:        n.X,
			Y:        n.Y,
			Width:    n.Width,
			Height:   n.Height,
			Rotation: n.Rotation,
			Meta:     n.Meta,
		})
	}
	return nodes
}

// GraphEdges maps submitted edges to models
func (m *LayoutMapperImpl) GraphEdges(req []request.GraphEdge) []models.LayoutEdge {
	edges := make([]models.LayoutEdge, 0, len(req))
	for _, e := range req {
		edges = append(edges, models.LayoutEdge{
			ID:               e.ID,
			SourceNodeID:     e.SourceNodeID,
			TargetNodeID:     e.TargetNodeID,
			Type:             e.Type,
			Label:            e.Label,
			ConveyorSystemID: e.ConveyorSystemID,
			Meta:             e.Meta,
		})
	}
	return edges
}

// PatchMetadata maps a metadata update request to a patch map
func (m *LayoutMapperImpl) PatchMetadata(req request.UpdateLayoutMetadata) map[string]interface{} {
	patch := make(map[string]interface{})
	if req.Name != nil {
		patch["name"] = *req.Name
	}
	if req.Description != nil {
		patch["description"] = *req.Description
	}
	if req.Viewport != nil {
		patch["viewport"] = *req.Viewport
	}
	return patch
}

// ToLayoutResponse maps a layout with its graph to the detail view
func (m *LayoutMapperImpl) ToLayoutResponse(layout models.FactoryLayout) response.Layout {
	nodes := make([]response.LayoutNode, 0, len(layout.Nodes))
	for _, n := range layout.Nodes {
		nodes = append(nodes, response.LayoutNode{
			ID:       n.ID,
			AssetID:  n.AssetID,
			X:        n.X,
			Y:        n.Y,
			Width:    n.Width,
			Height:   n.Height,
			Rotation: n.Rotation,
			Meta:     n.Meta,
		})
	}
	edges := make([]response.LayoutEdge, 0, len(layout.Edges))
	for _, e := range layout.Edges {
		edges = append(edges, response.LayoutEdge{
			ID:               e.ID,
			SourceNodeID:     e.SourceNodeID,
			TargetNodeID:     e.TargetNodeID,
			Type:             e.Type,
			Label:            e.Label,
			ConveyorSystemID: e.ConveyorSystemID,
			Meta:             e.Meta,
		})
	}
	return response.Layout{
		ID:          layout.ID,
		Name:        layout.Name,
		Description: layout.Description,
		Version:     layout.Version,
		IsLocked:    layout.IsLocked,
		Viewport:    layout.Viewport,
		Nodes:       nodes,
		Edges:       edges,
		UpdatedAt:   layout.UpdatedAt,
	}
}

// ToLayoutSummaries maps layouts to the list view
func (m *LayoutMapperImpl) ToLayoutSummaries(layouts []models.FactoryLayout) []response.LayoutSummary {
	summaries := make([]response.LayoutSummary, 0, len(layouts))
	for _, l := range layouts {
		summaries = append(summaries, response.LayoutSummary{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Version:     l.Version,
			IsLocked:    l.IsLocked,
			UpdatedAt:   l.UpdatedAt,
		})
	}
	return summaries
}
