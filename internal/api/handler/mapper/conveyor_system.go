package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// ConveyorSystemMapper handles mapping between conveyor system models and DTOs
type ConveyorSystemMapper interface {
	ToSystemResponse(system models.ConveyorSystem, edgeCount int64) response.ConveyorSystem
	ToSystemResponses(systems []models.ConveyorSystem, edgeCounts map[string]int64) []response.ConveyorSystem
	ToSystemWithEdges(system models.ConveyorSystem, edges []models.LayoutEdge) response.ConveyorSystemWithEdges
}

// ConveyorSystemMapperImpl implements ConveyorSystemMapper
type ConveyorSystemMapperImpl struct{}

// NewConveyorSystemMapper creates a new ConveyorSystemMapper instance
func NewConveyorSystemMapper() ConveyorSystemMapper {
	return &ConveyorSystemMapperImpl{}
}

// ToSystemResponse maps a conveyor system to its list view
func (m *ConveyorSystemMapperImpl) ToSystemResponse(system models.ConveyorSystem, edgeCount int64) response.ConveyorSystem {
	return response.ConveyorSystem{
		ID:          system.ID,
		Name:        system.Name,
		Color:       system.Color,
		Description: system.Description,
		EdgeCount:   edgeCount,
	}
}

// ToSystemResponses maps conveyor systems with their edge counts
func (m *ConveyorSystemMapperImpl) ToSystemResponses(systems []models.ConveyorSystem, edgeCounts map[string]int64) []response.ConveyorSystem {
	responses := make([]response.ConveyorSystem, 0, len(systems))
	for _, s := range systems {
		responses = append(responses, m.ToSystemResponse(s, edgeCounts[s.ID]))
	}
	return responses
}

// ToSystemWithEdges maps a conveyor system and its referencing edges to the detail view
func (m *ConveyorSystemMapperImpl) ToSystemWithEdges(system models.ConveyorSystem, edges []models.LayoutEdge) response.ConveyorSystemWithEdges {
	refs := make([]response.ConveyorEdgeRef, 0, len(edges))
	for _, e := range edges {
		refs = append(refs, response.ConveyorEdgeRef{
			ID:       e.ID,
			Label:    e.Label,
			LayoutID: e.LayoutID,
		})
	}
	return response.ConveyorSystemWithEdges{
		ConveyorSystem: m.ToSystemResponse(system, int64(len(edges))),
		Edges:          refs,
	}
}
