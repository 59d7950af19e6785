package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"api/pkg"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type LayoutService struct {
	layoutRepo *repo.LayoutRepository
	assetRepo  *repo.AssetRepository
	logger     zerolog.Logger
}

func NewLayoutService() *LayoutService {
	return &LayoutService{
		layoutRepo: repo.NewLayoutRepository(),
		assetRepo:  repo.NewAssetRepository(),
		logger:     api.Logger,
	}
}

// FindAllForTenant retrieves all layouts of a tenant (list view, no graphs)
func (slf *LayoutService) FindAllForTenant(tenantID string) ([]models.FactoryLayout, error) {
	layouts, err := slf.layoutRepo.FindAllByTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("tenantId", tenantID).Msg("Error listing layouts")
		return nil, err
	}
	return layouts, nil
}

// FindByID retrieves a layout with its full graph
func (slf *LayoutService) FindByID(id string, tenantID string) (*models.FactoryLayout, error) {
	layout, err := slf.layoutRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLayoutNotFound
		}
		slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error getting layout")
		return nil, err
	}
	return &layout, nil
}

// Create creates an empty layout at version 1, unlocked
func (slf *LayoutService) Create(tenantID string, name string, description string) (*models.FactoryLayout, error) {
	layout := models.FactoryLayout{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		Description: description,
		Version:     1,
		IsLocked:    false,
	}
	if err := slf.layoutRepo.Create(&layout); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating layout")
		return nil, err
	}
	slf.logger.Info().Str("layoutId", layout.ID).Msg("Layout created")
	return &layout, nil
}

// UpdateMetadata patches display metadata (name, description, viewport).
// Metadata is not part of the versioned graph, so the version stays put,
// but a locked layout still rejects the write.
func (slf *LayoutService) UpdateMetadata(id string, tenantID string, patch map[string]interface{}) (*models.FactoryLayout, error) {
	layout, err := slf.layoutRepo.FindByIDSimple(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLayoutNotFound
		}
		return nil, err
	}
	if layout.IsLocked {
		return nil, models.ErrLayoutLocked
	}
	if len(patch) > 0 {
		if err := slf.layoutRepo.UpdateMetadata(id, tenantID, patch); err != nil {
			slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error updating layout metadata")
			return nil, err
		}
	}
	return slf.FindByID(id, tenantID)
}

// Delete removes a layout and its whole graph
func (slf *LayoutService) Delete(id string, tenantID string) error {
	_, err := slf.layoutRepo.FindByIDSimple(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrLayoutNotFound
		}
		return err
	}
	if err := slf.layoutRepo.Delete(id, tenantID); err != nil {
		slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error deleting layout")
		return err
	}
	slf.logger.Info().Str("layoutId", id).Msg("Layout deleted")
	return nil
}

// ToggleLock flips the lock state unconditionally. The graph version is
// not touched; locking is an orthogonal, admin-only switch.
func (slf *LayoutService) ToggleLock(id string, tenantID string) (*models.FactoryLayout, error) {
	layout, err := slf.layoutRepo.ToggleLock(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrLayoutNotFound
		}
		slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error toggling layout lock")
		return nil, err
	}

	slf.logger.Info().Str("layoutId", id).Bool("isLocked", layout.IsLocked).Msg("Layout lock toggled")
	slf.publishUpdated(layout)
	return &layout, nil
}

// ReplaceGraph submits the client's whole canvas state with the version
// it last observed. The submitted sets become the graph; anything
// omitted is gone. Validation failures reject the submission wholesale,
// a stale version yields a VersionConflictError carrying the current
// one, and a locked layout is refused regardless of version.
func (slf *LayoutService) ReplaceGraph(
	id string,
	tenantID string,
	expectedVersion int,
	nodes []models.LayoutNode,
	edges []models.LayoutEdge,
) (*models.FactoryLayout, error) {
	if err := slf.prepareGraph(id, tenantID, nodes, edges); err != nil {
		return nil, err
	}

	layout, err := slf.layoutRepo.ReplaceGraph(id, tenantID, nodes, edges, expectedVersion)
	if err != nil {
		var conflict *models.VersionConflictError
		switch {
		case errors.Is(err, models.ErrLayoutNotFound), errors.Is(err, models.ErrLayoutLocked):
			return nil, err
		case errors.As(err, &conflict):
			slf.logger.Info().
				Str("layoutId", id).
				Int("expectedVersion", expectedVersion).
				Int("currentVersion", conflict.CurrentVersion).
				Msg("Graph write rejected on version conflict")
			return nil, err
		default:
			slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error replacing layout graph")
			return nil, err
		}
	}

	slf.logger.Info().
		Str("layoutId", id).
		Int("version", layout.Version).
		Int("nodes", len(nodes)).
		Int("edges", len(edges)).
		Msg("Layout graph replaced")
	slf.publishUpdated(layout)
	return &layout, nil
}

// prepareGraph normalizes the submission in place (generated IDs,
// default edge type, layout/tenant ownership) and validates every
// structural invariant before anything touches the store.
func (slf *LayoutService) prepareGraph(id string, tenantID string, nodes []models.LayoutNode, edges []models.LayoutEdge) error {
	var details []string

	nodeIDs := make(map[string]bool, len(nodes))
	assetIDs := make(map[string]bool)
	for i := range nodes {
		if nodes[i].ID == "" {
			nodes[i].ID = uuid.NewString()
		}
		if nodeIDs[nodes[i].ID] {
			details = append(details, fmt.Sprintf("duplicate node id %q", nodes[i].ID))
		}
		nodeIDs[nodes[i].ID] = true
		if nodes[i].AssetID == "" {
			details = append(details, fmt.Sprintf("node %q has no asset reference", nodes[i].ID))
		} else {
			assetIDs[nodes[i].AssetID] = true
		}
		nodes[i].LayoutID = id
		nodes[i].TenantID = tenantID
	}

	edgeIDs := make(map[string]bool, len(edges))
	for i := range edges {
		if edges[i].ID == "" {
			edges[i].ID = uuid.NewString()
		}
		if edgeIDs[edges[i].ID] {
			details = append(details, fmt.Sprintf("duplicate edge id %q", edges[i].ID))
		}
		edgeIDs[edges[i].ID] = true
		if edges[i].Type == "" {
			edges[i].Type = models.EdgeTypeConveyor
		}
		if !models.ValidEdgeType(edges[i].Type) {
			details = append(details, fmt.Sprintf("edge %q has unknown type %q", edges[i].ID, edges[i].Type))
		}
		if !nodeIDs[edges[i].SourceNodeID] {
			details = append(details, fmt.Sprintf("edge %q references missing source node %q", edges[i].ID, edges[i].SourceNodeID))
		}
		if !nodeIDs[edges[i].TargetNodeID] {
			details = append(details, fmt.Sprintf("edge %q references missing target node %q", edges[i].ID, edges[i].TargetNodeID))
		}
		edges[i].LayoutID = id
		edges[i].TenantID = tenantID
	}

	if len(assetIDs) > 0 {
		ids := make([]string, 0, len(assetIDs))
		for assetID := range assetIDs {
			ids = append(ids, assetID)
		}
		assets, err := slf.assetRepo.FindByIDs(ids, tenantID)
		if err != nil {
			slf.logger.Error().Err(err).Str("layoutId", id).Msg("Error resolving asset references")
			return err
		}
		found := make(map[string]bool, len(assets))
		for _, asset := range assets {
			found[asset.ID] = true
		}
		for _, assetID := range ids {
			if !found[assetID] {
				details = append(details, fmt.Sprintf("unknown asset reference %q", assetID))
			}
		}
	}

	if len(details) > 0 {
		return &models.ValidationError{Details: details}
	}
	return nil
}

type layoutUpdatedEvent struct {
	LayoutID string `json:"layoutId"`
	Version  int    `json:"version"`
	IsLocked bool   `json:"isLocked"`
}

// publishUpdated tells collaborating canvas clients to re-fetch.
// Best-effort: an unreachable broker never fails the write.
func (slf *LayoutService) publishUpdated(layout models.FactoryLayout) {
	subject := fmt.Sprintf("tenant.%s.layout.%s.updated", layout.TenantID, layout.ID)
	event := layoutUpdatedEvent{
		LayoutID: layout.ID,
		Version:  layout.Version,
		IsLocked: layout.IsLocked,
	}
	if err := pkg.NatsPublishJSON(subject, event); err != nil {
		slf.logger.Warn().Err(err).Str("layoutId", layout.ID).Msg("Could not publish layout update event")
	}
}
