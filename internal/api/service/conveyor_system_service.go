package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type ConveyorSystemService struct {
	systemRepo *repo.ConveyorSystemRepository
	logger     zerolog.Logger
}

func NewConveyorSystemService() *ConveyorSystemService {
	return &ConveyorSystemService{
		systemRepo: repo.NewConveyorSystemRepository(),
		logger:     api.Logger,
	}
}

// FindAllForTenant retrieves all conveyor systems with their edge counts
func (slf *ConveyorSystemService) FindAllForTenant(tenantID string) ([]models.ConveyorSystem, map[string]int64, error) {
	systems, err := slf.systemRepo.FindAllByTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("tenantId", tenantID).Msg("Error listing conveyor systems")
		return nil, nil, err
	}
	counts, err := slf.systemRepo.EdgeCounts(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("tenantId", tenantID).Msg("Error counting conveyor system edges")
		return nil, nil, err
	}
	return systems, counts, nil
}

// FindByID retrieves a conveyor system and the edges referencing it
func (slf *ConveyorSystemService) FindByID(id string, tenantID string) (*models.ConveyorSystem, []models.LayoutEdge, error) {
	system, err := slf.systemRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrConveyorSystemNotFound
		}
		slf.logger.Error().Err(err).Str("systemId", id).Msg("Error getting conveyor system")
		return nil, nil, err
	}
	edges, err := slf.systemRepo.FindEdges(id, tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("systemId", id).Msg("Error getting conveyor system edges")
		return nil, nil, err
	}
	return &system, edges, nil
}

// Create creates a new conveyor system
func (slf *ConveyorSystemService) Create(tenantID string, name string, color string, description string) (*models.ConveyorSystem, error) {
	if color == "" {
		color = models.DefaultConveyorColor
	}
	system := models.ConveyorSystem{
		ID:          uuid.NewString(),
		TenantID:    tenantID,
		Name:        name,
		Color:       color,
		Description: description,
	}
	if err := slf.systemRepo.Create(&system); err != nil {
		slf.logger.Error().Err(err).Msg("Error creating conveyor system")
		return nil, err
	}
	return &system, nil
}

// Update patches a conveyor system. Last write wins here: these are
// rarely contested metadata records, not the versioned graph.
func (slf *ConveyorSystemService) Update(id string, tenantID string, name *string, color *string, description *string) (*models.ConveyorSystem, error) {
	system, err := slf.systemRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrConveyorSystemNotFound
		}
		return nil, err
	}

	if name != nil {
		system.Name = *name
	}
	if color != nil {
		system.Color = *color
	}
	if description != nil {
		system.Description = *description
	}

	if err := slf.systemRepo.Update(&system); err != nil {
		slf.logger.Error().Err(err).Str("systemId", id).Msg("Error updating conveyor system")
		return nil, err
	}
	return &system, nil
}

// Delete removes a conveyor system, detaching (never deleting) every
// edge that references it across all of the tenant's layouts
func (slf *ConveyorSystemService) Delete(id string, tenantID string) error {
	_, err := slf.systemRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrConveyorSystemNotFound
		}
		return err
	}

	if err := slf.systemRepo.Delete(id, tenantID); err != nil {
		slf.logger.Error().Err(err).Str("systemId", id).Msg("Error deleting conveyor system")
		return err
	}
	slf.logger.Info().Str("systemId", id).Msg("Conveyor system deleted")
	return nil
}
