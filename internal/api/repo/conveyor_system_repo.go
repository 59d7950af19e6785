package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

type ConveyorSystemRepository struct {
	Db *gorm.DB
}

func NewConveyorSystemRepository() *ConveyorSystemRepository {
	return &ConveyorSystemRepository{Db: api.DB}
}

// FindByID retrieves a conveyor system by ID
func (slf *ConveyorSystemRepository) FindByID(id string, tenantID string) (models.ConveyorSystem, error) {
	var system models.ConveyorSystem
	err := slf.Db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&system).Error
	return system, err
}

// FindAllByTenant retrieves all conveyor systems of a tenant ordered by name
func (slf *ConveyorSystemRepository) FindAllByTenant(tenantID string) ([]models.ConveyorSystem, error) {
	var systems []models.ConveyorSystem
	err := slf.Db.
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&systems).Error
	return systems, err
}

// EdgeCounts returns, per conveyor system, how many edges across all of
// the tenant's layouts reference it
func (slf *ConveyorSystemRepository) EdgeCounts(tenantID string) (map[string]int64, error) {
	type row struct {
		ConveyorSystemID string
		Count            int64
	}
	var rows []row
	err := slf.Db.Model(&models.LayoutEdge{}).
		Select("conveyor_system_id, count(*) as count").
		Where("tenant_id = ? AND conveyor_system_id IS NOT NULL", tenantID).
		Group("conveyor_system_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ConveyorSystemID] = r.Count
	}
	return counts, nil
}

// FindEdges retrieves all edges referencing a conveyor system
func (slf *ConveyorSystemRepository) FindEdges(id string, tenantID string) ([]models.LayoutEdge, error) {
	var edges []models.LayoutEdge
	err := slf.Db.
		Where("conveyor_system_id = ? AND tenant_id = ?", id, tenantID).
		Find(&edges).Error
	return edges, err
}

// Create persists a new conveyor system
func (slf *ConveyorSystemRepository) Create(system *models.ConveyorSystem) error {
	return slf.Db.Create(system).Error
}

// Update saves a conveyor system
func (slf *ConveyorSystemRepository) Update(system *models.ConveyorSystem) error {
	return slf.Db.Save(system).Error
}

// Delete removes a conveyor system after detaching every edge that
// references it. Edges survive the deletion, only the grouping goes.
func (slf *ConveyorSystemRepository) Delete(id string, tenantID string) error {
	return slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.LayoutEdge{}).
			Where("conveyor_system_id = ?", id).
			Update("conveyor_system_id", nil).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).
			Delete(&models.ConveyorSystem{}).Error
	})
}
