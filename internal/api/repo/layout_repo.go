package repo

import (
	"api"
	"api/internal/api/models"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LayoutRepository struct {
	Db *gorm.DB
}

func NewLayoutRepository() *LayoutRepository {
	return &LayoutRepository{Db: api.DB}
}

// FindByID retrieves a layout with its full graph
func (slf *LayoutRepository) FindByID(id string, tenantID string) (models.FactoryLayout, error) {
	var layout models.FactoryLayout
	err := slf.Db.
		Preload("Nodes").
		Preload("Edges").
		Where("id = ? AND tenant_id = ?", id, tenantID).
		First(&layout).Error
	return layout, err
}

// FindByIDSimple retrieves a layout without loading nodes and edges
func (slf *LayoutRepository) FindByIDSimple(id string, tenantID string) (models.FactoryLayout, error) {
	var layout models.FactoryLayout
	err := slf.Db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&layout).Error
	return layout, err
}

// FindAllByTenant retrieves all layouts of a tenant, most recently updated first
func (slf *LayoutRepository) FindAllByTenant(tenantID string) ([]models.FactoryLayout, error) {
	var layouts []models.FactoryLayout
	err := slf.Db.
		Where("tenant_id = ?", tenantID).
		Order("updated_at DESC").
		Find(&layouts).Error
	return layouts, err
}

// Create persists a new layout
func (slf *LayoutRepository) Create(layout *models.FactoryLayout) error {
	return slf.Db.Create(layout).Error
}

// UpdateMetadata patches display metadata only; the graph version is untouched
func (slf *LayoutRepository) UpdateMetadata(id string, tenantID string, patch map[string]interface{}) error {
	return slf.Db.Model(&models.FactoryLayout{}).
		Where("id = ? AND tenant_id = ?", id, tenantID).
		Updates(patch).Error
}

// Delete removes a layout and its graph
func (slf *LayoutRepository) Delete(id string, tenantID string) error {
	return slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("layout_id = ?", id).Delete(&models.LayoutEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("layout_id = ?", id).Delete(&models.LayoutNode{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ? AND tenant_id = ?", id, tenantID).Delete(&models.FactoryLayout{}).Error
	})
}

// ToggleLock flips the lock flag unconditionally. Lock state is
// orthogonal to the graph version, so the version is left alone.
func (slf *LayoutRepository) ToggleLock(id string, tenantID string) (models.FactoryLayout, error) {
	var layout models.FactoryLayout
	err := slf.Db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&layout).Error; err != nil {
			return err
		}
		layout.IsLocked = !layout.IsLocked
		return tx.Model(&models.FactoryLayout{}).
			Where("id = ?", id).
			Update("is_locked", layout.IsLocked).Error
	})
	return layout, err
}

// ReplaceGraph atomically swaps the layout's node and edge sets for the
// submitted ones and bumps the version by exactly one. The row lock on
// the layout serializes racing writers: the loser re-reads the bumped
// version and gets a VersionConflictError, never a silent overwrite.
// Check order: not found, locked, version mismatch.
func (slf *LayoutRepository) ReplaceGraph(
	id string,
	tenantID string,
	nodes []models.LayoutNode,
	edges []models.LayoutEdge,
	expectedVersion int,
) (models.FactoryLayout, error) {
	err := slf.Db.Transaction(func(tx *gorm.DB) error {
		var layout models.FactoryLayout
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND tenant_id = ?", id, tenantID).
			First(&layout).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrLayoutNotFound
			}
			return err
		}

		if layout.IsLocked {
			return models.ErrLayoutLocked
		}
		if layout.Version != expectedVersion {
			return &models.VersionConflictError{CurrentVersion: layout.Version}
		}

		if err := tx.Where("layout_id = ?", id).Delete(&models.LayoutEdge{}).Error; err != nil {
			return err
		}
		if err := tx.Where("layout_id = ?", id).Delete(&models.LayoutNode{}).Error; err != nil {
			return err
		}
		if len(nodes) > 0 {
			if err := tx.Create(&nodes).Error; err != nil {
				return err
			}
		}
		if len(edges) > 0 {
			if err := tx.Create(&edges).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.FactoryLayout{}).
			Where("id = ?", id).
			Update("version", expectedVersion+1).Error
	})
	if err != nil {
		return models.FactoryLayout{}, err
	}
	return slf.FindByID(id, tenantID)
}
