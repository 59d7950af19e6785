package repo

import (
	"api"
	"api/internal/api/models"

	"gorm.io/gorm"
)

// AssetRepository is the read side of the asset directory. The wider
// maintenance application owns asset lifecycle; the layout engine only
// resolves references and capacities.
type AssetRepository struct {
	Db *gorm.DB
}

func NewAssetRepository() *AssetRepository {
	return &AssetRepository{Db: api.DB}
}

// FindByID retrieves an asset by ID
func (slf *AssetRepository) FindByID(id string, tenantID string) (models.Asset, error) {
	var asset models.Asset
	err := slf.Db.Where("id = ? AND tenant_id = ?", id, tenantID).First(&asset).Error
	return asset, err
}

// FindAllByTenant retrieves all assets of a tenant ordered by name
func (slf *AssetRepository) FindAllByTenant(tenantID string) ([]models.Asset, error) {
	var assets []models.Asset
	err := slf.Db.
		Where("tenant_id = ?", tenantID).
		Order("name ASC").
		Find(&assets).Error
	return assets, err
}

// FindByIDs retrieves the subset of the given asset IDs that exist for the tenant
func (slf *AssetRepository) FindByIDs(ids []string, tenantID string) ([]models.Asset, error) {
	var assets []models.Asset
	if len(ids) == 0 {
		return assets, nil
	}
	err := slf.Db.
		Where("id IN ? AND tenant_id = ?", ids, tenantID).
		Find(&assets).Error
	return assets, err
}
