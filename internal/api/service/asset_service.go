package service

import (
	"api"
	"api/internal/api/models"
	"api/internal/api/repo"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AssetService is read-only: the wider maintenance application owns
// asset lifecycle, the layout engine only feeds the canvas palette.
type AssetService struct {
	assetRepo *repo.AssetRepository
	logger    zerolog.Logger
}

func NewAssetService() *AssetService {
	return &AssetService{
		assetRepo: repo.NewAssetRepository(),
		logger:    api.Logger,
	}
}

// FindAllForTenant retrieves all assets of a tenant
func (slf *AssetService) FindAllForTenant(tenantID string) ([]models.Asset, error) {
	assets, err := slf.assetRepo.FindAllByTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Str("tenantId", tenantID).Msg("Error listing assets")
		return nil, err
	}
	return assets, nil
}

// FindByID retrieves a single asset
func (slf *AssetService) FindByID(id string, tenantID string) (*models.Asset, error) {
	asset, err := slf.assetRepo.FindByID(id, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrAssetNotFound
		}
		slf.logger.Error().Err(err).Str("assetId", id).Msg("Error getting asset")
		return nil, err
	}
	return &asset, nil
}
