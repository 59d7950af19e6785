package mapper

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
)

// AssetMapper handles mapping asset directory records to DTOs
type AssetMapper interface {
	ToAssetResponse(asset models.Asset) response.Asset
	ToAssetResponses(assets []models.Asset) []response.Asset
}

// AssetMapperImpl implements AssetMapper
type AssetMapperImpl struct{}

// NewAssetMapper creates a new AssetMapper instance
func NewAssetMapper() AssetMapper {
	return &AssetMapperImpl{}
}

// ToAssetResponse maps an asset to its palette view
func (m *AssetMapperImpl) ToAssetResponse(asset models.Asset) response.Asset {
	return response.Asset{
		ID:          asset.ID,
		Name:        asset.Name,
		Code:        asset.Code,
		Status:      asset.Status,
		Capacity:    asset.Capacity,
		ImageURL:    asset.ImageURL,
		Description: asset.Description,
	}
}

// ToAssetResponses maps assets to their palette views
func (m *AssetMapperImpl) ToAssetResponses(assets []models.Asset) []response.Asset {
	responses := make([]response.Asset, 0, len(assets))
	for _, a := range assets {
		responses = append(responses, m.ToAssetResponse(a))
	}
	return responses
}
