package response

import "api/internal/api/models"

// Asset is the palette view of an asset directory record
type Asset struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Code        string             `json:"code"`
	Status      models.AssetStatus `json:"status"`
	Capacity    *float64           `json:"capacity"`
	ImageURL    string             `json:"imageUrl"`
	Description string             `json:"description"`
}
