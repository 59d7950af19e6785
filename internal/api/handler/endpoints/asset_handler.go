package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/response"
	"api/internal/api/service"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// assetHandler exposes the read-only asset palette. Asset lifecycle is
// owned by the wider maintenance application.
type assetHandler struct {
	assetService *service.AssetService
	logger       zerolog.Logger
	config       api.AppConfig
	assetMapper  mapper.AssetMapper
}

func newAssetHandler() *assetHandler {
	return &assetHandler{
		assetService: service.NewAssetService(),
		logger:       api.Logger,
		config:       api.GetConfig(),
		assetMapper:  mapper.NewAssetMapper(),
	}
}

// AssetHandler sets up asset palette routes
func AssetHandler(router *graceful.Graceful) {
	h := newAssetHandler()

	routes := router.Group("/api/v1/assets")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.list)
		routes.GET("/:id", h.get)
	}
}

// list returns all assets of the caller's tenant
func (slf *assetHandler) list(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	assets, err := slf.assetService.FindAllForTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list assets")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve assets"})
		return
	}

	c.JSON(http.StatusOK, slf.assetMapper.ToAssetResponses(assets))
}

// get returns a single asset
func (slf *assetHandler) get(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	asset, err := slf.assetService.FindByID(c.Param("id"), tenantID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.assetMapper.ToAssetResponse(*asset))
}
