package endpoints

import (
	"api"
	"api/internal/api/handler/mapper"
	"api/internal/api/handler/middleware"
	"api/internal/api/handler/request"
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"api/internal/api/service"
	"api/pkg"
	"net/http"

	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type layoutHandler struct {
	layoutService   *service.LayoutService
	analysisService *service.AnalysisService
	logger          zerolog.Logger
	config          api.AppConfig
	layoutMapper    mapper.LayoutMapper
}

func newLayoutHandler() *layoutHandler {
	return &layoutHandler{
		layoutService:   service.NewLayoutService(),
		analysisService: service.NewAnalysisService(),
		logger:          api.Logger,
		config:          api.GetConfig(),
		layoutMapper:    mapper.NewLayoutMapper(),
	}
}

// LayoutHandler sets up factory layout routes
func LayoutHandler(router *graceful.Graceful) {
	h := newLayoutHandler()

	routes := router.Group("/api/v1/layouts")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.list)
		routes.POST("", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.create)
		routes.GET("/:id", h.get)
		routes.PATCH("/:id", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.updateMetadata)
		routes.DELETE("/:id", middleware.RequireRole(models.RoleAdmin), h.delete)
		routes.PUT("/:id/graph", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.replaceGraph)
		routes.POST("/:id/lock", middleware.RequireRole(models.RoleAdmin), h.toggleLock)
		routes.GET("/:id/analysis", h.analyze)
	}
}

// list returns all layouts of the caller's tenant
func (slf *layoutHandler) list(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	layouts, err := slf.layoutService.FindAllForTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list layouts")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve layouts"})
		return
	}

	c.JSON(http.StatusOK, slf.layoutMapper.ToLayoutSummaries(layouts))
}

// get returns a layout with its full graph, version and lock state
func (slf *layoutHandler) get(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	layout, err := slf.layoutService.FindByID(c.Param("id"), tenantID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.layoutMapper.ToLayoutResponse(*layout))
}

// create creates an empty layout at version 1
func (slf *layoutHandler) create(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	var req request.CreateLayout
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create layout request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	layout, err := slf.layoutService.Create(tenantID, req.Name, req.Description)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create layout")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create layout"})
		return
	}

	c.JSON(http.StatusCreated, slf.layoutMapper.ToLayoutResponse(*layout))
}

// updateMetadata patches name, description or viewport without touching
// the graph version
func (slf *layoutHandler) updateMetadata(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	var req request.UpdateLayoutMetadata
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse layout metadata request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	patch := slf.layoutMapper.PatchMetadata(req)
	layout, err := slf.layoutService.UpdateMetadata(c.Param("id"), tenantID, patch)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.layoutMapper.ToLayoutResponse(*layout))
}

// delete removes a layout and its whole graph
func (slf *layoutHandler) delete(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	id := c.Param("id")

	if err := slf.layoutService.Delete(id, tenantID); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

// replaceGraph swaps the layout's graph for the submitted one under
// optimistic concurrency control
func (slf *layoutHandler) replaceGraph(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	id := c.Param("id")

	var req request.ReplaceGraph
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Str("layoutId", id).Msg("Failed to parse graph submission")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	layout, err := slf.layoutService.ReplaceGraph(
		id,
		tenantID,
		req.Version,
		slf.layoutMapper.GraphNodes(req.Nodes),
		slf.layoutMapper.GraphEdges(req.Edges),
	)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.layoutMapper.ToLayoutResponse(*layout))
}

// toggleLock flips the layout's lock state (admin only)
func (slf *layoutHandler) toggleLock(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	layout, err := slf.layoutService.ToggleLock(c.Param("id"), tenantID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.layoutMapper.ToLayoutResponse(*layout))
}

// analyze runs flow analysis against the persisted graph
func (slf *layoutHandler) analyze(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	report, err := slf.analysisService.AnalyzeLayout(c.Param("id"), tenantID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
