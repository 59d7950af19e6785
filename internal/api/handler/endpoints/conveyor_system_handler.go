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

type conveyorSystemHandler struct {
	systemService *service.ConveyorSystemService
	logger        zerolog.Logger
	config        api.AppConfig
	systemMapper  mapper.ConveyorSystemMapper
}

func newConveyorSystemHandler() *conveyorSystemHandler {
	return &conveyorSystemHandler{
		systemService: service.NewConveyorSystemService(),
		logger:        api.Logger,
		config:        api.GetConfig(),
		systemMapper:  mapper.NewConveyorSystemMapper(),
	}
}

// ConveyorSystemHandler sets up conveyor system routes
func ConveyorSystemHandler(router *graceful.Graceful) {
	h := newConveyorSystemHandler()

	routes := router.Group("/api/v1/conveyor-systems")
	routes.Use(middleware.AuthMiddleware(h.config))
	{
		routes.GET("", h.list)
		routes.GET("/:id", h.get)
		routes.POST("", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.create)
		routes.PUT("/:id", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.update)
		routes.DELETE("/:id", middleware.RequireRole(models.RoleEditor, models.RoleAdmin), h.delete)
	}
}

// list returns all conveyor systems of the tenant with edge counts
func (slf *conveyorSystemHandler) list(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	systems, counts, err := slf.systemService.FindAllForTenant(tenantID)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to list conveyor systems")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to retrieve conveyor systems"})
		return
	}

	c.JSON(http.StatusOK, slf.systemMapper.ToSystemResponses(systems, counts))
}

// get returns a single conveyor system and the edges referencing it
func (slf *conveyorSystemHandler) get(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	system, edges, err := slf.systemService.FindByID(c.Param("id"), tenantID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.systemMapper.ToSystemWithEdges(*system, edges))
}

// create creates a new conveyor system
func (slf *conveyorSystemHandler) create(c *gin.Context) {
	tenantID := c.GetString("tenantID")

	var req request.CreateConveyorSystem
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse create conveyor system request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	system, err := slf.systemService.Create(tenantID, req.Name, req.Color, req.Description)
	if err != nil {
		slf.logger.Error().Err(err).Msg("Failed to create conveyor system")
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Failed to create conveyor system"})
		return
	}

	c.JSON(http.StatusCreated, slf.systemMapper.ToSystemResponse(*system, 0))
}

// update patches a conveyor system
func (slf *conveyorSystemHandler) update(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	id := c.Param("id")

	var req request.UpdateConveyorSystem
	if err := pkg.ParseAndValidate(c, &req); err != nil {
		slf.logger.Error().Err(err).Msg("Failed to parse update conveyor system request")
		c.JSON(http.StatusBadRequest, response.APIError{Message: err.Error()})
		return
	}

	system, err := slf.systemService.Update(id, tenantID, req.Name, req.Color, req.Description)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, slf.systemMapper.ToSystemResponse(*system, 0))
}

// delete removes a conveyor system, detaching its edges
func (slf *conveyorSystemHandler) delete(c *gin.Context) {
	tenantID := c.GetString("tenantID")
	id := c.Param("id")

	if err := slf.systemService.Delete(id, tenantID); err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}
