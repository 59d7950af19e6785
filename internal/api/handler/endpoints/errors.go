package endpoints

import (
	"api/internal/api/handler/response"
	"api/internal/api/models"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// writeDomainError translates the domain error taxonomy to HTTP so the
// client can pick the right recovery: 404 re-route, 409 re-fetch and
// reconcile, 423 wait for a privileged unlock, 400 fix the submission.
func writeDomainError(c *gin.Context, err error) {
	var conflict *models.VersionConflictError
	var validation *models.ValidationError

	switch {
	case errors.Is(err, models.ErrLayoutNotFound),
		errors.Is(err, models.ErrConveyorSystemNotFound),
		errors.Is(err, models.ErrAssetNotFound):
		c.JSON(http.StatusNotFound, response.APIError{Message: err.Error()})
	case errors.Is(err, models.ErrLayoutLocked):
		c.JSON(http.StatusLocked, response.APIError{Message: "Layout is locked; an administrator must unlock it before editing"})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, response.VersionConflict{
			Message:        "Layout has been modified by another user. Refresh and try again.",
			CurrentVersion: conflict.CurrentVersion,
		})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, response.APIError{Message: validation.Error(), Data: validation.Details})
	default:
		c.JSON(http.StatusInternalServerError, response.APIError{Message: "Internal error"})
	}
}
