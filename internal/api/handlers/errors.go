package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/recommender"
	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/utils"
)

// respondError maps service errors onto the response envelope
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, models.ErrInvalidRequest), errors.Is(err, utils.ErrInvalidInput):
		utils.SendValidationError(c, "Invalid request", err.Error())
	case errors.Is(err, recommender.ErrNoClubs):
		utils.SendError(c, http.StatusBadRequest, utils.NewAppError(utils.ErrCodeNoClubs, "Player baseline has no clubs"))
	case errors.Is(err, services.ErrMissingBaseline),
		errors.Is(err, services.ErrCourseNotFound),
		errors.Is(err, services.ErrHoleNotFound),
		errors.Is(err, services.ErrWeatherNotFound),
		errors.Is(err, services.ErrProfileNotFound):
		utils.SendNotFound(c, err.Error())
	case errors.Is(err, services.ErrStoreUnavailable):
		utils.SendServiceUnavailable(c, "Player profile store is temporarily unavailable")
	case errors.Is(err, services.ErrVersionConflict):
		utils.SendConflict(c, "Player profile was modified concurrently, retry the request")
	default:
		utils.SendInternalError(c, fallback)
	}
}

// respondSaveError is respondError for feedback writes, where an unexpected
// failure means the update was lost
func respondSaveError(c *gin.Context, err error) {
	if errors.Is(err, services.ErrStoreUnavailable) || errors.Is(err, services.ErrVersionConflict) {
		respondError(c, err, "")
		return
	}
	_ = c.Error(err)
	utils.SendError(c, http.StatusInternalServerError,
		utils.NewAppError(utils.ErrCodeProfileSaveFailed, "Failed to save player profile"))
}

func bindingError(c *gin.Context, err error) {
	_ = c.Error(err)
	utils.SendValidationError(c, "Invalid request body", err.Error())
}
