package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/utils"
)

type RecommendationHandler struct {
	service *services.RecommendationService
	logger  *logrus.Logger
}

func NewRecommendationHandler(service *services.RecommendationService, logger *logrus.Logger) *RecommendationHandler {
	return &RecommendationHandler{
		service: service,
		logger:  logger,
	}
}

// Recommend returns the club call for a shot
// POST /api/v1/recommendations
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}
	if err := sanitizeRecommendationRequest(&req); err != nil {
		respondError(c, err, "")
		return
	}

	rec, err := h.service.Recommend(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to generate recommendation")
		return
	}

	utils.SendSuccess(c, rec)
}
