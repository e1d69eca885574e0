package handlers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/utils"
)

type PlayerHandler struct {
	players  *services.PlayerModelService
	registry *services.CourseRegistry
	logger   *logrus.Logger
}

func NewPlayerHandler(players *services.PlayerModelService, registry *services.CourseRegistry, logger *logrus.Logger) *PlayerHandler {
	return &PlayerHandler{
		players:  players,
		registry: registry,
		logger:   logger,
	}
}

type comfortRequest struct {
	Rating *float64 `json:"rating" binding:"required"`
}

type comfortResponse struct {
	PlayerID string          `json:"player_id"`
	Club     models.ClubType `json:"club_type"`
	Rating   float64         `json:"rating"`
}

// clubParam reads and checks the :club path parameter
func clubParam(c *gin.Context) (models.ClubType, bool) {
	club := models.ClubType(c.Param("club"))
	if !club.IsValid() {
		utils.SendValidationError(c, "Invalid club type", fmt.Sprintf("unknown club type %q", club))
		return "", false
	}
	return club, true
}

// RecordShot folds a shot outcome into the player's dispersion tendency
// POST /api/v1/players/:id/feedback/shots
func (h *PlayerHandler) RecordShot(c *gin.Context) {
	var feedback models.ShotFeedback
	if err := c.ShouldBindJSON(&feedback); err != nil {
		bindingError(c, err)
		return
	}
	feedback.PlayerID = c.Param("id")
	if !feedback.Club.IsValid() {
		utils.SendValidationError(c, "Invalid club type", fmt.Sprintf("unknown club type %q", feedback.Club))
		return
	}

	tendency, err := h.players.UpdateAfterShot(c.Request.Context(), feedback)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	utils.SendSuccess(c, tendency)
}

// RecordRound folds a completed round into the fatigue model
// POST /api/v1/players/:id/feedback/rounds
func (h *PlayerHandler) RecordRound(c *gin.Context) {
	var summary models.RoundSummary
	if err := c.ShouldBindJSON(&summary); err != nil {
		bindingError(c, err)
		return
	}

	fatigue, err := h.players.UpdateAfterRound(c.Request.Context(), c.Param("id"), summary)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	utils.SendSuccess(c, fatigue)
}

// GetComfort returns the player's comfort with a club
// GET /api/v1/players/:id/comfort/:club
func (h *PlayerHandler) GetComfort(c *gin.Context) {
	club, ok := clubParam(c)
	if !ok {
		return
	}

	rating, err := h.players.GetComfortRating(c.Request.Context(), c.Param("id"), club)
	if err != nil {
		respondError(c, err, "Failed to load comfort rating")
		return
	}

	utils.SendSuccess(c, comfortResponse{PlayerID: c.Param("id"), Club: club, Rating: rating})
}

// SetComfort stores a comfort rating, clamped to 0-1
// PUT /api/v1/players/:id/comfort/:club
func (h *PlayerHandler) SetComfort(c *gin.Context) {
	club, ok := clubParam(c)
	if !ok {
		return
	}

	var req comfortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindingError(c, err)
		return
	}

	rating, err := h.players.SetComfortRating(c.Request.Context(), c.Param("id"), club, *req.Rating)
	if err != nil {
		respondSaveError(c, err)
		return
	}

	utils.SendSuccess(c, comfortResponse{PlayerID: c.Param("id"), Club: club, Rating: rating})
}

// GetTendency returns the learned tendency for a club
// GET /api/v1/players/:id/tendencies/:club
func (h *PlayerHandler) GetTendency(c *gin.Context) {
	club, ok := clubParam(c)
	if !ok {
		return
	}

	tendency, found, err := h.players.GetTendency(c.Request.Context(), c.Param("id"), club)
	if err != nil {
		respondError(c, err, "Failed to load tendency")
		return
	}
	if !found {
		utils.SendNotFound(c, fmt.Sprintf("no shots recorded with %s", club))
		return
	}

	utils.SendSuccess(c, tendency)
}

// GetFatigue returns the distance multiplier for a hole
// GET /api/v1/players/:id/fatigue?hole=14
func (h *PlayerHandler) GetFatigue(c *gin.Context) {
	hole, err := strconv.Atoi(c.DefaultQuery("hole", "1"))
	if err != nil || hole < 1 || hole > 18 {
		utils.SendValidationError(c, "Invalid hole number", "hole must be between 1 and 18")
		return
	}

	multiplier, err := h.players.GetFatigueAdjustment(c.Request.Context(), c.Param("id"), hole)
	if err != nil {
		respondError(c, err, "Failed to load fatigue adjustment")
		return
	}

	utils.SendSuccess(c, gin.H{
		"player_id":           c.Param("id"),
		"hole_number":         hole,
		"distance_multiplier": multiplier,
	})
}

// GetProfile returns the learned profile
// GET /api/v1/players/:id/profile
func (h *PlayerHandler) GetProfile(c *gin.Context) {
	profile, err := h.players.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to load player profile")
		return
	}

	utils.SendSuccess(c, profile)
}

// SetBaseline registers the player's club distances
// POST /api/v1/players/:id/baseline
func (h *PlayerHandler) SetBaseline(c *gin.Context) {
	var baseline models.PlayerBaseline
	baseline.PlayerID = c.Param("id")
	if err := c.ShouldBindJSON(&baseline); err != nil {
		bindingError(c, err)
		return
	}
	baseline.PlayerID = c.Param("id")

	if err := sanitizeFields(&baseline.PlayerName); err != nil {
		respondError(c, err, "")
		return
	}
	if err := baseline.Validate(); err != nil {
		respondError(c, err, "")
		return
	}

	h.registry.AddBaseline(baseline)
	h.logger.WithFields(logrus.Fields{
		"player_id": baseline.PlayerID,
		"clubs":     len(baseline.Clubs),
	}).Info("Registered player baseline")

	utils.SendCreated(c, baseline)
}

// GetBaseline returns the registered club distances
// GET /api/v1/players/:id/baseline
func (h *PlayerHandler) GetBaseline(c *gin.Context) {
	baseline, ok := h.registry.Baseline(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Player baseline not found")
		return
	}

	utils.SendSuccess(c, baseline)
}
