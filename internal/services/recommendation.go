package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/recommender"
)

var (
	ErrMissingBaseline = errors.New("player baseline not found")
	ErrCourseNotFound  = errors.New("course not found")
	ErrHoleNotFound    = errors.New("hole not found")
	ErrWeatherNotFound = errors.New("weather conditions not found")
)

const profileUnavailableWarning = "Player profile unavailable, recommendation uses baseline distances only"

// RecommendationService resolves a request against the registry and the
// player's learned profile, then runs the engine
type RecommendationService struct {
	engine   *recommender.Engine
	players  *PlayerModelService
	registry *CourseRegistry
	logger   *logrus.Logger
}

func NewRecommendationService(engine *recommender.Engine, players *PlayerModelService, registry *CourseRegistry, logger *logrus.Logger) *RecommendationService {
	return &RecommendationService{
		engine:   engine,
		players:  players,
		registry: registry,
		logger:   logger,
	}
}

// Recommend produces the caddie call for one shot. A missing or unreachable
// profile never fails the request; it adds a warning instead.
func (s *RecommendationService) Recommend(ctx context.Context, req *models.RecommendationRequest) (*models.Recommendation, error) {
	start := time.Now()

	if err := req.Validate(); err != nil {
		return nil, err
	}

	baseline, err := s.resolveBaseline(req)
	if err != nil {
		return nil, err
	}

	hole, courseElevation, err := s.resolveHole(req)
	if err != nil {
		return nil, err
	}

	weather, err := s.resolveWeather(req)
	if err != nil {
		return nil, err
	}

	var warnings []string
	profile, err := s.players.GetOrCreate(ctx, req.Shot.PlayerID, baseline.PlayerName)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"player_id": req.Shot.PlayerID,
			"error":     err.Error(),
		}).Warn("Proceeding without player profile")
		warnings = append(warnings, profileUnavailableWarning)
		profile = nil
	}

	rec, err := s.engine.Recommend(recommender.Input{
		Shot:                       req.Shot,
		Baseline:                   baseline,
		Hole:                       hole,
		Weather:                    weather,
		CourseElevationFeet:        courseElevation,
		Round:                      req.Round,
		Profile:                    profile,
		IncludeConfidenceBreakdown: req.IncludeConfidenceBreakdown,
	})
	if err != nil {
		return nil, err
	}
	rec.Warnings = warnings

	s.logger.WithFields(logrus.Fields{
		"player_id":         req.Shot.PlayerID,
		"hole_id":           hole.HoleID,
		"recommendation_id": rec.RecommendationID,
		"club":              rec.PrimaryClub,
		"confidence":        rec.ConfidencePercent,
		"duration_ms":       time.Since(start).Milliseconds(),
	}).Info("Recommendation generated")

	return rec, nil
}

func (s *RecommendationService) resolveBaseline(req *models.RecommendationRequest) (models.PlayerBaseline, error) {
	if req.Baseline != nil {
		return *req.Baseline, nil
	}

	baseline, ok := s.registry.Baseline(req.Shot.PlayerID)
	if !ok {
		return models.PlayerBaseline{}, fmt.Errorf("%w: %s", ErrMissingBaseline, req.Shot.PlayerID)
	}
	return baseline, nil
}

// resolveHole returns the inline hole, or looks it up on the registered course
// by number and then by the shot's hole id
func (s *RecommendationService) resolveHole(req *models.RecommendationRequest) (models.Hole, int, error) {
	if req.Hole != nil {
		return *req.Hole, req.CourseElevationFeet, nil
	}

	course, ok := s.registry.Course(req.CourseID)
	if !ok {
		return models.Hole{}, 0, fmt.Errorf("%w: %s", ErrCourseNotFound, req.CourseID)
	}

	elevation := req.CourseElevationFeet
	if elevation == 0 {
		elevation = course.ElevationFeet
	}

	if req.HoleNumber > 0 {
		hole, ok := course.Hole(req.HoleNumber)
		if !ok {
			return models.Hole{}, 0, fmt.Errorf("%w: hole %d on %s", ErrHoleNotFound, req.HoleNumber, req.CourseID)
		}
		return *hole, elevation, nil
	}

	hole, ok := course.HoleByID(req.Shot.HoleID)
	if !ok {
		return models.Hole{}, 0, fmt.Errorf("%w: %s on %s", ErrHoleNotFound, req.Shot.HoleID, req.CourseID)
	}
	return *hole, elevation, nil
}

func (s *RecommendationService) resolveWeather(req *models.RecommendationRequest) (*models.WeatherConditions, error) {
	if req.Weather != nil {
		return req.Weather, nil
	}
	if req.WeatherConditionID == "" {
		return nil, nil
	}

	w, ok := s.registry.Weather(req.WeatherConditionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrWeatherNotFound, req.WeatherConditionID)
	}
	return &w, nil
}
