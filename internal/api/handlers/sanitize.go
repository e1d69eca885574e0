package handlers

import (
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/pkg/utils"
)

// sanitizeFields cleans each free-text field in place, stopping at the first rejection
func sanitizeFields(fields ...*string) error {
	for _, f := range fields {
		clean, err := utils.SanitizeText(*f)
		if err != nil {
			return err
		}
		*f = clean
	}
	return nil
}

func sanitizeHole(h *models.Hole) error {
	fields := []*string{&h.Notes}
	for i := range h.Hazards {
		fields = append(fields, &h.Hazards[i].Description)
	}
	return sanitizeFields(fields...)
}

func sanitizeRecommendationRequest(req *models.RecommendationRequest) error {
	if err := sanitizeFields(&req.Shot.Notes); err != nil {
		return err
	}
	if req.Baseline != nil {
		if err := sanitizeFields(&req.Baseline.PlayerName); err != nil {
			return err
		}
	}
	if req.Hole != nil {
		return sanitizeHole(req.Hole)
	}
	return nil
}

func sanitizeCourse(c *models.Course) error {
	if err := sanitizeFields(&c.Name); err != nil {
		return err
	}
	for i := range c.Holes {
		if err := sanitizeHole(&c.Holes[i]); err != nil {
			return err
		}
	}
	return nil
}
