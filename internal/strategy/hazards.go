package strategy

import (
	"fmt"
	"strings"

	"github.com/stitts-dev/smart-caddie/internal/models"
)

// hazardBufferYards widens the dispersion window when deciding what is in play
const hazardBufferYards = 20

// bunkerDangerYards is how close a bunker must sit to the landing spot to matter
const bunkerDangerYards = 10

// AnalyzeHazards finds the hazards within a club's landing window and the
// safest side to miss. A hazard is in play when its distance from the tee
// falls within the dispersion window plus a 20 yard buffer either side.
func AnalyzeHazards(expectedDistance, dispersionMargin int, hazards []models.Hazard) models.HazardAnalysis {
	minDistance := expectedDistance - dispersionMargin - hazardBufferYards
	maxDistance := expectedDistance + dispersionMargin + hazardBufferYards

	inPlay := make([]models.HazardInPlay, 0, len(hazards))
	for _, h := range hazards {
		if h.DistanceFromTeeYards < minDistance || h.DistanceFromTeeYards > maxDistance {
			continue
		}
		inPlay = append(inPlay, models.HazardInPlay{
			Type:            h.Type,
			Location:        h.Location,
			DistanceFromTee: h.DistanceFromTeeYards,
			RiskLevel:       riskLevel(h, expectedDistance),
			Description:     h.Description,
		})
	}

	return models.HazardAnalysis{
		HazardsInPlay:     inPlay,
		SafeMissDirection: SafeMissDirection(inPlay),
	}
}

func riskLevel(h models.Hazard, expectedDistance int) models.RiskLevel {
	switch h.Severity {
	case models.SeverityOutOfBounds, models.SeverityWater:
		return models.RiskHigh
	case models.SeverityBunker:
		if abs(expectedDistance-h.DistanceFromTeeYards) < bunkerDangerYards {
			return models.RiskMedium
		}
		return models.RiskLow
	default:
		return models.RiskMedium
	}
}

// SafeMissDirection picks the side away from the high risk hazards.
// Equal exposure on both sides means center.
func SafeMissDirection(hazards []models.HazardInPlay) models.HazardLocation {
	var left, right int
	for _, h := range hazards {
		if h.RiskLevel != models.RiskHigh {
			continue
		}
		switch h.Location {
		case models.LocationLeft:
			left++
		case models.LocationRight:
			right++
		}
	}

	switch {
	case left > right:
		return models.LocationRight
	case right > left:
		return models.LocationLeft
	default:
		return models.LocationCenter
	}
}

// DescribeHazards renders hazards as "water left, out_of_bounds right"
func DescribeHazards(hazards []models.HazardInPlay) string {
	parts := make([]string, 0, len(hazards))
	for _, h := range hazards {
		parts = append(parts, fmt.Sprintf("%s %s", h.Type, h.Location))
	}
	return strings.Join(parts, ", ")
}

// TargetArea describes where to aim
func TargetArea(analysis models.HazardAnalysis, pin models.PinLocation) string {
	if len(analysis.HazardsInPlay) == 0 {
		return fmt.Sprintf("Aim %s of green, no major hazards", pin)
	}

	if high := analysis.HighRisk(); len(high) > 0 {
		return fmt.Sprintf("Aim %s, avoid %s", analysis.SafeMissDirection, DescribeHazards(high))
	}
	return fmt.Sprintf("Aim center, %s pin position", pin)
}

// StrategyNotes gives the strategic read on the shot
func StrategyNotes(analysis models.HazardAnalysis, strategy models.Strategy, pin models.PinLocation) string {
	if high := analysis.HighRisk(); len(high) > 0 {
		if strategy == models.StrategyConservative {
			return fmt.Sprintf("Conservative play recommended: High-risk %s in play. Play for center of green.", high[0].Type)
		}
		return fmt.Sprintf("Caution: %s %s is in play. Commit to your line.", high[0].Type, high[0].Location)
	}

	switch pin {
	case models.PinFront:
		return "Pin is accessible - front of green, good birdie opportunity."
	case models.PinBack:
		return "Back pin - take enough club, don't leave it short."
	default:
		return "Clean look at the flag - trust your distance."
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
