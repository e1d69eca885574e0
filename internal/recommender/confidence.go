package recommender

import (
	"math"
	"strings"

	"github.com/stitts-dev/smart-caddie/internal/models"
)

const (
	weightDistance   = 0.35
	weightElevation  = 0.15
	weightWind       = 0.15
	weightLie        = 0.20
	weightPlayerData = 0.15

	// fullBagClubs is how many baseline clubs count as real player data
	fullBagClubs = 8

	highConfidenceExplanation = "High confidence: conditions and distance match look great."
)

// ConfidenceInput carries the signals the certainty factors are derived from
type ConfidenceInput struct {
	TargetYards       int
	ExpectedYards     int
	DispersionYards   int
	ElevationChangeFt *int
	Weather           *models.WeatherConditions
	Lie               models.PlayerLie
	LieQuality        *models.LieQuality
	BaselineClubs     int
}

// ScoreConfidence computes the five certainty factors, the weighted
// geometric mean and an explanation
func ScoreConfidence(in ConfidenceInput) (models.ConfidenceScore, string) {
	score := models.ConfidenceScore{
		DistanceCertainty:  DistanceCertainty(in.TargetYards, in.ExpectedYards, in.DispersionYards),
		ElevationCertainty: ElevationCertainty(in.ElevationChangeFt),
		WindCertainty:      WindCertainty(in.Weather),
		LieCertainty:       LieCertainty(in.Lie, in.LieQuality),
		PlayerDataQuality:  PlayerDataQuality(in.BaselineClubs),
	}
	score.Overall = OverallConfidence(score)
	return score, ExplainConfidence(score)
}

// OverallConfidence is the weighted geometric mean of the factors
func OverallConfidence(s models.ConfidenceScore) float64 {
	return math.Pow(s.DistanceCertainty, weightDistance) *
		math.Pow(s.ElevationCertainty, weightElevation) *
		math.Pow(s.WindCertainty, weightWind) *
		math.Pow(s.LieCertainty, weightLie) *
		math.Pow(s.PlayerDataQuality, weightPlayerData)
}

// DistanceCertainty grades how well the expected distance matches the target
func DistanceCertainty(target, expected, margin int) float64 {
	if target <= 0 {
		return 0.5
	}

	err := float64(absInt(expected - target))
	m := float64(margin)
	switch {
	case err <= m/2:
		return 1.0
	case err <= m:
		return 0.85
	case err <= 1.5*m:
		return 0.7
	default:
		return math.Max(0.5, 1-err/float64(target))
	}
}

// ElevationCertainty is lower when the hole carries no elevation data
func ElevationCertainty(changeFt *int) float64 {
	switch {
	case changeFt == nil:
		return 0.7
	case *changeFt == 0:
		return 1.0
	case absInt(*changeFt) > 10:
		return 0.95
	default:
		return 0.9
	}
}

// WindCertainty drops as the wind picks up
func WindCertainty(weather *models.WeatherConditions) float64 {
	switch {
	case weather == nil:
		return 0.75
	case weather.WindSpeedMPH < 5:
		return 1.0
	case weather.WindSpeedMPH < 10:
		return 0.9
	default:
		return 0.8
	}
}

// LieCertainty grades how predictable contact is from the lie
func LieCertainty(lie models.PlayerLie, quality *models.LieQuality) float64 {
	q := models.QualityNormal
	if quality != nil {
		q = *quality
	}

	if q == models.QualityPlugged || lie == models.LieWoods {
		return 0.5
	}

	switch lie {
	case models.LieTee, models.LieFairway:
		if q == models.QualityThick {
			return 0.75
		}
		return 1.0
	case models.LieSemiRough:
		return 0.8
	case models.LieRough:
		if q == models.QualityThick {
			return 0.6
		}
		return 0.7
	case models.LieBunker:
		return 0.65
	default:
		return 0.7
	}
}

// PlayerDataQuality is high when the player supplied a full bag
func PlayerDataQuality(baselineClubs int) float64 {
	if baselineClubs >= fullBagClubs {
		return 0.95
	}
	return 0.7
}

// ExplainConfidence lists the factors under their good threshold
func ExplainConfidence(s models.ConfidenceScore) string {
	var issues []string
	if s.DistanceCertainty < 0.9 {
		issues = append(issues, "distance match marginal")
	}
	if s.ElevationCertainty < 0.8 {
		issues = append(issues, "elevation estimated")
	}
	if s.WindCertainty < 0.85 {
		issues = append(issues, "wind variable")
	}
	if s.LieCertainty < 0.8 {
		issues = append(issues, "challenging lie")
	}
	if s.PlayerDataQuality < 0.8 {
		issues = append(issues, "default distances")
	}

	if len(issues) == 0 {
		return highConfidenceExplanation
	}
	return "Confidence reduced: " + strings.Join(issues, ", ") + "."
}

// DisplayPercent renders overall confidence as a percentage for the caddie
// call, held to 50-95
func DisplayPercent(overall float64) int {
	pct := int(math.Round(overall * 100))
	if pct < 50 {
		return 50
	}
	if pct > 95 {
		return 95
	}
	return pct
}
