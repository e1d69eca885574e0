package models

import (
	"errors"
	"fmt"
	"time"
)

// RiskLevel is the risk tier of a hazard in play
type RiskLevel string

const (
	RiskLow    RiskLevel = "low"
	RiskMedium RiskLevel = "medium"
	RiskHigh   RiskLevel = "high"
)

// HazardInPlay is a hazard that falls within a club's landing window
type HazardInPlay struct {
	Type            HazardType     `json:"hazard_type"`
	Location        HazardLocation `json:"location"`
	DistanceFromTee int            `json:"distance_from_tee"`
	RiskLevel       RiskLevel      `json:"risk_level"`
	Description     string         `json:"description,omitempty"`
}

// HazardAnalysis is the hazard picture for one candidate club
type HazardAnalysis struct {
	HazardsInPlay     []HazardInPlay `json:"hazards_in_play"`
	SafeMissDirection HazardLocation `json:"safe_miss_direction"`
}

// HighRisk returns the high risk hazards in play
func (a HazardAnalysis) HighRisk() []HazardInPlay {
	var high []HazardInPlay
	for _, h := range a.HazardsInPlay {
		if h.RiskLevel == RiskHigh {
			high = append(high, h)
		}
	}
	return high
}

// AlternativePlay is a secondary club option
type AlternativePlay struct {
	Club      ClubType `json:"club"`
	Target    string   `json:"target"`
	Scenario  string   `json:"scenario"`
	Rationale string   `json:"rationale,omitempty"`
}

// RiskReward frames aggressive against conservative play
type RiskReward struct {
	AggressiveUpside     string `json:"aggressive_upside"`
	AggressiveDownside   string `json:"aggressive_downside"`
	ConservativeUpside   string `json:"conservative_upside"`
	ConservativeDownside string `json:"conservative_downside"`
}

// ConfidenceScore is the factor breakdown behind a recommendation's confidence
type ConfidenceScore struct {
	DistanceCertainty  float64 `json:"distance_certainty"`
	ElevationCertainty float64 `json:"elevation_certainty"`
	WindCertainty      float64 `json:"wind_certainty"`
	LieCertainty       float64 `json:"lie_certainty"`
	PlayerDataQuality  float64 `json:"player_data_quality"`
	Overall            float64 `json:"overall_confidence"`
}

// Recommendation is the caddie's call for a single shot
type Recommendation struct {
	RecommendationID      string            `json:"recommendation_id"`
	ShotAnalysisID        string            `json:"shot_analysis_id,omitempty"`
	CreatedAt             time.Time         `json:"timestamp"`
	PrimaryClub           ClubType          `json:"primary_club"`
	PrimaryTarget         string            `json:"primary_target"`
	CaddieCall            string            `json:"caddie_call"`
	CaddieNote            string            `json:"caddie_note"`
	StrategyNote          string            `json:"strategy_note"`
	Why                   string            `json:"why"`
	AdjustedDistance      int               `json:"adjusted_distance"`
	ExpectedCarryYards    int               `json:"expected_carry_yards"`
	OptimalMiss           string            `json:"optimal_miss"`
	DangerZone            string            `json:"danger_zone"`
	Alternatives          []AlternativePlay `json:"alternatives,omitempty"`
	RiskReward            RiskReward        `json:"risk_reward"`
	ConfidencePercent     int               `json:"confidence_percent"`
	Confidence            *ConfidenceScore  `json:"confidence,omitempty"`
	ConfidenceExplanation string            `json:"confidence_explanation"`
	Warnings              []string          `json:"warnings,omitempty"`
}

// RecommendationRequest is everything needed to make a call for one shot.
// Baseline and Hole may be omitted when they can be resolved from a registry.
type RecommendationRequest struct {
	Shot                       ShotContext        `json:"shot_analysis" binding:"required"`
	Baseline                   *PlayerBaseline    `json:"player_baseline,omitempty"`
	Hole                       *Hole              `json:"hole,omitempty"`
	CourseID                   string             `json:"course_id,omitempty" binding:"max=50"`
	HoleNumber                 int                `json:"hole_number,omitempty" binding:"omitempty,min=1,max=18"`
	Weather                    *WeatherConditions `json:"weather,omitempty"`
	WeatherConditionID         string             `json:"weather_condition_id,omitempty" binding:"max=50"`
	CourseElevationFeet        int                `json:"course_elevation_feet" binding:"min=-1000,max=15000"`
	Round                      *RoundContext      `json:"round_context,omitempty"`
	IncludeConfidenceBreakdown bool               `json:"include_confidence_breakdown"`
}

// ErrInvalidRequest marks cross-field validation failures
var ErrInvalidRequest = errors.New("invalid recommendation request")

// Validate checks the rules binding tags cannot express
func (r *RecommendationRequest) Validate() error {
	if r.Baseline != nil {
		if err := r.Baseline.Validate(); err != nil {
			return err
		}
	}

	if r.Hole == nil && r.CourseID == "" {
		return fmt.Errorf("%w: either hole or course_id is required", ErrInvalidRequest)
	}
	if r.Hole == nil && r.HoleNumber == 0 && r.Shot.HoleID == "" {
		return fmt.Errorf("%w: hole_number or shot_analysis.hole_id is required with course_id", ErrInvalidRequest)
	}

	if r.Round != nil && len(r.Round.LastScores) != len(r.Round.LastPars) {
		return fmt.Errorf("%w: last_3_scores and last_3_pars must be the same length", ErrInvalidRequest)
	}

	return nil
}
