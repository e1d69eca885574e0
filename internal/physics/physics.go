// Package physics adjusts baseline club distances for the conditions a shot is
// played in: temperature, altitude, elevation change, wind, rain and lie.
//
// Every function is pure. Inputs are assumed validated; out-of-domain values
// degrade through the formulas rather than returning errors.
package physics

import (
	"math"

	"github.com/stitts-dev/smart-caddie/internal/models"
)

const (
	referenceTemperatureF = 70.0
	yardsPer10F           = 2.0
	feetPerYard           = 3.0
	maxShotElevationShare = 0.15
	calmWindMPH           = 5.0
)

// DefaultAltitudeFactorPerFoot is 2% distance per 1000 ft above sea level
const DefaultAltitudeFactorPerFoot = 0.00002

// DefaultMaxCombinedReduction caps rain plus lie penalties
const DefaultMaxCombinedReduction = 0.60

// Params holds the tunable constants of the adjustment model
type Params struct {
	AltitudeFactorPerFoot float64
	MaxCombinedReduction  float64
}

// DefaultParams returns the production constants
func DefaultParams() Params {
	return Params{
		AltitudeFactorPerFoot: DefaultAltitudeFactorPerFoot,
		MaxCombinedReduction:  DefaultMaxCombinedReduction,
	}
}

// Input is one club's baseline plus the conditions of the shot
type Input struct {
	BaselineCarry       int
	BaselineTotal       int
	TemperatureF        float64
	CourseElevationFeet int
	ShotElevationFeet   int
	WindRelative        models.WindRelative
	WindSpeedMPH        float64
	Rain                bool
	Ground              models.GroundConditions
	Lie                 models.PlayerLie
	LieQuality          *models.LieQuality
}

// Breakdown labels each adjustment contributing to the result
type Breakdown struct {
	TemperatureYards         int     `json:"temperature_yards"`
	CourseElevationYards     int     `json:"course_elevation_yards"`
	ShotElevationYards       int     `json:"shot_elevation_yards"`
	WindYards                int     `json:"wind_yards"`
	RainPercent              float64 `json:"rain_percent"`
	LiePercent               float64 `json:"lie_percent"`
	CombinedReductionPercent float64 `json:"combined_reduction_percent"`
}

// Result is the adjusted distance for one club
type Result struct {
	AdjustedCarry int       `json:"adjusted_carry"`
	AdjustedTotal int       `json:"adjusted_total"`
	Adjustments   Breakdown `json:"adjustments"`
}

// Adjust applies every adjustment to a club's baseline. Yard adjustments are
// applied to the carry first, then the combined rain and lie reduction.
// Shot elevation lengthens the target, so uphill yards come off the club's
// effective carry and downhill yards are added to it.
func Adjust(in Input, params Params) Result {
	carry := in.BaselineCarry

	tempAdj := TemperatureAdjustment(in.TemperatureF)
	elevAdj := CourseElevationAdjustment(in.CourseElevationFeet, in.BaselineCarry, params.AltitudeFactorPerFoot)
	shotAdj := ShotElevationAdjustment(in.ShotElevationFeet, in.BaselineTotal)
	windAdj := WindAdjustment(in.WindRelative, in.WindSpeedMPH, in.BaselineCarry)
	carry += tempAdj + elevAdj - shotAdj + windAdj

	groundWet := in.Ground.IsWet()
	rainPct := RainAdjustment(in.Rain, groundWet)
	liePct := LieAdjustment(in.Lie, in.LieQuality)
	combined := CombinedReduction(rainPct, liePct, params.MaxCombinedReduction)
	carry = roundInt(float64(carry) * (1 - combined))

	roll := in.BaselineTotal - in.BaselineCarry
	if groundWet || in.Rain {
		roll = roundInt(float64(roll) * 0.5)
	}

	return Result{
		AdjustedCarry: carry,
		AdjustedTotal: carry + roll,
		Adjustments: Breakdown{
			TemperatureYards:         tempAdj,
			CourseElevationYards:     elevAdj,
			ShotElevationYards:       shotAdj,
			WindYards:                windAdj,
			RainPercent:              rainPct,
			LiePercent:               liePct,
			CombinedReductionPercent: combined,
		},
	}
}

// TemperatureAdjustment is ±2 yards per 10°F away from 70°F.
// Cold air is denser and shortens the flight.
func TemperatureAdjustment(tempF float64) int {
	return roundInt((tempF - referenceTemperatureF) / 10.0 * yardsPer10F)
}

// CourseElevationAdjustment adds distance for thinner air above sea level.
// Nothing is applied at or below sea level.
func CourseElevationAdjustment(elevationFeet, baselineDistance int, factorPerFoot float64) int {
	if elevationFeet <= 0 {
		return 0
	}
	return roundInt(float64(baselineDistance) * float64(elevationFeet) * factorPerFoot)
}

// ShotElevationAdjustment converts tee-to-target elevation change into yards:
// one yard per three feet, scaled by shot length and clamped to 15% of the
// distance. Uphill is positive: the target plays that many yards longer.
func ShotElevationAdjustment(elevationChangeFeet, baselineDistance int) int {
	if elevationChangeFeet == 0 {
		return 0
	}

	yards := float64(elevationChangeFeet) / feetPerYard * elevationScaling(baselineDistance)

	limit := float64(baselineDistance) * maxShotElevationShare
	yards = math.Max(-limit, math.Min(limit, yards))

	return roundInt(yards)
}

func elevationScaling(baselineDistance int) float64 {
	switch {
	case baselineDistance >= 200:
		return 1.0
	case baselineDistance >= 150:
		return 0.8
	default:
		return 0.6
	}
}

// WindAdjustment applies headwind -4%, tailwind +4% and crosswind -1% of the
// baseline, scaled by wind strength
func WindAdjustment(wind models.WindRelative, speedMPH float64, baselineDistance int) int {
	if wind == models.WindRelativeCalm || wind == "" || speedMPH < calmWindMPH {
		return 0
	}

	var pct float64
	switch wind {
	case models.WindHeadwind:
		pct = -0.04
	case models.WindTailwind:
		pct = 0.04
	default:
		pct = -0.01
	}

	return roundInt(float64(baselineDistance) * pct * windStrength(speedMPH))
}

// windStrength is 0.5 below 10 mph, 1.0 up to and including 15 mph, 1.5 above
func windStrength(speedMPH float64) float64 {
	switch {
	case speedMPH < 10:
		return 0.5
	case speedMPH <= 15:
		return 1.0
	default:
		return 1.5
	}
}

// RainAdjustment is the fractional distance lost to rain or wet ground
func RainAdjustment(raining, groundWet bool) float64 {
	switch {
	case raining:
		return 0.05
	case groundWet:
		return 0.03
	default:
		return 0.0
	}
}

// LieAdjustment is the fractional distance lost to the lie
func LieAdjustment(lie models.PlayerLie, quality *models.LieQuality) float64 {
	q := models.LieQuality("")
	if quality != nil {
		q = *quality
	}

	switch {
	case (lie == models.LieTee || lie == models.LieFairway) &&
		(q == "" || q == models.QualityClean || q == models.QualityNormal):
		return 0.0
	case lie == models.LieSemiRough:
		return 0.05
	case lie == models.LieRough && q == models.QualityThick:
		return 0.25
	case lie == models.LieRough:
		return 0.15
	case lie == models.LieBunker:
		return 0.20
	case lie == models.LieWoods || q == models.QualityPlugged:
		return 0.35
	default:
		return 0.0
	}
}

// CombinedReduction sums rain and lie penalties, capped at maxReduction
func CombinedReduction(rainPct, liePct, maxReduction float64) float64 {
	combined := rainPct + liePct
	if maxReduction > 0 && combined > maxReduction {
		return maxReduction
	}
	return combined
}

func roundInt(v float64) int {
	return int(math.Round(v))
}
