package recommender

import (
	"errors"
	"sort"

	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/physics"
	"github.com/stitts-dev/smart-caddie/internal/strategy"
)

const (
	highRiskPenalty      = 15.0
	missTendencyPenalty  = 20.0
	comfortBonusScale    = 20.0
	strategyBonus        = 10.0
	aggressiveWindow     = 5
	alternateMinGapYards = 10
	maxAlternates        = 2
	fallbackCandidates   = 3
)

// ErrNoClubs is returned when the baseline has no clubs to choose from
var ErrNoClubs = errors.New("player baseline has no clubs")

// ClubOption is one candidate club's computed record. It only lives for a
// single selection.
type ClubOption struct {
	Club          models.ClubType       `json:"club_type"`
	AdjustedCarry int                   `json:"adjusted_carry"`
	AdjustedTotal int                   `json:"adjusted_total"`
	Adjustments   physics.Breakdown     `json:"adjustments"`
	Dispersion    int                   `json:"dispersion"`
	Hazards       models.HazardAnalysis `json:"hazard_analysis"`
	MatchScore    float64               `json:"match_score"`
}

// SelectionInput carries everything the selector needs for one shot
type SelectionInput struct {
	TargetYards         int
	Baseline            *models.PlayerBaseline
	Hazards             []models.Hazard
	HoleNumber          int
	ShotElevationFeet   int
	CourseElevationFeet int
	Weather             models.WeatherConditions
	WindRelative        models.WindRelative
	Lie                 models.PlayerLie
	LieQuality          *models.LieQuality
	Profile             *models.PlayerProfile
	Strategy            models.Strategy
	Params              physics.Params
}

// Selection is the ranked outcome. Ranked holds every candidate considered,
// best first.
type Selection struct {
	Primary    ClubOption   `json:"primary"`
	Alternates []ClubOption `json:"alternates"`
	Ranked     []ClubOption `json:"ranked"`
}

// SelectClubs adjusts every club for conditions, keeps the ones that can
// reach the target, scores them and ranks them. Exact ties keep baseline order.
func SelectClubs(in SelectionInput) (*Selection, error) {
	if in.Baseline == nil || len(in.Baseline.Clubs) == 0 {
		return nil, ErrNoClubs
	}

	options := make([]ClubOption, 0, len(in.Baseline.Clubs))
	for _, club := range in.Baseline.Clubs {
		adjusted := physics.Adjust(physics.Input{
			BaselineCarry:       club.CarryYards,
			BaselineTotal:       club.TotalYards,
			TemperatureF:        in.Weather.TemperatureF,
			CourseElevationFeet: in.CourseElevationFeet,
			ShotElevationFeet:   in.ShotElevationFeet,
			WindRelative:        in.WindRelative,
			WindSpeedMPH:        in.Weather.WindSpeedMPH,
			Rain:                in.Weather.Rain,
			Ground:              in.Weather.GroundConditions,
			Lie:                 in.Lie,
			LieQuality:          in.LieQuality,
		}, in.Params)

		options = append(options, ClubOption{
			Club:          club.ClubType,
			AdjustedCarry: adjusted.AdjustedCarry,
			AdjustedTotal: adjusted.AdjustedTotal,
			Adjustments:   adjusted.Adjustments,
			Dispersion:    DispersionMargin(club.ClubType),
		})
	}

	candidates := viableOptions(options, in.TargetYards)
	if len(candidates) == 0 {
		candidates = closestOptions(options, in.TargetYards)
	}

	for i := range candidates {
		opt := &candidates[i]
		opt.Hazards = strategy.AnalyzeHazards(opt.AdjustedTotal, opt.Dispersion, in.Hazards)
		opt.MatchScore -= highRiskPenalty * float64(len(opt.Hazards.HighRisk()))
	}

	if in.Profile != nil {
		applyPlayerSignals(candidates, in.Profile, in.HoleNumber)
	}

	applyStrategy(candidates, in.Strategy, in.TargetYards)

	for i := range candidates {
		candidates[i].MatchScore = clamp(candidates[i].MatchScore, 0, 100)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].MatchScore > candidates[j].MatchScore
	})

	primary := candidates[0]
	return &Selection{
		Primary:    primary,
		Alternates: pickAlternates(primary, candidates[1:]),
		Ranked:     candidates,
	}, nil
}

// viableOptions keeps the clubs whose dispersion window covers the target
func viableOptions(options []ClubOption, target int) []ClubOption {
	viable := make([]ClubOption, 0, len(options))
	for _, opt := range options {
		if target < opt.AdjustedTotal-opt.Dispersion || target > opt.AdjustedTotal+opt.Dispersion {
			continue
		}
		diff := float64(absInt(opt.AdjustedTotal - target))
		opt.MatchScore = clamp(100-diff/float64(opt.Dispersion)*50, 0, 100)
		viable = append(viable, opt)
	}
	return viable
}

// closestOptions is the fallback when nothing reaches: the three clubs with
// the smallest distance error, scored one point per yard of error
func closestOptions(options []ClubOption, target int) []ClubOption {
	sorted := make([]ClubOption, len(options))
	copy(sorted, options)
	sort.SliceStable(sorted, func(i, j int) bool {
		return absInt(sorted[i].AdjustedTotal-target) < absInt(sorted[j].AdjustedTotal-target)
	})

	if len(sorted) > fallbackCandidates {
		sorted = sorted[:fallbackCandidates]
	}
	for i := range sorted {
		sorted[i].MatchScore = clamp(100-float64(absInt(sorted[i].AdjustedTotal-target)), 0, 100)
	}
	return sorted
}

// applyPlayerSignals folds in fatigue, miss tendency and comfort from the
// learned profile
func applyPlayerSignals(candidates []ClubOption, profile *models.PlayerProfile, holeNumber int) {
	if holeNumber > 9 {
		multiplier := profile.FatigueMultiplier(holeNumber)
		for i := range candidates {
			candidates[i].AdjustedCarry = int(float64(candidates[i].AdjustedCarry) * multiplier)
			candidates[i].AdjustedTotal = int(float64(candidates[i].AdjustedTotal) * multiplier)
		}
	}

	for i := range candidates {
		opt := &candidates[i]

		if tendency, ok := profile.Tendency(opt.Club); ok && missesIntoHazard(tendency, opt.Hazards) {
			opt.MatchScore -= float64(int(missTendencyPenalty * tendency.MissFrequency))
		}

		comfort := profile.Comfort(opt.Club)
		opt.MatchScore += float64(int((comfort - models.DefaultComfortRating) * comfortBonusScale))
	}
}

func missesIntoHazard(tendency models.DispersionTendency, analysis models.HazardAnalysis) bool {
	for _, h := range analysis.HighRisk() {
		if string(h.Location) == string(tendency.MissDirection) {
			return true
		}
	}
	return false
}

func applyStrategy(candidates []ClubOption, s models.Strategy, target int) {
	switch s {
	case models.StrategyConservative:
		for i := range candidates {
			if candidates[i].AdjustedTotal < target {
				candidates[i].MatchScore += strategyBonus
			}
		}
	case models.StrategyAggressive:
		for i := range candidates {
			if absInt(candidates[i].AdjustedTotal-target) < aggressiveWindow {
				candidates[i].MatchScore += strategyBonus
			}
		}
	}
}

// pickAlternates takes up to two ranked candidates that play meaningfully
// shorter or longer than the primary
func pickAlternates(primary ClubOption, rest []ClubOption) []ClubOption {
	alternates := make([]ClubOption, 0, maxAlternates)
	for _, opt := range rest {
		if len(alternates) == maxAlternates {
			break
		}
		if absInt(opt.AdjustedTotal-primary.AdjustedTotal) > alternateMinGapYards {
			alternates = append(alternates, opt)
		}
	}
	return alternates
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
