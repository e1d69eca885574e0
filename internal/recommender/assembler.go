package recommender

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/physics"
	"github.com/stitts-dev/smart-caddie/internal/strategy"
)

// Input is a fully resolved request for one shot
type Input struct {
	Shot                       models.ShotContext
	Baseline                   models.PlayerBaseline
	Hole                       models.Hole
	Weather                    *models.WeatherConditions
	CourseElevationFeet        int
	Round                      *models.RoundContext
	Profile                    *models.PlayerProfile
	IncludeConfidenceBreakdown bool
}

// Engine turns a shot into a recommendation. It holds no per-request state
// and is safe for concurrent use.
type Engine struct {
	params physics.Params
	now    func() time.Time
	newID  func() string
}

// NewEngine creates an engine with the given physics parameters
func NewEngine(params physics.Params) *Engine {
	return &Engine{
		params: params,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Recommend runs selection and confidence scoring and renders the caddie's call
func (e *Engine) Recommend(in Input) (*models.Recommendation, error) {
	weather := models.ReferenceWeather()
	if in.Weather != nil {
		weather = *in.Weather
	}

	situation := strategy.Analyze(in.Round, &in.Hole)
	effective := strategy.EffectiveStrategy(in.Shot.Strategy, situation)

	shotElevation := 0
	if in.Hole.ElevationChangeFt != nil {
		shotElevation = *in.Hole.ElevationChangeFt
	}

	selection, err := SelectClubs(SelectionInput{
		TargetYards:         in.Shot.DistanceToPinYards,
		Baseline:            &in.Baseline,
		Hazards:             in.Hole.Hazards,
		HoleNumber:          holeNumber(in),
		ShotElevationFeet:   shotElevation,
		CourseElevationFeet: in.CourseElevationFeet,
		Weather:             weather,
		WindRelative:        resolveWind(in.Shot, in.Weather, in.Hole.ShotBearingDegrees),
		Lie:                 in.Shot.Lie,
		LieQuality:          in.Shot.LieQuality,
		Profile:             in.Profile,
		Strategy:            effective,
		Params:              e.params,
	})
	if err != nil {
		return nil, err
	}

	primary := selection.Primary
	score, explanation := ScoreConfidence(ConfidenceInput{
		TargetYards:       in.Shot.DistanceToPinYards,
		ExpectedYards:     primary.AdjustedTotal,
		DispersionYards:   primary.Dispersion,
		ElevationChangeFt: in.Hole.ElevationChangeFt,
		Weather:           in.Weather,
		Lie:               in.Shot.Lie,
		LieQuality:        in.Shot.LieQuality,
		BaselineClubs:     len(in.Baseline.Clubs),
	})

	target := strategy.TargetArea(primary.Hazards, in.Shot.PinLocation)
	caddieNote := strategy.DefaultCaddieNote(in.Hole.Par)
	if situation != nil {
		caddieNote = situation.CaddieNote
	}

	rec := &models.Recommendation{
		RecommendationID:      e.newID(),
		ShotAnalysisID:        in.Shot.AnalysisID,
		CreatedAt:             e.now().UTC(),
		PrimaryClub:           primary.Club,
		PrimaryTarget:         target,
		CaddieCall:            CaddieCall(primary.Club, target),
		CaddieNote:            caddieNote,
		StrategyNote:          strategy.StrategyNotes(primary.Hazards, effective, in.Shot.PinLocation),
		Why:                   Why(primary, in.Shot.DistanceToPinYards, in.Hole.ElevationChangeFt),
		AdjustedDistance:      primary.AdjustedTotal,
		ExpectedCarryYards:    primary.AdjustedCarry,
		OptimalMiss:           OptimalMiss(primary.Hazards),
		DangerZone:            DangerZone(primary.Hazards),
		Alternatives:          alternativePlays(primary, selection.Alternates),
		RiskReward:            riskReward(effective, primary.Hazards),
		ConfidenceExplanation: explanation,
	}

	if in.IncludeConfidenceBreakdown {
		rec.ConfidencePercent = int(math.Round(score.Overall * 100))
		rec.Confidence = &score
	} else {
		rec.ConfidencePercent = DisplayPercent(score.Overall)
	}

	return rec, nil
}

// holeNumber prefers the round's current hole when the hole itself carries none
func holeNumber(in Input) int {
	if in.Hole.Number > 0 {
		return in.Hole.Number
	}
	if in.Round != nil {
		return in.Round.CurrentHole
	}
	return 0
}

// resolveWind uses the wind the player called when given, otherwise derives
// it from the compass direction and the shot bearing
func resolveWind(shot models.ShotContext, weather *models.WeatherConditions, bearing int) models.WindRelative {
	if shot.WindRelative != nil && *shot.WindRelative != models.WindRelativeCalm {
		return *shot.WindRelative
	}
	if weather == nil {
		return models.WindRelativeCalm
	}
	wind, _ := physics.WindRelativeToShot(weather.WindDirection, bearing, weather.WindSpeedMPH)
	return wind
}

// CaddieCall is the one-line call, e.g. "Iron 7, aim right, avoid water left. Trust it."
func CaddieCall(club models.ClubType, target string) string {
	return fmt.Sprintf("%s, %s. Trust it.", club.DisplayName(), strings.ToLower(target))
}

// Why explains the adjusted distance from its non-zero contributors. The
// uphill or downhill term is how much longer or shorter the target plays.
func Why(primary ClubOption, target int, elevationChangeFt *int) string {
	adj := primary.Adjustments
	var parts []string

	if adj.CourseElevationYards > 0 {
		parts = append(parts, fmt.Sprintf("+%dy altitude", adj.CourseElevationYards))
	}
	if adj.ShotElevationYards != 0 && elevationChangeFt != nil {
		if *elevationChangeFt > 0 {
			parts = append(parts, fmt.Sprintf("+%dy uphill", absInt(adj.ShotElevationYards)))
		} else {
			parts = append(parts, fmt.Sprintf("-%dy downhill", absInt(adj.ShotElevationYards)))
		}
	}
	if adj.WindYards != 0 {
		parts = append(parts, fmt.Sprintf("%+dy wind", adj.WindYards))
	}
	if adj.TemperatureYards != 0 {
		parts = append(parts, fmt.Sprintf("%+dy temperature", adj.TemperatureYards))
	}
	if high := primary.Hazards.HighRisk(); len(high) > 0 {
		parts = append(parts, "avoiding "+strategy.DescribeHazards(high))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("%s is the right club for %d yards.", primary.Club.DisplayName(), target)
	}
	return fmt.Sprintf("%s plays %d yards here (%s).", primary.Club.DisplayName(), primary.AdjustedTotal, strings.Join(parts, ", "))
}

// OptimalMiss names the safe side
func OptimalMiss(analysis models.HazardAnalysis) string {
	if analysis.SafeMissDirection == models.LocationCenter || analysis.SafeMissDirection == "" {
		return "Center of the green is the miss. Nothing to fear either side."
	}
	return fmt.Sprintf("Miss %s is safe", analysis.SafeMissDirection)
}

// DangerZone names the high risk hazards to stay away from
func DangerZone(analysis models.HazardAnalysis) string {
	high := analysis.HighRisk()
	if len(high) == 0 {
		return "No major danger zones"
	}
	return "Do not miss " + strategy.DescribeHazards(high)
}

func alternativePlays(primary ClubOption, alternates []ClubOption) []models.AlternativePlay {
	plays := make([]models.AlternativePlay, 0, len(alternates))
	for _, alt := range alternates {
		play := models.AlternativePlay{Club: alt.Club}
		if alt.AdjustedTotal < primary.AdjustedTotal {
			play.Scenario = "Lay-up: if you want to play safe"
			play.Target = fmt.Sprintf("Lay up to %d yards", alt.AdjustedTotal)
		} else {
			play.Scenario = "Extra club: if you want to be sure to get there"
			play.Target = fmt.Sprintf("Take more club, %d yards", alt.AdjustedTotal)
		}
		play.Rationale = alternativeRationale(alt, primary)
		plays = append(plays, play)
	}
	return plays
}

func alternativeRationale(alt, primary ClubOption) string {
	gap := alt.AdjustedTotal - primary.AdjustedTotal
	switch {
	case gap < 0 && len(alt.Hazards.HighRisk()) < len(primary.Hazards.HighRisk()):
		return fmt.Sprintf("%d yards shorter and takes the trouble out of play", -gap)
	case gap < 0:
		return fmt.Sprintf("%d yards shorter, leaves a longer next shot", -gap)
	default:
		return fmt.Sprintf("%d yards longer, covers a back pin or a miss into the wind", gap)
	}
}

func riskReward(s models.Strategy, analysis models.HazardAnalysis) models.RiskReward {
	if high := analysis.HighRisk(); len(high) > 0 {
		hazards := strategy.DescribeHazards(high)
		return models.RiskReward{
			AggressiveUpside:     "Attack the pin for a birdie look",
			AggressiveDownside:   fmt.Sprintf("Brings %s into play", hazards),
			ConservativeUpside:   "Keeps a big number off the card",
			ConservativeDownside: "Longer putt or chip for par",
		}
	}

	if s == models.StrategyAggressive {
		return models.RiskReward{
			AggressiveUpside:     "Good look at birdie",
			AggressiveDownside:   "Short-sided miss makes par harder",
			ConservativeUpside:   "Easy two-putt par",
			ConservativeDownside: "Leaves a birdie chance on the table",
		}
	}
	return models.RiskReward{
		AggressiveUpside:     "Birdie chance if the distance is perfect",
		AggressiveDownside:   "Little to gain with no trouble around",
		ConservativeUpside:   "Center of the green, stress-free par",
		ConservativeDownside: "Longer birdie putt",
	}
}
