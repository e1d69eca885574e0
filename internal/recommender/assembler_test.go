package recommender

import (
	"strings"
	"testing"
	"time"

	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/physics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func testEngine() *Engine {
	e := NewEngine(physics.DefaultParams())
	e.now = func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) }
	e.newID = func() string { return "rec-1" }
	return e
}

func approachInput() Input {
	weather := models.ReferenceWeather()
	return Input{
		Shot: models.ShotContext{
			AnalysisID:         "analysis-1",
			PlayerID:           "player-1",
			HoleID:             "hole-7",
			PinLocation:        models.PinCenter,
			DistanceToPinYards: 150,
			Lie:                models.LieFairway,
		},
		Baseline: *fullBag(),
		Hole: models.Hole{
			HoleID:             "hole-7",
			Number:             7,
			Par:                3,
			HandicapIndex:      11,
			DistanceToPinYards: 150,
			ElevationChangeFt:  intPtr(0),
			FairwayType:        models.FairwaySurface,
		},
		Weather: &weather,
	}
}

func TestRecommend_ReferenceApproach(t *testing.T) {
	rec, err := testEngine().Recommend(approachInput())
	require.NoError(t, err)

	assert.Equal(t, "rec-1", rec.RecommendationID)
	assert.Equal(t, "analysis-1", rec.ShotAnalysisID)
	assert.Equal(t, models.ClubIron7, rec.PrimaryClub)
	assert.Equal(t, 150, rec.AdjustedDistance)
	assert.Equal(t, 145, rec.ExpectedCarryYards)
	assert.Empty(t, rec.Alternatives)
	assert.Equal(t, "Iron 7 is the right club for 150 yards.", rec.Why)
	assert.Equal(t, "Iron 7, aim center of green, no major hazards. Trust it.", rec.CaddieCall)
	assert.Equal(t, "Good par 3. Trust your distance.", rec.CaddieNote)
	assert.Equal(t, "No major danger zones", rec.DangerZone)
	assert.Equal(t, 95, rec.ConfidencePercent)
	assert.Nil(t, rec.Confidence)
	assert.Equal(t, "High confidence: conditions and distance match look great.", rec.ConfidenceExplanation)
}

func TestRecommend_ConfidenceBreakdown(t *testing.T) {
	in := approachInput()
	in.IncludeConfidenceBreakdown = true

	rec, err := testEngine().Recommend(in)
	require.NoError(t, err)

	require.NotNil(t, rec.Confidence)
	assert.GreaterOrEqual(t, rec.Confidence.Overall, 0.9)
	assert.Equal(t, 1.0, rec.Confidence.DistanceCertainty)
	assert.Equal(t, 0.95, rec.Confidence.PlayerDataQuality)
	assert.Equal(t, 99, rec.ConfidencePercent, "breakdown skips the display clamp")
}

func TestRecommend_WaterHazardInPlay(t *testing.T) {
	clean := approachInput()
	wet := approachInput()
	wet.Hole.Hazards = []models.Hazard{waterLeftAt(150)}

	cleanSel, err := SelectClubs(selectionFor(clean))
	require.NoError(t, err)
	wetSel, err := SelectClubs(selectionFor(wet))
	require.NoError(t, err)
	assert.Equal(t, scoreFor(t, cleanSel, models.ClubIron7)-15, scoreFor(t, wetSel, models.ClubIron7))

	rec, err := testEngine().Recommend(wet)
	require.NoError(t, err)

	assert.Contains(t, rec.DangerZone, "water")
	assert.Contains(t, rec.DangerZone, "left")
	assert.Equal(t, "Miss right is safe", rec.OptimalMiss)
	assert.Equal(t, "Aim right, avoid water left", rec.PrimaryTarget)
	assert.Contains(t, rec.Why, "avoiding water left")
	assert.Contains(t, rec.RiskReward.AggressiveDownside, "water left")
}

func selectionFor(in Input) SelectionInput {
	return SelectionInput{
		TargetYards:  in.Shot.DistanceToPinYards,
		Baseline:     &in.Baseline,
		Hazards:      in.Hole.Hazards,
		HoleNumber:   in.Hole.Number,
		Weather:      *in.Weather,
		WindRelative: models.WindRelativeCalm,
		Lie:          in.Shot.Lie,
		Strategy:     models.StrategyBalanced,
		Params:       physics.DefaultParams(),
	}
}

func TestRecommend_WhyListsContributors(t *testing.T) {
	in := approachInput()
	in.Hole.ElevationChangeFt = intPtr(30)
	in.Weather.TemperatureF = 90

	rec, err := testEngine().Recommend(in)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(rec.Why, rec.PrimaryClub.DisplayName()+" plays"), rec.Why)
	assert.Contains(t, rec.Why, "uphill")
	assert.Contains(t, rec.Why, "+4y temperature")
	assert.NotContains(t, rec.Why, "wind")
	assert.NotContains(t, rec.Why, "altitude")
}

func TestRecommend_ExplicitWindOverridesCompass(t *testing.T) {
	in := approachInput()
	in.Weather.WindSpeedMPH = 15
	in.Weather.WindDirection = models.WindS
	headwind := models.WindHeadwind
	in.Shot.WindRelative = &headwind

	rec, err := testEngine().Recommend(in)
	require.NoError(t, err)
	assert.Contains(t, rec.Why, "-6y wind")
}

func TestRecommend_RoundContextNote(t *testing.T) {
	in := approachInput()
	in.Round = &models.RoundContext{
		CurrentHole: 7,
		ScoreToPar:  5,
		LastScores:  []int{4, 4, 7},
		LastPars:    []int{4, 4, 4},
	}

	rec, err := testEngine().Recommend(in)
	require.NoError(t, err)
	assert.Contains(t, rec.CaddieNote, "Shake off that last one")
}

func TestRecommend_AlternatesLabeled(t *testing.T) {
	in := approachInput()
	in.Shot.DistanceToPinYards = 300

	rec, err := testEngine().Recommend(in)
	require.NoError(t, err)

	assert.Equal(t, models.ClubDriver, rec.PrimaryClub)
	require.Len(t, rec.Alternatives, 2)
	for _, alt := range rec.Alternatives {
		assert.True(t, strings.HasPrefix(alt.Scenario, "Lay-up"), alt.Scenario)
		assert.NotEmpty(t, alt.Rationale)
	}
	assert.GreaterOrEqual(t, rec.ConfidencePercent, 50)
	assert.LessOrEqual(t, rec.ConfidencePercent, 95)
	assert.Contains(t, rec.ConfidenceExplanation, "distance match marginal")
}

func TestRecommend_EmptyBaseline(t *testing.T) {
	in := approachInput()
	in.Baseline = models.PlayerBaseline{PlayerID: "player-1"}

	_, err := testEngine().Recommend(in)
	assert.ErrorIs(t, err, ErrNoClubs)
}

func TestCaddieCall(t *testing.T) {
	assert.Equal(t, "Pitching Wedge, aim right, avoid water left. Trust it.",
		CaddieCall(models.ClubPitchingWedge, "Aim right, avoid water left"))
}
