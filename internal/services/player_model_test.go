package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missPtr(m models.MissDirection) *models.MissDirection { return &m }

func floatPtr(v float64) *float64 { return &v }

func newTestPlayerModel(store PlayerProfileStore) *PlayerModelService {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewPlayerModelService(store, logger, 3)
}

// conflictStore reports a version conflict on the first n saves
type conflictStore struct {
	*MemoryProfileStore
	mu        sync.Mutex
	conflicts int
	saves     int
}

func (s *conflictStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	s.saves++
	if s.conflicts > 0 {
		s.conflicts--
		s.mu.Unlock()
		return ErrVersionConflict
	}
	s.mu.Unlock()
	return s.MemoryProfileStore.Save(ctx, profile)
}

// brokenStore fails every call
type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	return nil, errors.New("disk full")
}

func (brokenStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	return errors.New("disk full")
}

func TestApplyShotFeedback(t *testing.T) {
	profile := newTestProfile("player-1")

	first := ApplyShotFeedback(profile, models.ShotFeedback{
		Club:             models.ClubIron7,
		ActualDistance:   160,
		ExpectedDistance: 150,
	})
	assert.Equal(t, 10.0, first.DistanceVarianceYards)
	assert.Equal(t, 1, first.SampleSize)
	assert.Equal(t, models.MissStraight, first.MissDirection)
	assert.Equal(t, 0.5, first.MissFrequency)

	second := ApplyShotFeedback(profile, models.ShotFeedback{
		Club:             models.ClubIron7,
		ActualDistance:   146,
		ExpectedDistance: 150,
		MissDirection:    missPtr(models.MissStraight),
	})
	assert.InDelta(t, 7.0, second.DistanceVarianceYards, 1e-9)
	assert.Equal(t, 2, second.SampleSize)
	assert.InDelta(t, 0.6, second.MissFrequency, 1e-9)

	third := ApplyShotFeedback(profile, models.ShotFeedback{
		Club:             models.ClubIron7,
		ActualDistance:   150,
		ExpectedDistance: 150,
		MissDirection:    missPtr(models.MissLeft),
	})
	assert.InDelta(t, 0.55, third.MissFrequency, 1e-9)
	assert.Equal(t, models.MissStraight, third.MissDirection, "dominant miss is fixed by the first shot")
	assert.Equal(t, 3, profile.ShotsRecorded)
}

func TestApplyShotFeedback_FrequencyClamped(t *testing.T) {
	profile := newTestProfile("player-1")
	for i := 0; i < 10; i++ {
		ApplyShotFeedback(profile, models.ShotFeedback{
			Club:             models.ClubDriver,
			ActualDistance:   240,
			ExpectedDistance: 250,
			MissDirection:    missPtr(models.MissRight),
		})
	}
	tendency, ok := profile.Tendency(models.ClubDriver)
	require.True(t, ok)
	assert.Equal(t, 1.0, tendency.MissFrequency)
	assert.Equal(t, models.MissRight, tendency.MissDirection)
}

func TestApplyRoundSummary(t *testing.T) {
	tests := []struct {
		name       string
		rounds     []models.RoundSummary
		wantFront  float64
		wantBack   float64
		wantFactor float64
		wantLoss   float64
	}{
		{
			name:       "first round seeds the averages",
			rounds:     []models.RoundSummary{{FrontNineScore: 40, BackNineScore: 44, BackNineDistanceLossYards: floatPtr(6)}},
			wantFront:  4,
			wantBack:   8,
			wantFactor: 2,
			wantLoss:   6,
		},
		{
			name: "later rounds blend with alpha 0.3",
			rounds: []models.RoundSummary{
				{FrontNineScore: 40, BackNineScore: 44, BackNineDistanceLossYards: floatPtr(6)},
				{FrontNineScore: 40, BackNineScore: 40, BackNineDistanceLossYards: floatPtr(0)},
			},
			wantFront:  4,
			wantBack:   6.8,
			wantFactor: 1.7,
			wantLoss:   4.2,
		},
		{
			name:       "factor capped at two",
			rounds:     []models.RoundSummary{{FrontNineScore: 37, BackNineScore: 46}},
			wantFront:  1,
			wantBack:   10,
			wantFactor: 2,
		},
		{
			name:       "even front nine leaves the factor alone",
			rounds:     []models.RoundSummary{{FrontNineScore: 36, BackNineScore: 40}},
			wantFront:  0,
			wantBack:   4,
			wantFactor: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := newTestProfile("player-1")
			for _, r := range tt.rounds {
				ApplyRoundSummary(profile, r)
			}

			f := profile.Fatigue
			require.NotNil(t, f.FrontNineAverage)
			require.NotNil(t, f.BackNineAverage)
			assert.InDelta(t, tt.wantFront, *f.FrontNineAverage, 1e-9)
			assert.InDelta(t, tt.wantBack, *f.BackNineAverage, 1e-9)
			assert.InDelta(t, tt.wantFactor, f.FatigueFactor, 1e-9)
			assert.InDelta(t, tt.wantLoss, f.DistanceLossBackNineYards, 1e-9)
			assert.Equal(t, len(tt.rounds), profile.RoundsRecorded)
		})
	}
}

func TestPlayerModelService_GetOrCreate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProfileStore()
	svc := newTestPlayerModel(store)

	created, err := svc.GetOrCreate(ctx, "player-1", "Pat")
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.Version)
	assert.Equal(t, "Pat", created.PlayerName)
	assert.Equal(t, 1.0, created.Fatigue.FatigueFactor)

	again, err := svc.GetOrCreate(ctx, "player-1", "Someone Else")
	require.NoError(t, err)
	assert.Equal(t, created.ProfileID, again.ProfileID)
	assert.Equal(t, "Pat", again.PlayerName)
}

func TestPlayerModelService_UpdateAfterShot(t *testing.T) {
	ctx := context.Background()
	svc := newTestPlayerModel(NewMemoryProfileStore())

	tendency, err := svc.UpdateAfterShot(ctx, models.ShotFeedback{
		PlayerID:         "player-1",
		Club:             models.ClubIron7,
		ActualDistance:   160,
		ExpectedDistance: 150,
	})
	require.NoError(t, err)
	assert.Equal(t, 10.0, tendency.DistanceVarianceYards)
	assert.Equal(t, 1, tendency.SampleSize)

	stored, ok, err := svc.GetTendency(ctx, "player-1", models.ClubIron7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, tendency, stored)

	_, ok, err = svc.GetTendency(ctx, "nobody", models.ClubIron7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPlayerModelService_ConcurrentUpdatesKeepEveryShot(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryProfileStore()
	svc := newTestPlayerModel(store)

	const shots = 50
	var wg sync.WaitGroup
	for i := 0; i < shots; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.UpdateAfterShot(ctx, models.ShotFeedback{
				PlayerID:         "player-1",
				Club:             models.ClubPitchingWedge,
				ActualDistance:   110,
				ExpectedDistance: 110,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	profile, err := store.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, shots, profile.ShotsRecorded)
	assert.Equal(t, shots, profile.DispersionTendencies[models.ClubPitchingWedge].SampleSize)
	assert.Equal(t, int64(shots), profile.Version)
}

func TestPlayerModelService_RetriesVersionConflicts(t *testing.T) {
	ctx := context.Background()

	store := &conflictStore{MemoryProfileStore: NewMemoryProfileStore(), conflicts: 2}
	svc := newTestPlayerModel(store)

	_, err := svc.UpdateAfterRound(ctx, "player-1", models.RoundSummary{FrontNineScore: 40, BackNineScore: 42})
	require.NoError(t, err)
	assert.Equal(t, 3, store.saves)

	profile, err := store.Get(ctx, "player-1")
	require.NoError(t, err)
	assert.Equal(t, 1, profile.RoundsRecorded, "mutation applied once per successful save")

	exhausted := &conflictStore{MemoryProfileStore: NewMemoryProfileStore(), conflicts: 10}
	_, err = newTestPlayerModel(exhausted).UpdateAfterRound(ctx, "player-1", models.RoundSummary{})
	assert.ErrorIs(t, err, ErrVersionConflict)
	assert.Equal(t, 3, exhausted.saves)
}

func TestPlayerModelService_Comfort(t *testing.T) {
	ctx := context.Background()
	svc := newTestPlayerModel(NewMemoryProfileStore())

	rating, err := svc.GetComfortRating(ctx, "player-1", models.ClubIron5)
	require.NoError(t, err)
	assert.Equal(t, 0.5, rating)

	tests := []struct {
		in   float64
		want float64
	}{
		{0.8, 0.8},
		{1.7, 1.0},
		{-0.3, 0.0},
	}
	for _, tt := range tests {
		got, err := svc.SetComfortRating(ctx, "player-1", models.ClubIron5, tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)

		stored, err := svc.GetComfortRating(ctx, "player-1", models.ClubIron5)
		require.NoError(t, err)
		assert.Equal(t, tt.want, stored)
	}
}

func TestPlayerModelService_FatigueAdjustment(t *testing.T) {
	ctx := context.Background()
	svc := newTestPlayerModel(NewMemoryProfileStore())

	adj, err := svc.GetFatigueAdjustment(ctx, "player-1", 15)
	require.NoError(t, err)
	assert.Equal(t, 1.0, adj)

	_, err = svc.UpdateAfterRound(ctx, "player-1", models.RoundSummary{
		FrontNineScore:            40,
		BackNineScore:             43,
		BackNineDistanceLossYards: floatPtr(15),
	})
	require.NoError(t, err)

	front, err := svc.GetFatigueAdjustment(ctx, "player-1", 9)
	require.NoError(t, err)
	assert.Equal(t, 1.0, front)

	back, err := svc.GetFatigueAdjustment(ctx, "player-1", 10)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, back, 1e-9)
}

func TestPlayerModelService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestPlayerModel(brokenStore{})

	_, err := svc.GetOrCreate(ctx, "player-1", "")
	assert.Error(t, err)

	_, err = svc.UpdateAfterShot(ctx, models.ShotFeedback{PlayerID: "player-1", Club: models.ClubDriver})
	assert.Error(t, err)

	rating, err := svc.GetComfortRating(ctx, "player-1", models.ClubDriver)
	assert.Error(t, err)
	assert.Equal(t, 0.5, rating)
}
