package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
)

const (
	fatigueEMAAlpha      = 0.3
	missFrequencyStep    = 0.1
	missFrequencyPenalty = 0.05
	initialMissFrequency = 0.5
	maxFatigueFactor     = 2.0
	defaultUpdateRetries = 3
)

// PlayerModelService owns the learned player profiles. Updates for the same
// player are serialized and retried on store version conflicts.
type PlayerModelService struct {
	store      PlayerProfileStore
	locks      *KeyedLocker
	logger     *logrus.Logger
	maxRetries int
	now        func() time.Time
	newID      func() string
}

func NewPlayerModelService(store PlayerProfileStore, logger *logrus.Logger, maxRetries int) *PlayerModelService {
	if maxRetries < 1 {
		maxRetries = defaultUpdateRetries
	}
	return &PlayerModelService{
		store:      store,
		locks:      NewKeyedLocker(),
		logger:     logger,
		maxRetries: maxRetries,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      uuid.NewString,
	}
}

// GetOrCreate returns the stored profile or persists a neutral one
func (s *PlayerModelService) GetOrCreate(ctx context.Context, playerID, playerName string) (*models.PlayerProfile, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	profile, err := s.store.Get(ctx, playerID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, ErrProfileNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	profile = models.NewPlayerProfile(s.newID(), playerID, playerName, s.now())
	if err := s.store.Save(ctx, profile); err != nil {
		if errors.Is(err, ErrVersionConflict) {
			// created by another instance in the meantime
			return s.store.Get(ctx, playerID)
		}
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}

	s.logger.WithField("player_id", playerID).Info("Created player profile")
	return profile, nil
}

// GetProfile returns the stored profile or ErrProfileNotFound
func (s *PlayerModelService) GetProfile(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	return s.store.Get(ctx, playerID)
}

// UpdateAfterShot folds one observed shot into the club's dispersion tendency
func (s *PlayerModelService) UpdateAfterShot(ctx context.Context, feedback models.ShotFeedback) (models.DispersionTendency, error) {
	var tendency models.DispersionTendency
	_, err := s.update(ctx, feedback.PlayerID, func(p *models.PlayerProfile) {
		tendency = ApplyShotFeedback(p, feedback)
	})
	if err != nil {
		return models.DispersionTendency{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"player_id":   feedback.PlayerID,
		"club":        feedback.Club,
		"sample_size": tendency.SampleSize,
		"variance":    tendency.DistanceVarianceYards,
	}).Debug("Recorded shot feedback")

	return tendency, nil
}

// UpdateAfterRound folds a completed round into the fatigue model
func (s *PlayerModelService) UpdateAfterRound(ctx context.Context, playerID string, summary models.RoundSummary) (models.FatigueModel, error) {
	profile, err := s.update(ctx, playerID, func(p *models.PlayerProfile) {
		ApplyRoundSummary(p, summary)
	})
	if err != nil {
		return models.FatigueModel{}, err
	}
	return profile.Fatigue, nil
}

// GetFatigueAdjustment returns the distance multiplier for a hole
func (s *PlayerModelService) GetFatigueAdjustment(ctx context.Context, playerID string, holeNumber int) (float64, error) {
	profile, err := s.store.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return 1.0, nil
		}
		return 1.0, err
	}
	return profile.FatigueMultiplier(holeNumber), nil
}

// GetComfortRating returns the player's comfort with a club, 0.5 when unknown
func (s *PlayerModelService) GetComfortRating(ctx context.Context, playerID string, club models.ClubType) (float64, error) {
	profile, err := s.store.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return models.DefaultComfortRating, nil
		}
		return models.DefaultComfortRating, err
	}
	return profile.Comfort(club), nil
}

// SetComfortRating stores a comfort rating clamped to [0,1]
func (s *PlayerModelService) SetComfortRating(ctx context.Context, playerID string, club models.ClubType, rating float64) (float64, error) {
	rating = clampFloat(rating, 0, 1)
	_, err := s.update(ctx, playerID, func(p *models.PlayerProfile) {
		if p.ComfortRatings == nil {
			p.ComfortRatings = make(map[models.ClubType]float64)
		}
		p.ComfortRatings[club] = rating
	})
	return rating, err
}

// GetTendency returns the learned tendency for a club, if any
func (s *PlayerModelService) GetTendency(ctx context.Context, playerID string, club models.ClubType) (models.DispersionTendency, bool, error) {
	profile, err := s.store.Get(ctx, playerID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			return models.DispersionTendency{}, false, nil
		}
		return models.DispersionTendency{}, false, err
	}
	t, ok := profile.Tendency(club)
	return t, ok, nil
}

// update runs load, mutate, save under the player's lock. A missing profile
// is created first. Version conflicts reload and reapply the mutation.
func (s *PlayerModelService) update(ctx context.Context, playerID string, mutate func(p *models.PlayerProfile)) (*models.PlayerProfile, error) {
	unlock := s.locks.Lock(playerID)
	defer unlock()

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		profile, err := s.store.Get(ctx, playerID)
		switch {
		case errors.Is(err, ErrProfileNotFound):
			profile = models.NewPlayerProfile(s.newID(), playerID, "", s.now())
		case err != nil:
			return nil, fmt.Errorf("failed to load profile: %w", err)
		}

		mutate(profile)
		profile.UpdatedAt = s.now()

		err = s.store.Save(ctx, profile)
		if err == nil {
			return profile, nil
		}
		if !errors.Is(err, ErrVersionConflict) {
			return nil, fmt.Errorf("failed to save profile: %w", err)
		}

		lastErr = err
		s.logger.WithFields(logrus.Fields{
			"player_id": playerID,
			"attempt":   attempt,
		}).Warn("Profile version conflict, retrying update")
	}

	return nil, fmt.Errorf("failed to save profile after %d attempts: %w", s.maxRetries, lastErr)
}

// ApplyShotFeedback updates the club's tendency in place and returns it.
// Variance is the running mean absolute distance error. The dominant miss
// direction is fixed by the first observation.
func ApplyShotFeedback(p *models.PlayerProfile, feedback models.ShotFeedback) models.DispersionTendency {
	if p.DispersionTendencies == nil {
		p.DispersionTendencies = make(map[models.ClubType]models.DispersionTendency)
	}

	distanceError := math.Abs(float64(feedback.ActualDistance - feedback.ExpectedDistance))

	tendency, ok := p.DispersionTendencies[feedback.Club]
	if !ok {
		direction := models.MissStraight
		if feedback.MissDirection != nil {
			direction = *feedback.MissDirection
		}
		tendency = models.DispersionTendency{
			MissDirection:         direction,
			MissFrequency:         initialMissFrequency,
			DistanceVarianceYards: distanceError,
			SampleSize:            1,
		}
	} else {
		n := float64(tendency.SampleSize)
		tendency.DistanceVarianceYards = (tendency.DistanceVarianceYards*n + distanceError) / (n + 1)
		tendency.SampleSize++

		if feedback.MissDirection != nil {
			if *feedback.MissDirection == tendency.MissDirection {
				tendency.MissFrequency += missFrequencyStep
			} else {
				tendency.MissFrequency -= missFrequencyPenalty
			}
			tendency.MissFrequency = clampFloat(tendency.MissFrequency, 0, 1)
		}
	}

	p.DispersionTendencies[feedback.Club] = tendency
	p.ShotsRecorded++
	return tendency
}

// ApplyRoundSummary blends a round into the fatigue model with an EMA. The
// first round seeds the averages.
func ApplyRoundSummary(p *models.PlayerProfile, summary models.RoundSummary) {
	frontPar, backPar := summary.Pars()
	front := float64(summary.FrontNineScore - frontPar)
	back := float64(summary.BackNineScore - backPar)

	f := &p.Fatigue
	f.FrontNineAverage = blend(f.FrontNineAverage, front)
	f.BackNineAverage = blend(f.BackNineAverage, back)

	if *f.FrontNineAverage != 0 {
		f.FatigueFactor = clampFloat(*f.BackNineAverage / *f.FrontNineAverage, 0, maxFatigueFactor)
	}

	if loss := summary.BackNineDistanceLossYards; loss != nil {
		if f.DistanceLossBackNineYards == 0 {
			f.DistanceLossBackNineYards = *loss
		} else {
			f.DistanceLossBackNineYards = fatigueEMAAlpha*(*loss) + (1-fatigueEMAAlpha)*f.DistanceLossBackNineYards
		}
	}

	p.RoundsRecorded++
}

func blend(current *float64, observed float64) *float64 {
	if current == nil {
		return &observed
	}
	v := fatigueEMAAlpha*observed + (1-fatigueEMAAlpha)*(*current)
	return &v
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
