package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/stitts-dev/smart-caddie/internal/models"
)

// ErrStoreUnavailable is returned while the breaker is open
var ErrStoreUnavailable = errors.New("profile store unavailable")

// BreakerProfileStore guards a store with a circuit breaker so a failing
// backend is skipped quickly. Not-found and version conflicts are normal
// outcomes and do not count as failures.
type BreakerProfileStore struct {
	inner   PlayerProfileStore
	breaker *gobreaker.CircuitBreaker
	logger  *logrus.Logger
}

func NewBreakerProfileStore(inner PlayerProfileStore, threshold int, timeout time.Duration, logger *logrus.Logger) *BreakerProfileStore {
	if threshold < 1 {
		threshold = 1
	}

	settings := gobreaker.Settings{
		Name:        "profile-store",
		MaxRequests: 1,
		Timeout:     timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= uint32(threshold)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, ErrProfileNotFound) || errors.Is(err, ErrVersionConflict) ||
				errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &BreakerProfileStore{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
		logger:  logger,
	}
}

func (s *BreakerProfileStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	result, err := s.breaker.Execute(func() (interface{}, error) {
		return s.inner.Get(ctx, playerID)
	})
	if err != nil {
		return nil, translateBreakerError(err)
	}
	return result.(*models.PlayerProfile), nil
}

func (s *BreakerProfileStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.inner.Save(ctx, profile)
	})
	return translateBreakerError(err)
}

// State returns the current breaker state
func (s *BreakerProfileStore) State() gobreaker.State {
	return s.breaker.State()
}

func translateBreakerError(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return ErrStoreUnavailable
	}
	return err
}
