package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
)

// ProfileCache is the subset of CacheService the cached store needs
type ProfileCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CachedProfileStore is a read-through cache in front of another store.
// Cache failures are logged and never fail the call.
type CachedProfileStore struct {
	inner  PlayerProfileStore
	cache  ProfileCache
	ttl    time.Duration
	logger *logrus.Logger
}

func NewCachedProfileStore(inner PlayerProfileStore, cache ProfileCache, ttl time.Duration, logger *logrus.Logger) *CachedProfileStore {
	return &CachedProfileStore{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedProfileStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	key := ProfileCacheKey(playerID)

	var cached models.PlayerProfile
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return &cached, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		s.logger.WithFields(logrus.Fields{
			"component": "profile_cache",
			"player_id": playerID,
			"error":     err.Error(),
		}).Warn("Profile cache read failed, falling back to store")
	}

	profile, err := s.inner.Get(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, profile, s.ttl); err != nil {
		s.logger.WithFields(logrus.Fields{
			"component": "profile_cache",
			"player_id": playerID,
			"error":     err.Error(),
		}).Warn("Failed to cache profile")
	}

	return profile, nil
}

// Save writes through and drops the cached entry. A version conflict also
// drops it, since the cached copy may be the stale version a concurrent read
// put back after an earlier invalidation.
func (s *CachedProfileStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	err := s.inner.Save(ctx, profile)
	if err != nil && !errors.Is(err, ErrVersionConflict) {
		return err
	}

	s.invalidate(ctx, profile.PlayerID)
	return err
}

func (s *CachedProfileStore) invalidate(ctx context.Context, playerID string) {
	if err := s.cache.Delete(ctx, ProfileCacheKey(playerID)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"component": "profile_cache",
			"player_id": playerID,
			"error":     err.Error(),
		}).Warn("Failed to invalidate cached profile")
	}
}
