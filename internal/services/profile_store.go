package services

import (
	"context"
	"errors"
	"sync"

	"github.com/stitts-dev/smart-caddie/internal/models"
)

var (
	// ErrProfileNotFound is returned by a store when no profile exists for the player
	ErrProfileNotFound = errors.New("player profile not found")
	// ErrVersionConflict is returned by Save when the stored profile changed
	// since the caller loaded it
	ErrVersionConflict = errors.New("player profile version conflict")
)

// PlayerProfileStore persists learned player profiles.
//
// Save uses optimistic versioning: the profile's Version must equal the
// stored version (0 when nothing is stored yet). On success the store
// increments Version on the passed profile.
type PlayerProfileStore interface {
	Get(ctx context.Context, playerID string) (*models.PlayerProfile, error)
	Save(ctx context.Context, profile *models.PlayerProfile) error
}

// MemoryProfileStore keeps profiles in process memory
type MemoryProfileStore struct {
	mu       sync.RWMutex
	profiles map[string]*models.PlayerProfile
}

func NewMemoryProfileStore() *MemoryProfileStore {
	return &MemoryProfileStore{
		profiles: make(map[string]*models.PlayerProfile),
	}
}

func (s *MemoryProfileStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[playerID]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return profile.Clone(), nil
}

func (s *MemoryProfileStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int64
	if current, ok := s.profiles[profile.PlayerID]; ok {
		stored = current.Version
	}
	if profile.Version != stored {
		return ErrVersionConflict
	}

	profile.Version++
	s.profiles[profile.PlayerID] = profile.Clone()
	return nil
}
