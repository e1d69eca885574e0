package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/stitts-dev/smart-caddie/internal/models"
)

// FileProfileStore keeps one JSON document per player in a directory
type FileProfileStore struct {
	dir string
	mu  sync.Mutex
}

func NewFileProfileStore(dir string) (*FileProfileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile directory: %w", err)
	}
	return &FileProfileStore{dir: dir}, nil
}

func (s *FileProfileStore) path(playerID string) string {
	return filepath.Join(s.dir, url.PathEscape(playerID)+".json")
}

func (s *FileProfileStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read(playerID)
}

func (s *FileProfileStore) read(playerID string) (*models.PlayerProfile, error) {
	data, err := os.ReadFile(s.path(playerID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read profile: %w", err)
	}

	var profile models.PlayerProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if profile.DispersionTendencies == nil {
		profile.DispersionTendencies = make(map[models.ClubType]models.DispersionTendency)
	}
	if profile.ComfortRatings == nil {
		profile.ComfortRatings = make(map[models.ClubType]float64)
	}
	return &profile, nil
}

func (s *FileProfileStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored int64
	current, err := s.read(profile.PlayerID)
	switch {
	case err == nil:
		stored = current.Version
	case !errors.Is(err, ErrProfileNotFound):
		return err
	}
	if profile.Version != stored {
		return ErrVersionConflict
	}

	next := profile.Clone()
	next.Version++

	data, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	// write then rename so readers never see a partial document
	tmp, err := os.CreateTemp(s.dir, "profile-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path(profile.PlayerID)); err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}

	profile.Version = next.Version
	return nil
}
