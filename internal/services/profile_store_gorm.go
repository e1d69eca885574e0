package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/pkg/database"
	"gorm.io/gorm"
)

// GormProfileStore persists profiles in the player_profiles table
type GormProfileStore struct {
	db *database.DB
}

func NewGormProfileStore(db *database.DB) *GormProfileStore {
	return &GormProfileStore{db: db}
}

func (s *GormProfileStore) Get(ctx context.Context, playerID string) (*models.PlayerProfile, error) {
	var record models.PlayerProfileRecord
	err := s.db.WithContext(ctx).Where("player_id = ?", playerID).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return record.ToProfile(), nil
}

// Save creates the row for a version 0 profile and otherwise updates it
// only if the stored version still matches. A lost create race hits the
// unique player_id index and is reported as a version conflict.
func (s *GormProfileStore) Save(ctx context.Context, profile *models.PlayerProfile) error {
	record := profile.ToRecord()
	record.Version = profile.Version + 1

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if profile.Version == 0 {
			if err := tx.Create(record).Error; err != nil {
				if isDuplicateKey(err) {
					return ErrVersionConflict
				}
				return err
			}
			return nil
		}

		result := tx.Model(&models.PlayerProfileRecord{}).
			Where("player_id = ? AND version = ?", profile.PlayerID, profile.Version).
			Updates(map[string]interface{}{
				"player_name":           record.PlayerName,
				"version":               record.Version,
				"dispersion_tendencies": record.DispersionTendencies,
				"comfort_ratings":       record.ComfortRatings,
				"fatigue":               record.Fatigue,
				"shots_recorded":        record.ShotsRecorded,
				"rounds_recorded":       record.RoundsRecorded,
				"updated_at":            record.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrVersionConflict) {
			return err
		}
		return fmt.Errorf("failed to save profile: %w", err)
	}

	profile.Version = record.Version
	return nil
}

// isDuplicateKey matches unique violations from postgres (translated by gorm)
// and from sqlite
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
