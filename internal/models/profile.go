package models

import (
	"time"

	"gorm.io/datatypes"
)

// MissDirection is a player's dominant miss with a club
type MissDirection string

const (
	MissLeft         MissDirection = "left"
	MissRight        MissDirection = "right"
	MissStraight     MissDirection = "straight"
	MissInconsistent MissDirection = "inconsistent"
)

// DispersionTendency captures learned miss patterns for one club
type DispersionTendency struct {
	MissDirection         MissDirection `json:"miss_direction"`
	MissFrequency         float64       `json:"miss_frequency"`
	DistanceVarianceYards float64       `json:"distance_variance_yards"`
	SampleSize            int           `json:"sample_size"`
}

// FatigueModel tracks how a player's scoring and distance hold up on the back nine
type FatigueModel struct {
	FrontNineAverage          *float64 `json:"front_nine_average,omitempty"`
	BackNineAverage           *float64 `json:"back_nine_average,omitempty"`
	FatigueFactor             float64  `json:"fatigue_factor"`
	DistanceLossBackNineYards float64  `json:"distance_loss_back_nine_yards"`
}

// PlayerProfile is the learned state for a player. It is mutated only through
// the player model feedback operations and persisted by a PlayerProfileStore.
type PlayerProfile struct {
	ProfileID            string                          `json:"profile_id"`
	PlayerID             string                          `json:"player_id"`
	PlayerName           string                          `json:"player_name"`
	CreatedAt            time.Time                       `json:"created_at"`
	UpdatedAt            time.Time                       `json:"updated_at"`
	Version              int64                           `json:"version"`
	DispersionTendencies map[ClubType]DispersionTendency `json:"dispersion_tendencies"`
	ComfortRatings       map[ClubType]float64            `json:"comfort_ratings"`
	Fatigue              FatigueModel                    `json:"fatigue_model"`
	ShotsRecorded        int                             `json:"shots_recorded"`
	RoundsRecorded       int                             `json:"rounds_recorded"`
}

// DefaultComfortRating is used for clubs without a rating
const DefaultComfortRating = 0.5

// NewPlayerProfile returns a neutral profile with no learned adjustments
func NewPlayerProfile(profileID, playerID, playerName string, now time.Time) *PlayerProfile {
	return &PlayerProfile{
		ProfileID:            profileID,
		PlayerID:             playerID,
		PlayerName:           playerName,
		CreatedAt:            now,
		UpdatedAt:            now,
		DispersionTendencies: make(map[ClubType]DispersionTendency),
		ComfortRatings:       make(map[ClubType]float64),
		Fatigue:              FatigueModel{FatigueFactor: 1.0},
	}
}

// Tendency returns the learned tendency for a club, if any
func (p *PlayerProfile) Tendency(club ClubType) (DispersionTendency, bool) {
	if p == nil || p.DispersionTendencies == nil {
		return DispersionTendency{}, false
	}
	t, ok := p.DispersionTendencies[club]
	return t, ok
}

// Comfort returns the comfort rating for a club, defaulting to neutral
func (p *PlayerProfile) Comfort(club ClubType) float64 {
	if p == nil || p.ComfortRatings == nil {
		return DefaultComfortRating
	}
	if rating, ok := p.ComfortRatings[club]; ok {
		return rating
	}
	return DefaultComfortRating
}

// FatigueMultiplier is the distance multiplier for the given hole. The front
// nine is never adjusted; on the back nine distance loss is expressed
// against a 150 yard reference shot.
func (p *PlayerProfile) FatigueMultiplier(holeNumber int) float64 {
	if p == nil || holeNumber <= 9 {
		return 1.0
	}
	if loss := p.Fatigue.DistanceLossBackNineYards; loss > 0 {
		return 1.0 - loss/150.0
	}
	return 1.0
}

// Clone returns a deep copy so callers can mutate without touching a cached value
func (p *PlayerProfile) Clone() *PlayerProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.DispersionTendencies = make(map[ClubType]DispersionTendency, len(p.DispersionTendencies))
	for k, v := range p.DispersionTendencies {
		c.DispersionTendencies[k] = v
	}
	c.ComfortRatings = make(map[ClubType]float64, len(p.ComfortRatings))
	for k, v := range p.ComfortRatings {
		c.ComfortRatings[k] = v
	}
	if p.Fatigue.FrontNineAverage != nil {
		v := *p.Fatigue.FrontNineAverage
		c.Fatigue.FrontNineAverage = &v
	}
	if p.Fatigue.BackNineAverage != nil {
		v := *p.Fatigue.BackNineAverage
		c.Fatigue.BackNineAverage = &v
	}
	return &c
}

// ShotFeedback reports how a recommended shot actually played
type ShotFeedback struct {
	PlayerID         string         `json:"player_id"`
	Club             ClubType       `json:"club_type" binding:"required"`
	ActualDistance   int            `json:"actual_distance" binding:"min=0,max=450"`
	ExpectedDistance int            `json:"expected_distance" binding:"min=0,max=450"`
	MissDirection    *MissDirection `json:"miss_direction,omitempty" binding:"omitempty,oneof=left right straight inconsistent"`
}

// RoundSummary is the nine-hole split of a completed round
type RoundSummary struct {
	FrontNineScore            int      `json:"front_nine_score" binding:"min=0"`
	BackNineScore             int      `json:"back_nine_score" binding:"min=0"`
	FrontNinePar              int      `json:"front_nine_par" binding:"min=0"`
	BackNinePar               int      `json:"back_nine_par" binding:"min=0"`
	BackNineDistanceLossYards *float64 `json:"back_nine_distance_loss_yards,omitempty" binding:"omitempty,min=0,max=50"`
}

// Pars returns the nine-hole pars, defaulting to 36 each
func (r RoundSummary) Pars() (front, back int) {
	front, back = r.FrontNinePar, r.BackNinePar
	if front == 0 {
		front = 36
	}
	if back == 0 {
		back = 36
	}
	return front, back
}

// PlayerProfileRecord is the database row for a PlayerProfile
type PlayerProfileRecord struct {
	ID                   uint                                                `gorm:"primaryKey" json:"-"`
	ProfileID            string                                              `gorm:"uniqueIndex;not null" json:"profile_id"`
	PlayerID             string                                              `gorm:"uniqueIndex;not null;size:50" json:"player_id"`
	PlayerName           string                                              `gorm:"size:100" json:"player_name"`
	Version              int64                                               `gorm:"not null;default:0" json:"version"`
	DispersionTendencies datatypes.JSONType[map[ClubType]DispersionTendency] `json:"dispersion_tendencies"`
	ComfortRatings       datatypes.JSONType[map[ClubType]float64]            `json:"comfort_ratings"`
	Fatigue              datatypes.JSONType[FatigueModel]                    `json:"fatigue_model"`
	ShotsRecorded        int                                                 `json:"shots_recorded"`
	RoundsRecorded       int                                                 `json:"rounds_recorded"`
	CreatedAt            time.Time                                           `json:"created_at"`
	UpdatedAt            time.Time                                           `json:"updated_at"`
}

// TableName sets the table name for gorm
func (PlayerProfileRecord) TableName() string {
	return "player_profiles"
}

// ToRecord converts a profile into its database row
func (p *PlayerProfile) ToRecord() *PlayerProfileRecord {
	return &PlayerProfileRecord{
		ProfileID:            p.ProfileID,
		PlayerID:             p.PlayerID,
		PlayerName:           p.PlayerName,
		Version:              p.Version,
		DispersionTendencies: datatypes.NewJSONType(p.DispersionTendencies),
		ComfortRatings:       datatypes.NewJSONType(p.ComfortRatings),
		Fatigue:              datatypes.NewJSONType(p.Fatigue),
		ShotsRecorded:        p.ShotsRecorded,
		RoundsRecorded:       p.RoundsRecorded,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// ToProfile converts a database row back into a profile
func (r *PlayerProfileRecord) ToProfile() *PlayerProfile {
	p := &PlayerProfile{
		ProfileID:            r.ProfileID,
		PlayerID:             r.PlayerID,
		PlayerName:           r.PlayerName,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
		Version:              r.Version,
		DispersionTendencies: r.DispersionTendencies.Data(),
		ComfortRatings:       r.ComfortRatings.Data(),
		Fatigue:              r.Fatigue.Data(),
		ShotsRecorded:        r.ShotsRecorded,
		RoundsRecorded:       r.RoundsRecorded,
	}
	if p.DispersionTendencies == nil {
		p.DispersionTendencies = make(map[ClubType]DispersionTendency)
	}
	if p.ComfortRatings == nil {
		p.ComfortRatings = make(map[ClubType]float64)
	}
	return p
}
