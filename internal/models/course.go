package models

import "fmt"

// HazardType represents the kind of hazard on a hole
type HazardType string

const (
	HazardWater       HazardType = "water"
	HazardBunker      HazardType = "bunker"
	HazardOutOfBounds HazardType = "out_of_bounds"
	HazardTrees       HazardType = "trees"
)

// HazardLocation is where a hazard sits relative to the line of play
type HazardLocation string

const (
	LocationLeft   HazardLocation = "left"
	LocationRight  HazardLocation = "right"
	LocationCenter HazardLocation = "center"
	LocationShort  HazardLocation = "short"
	LocationLong   HazardLocation = "long"
)

// HazardSeverity describes the penalty a hazard carries
type HazardSeverity string

const (
	SeverityWater       HazardSeverity = "water"
	SeverityBunker      HazardSeverity = "bunker"
	SeverityOutOfBounds HazardSeverity = "out_of_bounds"
)

// FairwayType is the surface between tee and green
type FairwayType string

const (
	FairwaySurface FairwayType = "fairway"
	FairwayRough   FairwayType = "rough"
	FairwaySand    FairwayType = "sand"
	FairwayWater   FairwayType = "water"
)

// HoleDifficulty buckets the hole's handicap index
type HoleDifficulty string

const (
	DifficultyEasy    HoleDifficulty = "easy"
	DifficultyAverage HoleDifficulty = "average"
	DifficultyHard    HoleDifficulty = "hard"
)

// Hazard is a single hazard on a hole
type Hazard struct {
	Type                 HazardType     `json:"hazard_type" binding:"required,oneof=water bunker out_of_bounds trees"`
	Location             HazardLocation `json:"location" binding:"required,oneof=left right center short long"`
	DistanceFromTeeYards int            `json:"distance_from_tee_yards" binding:"min=0,max=800"`
	Severity             HazardSeverity `json:"severity" binding:"required,oneof=water bunker out_of_bounds"`
	Description          string         `json:"description,omitempty" binding:"max=500"`
}

// Hole is a single hole on a course
type Hole struct {
	HoleID             string      `json:"hole_id" binding:"required,max=50"`
	Number             int         `json:"hole_number" binding:"min=1,max=18"`
	Par                int         `json:"par" binding:"min=3,max=5"`
	HandicapIndex      int         `json:"handicap_index" binding:"min=1,max=18"`
	DistanceToPinYards int         `json:"distance_to_pin_yards" binding:"min=50,max=700"`
	ShotBearingDegrees int         `json:"shot_bearing_degrees" binding:"min=0,max=359"`
	ElevationChangeFt  *int        `json:"elevation_change_feet,omitempty" binding:"omitempty,min=-500,max=500"`
	FairwayType        FairwayType `json:"fairway_type" binding:"required,oneof=fairway rough sand water"`
	Hazards            []Hazard    `json:"hazards,omitempty" binding:"dive"`
	Notes              string      `json:"notes,omitempty" binding:"max=1000"`
}

// Difficulty derives the hole difficulty from its handicap index.
// Index 1-6 plays hard, 7-12 average, 13-18 easy.
func (h *Hole) Difficulty() HoleDifficulty {
	switch {
	case h.HandicapIndex <= 6:
		return DifficultyHard
	case h.HandicapIndex <= 12:
		return DifficultyAverage
	default:
		return DifficultyEasy
	}
}

// Course is a collection of holes with the course's altitude
type Course struct {
	CourseID      string `json:"course_id" binding:"required,max=50"`
	Name          string `json:"course_name" binding:"required,max=200"`
	ElevationFeet int    `json:"course_elevation_feet" binding:"min=-1000,max=15000"`
	Holes         []Hole `json:"holes" binding:"required,min=1,dive"`
}

// Hole returns the hole with the given number
func (c *Course) Hole(number int) (*Hole, bool) {
	for i := range c.Holes {
		if c.Holes[i].Number == number {
			return &c.Holes[i], true
		}
	}
	return nil, false
}

// HoleByID returns the hole with the given id
func (c *Course) HoleByID(holeID string) (*Hole, bool) {
	for i := range c.Holes {
		if c.Holes[i].HoleID == holeID {
			return &c.Holes[i], true
		}
	}
	return nil, false
}

// Validate checks hole numbers and ids are unique
func (c *Course) Validate() error {
	numbers := make(map[int]bool, len(c.Holes))
	ids := make(map[string]bool, len(c.Holes))
	for _, h := range c.Holes {
		if numbers[h.Number] {
			return fmt.Errorf("%w: duplicate hole number %d", ErrInvalidRequest, h.Number)
		}
		if ids[h.HoleID] {
			return fmt.Errorf("%w: duplicate hole id %q", ErrInvalidRequest, h.HoleID)
		}
		numbers[h.Number] = true
		ids[h.HoleID] = true
	}
	return nil
}
