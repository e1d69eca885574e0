package models

import (
	"fmt"
	"strings"
)

// ClubType identifies one of the fixed club kinds a player can carry
type ClubType string

const (
	ClubDriver        ClubType = "driver"
	ClubWood3         ClubType = "wood_3"
	ClubWood5         ClubType = "wood_5"
	ClubIron2         ClubType = "iron_2"
	ClubIron3         ClubType = "iron_3"
	ClubIron4         ClubType = "iron_4"
	ClubIron5         ClubType = "iron_5"
	ClubIron6         ClubType = "iron_6"
	ClubIron7         ClubType = "iron_7"
	ClubIron8         ClubType = "iron_8"
	ClubIron9         ClubType = "iron_9"
	ClubPitchingWedge ClubType = "pitching_wedge"
	ClubGapWedge      ClubType = "gap_wedge"
	ClubSandWedge     ClubType = "sand_wedge"
	ClubLobWedge      ClubType = "lob_wedge"
)

// AllClubTypes lists every club kind, longest to shortest
var AllClubTypes = []ClubType{
	ClubDriver, ClubWood3, ClubWood5,
	ClubIron2, ClubIron3, ClubIron4, ClubIron5, ClubIron6, ClubIron7, ClubIron8, ClubIron9,
	ClubPitchingWedge, ClubGapWedge, ClubSandWedge, ClubLobWedge,
}

// IsValid reports whether c is a known club kind
func (c ClubType) IsValid() bool {
	for _, known := range AllClubTypes {
		if c == known {
			return true
		}
	}
	return false
}

// DisplayName renders the club the way a caddie would say it, e.g. "Iron 7"
func (c ClubType) DisplayName() string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// ClubDistance is a player's baseline yardage for one club under reference
// conditions (70°F, dry, level, clean lie)
type ClubDistance struct {
	ClubType   ClubType `json:"club_type" binding:"required"`
	CarryYards int      `json:"carry_distance" binding:"min=0,max=400"`
	TotalYards int      `json:"total_distance" binding:"min=0,max=450"`
}

// PlayerBaseline is the ordered set of a player's club distances. The order
// of Clubs is preserved as the tie-break order when ranking.
type PlayerBaseline struct {
	PlayerID   string         `json:"player_id" binding:"required,max=50"`
	PlayerName string         `json:"player_name" binding:"max=100"`
	Clubs      []ClubDistance `json:"club_distances" binding:"required,min=1,dive"`
}

// Club returns the baseline entry for a club kind
func (b *PlayerBaseline) Club(club ClubType) (ClubDistance, bool) {
	for _, c := range b.Clubs {
		if c.ClubType == club {
			return c, true
		}
	}
	return ClubDistance{}, false
}

// Validate checks club kinds are known, unique and that carry never exceeds total
func (b *PlayerBaseline) Validate() error {
	if len(b.Clubs) == 0 {
		return fmt.Errorf("%w: player baseline has no clubs", ErrInvalidRequest)
	}

	seen := make(map[ClubType]bool, len(b.Clubs))
	for _, c := range b.Clubs {
		if !c.ClubType.IsValid() {
			return fmt.Errorf("%w: unknown club type %q", ErrInvalidRequest, c.ClubType)
		}
		if seen[c.ClubType] {
			return fmt.Errorf("%w: duplicate club type %q", ErrInvalidRequest, c.ClubType)
		}
		seen[c.ClubType] = true

		if c.CarryYards > c.TotalYards {
			return fmt.Errorf("%w: %s carry exceeds total distance", ErrInvalidRequest, c.ClubType)
		}
	}
	return nil
}
