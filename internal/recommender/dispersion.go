package recommender

import "github.com/stitts-dev/smart-caddie/internal/models"

// defaultDispersionYards is used for any club kind missing from the table
const defaultDispersionYards = 10

var dispersionYards = map[models.ClubType]int{
	models.ClubDriver:        20,
	models.ClubWood3:         18,
	models.ClubWood5:         15,
	models.ClubIron2:         15,
	models.ClubIron3:         14,
	models.ClubIron4:         13,
	models.ClubIron5:         12,
	models.ClubIron6:         10,
	models.ClubIron7:         9,
	models.ClubIron8:         8,
	models.ClubIron9:         7,
	models.ClubPitchingWedge: 5,
	models.ClubGapWedge:      5,
	models.ClubSandWedge:     6,
	models.ClubLobWedge:      7,
}

// DispersionMargin is the accuracy radius in yards for a club kind. It is
// always positive.
func DispersionMargin(club models.ClubType) int {
	if margin, ok := dispersionYards[club]; ok {
		return margin
	}
	return defaultDispersionYards
}
