package physics

import "github.com/stitts-dev/smart-caddie/internal/models"

var compassDegrees = map[models.WindDirection]int{
	models.WindN:  0,
	models.WindNE: 45,
	models.WindE:  90,
	models.WindSE: 135,
	models.WindS:  180,
	models.WindSW: 225,
	models.WindW:  270,
	models.WindNW: 315,
}

// CompassToDegrees converts a compass point to degrees (N=0, E=90).
// Calm and unknown directions return -1.
func CompassToDegrees(dir models.WindDirection) int {
	if deg, ok := compassDegrees[dir]; ok {
		return deg
	}
	return -1
}

// WindRelativeToShot converts the direction the wind blows from into a wind
// relative to the shot bearing. It also returns the angle between the two.
func WindRelativeToShot(dir models.WindDirection, shotBearing int, speedMPH float64) (models.WindRelative, int) {
	if dir == models.WindCalm || speedMPH < calmWindMPH {
		return models.WindRelativeCalm, 0
	}

	windDeg := CompassToDegrees(dir)
	if windDeg < 0 {
		return models.WindRelativeCalm, 0
	}

	angle := ((windDeg-shotBearing)%360 + 360) % 360

	switch {
	case angle <= 45 || angle >= 315:
		return models.WindHeadwind, angle
	case angle <= 135:
		return models.WindCrosswindLeft, angle
	case angle <= 225:
		return models.WindTailwind, angle
	default:
		return models.WindCrosswindRight, angle
	}
}
