package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/stitts-dev/smart-caddie/internal/models"
)

// CourseRegistry holds the courses, player baselines and recorded weather
// that requests can refer to by id instead of sending them inline
type CourseRegistry struct {
	mu        sync.RWMutex
	courses   map[string]*models.Course
	baselines map[string]*models.PlayerBaseline
	weather   map[string]models.WeatherConditions
}

func NewCourseRegistry() *CourseRegistry {
	return &CourseRegistry{
		courses:   make(map[string]*models.Course),
		baselines: make(map[string]*models.PlayerBaseline),
		weather:   make(map[string]models.WeatherConditions),
	}
}

// AddCourse adds or replaces a course
func (r *CourseRegistry) AddCourse(course models.Course) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.courses[course.CourseID] = &course
}

// Course returns a copy of the course
func (r *CourseRegistry) Course(courseID string) (models.Course, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	course, ok := r.courses[courseID]
	if !ok {
		return models.Course{}, false
	}
	return *course, true
}

// SearchCourses matches the query against course names and ids, case
// insensitively. An empty query lists every course.
func (r *CourseRegistry) SearchCourses(query string) []models.Course {
	r.mu.RLock()
	defer r.mu.RUnlock()

	query = strings.ToLower(strings.TrimSpace(query))
	matches := make([]models.Course, 0, len(r.courses))
	for _, c := range r.courses {
		if query == "" ||
			strings.Contains(strings.ToLower(c.Name), query) ||
			strings.Contains(strings.ToLower(c.CourseID), query) {
			matches = append(matches, *c)
		}
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].CourseID < matches[j].CourseID })
	return matches
}

// AddBaseline adds or replaces a player's baseline distances
func (r *CourseRegistry) AddBaseline(baseline models.PlayerBaseline) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.baselines[baseline.PlayerID] = &baseline
}

// Baseline returns a copy of the player's baseline
func (r *CourseRegistry) Baseline(playerID string) (models.PlayerBaseline, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	baseline, ok := r.baselines[playerID]
	if !ok {
		return models.PlayerBaseline{}, false
	}
	return *baseline, true
}

// RecordWeather stores conditions and returns their id
func (r *CourseRegistry) RecordWeather(weather models.WeatherConditions) string {
	id := uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.weather[id] = weather
	return id
}

// Weather returns recorded conditions
func (r *CourseRegistry) Weather(conditionID string) (models.WeatherConditions, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	w, ok := r.weather[conditionID]
	return w, ok
}

// SeedSamples loads the sample course and player
func (r *CourseRegistry) SeedSamples() {
	r.AddCourse(SampleCourse())
	r.AddBaseline(SamplePlayerBaseline())
}

func elevation(feet int) *int { return &feet }

// SampleCourse is a small demo course used by the example endpoints
func SampleCourse() models.Course {
	return models.Course{
		CourseID:      "pebble-creek",
		Name:          "Pebble Creek Golf Club",
		ElevationFeet: 850,
		Holes: []models.Hole{
			{
				HoleID:             "pebble-creek-1",
				Number:             1,
				Par:                4,
				HandicapIndex:      7,
				DistanceToPinYards: 385,
				ShotBearingDegrees: 0,
				ElevationChangeFt:  elevation(-10),
				FairwayType:        models.FairwaySurface,
				Hazards: []models.Hazard{
					{Type: models.HazardBunker, Location: models.LocationRight, DistanceFromTeeYards: 240, Severity: models.SeverityBunker, Description: "Fairway bunker right"},
				},
				Notes: "Gentle opener, favor the left side off the tee",
			},
			{
				HoleID:             "pebble-creek-2",
				Number:             2,
				Par:                3,
				HandicapIndex:      15,
				DistanceToPinYards: 165,
				ShotBearingDegrees: 90,
				ElevationChangeFt:  elevation(12),
				FairwayType:        models.FairwaySurface,
				Hazards: []models.Hazard{
					{Type: models.HazardWater, Location: models.LocationLeft, DistanceFromTeeYards: 155, Severity: models.SeverityWater, Description: "Pond guarding the left of the green"},
					{Type: models.HazardBunker, Location: models.LocationShort, DistanceFromTeeYards: 150, Severity: models.SeverityBunker, Description: "Front bunker"},
				},
			},
			{
				HoleID:             "pebble-creek-3",
				Number:             3,
				Par:                5,
				HandicapIndex:      3,
				DistanceToPinYards: 520,
				ShotBearingDegrees: 180,
				FairwayType:        models.FairwaySurface,
				Hazards: []models.Hazard{
					{Type: models.HazardOutOfBounds, Location: models.LocationRight, DistanceFromTeeYards: 260, Severity: models.SeverityOutOfBounds, Description: "Out of bounds along the right"},
					{Type: models.HazardTrees, Location: models.LocationLeft, DistanceFromTeeYards: 230, Severity: models.SeverityBunker, Description: "Tree line left"},
				},
			},
			{
				HoleID:             "pebble-creek-14",
				Number:             14,
				Par:                4,
				HandicapIndex:      1,
				DistanceToPinYards: 430,
				ShotBearingDegrees: 270,
				ElevationChangeFt:  elevation(25),
				FairwayType:        models.FairwaySurface,
				Hazards: []models.Hazard{
					{Type: models.HazardWater, Location: models.LocationRight, DistanceFromTeeYards: 250, Severity: models.SeverityWater, Description: "Creek crossing right"},
				},
				Notes: "Hardest hole on the course, plays uphill",
			},
		},
	}
}

// SamplePlayerBaseline is a mid-handicap bag used by the example endpoints
func SamplePlayerBaseline() models.PlayerBaseline {
	return models.PlayerBaseline{
		PlayerID:   "sample-player",
		PlayerName: "Sample Player",
		Clubs: []models.ClubDistance{
			{ClubType: models.ClubDriver, CarryYards: 230, TotalYards: 250},
			{ClubType: models.ClubWood3, CarryYards: 210, TotalYards: 225},
			{ClubType: models.ClubWood5, CarryYards: 195, TotalYards: 205},
			{ClubType: models.ClubIron4, CarryYards: 180, TotalYards: 190},
			{ClubType: models.ClubIron5, CarryYards: 170, TotalYards: 178},
			{ClubType: models.ClubIron6, CarryYards: 160, TotalYards: 167},
			{ClubType: models.ClubIron7, CarryYards: 145, TotalYards: 150},
			{ClubType: models.ClubIron8, CarryYards: 135, TotalYards: 140},
			{ClubType: models.ClubIron9, CarryYards: 125, TotalYards: 129},
			{ClubType: models.ClubPitchingWedge, CarryYards: 110, TotalYards: 114},
			{ClubType: models.ClubGapWedge, CarryYards: 95, TotalYards: 98},
			{ClubType: models.ClubSandWedge, CarryYards: 80, TotalYards: 82},
			{ClubType: models.ClubLobWedge, CarryYards: 60, TotalYards: 62},
		},
	}
}
