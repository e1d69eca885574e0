package services

import (
	"testing"

	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourseRegistry_Courses(t *testing.T) {
	registry := NewCourseRegistry()
	registry.SeedSamples()
	registry.AddCourse(models.Course{CourseID: "augusta-national", Name: "Augusta National"})

	course, ok := registry.Course("pebble-creek")
	require.True(t, ok)
	assert.Len(t, course.Holes, 4)

	_, ok = registry.Course("missing")
	assert.False(t, ok)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"augusta-national", "pebble-creek"}},
		{"PEBBLE", []string{"pebble-creek"}},
		{"national", []string{"augusta-national"}},
		{"links", nil},
	}
	for _, tt := range tests {
		t.Run("search "+tt.query, func(t *testing.T) {
			var ids []string
			for _, c := range registry.SearchCourses(tt.query) {
				ids = append(ids, c.CourseID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestCourseRegistry_ReturnsCopies(t *testing.T) {
	registry := NewCourseRegistry()
	registry.SeedSamples()

	baseline, ok := registry.Baseline("sample-player")
	require.True(t, ok)
	baseline.PlayerName = "changed"

	again, _ := registry.Baseline("sample-player")
	assert.Equal(t, "Sample Player", again.PlayerName)
}

func TestCourseRegistry_Weather(t *testing.T) {
	registry := NewCourseRegistry()

	weather := models.ReferenceWeather()
	weather.WindSpeedMPH = 12
	id := registry.RecordWeather(weather)
	assert.NotEmpty(t, id)

	got, ok := registry.Weather(id)
	require.True(t, ok)
	assert.Equal(t, 12.0, got.WindSpeedMPH)

	_, ok = registry.Weather("unknown")
	assert.False(t, ok)
}

func TestSampleData_IsValid(t *testing.T) {
	baseline := SamplePlayerBaseline()
	assert.NoError(t, baseline.Validate())

	course := SampleCourse()
	seen := map[int]bool{}
	for _, h := range course.Holes {
		assert.False(t, seen[h.Number], "duplicate hole %d", h.Number)
		seen[h.Number] = true
		for _, hz := range h.Hazards {
			assert.NotEmpty(t, hz.Severity, "hazard on hole %d", h.Number)
		}
	}
}
