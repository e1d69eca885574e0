package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/models"
	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/utils"
)

type CourseHandler struct {
	registry *services.CourseRegistry
	logger   *logrus.Logger
}

func NewCourseHandler(registry *services.CourseRegistry, logger *logrus.Logger) *CourseHandler {
	return &CourseHandler{
		registry: registry,
		logger:   logger,
	}
}

// CreateCourse registers a course and its holes
// POST /api/v1/courses
func (h *CourseHandler) CreateCourse(c *gin.Context) {
	var course models.Course
	if err := c.ShouldBindJSON(&course); err != nil {
		bindingError(c, err)
		return
	}
	if err := sanitizeCourse(&course); err != nil {
		respondError(c, err, "")
		return
	}
	if err := course.Validate(); err != nil {
		respondError(c, err, "")
		return
	}

	h.registry.AddCourse(course)
	h.logger.WithFields(logrus.Fields{
		"course_id": course.CourseID,
		"holes":     len(course.Holes),
	}).Info("Registered course")

	utils.SendCreated(c, course)
}

// ListCourses returns registered courses, filtered by name when q is set
// GET /api/v1/courses?q=pebble
func (h *CourseHandler) ListCourses(c *gin.Context) {
	utils.SendSuccess(c, h.registry.SearchCourses(c.Query("q")))
}

// GetCourse returns a single course
// GET /api/v1/courses/:id
func (h *CourseHandler) GetCourse(c *gin.Context) {
	course, ok := h.registry.Course(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Course not found")
		return
	}

	utils.SendSuccess(c, course)
}

// GetHole returns one hole with its derived difficulty
// GET /api/v1/courses/:id/holes/:number
func (h *CourseHandler) GetHole(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number < 1 || number > 18 {
		utils.SendValidationError(c, "Invalid hole number", "hole number must be between 1 and 18")
		return
	}

	course, ok := h.registry.Course(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Course not found")
		return
	}
	hole, ok := course.Hole(number)
	if !ok {
		utils.SendNotFound(c, "Hole not found")
		return
	}

	utils.SendSuccess(c, gin.H{
		"hole":       hole,
		"difficulty": hole.Difficulty(),
	})
}

// RecordWeather stores conditions that recommendation requests can refer to
// POST /api/v1/weather
func (h *CourseHandler) RecordWeather(c *gin.Context) {
	var weather models.WeatherConditions
	if err := c.ShouldBindJSON(&weather); err != nil {
		bindingError(c, err)
		return
	}

	id := h.registry.RecordWeather(weather)
	utils.SendCreated(c, gin.H{
		"weather_condition_id": id,
		"weather":              weather,
	})
}

// GetWeather returns recorded conditions
// GET /api/v1/weather/:id
func (h *CourseHandler) GetWeather(c *gin.Context) {
	weather, ok := h.registry.Weather(c.Param("id"))
	if !ok {
		utils.SendNotFound(c, "Weather conditions not found")
		return
	}

	utils.SendSuccess(c, weather)
}

// SampleCourse returns the demo course
// GET /api/v1/examples/sample-course
func (h *CourseHandler) SampleCourse(c *gin.Context) {
	utils.SendSuccess(c, services.SampleCourse())
}

// SamplePlayer returns the demo player baseline
// GET /api/v1/examples/sample-player
func (h *CourseHandler) SamplePlayer(c *gin.Context) {
	utils.SendSuccess(c, services.SamplePlayerBaseline())
}
