package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stitts-dev/smart-caddie/internal/api/handlers"
	"github.com/stitts-dev/smart-caddie/internal/api/middleware"
	"github.com/stitts-dev/smart-caddie/internal/services"
)

// Services are the dependencies the HTTP layer serves
type Services struct {
	Recommendations *services.RecommendationService
	Players         *services.PlayerModelService
	Registry        *services.CourseRegistry
	ReadinessChecks map[string]handlers.ReadinessCheck
}

// NewRouter builds the gin engine with middleware, health probes and the
// versioned API
func NewRouter(svc Services, logger *logrus.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())

	health := handlers.NewHealthHandler(svc.ReadinessChecks)
	router.GET("/health", health.GetHealth)
	router.GET("/ready", health.GetReady)

	SetupRoutes(router.Group("/api/v1"), svc, logger)
	return router
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, svc Services, logger *logrus.Logger) {
	recommendationHandler := handlers.NewRecommendationHandler(svc.Recommendations, logger)
	playerHandler := handlers.NewPlayerHandler(svc.Players, svc.Registry, logger)
	courseHandler := handlers.NewCourseHandler(svc.Registry, logger)

	group.POST("/recommendations", recommendationHandler.Recommend)

	players := group.Group("/players/:id", middleware.ValidateIDParam("id"))
	{
		players.POST("/baseline", playerHandler.SetBaseline)
		players.GET("/baseline", playerHandler.GetBaseline)
		players.GET("/profile", playerHandler.GetProfile)
		players.POST("/feedback/shots", playerHandler.RecordShot)
		players.POST("/feedback/rounds", playerHandler.RecordRound)
		players.GET("/comfort/:club", playerHandler.GetComfort)
		players.PUT("/comfort/:club", playerHandler.SetComfort)
		players.GET("/tendencies/:club", playerHandler.GetTendency)
		players.GET("/fatigue", playerHandler.GetFatigue)
	}

	group.POST("/courses", courseHandler.CreateCourse)
	group.GET("/courses", courseHandler.ListCourses)
	group.GET("/courses/:id", courseHandler.GetCourse)
	group.GET("/courses/:id/holes/:number", courseHandler.GetHole)

	group.POST("/weather", courseHandler.RecordWeather)
	group.GET("/weather/:id", courseHandler.GetWeather)

	group.GET("/examples/sample-course", courseHandler.SampleCourse)
	group.GET("/examples/sample-player", courseHandler.SamplePlayer)
}
