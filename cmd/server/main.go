package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/smart-caddie/internal/api"
	"github.com/stitts-dev/smart-caddie/internal/api/handlers"
	"github.com/stitts-dev/smart-caddie/internal/recommender"
	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/config"
	"github.com/stitts-dev/smart-caddie/pkg/database"
	"github.com/stitts-dev/smart-caddie/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.IsDevelopment())
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()
	checks := make(map[string]handlers.ReadinessCheck)

	store, cleanup, err := buildProfileStore(ctx, cfg, log, checks)
	if err != nil {
		cleanup()
		log.Fatalf("Failed to initialize profile store: %v", err)
	}
	defer cleanup()

	registry := services.NewCourseRegistry()
	if cfg.SeedSampleData {
		registry.SeedSamples()
		log.Info("Loaded sample course and player")
	}

	players := services.NewPlayerModelService(store, log, cfg.ProfileUpdateRetries)
	engine := recommender.NewEngine(cfg.PhysicsParams())

	router := api.NewRouter(api.Services{
		Recommendations: services.NewRecommendationService(engine, players, registry, log),
		Players:         players,
		Registry:        registry,
		ReadinessChecks: checks,
	}, log)

	if cfg.IsDevelopment() {
		for _, route := range router.Routes() {
			log.Debugf("%s %s", route.Method, route.Path)
		}
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"port":          cfg.Port,
			"env":           cfg.Env,
			"profile_store": cfg.ProfileStore,
		}).Info("Starting smart caddie server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}

// buildProfileStore assembles the configured backend, the optional redis
// cache in front of it and the circuit breaker around both
func buildProfileStore(ctx context.Context, cfg *config.Config, log *logrus.Logger, checks map[string]handlers.ReadinessCheck) (services.PlayerProfileStore, func(), error) {
	var store services.PlayerProfileStore
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch cfg.ProfileStore {
	case config.StoreFile:
		fileStore, err := services.NewFileProfileStore(cfg.ProfileDataDir)
		if err != nil {
			return nil, cleanup, err
		}
		store = fileStore

	case config.StoreDatabase:
		db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
		if err != nil {
			return nil, cleanup, err
		}
		closers = append(closers, func() { db.Close() })

		if err := db.Migrate(); err != nil {
			return nil, cleanup, err
		}
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := db.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
		store = services.NewGormProfileStore(db)

	default:
		store = services.NewMemoryProfileStore()
	}

	if cfg.RedisURL != "" {
		client, err := services.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("Redis unavailable, profile cache disabled")
		} else {
			closers = append(closers, func() { client.Close() })
			cache := services.NewCacheService(client)
			checks["redis"] = cache.Ping
			store = services.NewCachedProfileStore(store, cache, cfg.ProfileCacheTTL, log)
		}
	}

	if cfg.ProfileStore != config.StoreMemory {
		store = services.NewBreakerProfileStore(store, cfg.StoreBreakerThreshold, cfg.StoreBreakerTimeout, log)
	}

	return store, cleanup, nil
}
