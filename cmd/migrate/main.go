package main

import (
	"context"
	"log"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/smart-caddie/internal/services"
	"github.com/stitts-dev/smart-caddie/pkg/config"
	"github.com/stitts-dev/smart-caddie/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseDriver, cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := db.Migrate(); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := db.DropTables(); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

// seedData creates a neutral profile for the sample player
func seedData(db *database.DB) error {
	if err := db.Migrate(); err != nil {
		return err
	}

	players := services.NewPlayerModelService(services.NewGormProfileStore(db), logrus.StandardLogger(), 3)
	sample := services.SamplePlayerBaseline()

	profile, err := players.GetOrCreate(context.Background(), sample.PlayerID, sample.PlayerName)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"player_id":  profile.PlayerID,
		"profile_id": profile.ProfileID,
		"version":    profile.Version,
	}).Info("Seeded sample player profile")
	return nil
}
