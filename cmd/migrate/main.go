package main

import (
	"flag" // Command line flags

	"service_reporting/internal/config" // Custom import path (Config)
	"service_reporting/internal/db"     // Custom import path (Database)

	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main entry point for migration
func main() {
	direction := flag.String("direction", "up", "migrate up or down")
	steps := flag.Int("steps", 0, "number of versions to roll back with -direction down, 0 for all")
	seed := flag.Bool("seed", false, "seed departments and one user per department after migrating")
	auto := flag.Bool("auto", false, "use gorm AutoMigrate instead of the versioned SQL scripts")
	flag.Parse()

	cfg := config.LoadConfig() // Load configuration
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	switch {
	case *auto:
		gdb, err := db.Open(cfg)
		if err != nil {
			logrus.Fatalf("failed to connect to DB: %v", err)
		}
		if err := db.AutoMigrate(gdb); err != nil {
			logrus.Fatalf("auto migration failed: %v", err)
		}
		logrus.Info("Auto migration completed")
	case *direction == "up":
		if err := db.Up(cfg.MigrateURL()); err != nil {
			logrus.Fatalf("migration failed: %v", err)
		}
	case *direction == "down":
		if err := db.Down(cfg.MigrateURL(), *steps); err != nil {
			logrus.Fatalf("rollback failed: %v", err)
		}
	default:
		logrus.Fatalf("unknown direction %q, want up or down", *direction)
	}

	if !*seed {
		return
	}
	if *direction == "down" {
		logrus.Fatal("refusing to seed after rolling back")
	}
	gdb, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Seed(gdb, cfg.SeedPassword); err != nil {
		logrus.Fatalf("seed failed: %v", err)
	}
}
