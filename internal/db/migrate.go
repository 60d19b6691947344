package db

import (
	"embed"  // Embedded SQL migrations
	"errors" // Error matching
	"fmt"    // Error wrapping

	"service_reporting/internal/domain" // Importing domain models

	"github.com/golang-migrate/migrate/v4"                  // Versioned migrations
	_ "github.com/golang-migrate/migrate/v4/database/mysql" // MySQL driver for golang-migrate
	"github.com/golang-migrate/migrate/v4/source/iofs"      // Source backed by embed.FS
	"github.com/sirupsen/logrus"                            // Logrus for structured logging
	"gorm.io/gorm"                                          // GORM ORM library
)

//go:embed migrations/*.sql
var migrationFS embed.FS

func newMigrator(databaseURL string) (*migrate.Migrate, error) {
	src, err := iofs.New(migrationFS, "migrations") // Read the embedded scripts
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open migration target: %w", err)
	}
	return m, nil
}

// Up applies every pending migration
func Up(databaseURL string) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	logVersion(m)
	return nil
}

// Down rolls back steps migrations, or all of them when steps <= 0
func Down(databaseURL string, steps int) error {
	m, err := newMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()
	if steps > 0 {
		err = m.Steps(-steps) // Roll back a fixed number of versions
	} else {
		err = m.Down() // Roll back everything
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	logVersion(m)
	return nil
}

func logVersion(m *migrate.Migrate) {
	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logrus.Info("Schema is empty") // No migration applied
		return
	}
	if err != nil {
		logrus.WithError(err).Warn("Could not read schema version")
		return
	}
	logrus.WithFields(logrus.Fields{
		"version": version, // Current schema version
		"dirty":   dirty,   // Whether the last migration failed half way
	}).Info("Migration completed.")
}

// AutoMigrate creates the schema straight from the gorm models.
// Used by tests and local development against throwaway databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Department{}, &domain.User{}, &domain.Service{})
}
