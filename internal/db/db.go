package db

import (
	"fmt"                               // Error wrapping
	"service_reporting/internal/config" // Custom import path (Config)

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
	"gorm.io/gorm/logger"  // GORM logger levels
)

// Open connects to MySQL using the application configuration
func Open(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Warn // Surface slow queries and errors in development
	if cfg.IsProd {
		logLevel = logger.Silent // Errors are logged by the handlers instead
	}
	db, err := gorm.Open(mysql.Open(cfg.MySQLDSN()), &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel), // GORM query logging
		TranslateError: true,                             // Unique violations become gorm.ErrDuplicatedKey
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}
