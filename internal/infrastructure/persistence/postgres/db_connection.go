// Package postgres implements the repository interfaces on PostgreSQL via
// gorm. Repository tests run the same implementations against sqlite.
package postgres

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/skystack/backoffice/internal/config"
	"github.com/skystack/backoffice/internal/domain/models"
	"github.com/skystack/backoffice/pkg/logger"
)

// gormConfig is the configuration every connection runs with. TranslateError
// turns driver-specific failures into gorm sentinel errors; the repositories
// depend on gorm.ErrDuplicatedKey to surface conflicts.
func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	}
}

// NewDBConnection opens a pooled PostgreSQL connection and migrates the
// schema.
func NewDBConnection(cfg *config.DatabaseConfig, log logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig())
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("acquiring connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	log.Info(context.Background(), "database connection established",
		logger.String("host", cfg.Host),
		logger.String("database", cfg.Database),
	)
	return db, nil
}

// Migrate creates or updates the schema for all domain models.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.SubscriptionPlan{},
		&models.SupportTicket{},
		&models.TicketMessage{},
		&models.Invoice{},
		&models.Backup{},
		&models.Admin{},
	); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}
