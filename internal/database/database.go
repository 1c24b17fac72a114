package database

import (
	"fmt"
	"log/slog"

	"boardshelf/backend/internal/config"
	"boardshelf/backend/internal/logging"
	"boardshelf/backend/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the database selected by cfg.
func Open(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DatabaseDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL)
	case "sqlite":
		dialector = sqlite.Open(cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logging.Gorm(logger),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.DatabaseDriver == "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// SQLite has a single writer, and a :memory: database only exists
		// on the connection that created it.
		sqlDB.SetMaxOpenConns(1)
	}

	logger.Info("database connection established", slog.String("driver", cfg.DatabaseDriver))
	return db, nil
}

// Migrate creates or updates every table the catalogue uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Household{},
		&models.User{},
		&models.Category{},
		&models.Game{},
		&models.Rating{},
		&models.PendingGame{},
	)
}

// SeedCategories inserts the vocabulary entries that do not exist yet.
func SeedCategories(db *gorm.DB, names []string) error {
	for _, name := range names {
		var cat models.Category
		if err := db.Where(models.Category{Name: name}).FirstOrCreate(&cat).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}
	return nil
}

// Setup opens the database, migrates it and seeds the category vocabulary.
func Setup(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	db, err := Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := SeedCategories(db, cfg.Categories()); err != nil {
		return nil, err
	}
	logger.Info("database migrated successfully")
	return db, nil
}
