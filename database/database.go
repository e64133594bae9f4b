package database

import (
	"MysteryBox/internal/models"
	"fmt"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"log"
	"os"
)

var requiredEnv = [...]string{"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME"}

// SetupDatabase connects to Postgres using DB_* variables, read from .env when
// present, and migrates every model.
func SetupDatabase() (*gorm.DB, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	for _, name := range requiredEnv {
		if os.Getenv(name) == "" {
			return nil, fmt.Errorf("%s environment variable not set", name)
		}
	}
	if os.Getenv("DB_SSLMODE") == "" {
		_ = os.Setenv("DB_SSLMODE", "disable")
	}
	if os.Getenv("DB_TZ") == "" {
		_ = os.Setenv("DB_TZ", "UTC")
	}
	dsn := os.ExpandEnv("host=${DB_HOST} user=${DB_USER} password=${DB_PASSWORD} dbname=${DB_NAME} port=${DB_PORT} sslmode=${DB_SSLMODE} TimeZone=${DB_TZ}")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Box{},
		&models.BoxItem{},
		&models.RarityWeight{},
		&models.ProbabilityRecord{},
		&models.OwnedBoxInstance{},
		&models.OwnedItem{},
		&models.UnboxAuditRecord{},
		&models.Notification{},
		&models.CatalogStock{},
	)
}

func CloseDatabase(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		log.Printf("Could not get DB instance: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
	}
}
