package db

import (
	"fmt"

	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenPostgres connects through pgx and reconciles the schema from the model tags.
// The embedded migrations are SQLite dialect and are not applied here.
func OpenPostgres(dsn string) (*gorm.DB, error) {
	database, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         newGormLogger(false),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := database.AutoMigrate(
		&models.User{},
		&models.WeatherLog{},
		&models.DailyRecord{},
		&models.AiPrescription{},
	); err != nil {
		return nil, fmt.Errorf("auto migrate postgres: %w", err)
	}

	return database, nil
}
