package db

import (
	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

type WeatherLogRepository struct {
	database *gorm.DB
}

func NewWeatherLogRepository(database *gorm.DB) *WeatherLogRepository {
	return &WeatherLogRepository{database: database}
}

func (repo *WeatherLogRepository) Create(entry *models.WeatherLog) error {
	return repo.database.Create(entry).Error
}

func (repo *WeatherLogRepository) FindByID(weatherLogID uint) (models.WeatherLog, bool, error) {
	entry := models.WeatherLog{}
	result := repo.database.Where("id = ?", weatherLogID).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.WeatherLog{}, false, result.Error
	}
	return entry, result.RowsAffected > 0, nil
}
