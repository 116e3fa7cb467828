package db

import (
	"time"

	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

type DailyRecordRepository struct {
	database *gorm.DB
}

func NewDailyRecordRepository(database *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{database: database}
}

func (repo *DailyRecordRepository) FindByID(recordID uint) (models.DailyRecord, bool, error) {
	record := models.DailyRecord{}
	result := repo.database.Where("id = ?", recordID).Limit(1).Find(&record)
	if result.Error != nil {
		return models.DailyRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DailyRecordRepository) ExistsByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.DailyRecord{}).
		Where("user_id = ? AND record_date >= ? AND record_date < ?", userID, dayStart, dayEnd).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *DailyRecordRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error) {
	query := repo.database.Model(&models.DailyRecord{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("record_date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("record_date < ?", *toEnd)
	}

	records := make([]models.DailyRecord, 0)
	if err := query.Order("record_date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// SaveEnriched writes the observation, the record and the prescription in one transaction.
// Rows with a zero ID are inserted, the rest are updated in place.
func (repo *DailyRecordRepository) SaveEnriched(record *models.DailyRecord, weather *models.WeatherLog, prescription *models.AiPrescription) error {
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(weather).Error; err != nil {
			return err
		}

		weatherLogID := weather.ID
		record.WeatherLogID = &weatherLogID
		if record.ID == 0 {
			if err := tx.Create(record).Error; err != nil {
				return err
			}
		} else if err := tx.Save(record).Error; err != nil {
			return err
		}

		prescription.RecordID = record.ID
		if prescription.ID == 0 {
			return tx.Create(prescription).Error
		}
		return tx.Save(prescription).Error
	})
	return translateWriteError(err)
}

func (repo *DailyRecordRepository) DeleteWithPrescription(recordID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("record_id = ?", recordID).Delete(&models.AiPrescription{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.DailyRecord{}, recordID).Error
	})
}
