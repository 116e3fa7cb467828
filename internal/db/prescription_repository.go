package db

import (
	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

type PrescriptionRepository struct {
	database *gorm.DB
}

func NewPrescriptionRepository(database *gorm.DB) *PrescriptionRepository {
	return &PrescriptionRepository{database: database}
}

func (repo *PrescriptionRepository) FindByRecordID(recordID uint) (models.AiPrescription, bool, error) {
	prescription := models.AiPrescription{}
	result := repo.database.Where("record_id = ?", recordID).Limit(1).Find(&prescription)
	if result.Error != nil {
		return models.AiPrescription{}, false, result.Error
	}
	return prescription, result.RowsAffected > 0, nil
}

func (repo *PrescriptionRepository) CountByRecordID(recordID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.AiPrescription{}).Where("record_id = ?", recordID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *PrescriptionRepository) Create(prescription *models.AiPrescription) error {
	return translateWriteError(repo.database.Create(prescription).Error)
}

func (repo *PrescriptionRepository) Save(prescription *models.AiPrescription) error {
	return translateWriteError(repo.database.Save(prescription).Error)
}
