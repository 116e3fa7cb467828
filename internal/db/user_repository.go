package db

import (
	"time"

	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindActiveByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.Where("id = ? AND is_active = ?", userID, true).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) ExistsByName(name string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).Where("name = ?", name).Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return translateWriteError(repo.database.Create(user).Error)
}

func (repo *UserRepository) UpdateName(userID uint, name string) error {
	return translateWriteError(repo.database.Model(&models.User{}).Where("id = ?", userID).Update("name", name).Error)
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) UpdateLastLogin(userID uint, at time.Time) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("last_login", at).Error
}

// DeleteAccountAndRelatedData removes the user with every record and prescription it owns.
// Weather observations are kept; their record links go away with the records.
func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		ownedRecords := tx.Model(&models.DailyRecord{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("record_id IN (?)", ownedRecords).Delete(&models.AiPrescription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}
