package db

import "gorm.io/gorm"

type Repositories struct {
	Users         *UserRepository
	Records       *DailyRecordRepository
	WeatherLogs   *WeatherLogRepository
	Prescriptions *PrescriptionRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(database),
		Records:       NewDailyRecordRepository(database),
		WeatherLogs:   NewWeatherLogRepository(database),
		Prescriptions: NewPrescriptionRepository(database),
	}
}
