package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

const (
	StatsPeriodWeek  = "week"
	StatsPeriodMonth = "month"

	maxUserNameLength = 30
)

var (
	ErrNameTaken       = errors.New("name already taken")
	ErrInvalidUserName = errors.New("invalid user name")
	ErrInvalidPeriod   = errors.New("invalid stats period")
)

type UserRepository interface {
	FindActiveByID(userID uint) (models.User, error)
	ExistsByName(name string) (bool, error)
	UpdateName(userID uint, name string) error
	DeleteAccountAndRelatedData(userID uint) error
}

type UserRecordLister interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error)
}

type EnergyTrendPoint struct {
	RecordID    uint
	RecordDate  time.Time
	EnergyScore float64
}

type EnergyStats struct {
	UserID             uint
	Period             string
	StartDate          time.Time
	EndDate            time.Time
	AverageEnergyScore float64
	RecordCount        int
	Trend              []EnergyTrendPoint
}

type UserService struct {
	users   UserRepository
	records UserRecordLister
}

func NewUserService(users UserRepository, records UserRecordLister) *UserService {
	return &UserService{users: users, records: records}
}

func (service *UserService) GetProfile(userID uint) (models.User, error) {
	user, err := service.users.FindActiveByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

func (service *UserService) UpdateName(userID uint, rawName string) (models.User, error) {
	name := strings.TrimSpace(rawName)
	if name == "" || utf8.RuneCountInString(name) > maxUserNameLength {
		return models.User{}, ErrInvalidUserName
	}

	user, err := service.GetProfile(userID)
	if err != nil {
		return models.User{}, err
	}
	if user.Name == name {
		return user, nil
	}

	taken, err := service.users.ExistsByName(name)
	if err != nil {
		return models.User{}, fmt.Errorf("check name: %w", err)
	}
	if taken {
		return models.User{}, ErrNameTaken
	}

	if err := service.users.UpdateName(userID, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrNameTaken
		}
		return models.User{}, fmt.Errorf("update name: %w", err)
	}
	return service.GetProfile(userID)
}

// DeleteAccount removes the user together with every record and prescription it owns.
func (service *UserService) DeleteAccount(userID uint) error {
	if _, err := service.GetProfile(userID); err != nil {
		return err
	}
	if err := service.users.DeleteAccountAndRelatedData(userID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	return nil
}

// EnergyStats summarizes the Monday-Sunday week or calendar month containing day.
func (service *UserService) EnergyStats(userID uint, period string, day time.Time) (EnergyStats, error) {
	if _, err := service.GetProfile(userID); err != nil {
		return EnergyStats{}, err
	}

	start, end, err := StatsRange(period, day)
	if err != nil {
		return EnergyStats{}, err
	}
	toEnd := end.AddDate(0, 0, 1)
	records, err := service.records.ListByUserRange(userID, &start, &toEnd)
	if err != nil {
		return EnergyStats{}, fmt.Errorf("list records: %w", err)
	}

	stats := EnergyStats{
		UserID:      userID,
		Period:      period,
		StartDate:   start,
		EndDate:     end,
		RecordCount: len(records),
		Trend:       make([]EnergyTrendPoint, 0, len(records)),
	}
	total := 0.0
	for _, record := range records {
		total += record.EnergyScore
		stats.Trend = append(stats.Trend, EnergyTrendPoint{
			RecordID:    record.ID,
			RecordDate:  record.RecordDate,
			EnergyScore: record.EnergyScore,
		})
	}
	if len(records) > 0 {
		stats.AverageEnergyScore = roundHalfUp(total/float64(len(records)), 2)
	}
	return stats, nil
}

// StatsRange returns the first and last calendar day of the period containing day.
func StatsRange(period string, day time.Time) (time.Time, time.Time, error) {
	date := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	switch period {
	case StatsPeriodWeek:
		offset := (int(date.Weekday()) + 6) % 7
		start := date.AddDate(0, 0, -offset)
		return start, start.AddDate(0, 0, 6), nil
	case StatsPeriodMonth:
		start := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1), nil
	default:
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
}
