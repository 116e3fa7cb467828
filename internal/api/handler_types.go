package api

import (
	"context"
	"time"

	"github.com/terraincognita07/shim/internal/logger"
	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/services"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type AuthService interface {
	Register(email string, password string, name string) (models.User, error)
	Login(email string, password string) (models.User, error)
	FindActiveByID(userID uint) (models.User, error)
}

type UserService interface {
	GetProfile(userID uint) (models.User, error)
	UpdateName(userID uint, name string) (models.User, error)
	DeleteAccount(userID uint) error
	EnergyStats(userID uint, period string, day time.Time) (services.EnergyStats, error)
}

type RecordService interface {
	CreateRecord(ctx context.Context, userID uint, input services.RecordInput) (services.RecordResult, error)
	UpdateRecord(ctx context.Context, userID uint, recordID uint, input services.RecordInput) (services.RecordResult, error)
	DeleteRecord(ctx context.Context, userID uint, recordID uint) error
	GetRecord(ctx context.Context, userID uint, recordID uint) (services.RecordResult, error)
	ListRecords(ctx context.Context, userID uint, from *time.Time, to *time.Time) ([]services.RecordResult, error)
	RegeneratePrescription(ctx context.Context, userID uint, recordID uint) (services.RecordResult, error)
}

type WeatherService interface {
	Enrich(ctx context.Context, location string) (models.WeatherLog, error)
}

type Handler struct {
	auth         AuthService
	users        UserService
	records      RecordService
	weather      WeatherService
	secretKey    []byte
	tokenTTL     time.Duration
	location     *time.Location
	log          *logger.Logger
	loginLimiter *attemptLimiter
	now          func() time.Time
}
