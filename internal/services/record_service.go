package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/shim/internal/logger"
	"github.com/terraincognita07/shim/internal/models"
	"gorm.io/gorm"
)

type RecordUserReader interface {
	FindActiveByID(userID uint) (models.User, error)
}

type RecordRepository interface {
	FindByID(recordID uint) (models.DailyRecord, bool, error)
	ExistsByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (bool, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error)
	SaveEnriched(record *models.DailyRecord, weather *models.WeatherLog, prescription *models.AiPrescription) error
	DeleteWithPrescription(recordID uint) error
}

type RecordPrescriptionReader interface {
	FindByRecordID(recordID uint) (models.AiPrescription, bool, error)
}

type RecordWeatherReader interface {
	FindByID(weatherLogID uint) (models.WeatherLog, bool, error)
}

type WeatherFetcher interface {
	Fetch(ctx context.Context, location string) models.WeatherLog
}

type RecordPrescriber interface {
	Compose(ctx context.Context, record models.DailyRecord, weather *models.WeatherLog) PrescriptionDraft
	Generate(ctx context.Context, record models.DailyRecord, weather *models.WeatherLog, existing *models.AiPrescription) (models.AiPrescription, error)
}

// RecordResult is a record with its prescription and weather snapshot, either of which may be missing on reads.
type RecordResult struct {
	Record       models.DailyRecord
	Prescription *models.AiPrescription
	Weather      *models.WeatherLog
}

type RecordService struct {
	users         RecordUserReader
	records       RecordRepository
	prescriptions RecordPrescriptionReader
	weatherLogs   RecordWeatherReader
	weather       WeatherFetcher
	prescriber    RecordPrescriber
	location      *time.Location
	log           *logger.Logger
	now           func() time.Time
}

type RecordServiceDeps struct {
	Users         RecordUserReader
	Records       RecordRepository
	Prescriptions RecordPrescriptionReader
	WeatherLogs   RecordWeatherReader
	Weather       WeatherFetcher
	Prescriber    RecordPrescriber
	Location      *time.Location
	Logger        *logger.Logger
}

func NewRecordService(deps RecordServiceDeps) *RecordService {
	location := deps.Location
	if location == nil {
		location = time.UTC
	}
	log := deps.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &RecordService{
		users:         deps.Users,
		records:       deps.Records,
		prescriptions: deps.Prescriptions,
		weatherLogs:   deps.WeatherLogs,
		weather:       deps.Weather,
		prescriber:    deps.Prescriber,
		location:      location,
		log:           log,
		now:           time.Now,
	}
}

// CreateRecord stores today's report for the user. Weather, score and prescription are
// resolved first and then written together with the record in one transaction.
func (service *RecordService) CreateRecord(ctx context.Context, userID uint, input RecordInput) (RecordResult, error) {
	if err := service.requireActiveUser(userID); err != nil {
		return RecordResult{}, err
	}
	if err := ValidateRecordInput(input); err != nil {
		return RecordResult{}, err
	}

	now := service.now()
	dayStart, dayEnd := CalendarDayRange(now, service.location)
	exists, err := service.records.ExistsByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return RecordResult{}, fmt.Errorf("check existing record: %w", err)
	}
	if exists {
		return RecordResult{}, ErrRecordAlreadyExists
	}

	record := models.DailyRecord{
		UserID:     userID,
		RecordDate: dayStart,
		TimePeriod: TimePeriodAt(now, service.location),
	}
	return service.enrichAndSave(ctx, record, input, nil)
}

// UpdateRecord re-scores an owned record from new input. The record keeps its date and
// time period; a fresh weather snapshot is always taken.
func (service *RecordService) UpdateRecord(ctx context.Context, userID uint, recordID uint, input RecordInput) (RecordResult, error) {
	record, err := service.loadOwnedRecord(userID, recordID)
	if err != nil {
		return RecordResult{}, err
	}
	if err := ValidateRecordInput(input); err != nil {
		return RecordResult{}, err
	}

	existing, found, err := service.prescriptions.FindByRecordID(record.ID)
	if err != nil {
		return RecordResult{}, fmt.Errorf("load prescription: %w", err)
	}
	var current *models.AiPrescription
	if found {
		current = &existing
	}
	return service.enrichAndSave(ctx, record, input, current)
}

func (service *RecordService) DeleteRecord(_ context.Context, userID uint, recordID uint) error {
	record, err := service.loadOwnedRecord(userID, recordID)
	if err != nil {
		return err
	}
	if err := service.records.DeleteWithPrescription(record.ID); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	service.log.Info("record deleted", "record_id", record.ID, "user_id", userID)
	return nil
}

func (service *RecordService) GetRecord(_ context.Context, userID uint, recordID uint) (RecordResult, error) {
	record, err := service.loadOwnedRecord(userID, recordID)
	if err != nil {
		return RecordResult{}, err
	}
	return service.assemble(record)
}

// RegeneratePrescription asks for fresh advice on a stored record using its own
// weather snapshot. The record and its score are left untouched.
func (service *RecordService) RegeneratePrescription(ctx context.Context, userID uint, recordID uint) (RecordResult, error) {
	record, err := service.loadOwnedRecord(userID, recordID)
	if err != nil {
		return RecordResult{}, err
	}
	result, err := service.assemble(record)
	if err != nil {
		return RecordResult{}, err
	}

	prescription, err := service.prescriber.Generate(ctx, record, result.Weather, result.Prescription)
	if err != nil {
		return RecordResult{}, fmt.Errorf("regenerate prescription: %w", err)
	}
	result.Prescription = &prescription
	service.log.Info("prescription regenerated", "record_id", record.ID, "user_id", userID, "prescription_id", prescription.ID)
	return result, nil
}

// ListRecords returns the user's records between from and to inclusive; nil bounds are open.
func (service *RecordService) ListRecords(_ context.Context, userID uint, from *time.Time, to *time.Time) ([]RecordResult, error) {
	if err := service.requireActiveUser(userID); err != nil {
		return nil, err
	}

	var fromStart, toEnd *time.Time
	if from != nil {
		start := CalendarDay(*from, time.UTC)
		fromStart = &start
	}
	if to != nil {
		end := CalendarDay(*to, time.UTC).AddDate(0, 0, 1)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, fmt.Errorf("%w: from must not be after to", ErrInvalidRecordInput)
	}

	records, err := service.records.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	results := make([]RecordResult, 0, len(records))
	for _, record := range records {
		result, err := service.assemble(record)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (service *RecordService) enrichAndSave(ctx context.Context, record models.DailyRecord, input RecordInput, existing *models.AiPrescription) (RecordResult, error) {
	location := strings.TrimSpace(input.Location)
	weather := service.weather.Fetch(ctx, location)

	mode := models.ParseTransportMode(input.TransportMode)
	score := ComputeEnergyScore(input.selfReport(), mode, &weather)

	record.EmotionLevel = input.EmotionLevel
	record.ConversationLevel = input.ConversationLevel
	record.MeetingCount = input.MeetingCount
	record.TransportMode = mode
	record.CongestionLevel = input.congestion()
	record.Location = location
	record.Journal = input.Journal
	record.EnergyScore = score.Score
	record.EnergyLevel = score.Level

	draft := service.prescriber.Compose(ctx, record, &weather)
	prescription := ApplyDraft(record, draft, existing)

	if err := service.records.SaveEnriched(&record, &weather, &prescription); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return RecordResult{}, ErrRecordAlreadyExists
		}
		return RecordResult{}, fmt.Errorf("save record: %w", err)
	}

	service.log.Info("record saved",
		"record_id", record.ID,
		"user_id", record.UserID,
		"energy_score", record.EnergyScore,
		"energy_level", record.EnergyLevel,
		"templated_fields", draft.Templated,
	)
	return RecordResult{Record: record, Prescription: &prescription, Weather: &weather}, nil
}

func (service *RecordService) assemble(record models.DailyRecord) (RecordResult, error) {
	result := RecordResult{Record: record}

	prescription, found, err := service.prescriptions.FindByRecordID(record.ID)
	if err != nil {
		return RecordResult{}, fmt.Errorf("load prescription: %w", err)
	}
	if found {
		result.Prescription = &prescription
	}

	if record.WeatherLogID != nil {
		weather, found, err := service.weatherLogs.FindByID(*record.WeatherLogID)
		if err != nil {
			return RecordResult{}, fmt.Errorf("load weather log: %w", err)
		}
		if found {
			result.Weather = &weather
		}
	}
	return result, nil
}

func (service *RecordService) requireActiveUser(userID uint) error {
	if _, err := service.users.FindActiveByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("load user: %w", err)
	}
	return nil
}

// loadOwnedRecord distinguishes a missing record from one owned by someone else.
func (service *RecordService) loadOwnedRecord(userID uint, recordID uint) (models.DailyRecord, error) {
	if err := service.requireActiveUser(userID); err != nil {
		return models.DailyRecord{}, err
	}

	record, found, err := service.records.FindByID(recordID)
	if err != nil {
		return models.DailyRecord{}, fmt.Errorf("load record: %w", err)
	}
	if !found {
		return models.DailyRecord{}, ErrRecordNotFound
	}
	if record.UserID != userID {
		return models.DailyRecord{}, ErrRecordForbidden
	}
	return record, nil
}
