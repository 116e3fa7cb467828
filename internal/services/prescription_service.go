package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/terraincognita07/shim/internal/logger"
	"github.com/terraincognita07/shim/internal/models"
)

type LanguageModelClient interface {
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}

type PrescriptionWriter interface {
	Create(prescription *models.AiPrescription) error
	Save(prescription *models.AiPrescription) error
}

type PrescriptionDraft struct {
	Category           models.PrescriptionCategory
	RecommendationText string
	JournalExplain     string
	// Templated counts the fields that fell back to fixed text.
	Templated int
}

type PrescriptionService struct {
	model         LanguageModelClient
	prescriptions PrescriptionWriter
	log           *logger.Logger
}

func NewPrescriptionService(model LanguageModelClient, prescriptions PrescriptionWriter, log *logger.Logger) *PrescriptionService {
	if log == nil {
		log = logger.NewNop()
	}
	return &PrescriptionService{model: model, prescriptions: prescriptions, log: log}
}

// Compose asks the model for both texts and fills whatever it cannot provide from
// templates keyed on the record. It always returns usable text.
func (service *PrescriptionService) Compose(ctx context.Context, record models.DailyRecord, weather *models.WeatherLog) PrescriptionDraft {
	draft := PrescriptionDraft{Category: CategoryForLevel(record.EnergyLevel)}

	reply, err := service.complete(ctx, record, weather)
	if err != nil {
		service.log.Error("prescription model call failed, using templates", "record_id", record.ID, "error", err)
	} else {
		if value, ok := extractReplyField(reply, fieldJournalExplain); ok {
			draft.JournalExplain = value
		}
		if value, ok := extractReplyField(reply, fieldRecommendationText); ok {
			draft.RecommendationText = value
		}
	}

	if draft.JournalExplain == "" {
		draft.JournalExplain = templateJournalExplain(record.Journal, weather, record.EnergyLevel)
		draft.Templated++
	}
	if draft.RecommendationText == "" {
		draft.RecommendationText = templateRecommendation(draft.Category, record.EnergyLevel)
		draft.Templated++
	}
	if err == nil && draft.Templated > 0 {
		service.log.Warn("prescription reply incomplete, templated missing fields", "record_id", record.ID, "templated", draft.Templated)
	}
	return draft
}

// Generate composes a draft and persists it, updating existing in place when given.
func (service *PrescriptionService) Generate(ctx context.Context, record models.DailyRecord, weather *models.WeatherLog, existing *models.AiPrescription) (models.AiPrescription, error) {
	prescription := ApplyDraft(record, service.Compose(ctx, record, weather), existing)

	var err error
	if prescription.ID == 0 {
		err = service.prescriptions.Create(&prescription)
	} else {
		err = service.prescriptions.Save(&prescription)
	}
	if err != nil {
		return models.AiPrescription{}, fmt.Errorf("persist prescription: %w", err)
	}
	return prescription, nil
}

// ApplyDraft returns the prescription row to persist for record. An existing row
// keeps its identity and only its category and texts change.
func ApplyDraft(record models.DailyRecord, draft PrescriptionDraft, existing *models.AiPrescription) models.AiPrescription {
	var prescription models.AiPrescription
	if existing != nil {
		prescription = *existing
	}
	prescription.RecordID = record.ID
	prescription.Category = draft.Category
	prescription.RecommendationText = draft.RecommendationText
	prescription.JournalExplain = draft.JournalExplain
	return prescription
}

func (service *PrescriptionService) complete(ctx context.Context, record models.DailyRecord, weather *models.WeatherLog) (string, error) {
	if service.model == nil {
		return "", errProviderNotConfigured
	}
	reply, err := service.model.Complete(ctx, prescriptionSystemPrompt, buildPrescriptionUserPrompt(record, weather))
	if err != nil {
		return "", err
	}
	if reply == "" {
		return "", errors.New("empty model reply")
	}
	return reply, nil
}
