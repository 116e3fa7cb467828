package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/services"
)

const timestampLayout = "2006-01-02T15:04:05Z"

type recordPayload struct {
	EmotionLevel      *int   `json:"emotion_level"`
	ConversationLevel *int   `json:"conversation_level"`
	MeetingCount      *int   `json:"meeting_count"`
	TransportMode     string `json:"transport_mode"`
	CongestionLevel   *int   `json:"congestion_level"`
	Location          string `json:"location"`
	Journal           string `json:"journal"`
}

func (payload recordPayload) toInput() (services.RecordInput, error) {
	switch {
	case payload.EmotionLevel == nil:
		return services.RecordInput{}, errors.New("emotion_level is required")
	case payload.ConversationLevel == nil:
		return services.RecordInput{}, errors.New("conversation_level is required")
	case payload.MeetingCount == nil:
		return services.RecordInput{}, errors.New("meeting_count is required")
	}

	return services.RecordInput{
		EmotionLevel:      *payload.EmotionLevel,
		ConversationLevel: *payload.ConversationLevel,
		MeetingCount:      *payload.MeetingCount,
		TransportMode:     payload.TransportMode,
		CongestionLevel:   payload.CongestionLevel,
		Location:          payload.Location,
		Journal:           payload.Journal,
	}, nil
}

type prescriptionResponse struct {
	ID                 uint   `json:"id"`
	Category           string `json:"category"`
	RecommendationText string `json:"recommendation_text"`
	JournalExplain     string `json:"journal_explain"`
}

type weatherResponse struct {
	ID              uint    `json:"id"`
	Location        string  `json:"location"`
	ObservedAt      string  `json:"observed_at"`
	Condition       string  `json:"condition"`
	Temperature     float64 `json:"temperature"`
	PM10            int     `json:"pm10"`
	PM25            int     `json:"pm25"`
	AirQualityIndex int     `json:"air_quality_index"`
}

type recordResponse struct {
	RecordID          uint                  `json:"record_id"`
	UserID            uint                  `json:"user_id"`
	RecordDate        string                `json:"record_date"`
	TimePeriod        string                `json:"time_period"`
	EmotionLevel      int                   `json:"emotion_level"`
	ConversationLevel int                   `json:"conversation_level"`
	MeetingCount      int                   `json:"meeting_count"`
	TransportMode     string                `json:"transport_mode"`
	CongestionLevel   int                   `json:"congestion_level"`
	Location          string                `json:"location"`
	Journal           string                `json:"journal"`
	EnergyScore       float64               `json:"energy_score"`
	EnergyLevel       string                `json:"energy_level"`
	CreatedAt         string                `json:"created_at"`
	UpdatedAt         string                `json:"updated_at"`
	AiPrescription    *prescriptionResponse `json:"ai_prescription"`
	WeatherLog        *weatherResponse      `json:"weather_log"`
}

func newRecordResponse(result services.RecordResult) recordResponse {
	record := result.Record
	response := recordResponse{
		RecordID:          record.ID,
		UserID:            record.UserID,
		RecordDate:        services.FormatCalendarDay(record.RecordDate),
		TimePeriod:        string(record.TimePeriod),
		EmotionLevel:      record.EmotionLevel,
		ConversationLevel: record.ConversationLevel,
		MeetingCount:      record.MeetingCount,
		TransportMode:     string(record.TransportMode),
		CongestionLevel:   record.CongestionLevel,
		Location:          record.Location,
		Journal:           record.Journal,
		EnergyScore:       record.EnergyScore,
		EnergyLevel:       string(record.EnergyLevel),
		CreatedAt:         formatTimestamp(record.CreatedAt),
		UpdatedAt:         formatTimestamp(record.UpdatedAt),
	}
	if result.Prescription != nil {
		response.AiPrescription = &prescriptionResponse{
			ID:                 result.Prescription.ID,
			Category:           string(result.Prescription.Category),
			RecommendationText: result.Prescription.RecommendationText,
			JournalExplain:     result.Prescription.JournalExplain,
		}
	}
	if result.Weather != nil {
		weather := newWeatherResponse(*result.Weather)
		response.WeatherLog = &weather
	}
	return response
}

func newWeatherResponse(entry models.WeatherLog) weatherResponse {
	return weatherResponse{
		ID:              entry.ID,
		Location:        entry.Location,
		ObservedAt:      formatTimestamp(entry.ObservedAt),
		Condition:       string(entry.Condition),
		Temperature:     entry.Temperature,
		PM10:            entry.PM10,
		PM25:            entry.PM25,
		AirQualityIndex: entry.AirQualityIndex,
	}
}

func formatTimestamp(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.UTC().Format(timestampLayout)
}
