package models

import (
	"strings"
	"time"
)

type TransportMode string

const (
	TransportWalk   TransportMode = "walk"
	TransportSubway TransportMode = "subway"
	TransportBus    TransportMode = "bus"
)

// ParseTransportMode maps client input onto the three scored modes.
// An unset value means subway; anything unrecognized counts as walking.
func ParseTransportMode(raw string) TransportMode {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return TransportSubway
	case string(TransportSubway):
		return TransportSubway
	case string(TransportBus):
		return TransportBus
	default:
		return TransportWalk
	}
}

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "LOW"
	EnergyMedium EnergyLevel = "MEDIUM"
	EnergyHigh   EnergyLevel = "HIGH"
)

type TimePeriod string

const (
	TimeMorning   TimePeriod = "MORNING"
	TimeAfternoon TimePeriod = "AFTERNOON"
	TimeEvening   TimePeriod = "EVENING"
	TimeNight     TimePeriod = "NIGHT"
)

const DefaultCongestionLevel = 3

type DailyRecord struct {
	ID                uint          `gorm:"primaryKey" json:"record_id"`
	UserID            uint          `gorm:"not null;uniqueIndex:uidx_daily_records_user_date" json:"user_id"`
	RecordDate        time.Time     `gorm:"type:date;not null;uniqueIndex:uidx_daily_records_user_date" json:"record_date"`
	TimePeriod        TimePeriod    `gorm:"not null" json:"time_period"`
	EmotionLevel      int           `gorm:"not null" json:"emotion_level"`
	ConversationLevel int           `gorm:"not null" json:"conversation_level"`
	MeetingCount      int           `gorm:"not null;default:0" json:"meeting_count"`
	TransportMode     TransportMode `gorm:"not null" json:"transport_mode"`
	CongestionLevel   int           `gorm:"not null;default:3" json:"congestion_level"`
	Location          string        `json:"location"`
	Journal           string        `json:"journal,omitempty"`
	EnergyScore       float64       `gorm:"not null" json:"energy_score"`
	EnergyLevel       EnergyLevel   `gorm:"not null" json:"energy_level"`
	WeatherLogID      *uint         `gorm:"index" json:"weather_log_id,omitempty"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}
