package models

import "time"

type PrescriptionCategory string

const (
	CategoryRecovery PrescriptionCategory = "recovery"
	CategorySocial   PrescriptionCategory = "social"
)

type AiPrescription struct {
	ID                 uint                 `gorm:"primaryKey" json:"id"`
	RecordID           uint                 `gorm:"not null;uniqueIndex" json:"record_id"`
	Category           PrescriptionCategory `gorm:"not null" json:"category"`
	RecommendationText string               `gorm:"not null" json:"recommendation_text"`
	JournalExplain     string               `json:"journal_explain,omitempty"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}
