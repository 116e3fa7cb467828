package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/shim/internal/models"
)

const (
	minReportLevel = 1
	maxReportLevel = 5
)

var acceptedTransportInputs = map[string]bool{
	"subway": true,
	"bus":    true,
	"car":    true,
	"walk":   true,
	"bike":   true,
	"none":   true,
}

type RecordInput struct {
	EmotionLevel      int
	ConversationLevel int
	MeetingCount      int
	TransportMode     string
	// CongestionLevel is nil when not reported.
	CongestionLevel *int
	Location        string
	Journal         string
}

func ValidateRecordInput(input RecordInput) error {
	if !levelInRange(input.EmotionLevel) {
		return fmt.Errorf("%w: emotion_level must be between 1 and 5", ErrInvalidRecordInput)
	}
	if !levelInRange(input.ConversationLevel) {
		return fmt.Errorf("%w: conversation_level must be between 1 and 5", ErrInvalidRecordInput)
	}
	if input.MeetingCount < 0 {
		return fmt.Errorf("%w: meeting_count must not be negative", ErrInvalidRecordInput)
	}
	if input.CongestionLevel != nil && !levelInRange(*input.CongestionLevel) {
		return fmt.Errorf("%w: congestion_level must be between 1 and 5", ErrInvalidRecordInput)
	}
	if strings.TrimSpace(input.Location) == "" {
		return fmt.Errorf("%w: location is required", ErrInvalidRecordInput)
	}
	mode := strings.ToLower(strings.TrimSpace(input.TransportMode))
	if mode != "" && !acceptedTransportInputs[mode] {
		return fmt.Errorf("%w: unsupported transport_mode %q", ErrInvalidRecordInput, input.TransportMode)
	}
	return nil
}

func (input RecordInput) congestion() int {
	if input.CongestionLevel == nil {
		return models.DefaultCongestionLevel
	}
	return *input.CongestionLevel
}

func (input RecordInput) selfReport() SelfReport {
	return SelfReport{
		EmotionLevel:      input.EmotionLevel,
		ConversationLevel: input.ConversationLevel,
		MeetingCount:      input.MeetingCount,
		CongestionLevel:   input.CongestionLevel,
	}
}

func levelInRange(level int) bool {
	return level >= minReportLevel && level <= maxReportLevel
}
