package services

import (
	"math"

	"github.com/terraincognita07/shim/internal/models"
)

const (
	socialWeight   = 0.4
	movementWeight = 0.3
	weatherWeight  = 0.3

	// DefaultWeatherScore applies when no snapshot is available.
	DefaultWeatherScore = 70.0

	lowEnergyCeiling    = 33.0
	mediumEnergyCeiling = 67.0
)

type SelfReport struct {
	EmotionLevel      int
	ConversationLevel int
	MeetingCount      int
	// CongestionLevel is nil when not reported.
	CongestionLevel *int
}

type EnergyScore struct {
	Score    float64
	Level    models.EnergyLevel
	Social   float64
	Movement float64
	Weather  float64
}

// ComputeEnergyScore combines the social, movement and weather sub-scores 40/30/30.
// The result is clamped to [0,100] and rounded half-up to two decimals.
func ComputeEnergyScore(report SelfReport, mode models.TransportMode, weather *models.WeatherLog) EnergyScore {
	social := SocialScore(report)
	movement := MovementScore(mode, report.CongestionLevel)
	weatherScore := WeatherScore(weather)

	score := roundHalfUp(clamp(socialWeight*social+movementWeight*movement+weatherWeight*weatherScore, 0, 100), 2)
	return EnergyScore{
		Score:    score,
		Level:    EnergyLevelForScore(score),
		Social:   social,
		Movement: movement,
		Weather:  weatherScore,
	}
}

func SocialScore(report SelfReport) float64 {
	emotion := 40 * float64(report.EmotionLevel) / 5
	conversation := 30 * float64(report.ConversationLevel) / 5
	meetings := math.Min(30, 10*float64(report.MeetingCount))
	return clamp(emotion+conversation+meetings, 0, 100)
}

// MovementScore defaults a missing congestion level to 3 and clamps a reported one to [1,5].
func MovementScore(mode models.TransportMode, congestionLevel *int) float64 {
	congestion := models.DefaultCongestionLevel
	if congestionLevel != nil {
		congestion = int(clamp(float64(*congestionLevel), 1, 5))
	}

	var base float64
	switch mode {
	case models.TransportWalk:
		base = 100
	case models.TransportSubway:
		base = 85
	case models.TransportBus:
		base = 80
	default:
		base = 100
	}
	return math.Max(0, base-5*float64(congestion-1))
}

func WeatherScore(weather *models.WeatherLog) float64 {
	if weather == nil {
		return DefaultWeatherScore
	}

	temperature := 33 * math.Exp(-0.03*math.Pow(weather.Temperature-21, 2))
	pm10Penalty := 13 * math.Max(0, float64(weather.PM10-30)/70)
	pm25Penalty := 20 * math.Max(0, float64(weather.PM25-15)/35)
	air := math.Max(0, 33-(pm10Penalty+pm25Penalty))

	return clamp(temperature+conditionScore(weather.Condition)+air, 0, 100)
}

func conditionScore(condition models.WeatherCondition) float64 {
	switch condition {
	case models.ConditionClear:
		return 33
	case models.ConditionClouds:
		return 25
	case models.ConditionRain:
		return 18
	case models.ConditionSnow:
		return 15
	default:
		return 25
	}
}

// EnergyLevelForScore bands the score; each boundary belongs to the upper band.
func EnergyLevelForScore(score float64) models.EnergyLevel {
	switch {
	case score < lowEnergyCeiling:
		return models.EnergyLow
	case score < mediumEnergyCeiling:
		return models.EnergyMedium
	default:
		return models.EnergyHigh
	}
}

func CategoryForLevel(level models.EnergyLevel) models.PrescriptionCategory {
	if level == models.EnergyHigh {
		return models.CategorySocial
	}
	return models.CategoryRecovery
}

func clamp(value float64, low float64, high float64) float64 {
	return math.Min(high, math.Max(low, value))
}

func roundHalfUp(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	scaled := value * scale
	// Absorb representation error such as 2.675*100 = 267.49999999999997.
	return math.Floor(scaled+0.5+1e-9) / scale
}
