package services

import (
	"strings"

	"github.com/terraincognita07/shim/internal/models"
)

var conditionPhrases = map[models.WeatherCondition]string{
	models.ConditionClear:  "맑은",
	models.ConditionClouds: "흐린",
	models.ConditionRain:   "비 오는",
	models.ConditionSnow:   "눈 오는",
	models.ConditionOther:  "변화무쌍한",
}

var levelPhrases = map[models.EnergyLevel]string{
	models.EnergyLow:    "에너지가 많이 소모된 하루였을 것 같아요.",
	models.EnergyMedium: "보통의 하루를 보내셨네요.",
	models.EnergyHigh:   "활기찬 하루를 보내셨네요!",
}

const (
	recoveryLowText     = "오늘은 충분한 휴식을 취하시고, 따뜻한 차 한 잔과 함께 편안한 시간을 보내세요."
	recoveryMediumText  = "가벼운 스트레칭이나 산책을 통해 몸과 마음을 이완시켜보세요."
	recoveryDefaultText = "적당한 휴식과 함께 내일을 위한 준비를 해보세요."
	socialText          = "에너지가 충만하시네요! 친구들과 만나거나 새로운 활동을 시도해보세요."
)

func templateJournalExplain(journal string, weather *models.WeatherLog, level models.EnergyLevel) string {
	var explain strings.Builder
	if strings.TrimSpace(journal) != "" {
		explain.WriteString("일기를 작성해주셨네요. ")
	}
	if weather != nil {
		phrase, ok := conditionPhrases[weather.Condition]
		if !ok {
			phrase = conditionPhrases[models.ConditionOther]
		}
		explain.WriteString("오늘 날씨가 " + phrase + " 날씨였네요. ")
	}

	levelPhrase, ok := levelPhrases[level]
	if !ok {
		levelPhrase = levelPhrases[models.EnergyHigh]
	}
	explain.WriteString(levelPhrase)
	return explain.String()
}

func templateRecommendation(category models.PrescriptionCategory, level models.EnergyLevel) string {
	if category != models.CategoryRecovery {
		return socialText
	}
	switch level {
	case models.EnergyLow:
		return recoveryLowText
	case models.EnergyMedium:
		return recoveryMediumText
	default:
		return recoveryDefaultText
	}
}
