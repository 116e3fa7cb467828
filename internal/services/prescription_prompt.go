package services

import (
	"fmt"
	"strings"

	"github.com/terraincognita07/shim/internal/models"
)

const prescriptionSystemPrompt = "당신은 사용자의 하루를 분석하고 공감하며 조언을 제공하는 친근한 AI 어시스턴트입니다. " +
	"사용자의 일기 내용과 에너지 점수 계산에 사용된 데이터(날씨, 혼잡도 등)를 분석하여 " +
	"공감과 이해를 담은 설명과 추천을 제공해야 합니다. " +
	"응답은 반드시 JSON 형식으로 제공해야 하며, 다음과 같은 구조를 따라야 합니다: " +
	`{"journal_explain": "일기 내용과 에너지 점수 데이터를 분석한 설명", ` +
	`"recommendation_text": "추천 활동 설명"} ` +
	"journal_explain은 일기 내용과 날씨, 혼잡도 등 에너지 점수에 영향을 준 요소들을 자연스럽게 분석하여 공감하는 문장으로 작성하세요. " +
	"recommendation_text는 에너지 레벨에 맞는 활동을 구체적이고 실용적으로 추천하는 문장으로 작성하세요. " +
	"응답은 반드시 유효한 JSON 형식이어야 하며, 다른 설명 없이 JSON만 반환해야 합니다."

const unknownPromptValue = "unknown"

func buildPrescriptionUserPrompt(record models.DailyRecord, weather *models.WeatherLog) string {
	condition := unknownPromptValue
	temperature := unknownPromptValue
	if weather != nil {
		if weather.Condition != "" {
			condition = string(weather.Condition)
		}
		temperature = fmt.Sprintf("%.1f", weather.Temperature)
	}

	congestion := unknownPromptValue
	if record.CongestionLevel > 0 {
		congestion = fmt.Sprintf("%d", record.CongestionLevel)
	}
	transport := unknownPromptValue
	if record.TransportMode != "" {
		transport = string(record.TransportMode)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "일기 내용: %s\n", record.Journal)
	fmt.Fprintf(&prompt, "에너지 점수: %.2f\n", record.EnergyScore)
	fmt.Fprintf(&prompt, "에너지 레벨: %s\n", record.EnergyLevel)
	fmt.Fprintf(&prompt, "날씨 조건: %s\n", condition)
	fmt.Fprintf(&prompt, "온도: %s°C\n", temperature)
	fmt.Fprintf(&prompt, "혼잡도: %s\n", congestion)
	fmt.Fprintf(&prompt, "교통수단: %s\n", transport)
	fmt.Fprintf(&prompt, "감정 수준: %d\n", record.EmotionLevel)
	fmt.Fprintf(&prompt, "대화 수준: %d\n", record.ConversationLevel)
	fmt.Fprintf(&prompt, "만남 횟수: %d\n\n", record.MeetingCount)
	prompt.WriteString("위 정보를 바탕으로 journal_explain과 recommendation_text를 생성해주세요.")
	return prompt.String()
}
