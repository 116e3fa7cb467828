package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/shim/internal/models"
	"github.com/terraincognita07/shim/internal/services"
)

type scoreOptions struct {
	emotion      int
	conversation int
	meetings     int
	transport    string
	congestion   int
	noWeather    bool
	temperature  float64
	condition    string
	pm10         int
	pm25         int
}

type scoreOutput struct {
	EnergyScore   float64 `json:"energy_score"`
	EnergyLevel   string  `json:"energy_level"`
	Category      string  `json:"category"`
	TransportMode string  `json:"transport_mode"`
	SocialScore   float64 `json:"social_score"`
	MovementScore float64 `json:"movement_score"`
	WeatherScore  float64 `json:"weather_score"`
}

var knownConditions = map[string]models.WeatherCondition{
	string(models.ConditionClear):  models.ConditionClear,
	string(models.ConditionClouds): models.ConditionClouds,
	string(models.ConditionRain):   models.ConditionRain,
	string(models.ConditionSnow):   models.ConditionSnow,
	string(models.ConditionOther):  models.ConditionOther,
}

func newScoreCmd() *cobra.Command {
	options := scoreOptions{}
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Compute an energy score offline and print it as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runScore(cmd, options)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&options.emotion, "emotion", 3, "emotion level 1-5")
	flags.IntVar(&options.conversation, "conversation", 3, "conversation level 1-5")
	flags.IntVar(&options.meetings, "meetings", 0, "number of meetings")
	flags.StringVar(&options.transport, "transport", "subway", "subway|bus|car|walk|bike|none")
	flags.IntVar(&options.congestion, "congestion", models.DefaultCongestionLevel, "congestion level 1-5")
	flags.BoolVar(&options.noWeather, "no-weather", false, "score without a weather snapshot")
	flags.Float64Var(&options.temperature, "temperature", services.DefaultTemperature, "temperature in celsius")
	flags.StringVar(&options.condition, "condition", string(models.ConditionClear), "clear|clouds|rain|snow|other")
	flags.IntVar(&options.pm10, "pm10", services.DefaultPM10, "PM10 in µg/m³")
	flags.IntVar(&options.pm25, "pm25", services.DefaultPM25, "PM2.5 in µg/m³")
	return cmd
}

func runScore(cmd *cobra.Command, options scoreOptions) error {
	congestion := options.congestion
	input := services.RecordInput{
		EmotionLevel:      options.emotion,
		ConversationLevel: options.conversation,
		MeetingCount:      options.meetings,
		TransportMode:     options.transport,
		CongestionLevel:   &congestion,
		Location:          services.DefaultCity,
	}
	if err := services.ValidateRecordInput(input); err != nil {
		return err
	}

	var weather *models.WeatherLog
	if !options.noWeather {
		condition, ok := knownConditions[strings.ToLower(strings.TrimSpace(options.condition))]
		if !ok {
			return fmt.Errorf("unknown weather condition %q", options.condition)
		}
		weather = &models.WeatherLog{
			Temperature: options.temperature,
			Condition:   condition,
			PM10:        options.pm10,
			PM25:        options.pm25,
		}
	}

	mode := models.ParseTransportMode(options.transport)
	score := services.ComputeEnergyScore(services.SelfReport{
		EmotionLevel:      options.emotion,
		ConversationLevel: options.conversation,
		MeetingCount:      options.meetings,
		CongestionLevel:   &congestion,
	}, mode, weather)

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(scoreOutput{
		EnergyScore:   score.Score,
		EnergyLevel:   string(score.Level),
		Category:      string(services.CategoryForLevel(score.Level)),
		TransportMode: string(mode),
		SocialScore:   score.Social,
		MovementScore: score.Movement,
		WeatherScore:  score.Weather,
	})
}
