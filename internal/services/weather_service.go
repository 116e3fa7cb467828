package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/shim/internal/logger"
	"github.com/terraincognita07/shim/internal/models"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultCity      = "서울특별시"
	MockLocationMark = "mock데이터 - "

	DefaultTemperature = 21.0
	DefaultPM10        = 30
	DefaultPM25        = 15
	DefaultAQI         = 50
)

// AirQualityReading fields are nil when the upstream has no measurement.
// The exact triple DefaultPM10/DefaultPM25/DefaultAQI is the provider's "unavailable" signal.
type AirQualityReading struct {
	PM10 *int
	PM25 *int
	AQI  *int
}

func (reading AirQualityReading) isUnavailableSentinel() bool {
	return reading.PM10 != nil && *reading.PM10 == DefaultPM10 &&
		reading.PM25 != nil && *reading.PM25 == DefaultPM25 &&
		reading.AQI != nil && *reading.AQI == DefaultAQI
}

type WeatherReading struct {
	Temperature       *float64
	SkyCode           int
	PrecipitationType int
}

type AirQualityProvider interface {
	AirQuality(ctx context.Context, place string) (AirQualityReading, error)
}

type WeatherConditionProvider interface {
	Conditions(ctx context.Context, x int, y int) (WeatherReading, error)
}

type WeatherLogWriter interface {
	Create(entry *models.WeatherLog) error
}

type WeatherService struct {
	air        AirQualityProvider
	conditions WeatherConditionProvider
	logs       WeatherLogWriter
	log        *logger.Logger
	now        func() time.Time
}

func NewWeatherService(air AirQualityProvider, conditions WeatherConditionProvider, logs WeatherLogWriter, log *logger.Logger) *WeatherService {
	if log == nil {
		log = logger.NewNop()
	}
	return &WeatherService{
		air:        air,
		conditions: conditions,
		logs:       logs,
		log:        log,
		now:        time.Now,
	}
}

// Fetch builds a snapshot for location without persisting it. Provider failures
// degrade to defaults and never surface as errors.
func (service *WeatherService) Fetch(ctx context.Context, location string) models.WeatherLog {
	place := strings.TrimSpace(location)
	if place == "" {
		place = DefaultCity
	}
	grid := ResolveGrid(place)

	var (
		air       AirQualityReading
		airFailed bool
		weather   WeatherReading
		hasTemp   bool
		condition *models.WeatherCondition
	)

	var group errgroup.Group
	group.Go(func() error {
		reading, err := service.fetchAirQuality(ctx, place)
		if err != nil {
			service.log.Warn("air quality provider failed, using fallback", "location", place, "error", err)
			airFailed = true
			return nil
		}
		if reading.isUnavailableSentinel() {
			service.log.Warn("air quality provider returned no data, using fallback", "location", place)
			airFailed = true
			return nil
		}
		air = reading
		return nil
	})
	group.Go(func() error {
		reading, err := service.fetchConditions(ctx, grid)
		if err != nil {
			service.log.Warn("weather provider failed, using defaults", "location", place, "grid_x", grid.X, "grid_y", grid.Y, "error", err)
			return nil
		}
		weather = reading
		hasTemp = reading.Temperature != nil
		mapped := ConditionFromCodes(reading.SkyCode, reading.PrecipitationType)
		condition = &mapped
		return nil
	})
	// Both lookups absorb their own failures, so Wait only joins them.
	_ = group.Wait()

	snapshot := models.WeatherLog{
		Location:        place,
		ObservedAt:      service.now(),
		Temperature:     DefaultTemperature,
		Condition:       models.ConditionOther,
		PM10:            intOrDefault(air.PM10, DefaultPM10),
		PM25:            intOrDefault(air.PM25, DefaultPM25),
		AirQualityIndex: intOrDefault(air.AQI, DefaultAQI),
	}
	if hasTemp {
		snapshot.Temperature = *weather.Temperature
	}
	if condition != nil {
		snapshot.Condition = *condition
	}
	if airFailed {
		snapshot.Location = MockLocationMark + place
	}
	return snapshot
}

// Enrich fetches and persists a new snapshot. Every call inserts a fresh row.
func (service *WeatherService) Enrich(ctx context.Context, location string) (models.WeatherLog, error) {
	snapshot := service.Fetch(ctx, location)
	if err := service.logs.Create(&snapshot); err != nil {
		return models.WeatherLog{}, fmt.Errorf("persist weather log: %w", err)
	}
	return snapshot, nil
}

func (service *WeatherService) fetchAirQuality(ctx context.Context, place string) (AirQualityReading, error) {
	if service.air == nil {
		return AirQualityReading{}, errProviderNotConfigured
	}
	return service.air.AirQuality(ctx, place)
}

func (service *WeatherService) fetchConditions(ctx context.Context, grid GridCoordinate) (WeatherReading, error) {
	if service.conditions == nil {
		return WeatherReading{}, errProviderNotConfigured
	}
	return service.conditions.Conditions(ctx, grid.X, grid.Y)
}

// ConditionFromCodes maps nowcast codes. Precipitation 1,2 is rain and 3 is snow,
// both ahead of the sky code; sky 1 is clear and 3,4 are clouds.
func ConditionFromCodes(skyCode int, precipitationType int) models.WeatherCondition {
	switch precipitationType {
	case 1, 2:
		return models.ConditionRain
	case 3:
		return models.ConditionSnow
	}
	switch skyCode {
	case 1:
		return models.ConditionClear
	case 3, 4:
		return models.ConditionClouds
	default:
		return models.ConditionOther
	}
}

func intOrDefault(value *int, fallback int) int {
	if value == nil {
		return fallback
	}
	return *value
}
