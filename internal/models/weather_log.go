package models

import "time"

type WeatherCondition string

const (
	ConditionClear  WeatherCondition = "clear"
	ConditionClouds WeatherCondition = "clouds"
	ConditionRain   WeatherCondition = "rain"
	ConditionSnow   WeatherCondition = "snow"
	ConditionOther  WeatherCondition = "other"
)

// WeatherLog is an immutable observation. Rows are only ever inserted.
type WeatherLog struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Location        string           `gorm:"not null" json:"location"`
	ObservedAt      time.Time        `gorm:"not null" json:"observed_at"`
	Temperature     float64          `gorm:"not null" json:"temperature"`
	Condition       WeatherCondition `gorm:"column:condition;not null" json:"condition"`
	PM10            int              `gorm:"column:pm10;not null" json:"pm10"`
	PM25            int              `gorm:"column:pm25;not null" json:"pm25"`
	AirQualityIndex int              `gorm:"column:air_quality_index;not null" json:"air_quality_index"`
	CreatedAt       time.Time        `json:"-"`
}
