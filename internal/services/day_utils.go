package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/shim/internal/models"
)

const calendarDayLayout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// CalendarDay is the local calendar date of value stored as UTC midnight,
// which is how record dates are persisted.
func CalendarDay(value time.Time, location *time.Location) time.Time {
	local := DateAtLocation(value, location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

func CalendarDayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := CalendarDay(value, location)
	return start, start.AddDate(0, 0, 1)
}

func ParseCalendarDay(raw string) (time.Time, error) {
	parsed, err := time.Parse(calendarDayLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return parsed, nil
}

func FormatCalendarDay(value time.Time) string {
	return value.UTC().Format(calendarDayLayout)
}

// TimePeriodAt buckets the local wall-clock hour: 06-11 morning, 12-17 afternoon, 18-21 evening, else night.
func TimePeriodAt(value time.Time, location *time.Location) models.TimePeriod {
	if location == nil {
		location = time.UTC
	}
	hour := value.In(location).Hour()
	switch {
	case hour >= 6 && hour < 12:
		return models.TimeMorning
	case hour >= 12 && hour < 18:
		return models.TimeAfternoon
	case hour >= 18 && hour < 22:
		return models.TimeEvening
	default:
		return models.TimeNight
	}
}
