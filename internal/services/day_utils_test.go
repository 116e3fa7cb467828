package services

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/shim/internal/models"
)

func TestCalendarDayUsesLocalDate(t *testing.T) {
	seoul, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 2025-03-02 20:30 UTC is already 2025-03-03 in Seoul.
	instant := time.Date(2025, time.March, 2, 20, 30, 0, 0, time.UTC)
	start, end := CalendarDayRange(instant, seoul)

	want := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Fatalf("expected start %s, got %s", want, start)
	}
	if !end.Equal(want.AddDate(0, 0, 1)) {
		t.Fatalf("expected end one day later, got %s", end)
	}
	if start.Location() != time.UTC {
		t.Fatalf("expected UTC storage location, got %s", start.Location())
	}
}

func TestParseCalendarDay(t *testing.T) {
	day, err := ParseCalendarDay(" 2025-03-03 ")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if FormatCalendarDay(day) != "2025-03-03" {
		t.Fatalf("unexpected round trip %s", FormatCalendarDay(day))
	}

	if _, err := ParseCalendarDay("03/03/2025"); !errors.Is(err, ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestTimePeriodAt(t *testing.T) {
	tests := []struct {
		hour int
		want models.TimePeriod
	}{
		{hour: 0, want: models.TimeNight},
		{hour: 5, want: models.TimeNight},
		{hour: 6, want: models.TimeMorning},
		{hour: 11, want: models.TimeMorning},
		{hour: 12, want: models.TimeAfternoon},
		{hour: 17, want: models.TimeAfternoon},
		{hour: 18, want: models.TimeEvening},
		{hour: 21, want: models.TimeEvening},
		{hour: 22, want: models.TimeNight},
	}

	for _, tt := range tests {
		instant := time.Date(2025, time.March, 3, tt.hour, 59, 0, 0, time.UTC)
		if got := TimePeriodAt(instant, time.UTC); got != tt.want {
			t.Fatalf("TimePeriodAt(%02d:59) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}
