package services

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrRangeFromDateInvalid = errors.New("invalid from date")
	ErrRangeToDateInvalid   = errors.New("invalid to date")
	ErrRangeInvalid         = errors.New("from date is after to date")
)

// ParseRecordRange reads optional YYYY-MM-DD bounds. Blank values leave that side open.
func ParseRecordRange(rawFrom string, rawTo string) (*time.Time, *time.Time, error) {
	var from *time.Time
	if fromRaw := strings.TrimSpace(rawFrom); fromRaw != "" {
		parsed, err := ParseCalendarDay(fromRaw)
		if err != nil {
			return nil, nil, ErrRangeFromDateInvalid
		}
		from = &parsed
	}

	var to *time.Time
	if toRaw := strings.TrimSpace(rawTo); toRaw != "" {
		parsed, err := ParseCalendarDay(toRaw)
		if err != nil {
			return nil, nil, ErrRangeToDateInvalid
		}
		to = &parsed
	}

	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, ErrRangeInvalid
	}
	return from, to, nil
}
