package services

import (
	"strings"
	"time"

	"github.com/saukhya-health/saukhya/internal/cycle"
)

func DateAtLocation(value time.Time, location *time.Location) time.Time {
	if location == nil {
		location = time.UTC
	}
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// TodayIn returns the calendar day of now as seen in location, pinned to UTC
// midnight like every stored period date.
func TodayIn(now time.Time, location *time.Location) time.Time {
	return cycle.CalendarDay(DateAtLocation(now, location))
}

// ParseReferenceDay parses an optional YYYY-MM-DD query value, defaulting to
// today in location.
func ParseReferenceDay(raw string, now time.Time, location *time.Location) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return TodayIn(now, location), nil
	}
	day, err := cycle.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrReferenceDateInvalid
	}
	return day, nil
}
