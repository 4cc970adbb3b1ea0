// Package cycle turns a user's period history into cycle statistics, a
// phase for a given day and a prediction of the next period start.
//
// Every function is pure: callers pass records, the user's declared profile
// and a reference day, and get values back. Nothing is cached or persisted.
package cycle

import (
	"strings"
	"time"
)

const (
	DefaultCycleLengthDays    = 28
	DefaultPeriodDurationDays = 5

	dayLayout = "2006-01-02"

	secondsPerDay = 24 * 60 * 60
)

// EarliestDay is the first calendar day a record may start on. Older starts
// are treated as data-entry errors.
var EarliestDay = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Record is one logged period. EndDate is nil while the period is ongoing.
type Record struct {
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// RawRecord holds dates as the user typed them.
type RawRecord struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Profile is the user-declared baseline used when history is too short.
type Profile struct {
	CycleLengthDays    int `json:"cycle_length_days"`
	PeriodDurationDays int `json:"period_duration_days"`
}

func DefaultProfile() Profile {
	return Profile{
		CycleLengthDays:    DefaultCycleLengthDays,
		PeriodDurationDays: DefaultPeriodDurationDays,
	}
}

// Normalize substitutes defaults for non-positive values.
func (profile Profile) Normalize() Profile {
	if profile.CycleLengthDays <= 0 {
		profile.CycleLengthDays = DefaultCycleLengthDays
	}
	if profile.PeriodDurationDays <= 0 {
		profile.PeriodDurationDays = DefaultPeriodDurationDays
	}
	return profile
}

// DisplayEnd returns the end date to render. Ongoing periods get
// StartDate + periodDuration days; statistics never look at this value.
func (record Record) DisplayEnd(periodDuration int) time.Time {
	if record.EndDate != nil {
		return CalendarDay(*record.EndDate)
	}
	if periodDuration <= 0 {
		periodDuration = DefaultPeriodDurationDays
	}
	return CalendarDay(record.StartDate).AddDate(0, 0, periodDuration)
}

// Ongoing reports whether the period has no recorded end.
func (record Record) Ongoing() bool {
	return record.EndDate == nil
}

// CalendarDay drops the time of day and pins the date to UTC midnight. The
// year, month and day are read in the value's own location so that a local
// "today" keeps its calendar date.
func CalendarDay(value time.Time) time.Time {
	year, month, day := value.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b
// precedes a). It counts on Unix days, so spans wider than time.Duration can
// hold stay exact.
func DaysBetween(a time.Time, b time.Time) int {
	return int((CalendarDay(b).Unix() - CalendarDay(a).Unix()) / secondsPerDay)
}

// ParseDay accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar day it names.
func ParseDay(raw string) (time.Time, error) {
	value := strings.TrimSpace(raw)
	parsed, err := time.Parse(dayLayout, value)
	if err == nil {
		return parsed, nil
	}
	stamp, stampErr := time.Parse(time.RFC3339, value)
	if stampErr != nil {
		return time.Time{}, err
	}
	return CalendarDay(stamp), nil
}

// FormatDay renders a calendar day as YYYY-MM-DD.
func FormatDay(value time.Time) string {
	return CalendarDay(value).Format(dayLayout)
}
