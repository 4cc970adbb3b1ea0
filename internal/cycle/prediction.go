package cycle

import (
	"math"
	"time"
)

// Prediction is the projected start of the next period.
type Prediction struct {
	PredictedStartDate time.Time `json:"predicted_start_date"`
	DaysUntil          int       `json:"days_until"`
	IsIrregular        bool      `json:"is_irregular"`
	RangeStart         time.Time `json:"range_start"`
	RangeEnd           time.Time `json:"range_end"`
	MarginDays         int       `json:"margin_days"`
	CycleLengthDays    int       `json:"cycle_length_days"`
	UsedFallbackLength bool      `json:"used_fallback_length"`
}

// DisplayWindow is the span to show: the uncertainty range for irregular
// cycles, otherwise the predicted day alone.
func (prediction Prediction) DisplayWindow() (time.Time, time.Time) {
	if prediction.IsIrregular {
		return prediction.RangeStart, prediction.RangeEnd
	}
	return prediction.PredictedStartDate, prediction.PredictedStartDate
}

// PredictNextPeriod projects the next start from the latest recorded one. It
// uses the weighted cycle length when statistics are available and the
// profile's declared length otherwise. It reports false for an empty history.
func PredictNextPeriod(records []Record, statistics *Statistics, reference time.Time, profile Profile) (Prediction, bool) {
	if len(records) == 0 {
		return Prediction{}, false
	}
	profile = profile.Normalize()

	lastStart := CalendarDay(records[len(records)-1].StartDate)
	today := CalendarDay(reference)

	cycleLength := profile.CycleLengthDays
	usedFallback := true
	margin := 0
	irregular := false
	if statistics != nil {
		if length := statistics.PredictionLengthDays(); length > 0 {
			cycleLength = length
			usedFallback = false
		}
		margin = int(math.Ceil(statistics.StdDevDays))
		irregular = statistics.IsIrregular
	}

	predicted := lastStart.AddDate(0, 0, cycleLength)
	return Prediction{
		PredictedStartDate: predicted,
		DaysUntil:          DaysBetween(today, predicted),
		IsIrregular:        irregular,
		RangeStart:         predicted.AddDate(0, 0, -margin),
		RangeEnd:           predicted.AddDate(0, 0, margin),
		MarginDays:         margin,
		CycleLengthDays:    cycleLength,
		UsedFallbackLength: usedFallback,
	}, true
}
