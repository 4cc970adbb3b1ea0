package cycle

import (
	"math"
	"time"
)

// Insights bundles everything a dashboard renders for one reference day.
// SetupNeeded is set when there is no history at all; the remaining pointers
// are nil when their value is undefined.
type Insights struct {
	ReferenceDate        time.Time       `json:"reference_date"`
	SetupNeeded          bool            `json:"setup_needed"`
	RecordCount          int             `json:"record_count"`
	EffectiveCycleLength int             `json:"effective_cycle_length"`
	AveragePeriodLength  float64         `json:"average_period_length,omitempty"`
	LastPeriodStart      *time.Time      `json:"last_period_start,omitempty"`
	Statistics           *Statistics     `json:"statistics,omitempty"`
	Phase                *PhaseResult    `json:"phase,omitempty"`
	Countdown            *Countdown      `json:"countdown,omitempty"`
	Prediction           *Prediction     `json:"prediction,omitempty"`
	Recommendation       *Recommendation `json:"recommendation,omitempty"`
	Notices              []error         `json:"-"`
}

// Build runs the whole pipeline over records for the reference day. The
// records are normalized first, so callers may pass them in any order.
func Build(records []Record, profile Profile, reference time.Time) Insights {
	profile = profile.Normalize()
	history := NormalizeHistory(records)

	insights := Insights{
		ReferenceDate:        CalendarDay(reference),
		RecordCount:          len(history),
		EffectiveCycleLength: profile.CycleLengthDays,
	}
	if len(history) == 0 {
		insights.SetupNeeded = true
		insights.Notices = append(insights.Notices, ErrInsufficientHistory)
		return insights
	}

	lastStart := history[len(history)-1].StartDate
	insights.LastPeriodStart = &lastStart
	if periodLength, ok := PeriodLengthDays(history); ok {
		insights.AveragePeriodLength = math.Round(periodLength*10) / 10
	}

	if statistics, ok := EstimateStatistics(history); ok {
		insights.Statistics = &statistics
		if length := statistics.PredictionLengthDays(); length > 0 {
			insights.EffectiveCycleLength = length
		}
	} else {
		insights.Notices = append(insights.Notices, ErrInsufficientHistory)
	}

	if prediction, ok := PredictNextPeriod(history, insights.Statistics, reference, profile); ok {
		insights.Prediction = &prediction
	}

	phaseProfile := profile
	phaseProfile.CycleLengthDays = insights.EffectiveCycleLength
	phase, ok := ClassifyPhase(history, reference, phaseProfile)
	if !ok {
		insights.Notices = append(insights.Notices, ErrReferenceBeforeHistory)
		return insights
	}
	insights.Phase = &phase

	countdown := CountdownFor(phase.DayOfCycle, insights.EffectiveCycleLength)
	insights.Countdown = &countdown
	if recommendation, found := RecommendationFor(phase.Phase); found {
		insights.Recommendation = &recommendation
	}
	return insights
}
