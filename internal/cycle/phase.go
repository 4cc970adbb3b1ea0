package cycle

import "time"

type Phase string

const (
	PhaseMenstruation Phase = "menstruation"
	PhaseFollicular   Phase = "follicular"
	PhaseOvulation    Phase = "ovulation"
	PhaseLuteal       Phase = "luteal"
)

const (
	// Ovulation starts this many days before the end of the cycle and lasts
	// until ovulationEndOffset days before it.
	ovulationStartOffset = 15
	ovulationEndOffset   = 13

	fertileCountdownOffset   = 16
	ovulationCountdownOffset = 14
)

// PhaseResult places a day inside the current cycle. DayOfCycle is 0-indexed:
// the period start day is day 0.
type PhaseResult struct {
	Phase      Phase `json:"phase"`
	DayOfCycle int   `json:"day_of_cycle"`
}

// CycleDay is the 1-indexed day for display.
func (result PhaseResult) CycleDay() int {
	return result.DayOfCycle + 1
}

// Countdown holds the days left until the fertile window and ovulation of the
// current cycle, zero once they have passed.
type Countdown struct {
	DaysUntilFertile   int `json:"days_until_fertile"`
	DaysUntilOvulation int `json:"days_until_ovulation"`
}

// ClassifyPhase returns the phase of reference relative to the latest period
// start. It reports false for an empty history and when reference precedes
// that start.
func ClassifyPhase(records []Record, reference time.Time, profile Profile) (PhaseResult, bool) {
	if len(records) == 0 {
		return PhaseResult{}, false
	}
	profile = profile.Normalize()

	lastStart := records[len(records)-1].StartDate
	daysSinceStart := DaysBetween(lastStart, reference)
	if daysSinceStart < 0 {
		return PhaseResult{}, false
	}

	dayOfCycle := daysSinceStart % profile.CycleLengthDays
	return PhaseResult{
		Phase:      PhaseForDay(dayOfCycle, profile),
		DayOfCycle: dayOfCycle,
	}, true
}

// PhaseForDay maps a 0-indexed cycle day onto the fixed four-phase model.
func PhaseForDay(dayOfCycle int, profile Profile) Phase {
	profile = profile.Normalize()
	cycleLength := profile.CycleLengthDays

	switch {
	case dayOfCycle < profile.PeriodDurationDays:
		return PhaseMenstruation
	case dayOfCycle < cycleLength-ovulationStartOffset:
		return PhaseFollicular
	case dayOfCycle < cycleLength-ovulationEndOffset:
		return PhaseOvulation
	default:
		return PhaseLuteal
	}
}

// FertileWindowStartDay is the 0-indexed cycle day on which the fertile
// countdown reaches zero.
func FertileWindowStartDay(cycleLength int) int {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLengthDays
	}
	return cycleLength - fertileCountdownOffset
}

// CountdownFor derives the fertile and ovulation countdowns for a 0-indexed
// cycle day.
func CountdownFor(dayOfCycle int, cycleLength int) Countdown {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLengthDays
	}
	return Countdown{
		DaysUntilFertile:   max(0, FertileWindowStartDay(cycleLength)-dayOfCycle),
		DaysUntilOvulation: max(0, cycleLength-ovulationCountdownOffset-dayOfCycle),
	}
}
