package cycle

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Tunables for gap statistics.
const (
	// Gaps outside [MinPlausibleGapDays, MaxPlausibleGapDays] usually mean a
	// missed log rather than a real cycle.
	MinPlausibleGapDays = 20
	MaxPlausibleGapDays = 45

	WeightedWindow      = 6
	weightDecayPerGap   = 0.15
	minGapWeight        = 0.2
	IrregularStdDevDays = 3.5

	confidenceStdDevPenalty   = 8
	confidenceSparsePenalty   = 20
	confidenceSparseThreshold = 3
	MinConfidencePercent      = 15
	MaxConfidencePercent      = 98
)

// Statistics summarizes the gaps between consecutive period starts.
type Statistics struct {
	AverageLengthDays  int     `json:"average_length_days"`
	WeightedLengthDays float64 `json:"weighted_length_days"`
	MinLengthDays      int     `json:"min_length_days"`
	MaxLengthDays      int     `json:"max_length_days"`
	StdDevDays         float64 `json:"std_dev_days"`
	IsIrregular        bool    `json:"is_irregular"`
	ConfidencePercent  int     `json:"confidence_percent"`
	SampleCount        int     `json:"sample_count"`
	ExcludedGaps       int     `json:"excluded_gaps"`
}

// PredictionLengthDays is the cycle length used to project the next start.
func (statistics Statistics) PredictionLengthDays() int {
	return int(math.Round(statistics.WeightedLengthDays))
}

// Gaps returns the whole-day distance between each pair of adjacent starts,
// oldest first. Records must already be normalized.
func Gaps(records []Record) []int {
	if len(records) < 2 {
		return nil
	}

	gaps := make([]int, 0, len(records)-1)
	for i := 1; i < len(records); i++ {
		gaps = append(gaps, DaysBetween(records[i-1].StartDate, records[i].StartDate))
	}
	return gaps
}

// EstimateStatistics derives cycle statistics from normalized records. It
// reports false when fewer than two records exist or when every gap is
// implausible; callers then fall back to the profile's declared cycle length.
// In the latter case the returned value only carries ExcludedGaps.
//
// Implausible gaps are excluded from every figure.
func EstimateStatistics(records []Record) (Statistics, bool) {
	gaps := Gaps(records)
	if len(gaps) == 0 {
		return Statistics{}, false
	}

	baseline := plausibleGaps(gaps)
	excluded := len(gaps) - len(baseline)
	if len(baseline) == 0 {
		return Statistics{ExcludedGaps: excluded}, false
	}

	data := stats.LoadRawData(baseline)
	mean, _ := stats.Mean(data)
	minimum, _ := stats.Min(data)
	maximum, _ := stats.Max(data)
	stdDev, _ := stats.StandardDeviationPopulation(data)

	result := Statistics{
		AverageLengthDays:  int(math.Round(mean)),
		WeightedLengthDays: WeightedAverage(baseline),
		MinLengthDays:      int(minimum),
		MaxLengthDays:      int(maximum),
		StdDevDays:         stdDev,
		IsIrregular:        stdDev > IrregularStdDevDays,
		SampleCount:        len(baseline),
		ExcludedGaps:       excluded,
	}
	result.ConfidencePercent = confidencePercent(stdDev, result.SampleCount)
	return result, true
}

// WeightedAverage averages the most recent WeightedWindow gaps (gaps ordered
// oldest first). The newest gap weighs 1 and each older one 0.15 less, never
// below 0.2.
func WeightedAverage(gaps []int) float64 {
	if len(gaps) == 0 {
		return 0
	}

	var weightedSum, weightTotal float64
	for i := 0; i < WeightedWindow && i < len(gaps); i++ {
		gap := gaps[len(gaps)-1-i]
		weight := math.Max(minGapWeight, 1-weightDecayPerGap*float64(i))
		weightedSum += float64(gap) * weight
		weightTotal += weight
	}
	return weightedSum / weightTotal
}

// PeriodLengthDays averages the inclusive duration of finished periods.
func PeriodLengthDays(records []Record) (float64, bool) {
	durations := make([]int, 0, len(records))
	for _, record := range records {
		if record.EndDate == nil {
			continue
		}
		durations = append(durations, DaysBetween(record.StartDate, *record.EndDate)+1)
	}
	if len(durations) == 0 {
		return 0, false
	}

	mean, err := stats.Mean(stats.LoadRawData(durations))
	if err != nil {
		return 0, false
	}
	return mean, true
}

func plausibleGaps(gaps []int) []int {
	filtered := make([]int, 0, len(gaps))
	for _, gap := range gaps {
		if gap < MinPlausibleGapDays || gap > MaxPlausibleGapDays {
			continue
		}
		filtered = append(filtered, gap)
	}
	return filtered
}

func confidencePercent(stdDev float64, sampleCount int) int {
	score := 100 - stdDev*confidenceStdDevPenalty
	if sampleCount < confidenceSparseThreshold {
		score -= confidenceSparsePenalty
	}
	rounded := int(math.Round(score))
	if rounded < MinConfidencePercent {
		return MinConfidencePercent
	}
	if rounded > MaxConfidencePercent {
		return MaxConfidencePercent
	}
	return rounded
}
