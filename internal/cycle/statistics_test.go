package cycle

import (
	"math"
	"reflect"
	"testing"
)

func TestGapsCountIsOneLessThanRecords(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		starts  []string
		wantLen int
	}{
		{name: "empty", starts: nil, wantLen: 0},
		{name: "single", starts: []string{"2024-01-01"}, wantLen: 0},
		{name: "two", starts: []string{"2024-01-01", "2024-01-29"}, wantLen: 1},
		{name: "five", starts: []string{"2024-01-01", "2024-01-29", "2024-02-26", "2024-03-25", "2024-04-22"}, wantLen: 4},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			gaps := Gaps(makeStarts(t, testCase.starts...))
			if len(gaps) != testCase.wantLen {
				t.Fatalf("expected %d gaps, got %d", testCase.wantLen, len(gaps))
			}
		})
	}
}

func TestGapsUseCalendarDays(t *testing.T) {
	t.Parallel()

	gaps := Gaps(makeStarts(t, "2024-01-01", "2024-01-29", "2024-02-28", "2024-03-25"))
	if want := []int{28, 30, 26}; !reflect.DeepEqual(gaps, want) {
		t.Fatalf("expected gaps %v, got %v", want, gaps)
	}
}

func TestEstimateStatisticsRegularHistory(t *testing.T) {
	t.Parallel()

	statistics, ok := EstimateStatistics(regularRecords(t))
	if !ok {
		t.Fatal("expected statistics for three records")
	}
	if statistics.SampleCount != 2 {
		t.Fatalf("expected 2 samples, got %d", statistics.SampleCount)
	}
	if statistics.StdDevDays != 0 {
		t.Fatalf("expected zero std dev, got %.4f", statistics.StdDevDays)
	}
	if statistics.IsIrregular {
		t.Fatal("expected regular cycle")
	}
	if math.Abs(statistics.WeightedLengthDays-28) > 1e-9 {
		t.Fatalf("expected weighted length 28, got %.4f", statistics.WeightedLengthDays)
	}
	if statistics.AverageLengthDays != 28 || statistics.MinLengthDays != 28 || statistics.MaxLengthDays != 28 {
		t.Fatalf("expected avg/min/max 28, got %d/%d/%d", statistics.AverageLengthDays, statistics.MinLengthDays, statistics.MaxLengthDays)
	}
	if statistics.ConfidencePercent != 80 {
		t.Fatalf("expected confidence 80 (sparse penalty), got %d", statistics.ConfidencePercent)
	}
}

func TestEstimateStatisticsInsufficientHistory(t *testing.T) {
	t.Parallel()

	if _, ok := EstimateStatistics(nil); ok {
		t.Fatal("expected no statistics for empty history")
	}
	if _, ok := EstimateStatistics(makeStarts(t, "2024-01-01")); ok {
		t.Fatal("expected no statistics for a single record")
	}
}

func TestWeightedAverageFavoursRecentGaps(t *testing.T) {
	t.Parallel()

	// 26 is the most recent gap.
	gaps := []int{28, 30, 26}
	weighted := WeightedAverage(gaps)
	simple := 28.0

	if !(weighted > 26 && weighted < simple) {
		t.Fatalf("expected weighted average strictly between 26 and %.1f, got %.4f", simple, weighted)
	}
	want := (26*1.0 + 30*0.85 + 28*0.7) / (1.0 + 0.85 + 0.7)
	if math.Abs(weighted-want) > 1e-9 {
		t.Fatalf("expected %.6f, got %.6f", want, weighted)
	}
}

func TestWeightedAverageUsesSixMostRecentGaps(t *testing.T) {
	t.Parallel()

	// The leading 45 is outside the window and must not move the result.
	withOld := WeightedAverage([]int{45, 30, 30, 30, 30, 30, 30})
	if math.Abs(withOld-30) > 1e-9 {
		t.Fatalf("expected 30, got %.6f", withOld)
	}
}

func TestEstimateStatisticsExcludesImplausibleGaps(t *testing.T) {
	t.Parallel()

	// Gaps 15, 45 and 28: 15 is implausible, 45 sits on the bound.
	records := makeStarts(t, "2024-01-01", "2024-01-16", "2024-03-01", "2024-03-29")
	if gaps := Gaps(records); !reflect.DeepEqual(gaps, []int{15, 45, 28}) {
		t.Fatalf("unexpected fixture gaps %v", gaps)
	}

	statistics, ok := EstimateStatistics(records)
	if !ok {
		t.Fatal("expected statistics")
	}
	if statistics.ExcludedGaps != 1 {
		t.Fatalf("expected 1 excluded gap, got %d", statistics.ExcludedGaps)
	}
	if statistics.SampleCount != 2 {
		t.Fatalf("expected 2 samples, got %d", statistics.SampleCount)
	}
	if statistics.AverageLengthDays != 37 {
		t.Fatalf("expected baseline average 37, got %d", statistics.AverageLengthDays)
	}
	if statistics.MinLengthDays != 28 || statistics.MaxLengthDays != 45 {
		t.Fatalf("expected min/max 28/45, got %d/%d", statistics.MinLengthDays, statistics.MaxLengthDays)
	}
	wantWeighted := (28*1.0 + 45*0.85) / 1.85
	if math.Abs(statistics.WeightedLengthDays-wantWeighted) > 1e-9 {
		t.Fatalf("expected weighted %.4f without the 15-day gap, got %.4f", wantWeighted, statistics.WeightedLengthDays)
	}
	if math.Abs(statistics.StdDevDays-8.5) > 1e-9 {
		t.Fatalf("expected std dev 8.5, got %.4f", statistics.StdDevDays)
	}
	if !statistics.IsIrregular {
		t.Fatal("expected irregular flag")
	}
	if statistics.ConfidencePercent != MinConfidencePercent {
		t.Fatalf("expected confidence clamped to %d, got %d", MinConfidencePercent, statistics.ConfidencePercent)
	}
}

func TestEstimateStatisticsRejectsHistoryWithOnlyImplausibleGaps(t *testing.T) {
	t.Parallel()

	statistics, ok := EstimateStatistics(makeStarts(t, "2024-01-01", "2024-01-11", "2024-01-21"))
	if ok {
		t.Fatalf("expected no usable statistics, got %+v", statistics)
	}
	if statistics.ExcludedGaps != 2 || statistics.WeightedLengthDays != 0 || statistics.SampleCount != 0 {
		t.Fatalf("expected only the excluded count, got %+v", statistics)
	}

	statistics, ok = EstimateStatistics(makeStarts(t, "2024-01-01", "2024-04-10"))
	if ok || statistics.ExcludedGaps != 1 {
		t.Fatalf("expected a single 100-day gap to be rejected, got %+v (ok=%v)", statistics, ok)
	}
}

func TestConfidencePercent(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name        string
		stdDev      float64
		sampleCount int
		want        int
	}{
		{name: "perfect history clamps to max", stdDev: 0, sampleCount: 6, want: 98},
		{name: "sparse history penalty", stdDev: 0, sampleCount: 2, want: 80},
		{name: "moderate variance", stdDev: 2.5, sampleCount: 5, want: 80},
		{name: "rounds to nearest", stdDev: 1.3, sampleCount: 4, want: 90},
		{name: "high variance clamps to min", stdDev: 12, sampleCount: 8, want: 15},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			if got := confidencePercent(testCase.stdDev, testCase.sampleCount); got != testCase.want {
				t.Fatalf("expected %d, got %d", testCase.want, got)
			}
		})
	}
}

func TestIrregularThreshold(t *testing.T) {
	t.Parallel()

	// Gaps 24 and 32: population std dev 4.
	irregular, _ := EstimateStatistics(makeStarts(t, "2024-01-01", "2024-01-25", "2024-02-26"))
	if !irregular.IsIrregular {
		t.Fatalf("expected std dev %.2f to be irregular", irregular.StdDevDays)
	}

	// Gaps 27 and 33: population std dev 3.
	regular, _ := EstimateStatistics(makeStarts(t, "2024-01-01", "2024-01-28", "2024-03-01"))
	if regular.IsIrregular {
		t.Fatalf("expected std dev %.2f to be regular", regular.StdDevDays)
	}
}

func TestPeriodLengthDaysSkipsOngoing(t *testing.T) {
	t.Parallel()

	records := []Record{
		makeRecord(t, "2024-01-01", "2024-01-05"),
		makeRecord(t, "2024-01-29", "2024-02-01"),
		makeRecord(t, "2024-02-26", ""),
	}
	average, ok := PeriodLengthDays(records)
	if !ok {
		t.Fatal("expected a period length")
	}
	if math.Abs(average-4.5) > 1e-9 {
		t.Fatalf("expected 4.5, got %.4f", average)
	}

	if _, ok := PeriodLengthDays(makeStarts(t, "2024-01-01")); ok {
		t.Fatal("expected no period length when every period is ongoing")
	}
}
