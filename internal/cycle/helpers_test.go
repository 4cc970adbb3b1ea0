package cycle

import (
	"testing"
	"time"
)

func mustParseDay(t *testing.T, raw string) time.Time {
	t.Helper()
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return parsed
}

func makeRecord(t *testing.T, start string, end string) Record {
	t.Helper()
	record := Record{StartDate: mustParseDay(t, start)}
	if end != "" {
		day := mustParseDay(t, end)
		record.EndDate = &day
	}
	return record
}

func makeStarts(t *testing.T, starts ...string) []Record {
	t.Helper()
	records := make([]Record, 0, len(starts))
	for _, start := range starts {
		records = append(records, makeRecord(t, start, ""))
	}
	return records
}

func regularRecords(t *testing.T) []Record {
	t.Helper()
	return []Record{
		makeRecord(t, "2024-01-01", "2024-01-05"),
		makeRecord(t, "2024-01-29", "2024-02-02"),
		makeRecord(t, "2024-02-26", "2024-03-01"),
	}
}
