package cycle

import (
	"fmt"
	"sort"
	"strings"
)

// Discard describes a raw record (or part of one) that could not be used.
type Discard struct {
	Index int
	Err   error
}

func (discard Discard) Error() string {
	return fmt.Sprintf("record %d: %v", discard.Index, discard.Err)
}

func (discard Discard) Unwrap() error {
	return discard.Err
}

// NormalizeHistory returns the records ordered by start date. Records without
// a start date are dropped, dates are reduced to calendar days and an end date
// before its start is cleared. Records sharing a start keep their input order;
// overlapping periods are passed through untouched.
func NormalizeHistory(records []Record) []Record {
	normalized := make([]Record, 0, len(records))
	for _, record := range records {
		if record.StartDate.IsZero() {
			continue
		}

		start := CalendarDay(record.StartDate)
		entry := Record{StartDate: start}
		if record.EndDate != nil && !record.EndDate.IsZero() {
			end := CalendarDay(*record.EndDate)
			if !end.Before(start) {
				entry.EndDate = &end
			}
		}
		normalized = append(normalized, entry)
	}

	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].StartDate.Before(normalized[j].StartDate)
	})
	return normalized
}

// ValidateRecords checks records from storage or user input and returns the
// normalized history. A record with no start, or one before EarliestDay, is
// dropped; an end date before its start is cleared and the record kept as
// ongoing. Both cases are reported as discards wrapping ErrInvalidRecord, with
// Index pointing into records.
func ValidateRecords(records []Record) ([]Record, []Discard) {
	valid := make([]Record, 0, len(records))
	discards := make([]Discard, 0)
	for index, record := range records {
		checked, discard, ok := checkRecord(index, record)
		if discard != nil {
			discards = append(discards, *discard)
		}
		if ok {
			valid = append(valid, checked)
		}
	}
	return NormalizeHistory(valid), discards
}

func checkRecord(index int, record Record) (Record, *Discard, bool) {
	if record.StartDate.IsZero() {
		return Record{}, &Discard{Index: index, Err: fmt.Errorf("%w: missing start date", ErrInvalidRecord)}, false
	}
	start := CalendarDay(record.StartDate)
	if start.Before(EarliestDay) {
		return Record{}, &Discard{
			Index: index,
			Err:   fmt.Errorf("%w: start date %s before %s", ErrInvalidRecord, FormatDay(start), FormatDay(EarliestDay)),
		}, false
	}

	checked := Record{StartDate: start}
	if record.EndDate == nil || record.EndDate.IsZero() {
		return checked, nil, true
	}
	end := CalendarDay(*record.EndDate)
	if end.Before(start) {
		return checked, &Discard{
			Index: index,
			Err:   fmt.Errorf("%w: end date %s before start", ErrInvalidRecord, FormatDay(end)),
		}, true
	}
	checked.EndDate = &end
	return checked, nil, true
}

// ParseHistory parses user-entered records. A record whose start date cannot be
// parsed is dropped and an unparsable end date is cleared; the parsed records
// then go through ValidateRecords. Every problem is reported as a discard
// wrapping ErrInvalidRecord.
func ParseHistory(raw []RawRecord) ([]Record, []Discard) {
	records := make([]Record, 0, len(raw))
	discards := make([]Discard, 0)

	for index, entry := range raw {
		start, err := ParseDay(entry.StartDate)
		if err != nil {
			discards = append(discards, Discard{
				Index: index,
				Err:   fmt.Errorf("%w: start date %q", ErrInvalidRecord, entry.StartDate),
			})
			continue
		}

		record := Record{StartDate: start}
		if rawEnd := strings.TrimSpace(entry.EndDate); rawEnd != "" {
			end, err := ParseDay(rawEnd)
			if err != nil {
				discards = append(discards, Discard{
					Index: index,
					Err:   fmt.Errorf("%w: end date %q", ErrInvalidRecord, entry.EndDate),
				})
			} else {
				record.EndDate = &end
			}
		}

		checked, discard, ok := checkRecord(index, record)
		if discard != nil {
			discards = append(discards, *discard)
		}
		if ok {
			records = append(records, checked)
		}
	}

	return NormalizeHistory(records), discards
}
