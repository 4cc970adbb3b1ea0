package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
)

var ExportCSVHeaders = []string{
	"Start",
	"End",
	"Ongoing",
	"Duration days",
	"Gap days",
	"Notes",
}

var ExportDaysCSVHeaders = []string{
	"Date",
	"Flow",
	"Mood",
	"Symptoms",
	"Notes",
}

type ExportPeriodReader interface {
	ListByUser(userID uint) ([]models.Period, error)
}

type ExportDayLogReader interface {
	ListByUser(userID uint) ([]models.DailyLog, error)
}

type ExportSymptomNamer interface {
	SymptomNames(userID uint) (map[uint]string, error)
}

type ExportService struct {
	periods  ExportPeriodReader
	logs     ExportDayLogReader
	symptoms ExportSymptomNamer
}

type ExportSummary struct {
	TotalPeriods   int
	TotalDailyLogs int
	HasData        bool
	DateFrom       string
	DateTo         string
}

func NewExportService(periods ExportPeriodReader, logs ExportDayLogReader, symptoms ExportSymptomNamer) *ExportService {
	return &ExportService{
		periods:  periods,
		logs:     logs,
		symptoms: symptoms,
	}
}

func (service *ExportService) Summary(userID uint) (ExportSummary, error) {
	periods, err := service.periods.ListByUser(userID)
	if err != nil {
		return ExportSummary{}, fmt.Errorf("load periods: %w", err)
	}
	history, _ := RecordsFromPeriods(periods)

	summary := ExportSummary{TotalPeriods: len(history)}
	if len(history) > 0 {
		summary.DateFrom = cycle.FormatDay(history[0].StartDate)
		summary.DateTo = cycle.FormatDay(history[len(history)-1].StartDate)
	}

	if service.logs != nil {
		logs, err := service.logs.ListByUser(userID)
		if err != nil {
			return ExportSummary{}, fmt.Errorf("load daily logs: %w", err)
		}
		summary.TotalDailyLogs = len(logs)
	}
	summary.HasData = summary.TotalPeriods > 0 || summary.TotalDailyLogs > 0
	return summary, nil
}

// WriteCSV writes one row per usable period in start order. Ongoing periods
// have an empty end and duration; the first row has no gap.
func (service *ExportService) WriteCSV(userID uint, output io.Writer) error {
	periods, err := service.periods.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load periods: %w", err)
	}

	ordered := exportablePeriods(periods)
	history, _ := cycle.ValidateRecords(PeriodRecords(ordered))
	gaps := cycle.Gaps(history)

	writer := csv.NewWriter(output)
	if err := writer.Write(ExportCSVHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for index, record := range history {
		end, ongoing, duration := "", "yes", ""
		if !record.Ongoing() {
			end = cycle.FormatDay(*record.EndDate)
			ongoing = "no"
			duration = strconv.Itoa(cycle.DaysBetween(record.StartDate, *record.EndDate) + 1)
		}
		gap := ""
		if index > 0 {
			gap = strconv.Itoa(gaps[index-1])
		}

		row := []string{cycle.FormatDay(record.StartDate), end, ongoing, duration, gap, csvSafe(ordered[index].Notes)}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteDaysCSV writes one row per daily log in date order. Symptom names are
// joined with "; " in catalog id order; unknown ids are skipped.
func (service *ExportService) WriteDaysCSV(userID uint, output io.Writer) error {
	logs, err := service.logs.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("load daily logs: %w", err)
	}
	names, err := service.symptoms.SymptomNames(userID)
	if err != nil {
		return fmt.Errorf("load symptoms: %w", err)
	}

	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].Date.Before(logs[j].Date)
	})

	writer := csv.NewWriter(output)
	if err := writer.Write(ExportDaysCSVHeaders); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, entry := range logs {
		symptoms := make([]string, 0, len(entry.SymptomIDs))
		for _, id := range entry.SymptomIDs {
			if name, ok := names[id]; ok {
				symptoms = append(symptoms, name)
			}
		}

		row := []string{
			cycle.FormatDay(entry.Date),
			entry.Flow,
			entry.Mood,
			csvSafe(strings.Join(symptoms, "; ")),
			csvSafe(entry.Notes),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// exportablePeriods keeps the periods ValidateRecords would keep, ordered the
// way it orders them, so rows line up with the validated history.
func exportablePeriods(periods []models.Period) []models.Period {
	ordered := make([]models.Period, 0, len(periods))
	for _, period := range periods {
		if period.StartDate.IsZero() || cycle.CalendarDay(period.StartDate).Before(cycle.EarliestDay) {
			continue
		}
		ordered = append(ordered, period)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return cycle.CalendarDay(ordered[i].StartDate).Before(cycle.CalendarDay(ordered[j].StartDate))
	})
	return ordered
}

// csvSafe prefixes a quote to values a spreadsheet would evaluate as a
// formula.
func csvSafe(value string) string {
	if value == "" {
		return value
	}
	switch value[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + value
	}
	return value
}
