package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
)

var (
	ErrPeriodStartInvalid   = errors.New("period start date invalid")
	ErrPeriodStartTooEarly  = errors.New("period start date too early")
	ErrPeriodEndInvalid     = errors.New("period end date invalid")
	ErrPeriodEndBeforeStart = errors.New("period end date before start date")
	ErrPeriodTooLong        = errors.New("period longer than allowed")
	ErrPeriodInFuture       = errors.New("period starts in the future")
	ErrPeriodNotesTooLong   = errors.New("period notes too long")
	ErrPeriodNotFound       = errors.New("period not found")
)

const (
	MaxPeriodDurationDays = 14
	maxPeriodNotesLength  = 500
)

type PeriodRepository interface {
	ListByUser(userID uint) ([]models.Period, error)
	FindByUserAndID(userID uint, periodID uint) (models.Period, bool, error)
	Create(period *models.Period) error
	Save(period *models.Period) error
	DeleteByUserAndID(userID uint, periodID uint) (bool, error)
	DeleteAllByUser(userID uint) error
}

type PeriodInput struct {
	StartDate string
	EndDate   string
	Notes     string
}

type PeriodService struct {
	periods PeriodRepository
}

func NewPeriodService(periods PeriodRepository) *PeriodService {
	return &PeriodService{periods: periods}
}

type ValidatedPeriod struct {
	Start time.Time
	End   *time.Time
	Notes string
}

// ValidatePeriodInput checks a period against today's calendar day and
// cycle.EarliestDay. An empty end date leaves the period ongoing.
func ValidatePeriodInput(input PeriodInput, today time.Time) (ValidatedPeriod, error) {
	start, err := cycle.ParseDay(input.StartDate)
	if err != nil {
		return ValidatedPeriod{}, ErrPeriodStartInvalid
	}
	if start.Before(cycle.EarliestDay) {
		return ValidatedPeriod{}, ErrPeriodStartTooEarly
	}
	if start.After(cycle.CalendarDay(today)) {
		return ValidatedPeriod{}, ErrPeriodInFuture
	}

	notes := strings.TrimSpace(input.Notes)
	if len([]rune(notes)) > maxPeriodNotesLength {
		return ValidatedPeriod{}, ErrPeriodNotesTooLong
	}

	result := ValidatedPeriod{Start: start, Notes: notes}
	if strings.TrimSpace(input.EndDate) == "" {
		return result, nil
	}

	end, err := cycle.ParseDay(input.EndDate)
	if err != nil {
		return ValidatedPeriod{}, ErrPeriodEndInvalid
	}
	if end.Before(start) {
		return ValidatedPeriod{}, ErrPeriodEndBeforeStart
	}
	if cycle.DaysBetween(start, end)+1 > MaxPeriodDurationDays {
		return ValidatedPeriod{}, ErrPeriodTooLong
	}
	result.End = &end
	return result, nil
}

func (service *PeriodService) List(userID uint) ([]models.Period, error) {
	return service.periods.ListByUser(userID)
}

func (service *PeriodService) Create(userID uint, input PeriodInput, today time.Time) (models.Period, error) {
	validated, err := ValidatePeriodInput(input, today)
	if err != nil {
		return models.Period{}, err
	}

	period := models.Period{
		UserID:    userID,
		StartDate: validated.Start,
		EndDate:   validated.End,
		Notes:     validated.Notes,
	}
	if err := service.periods.Create(&period); err != nil {
		return models.Period{}, fmt.Errorf("create period: %w", err)
	}
	return period, nil
}

func (service *PeriodService) Update(userID uint, periodID uint, input PeriodInput, today time.Time) (models.Period, error) {
	validated, err := ValidatePeriodInput(input, today)
	if err != nil {
		return models.Period{}, err
	}

	period, found, err := service.periods.FindByUserAndID(userID, periodID)
	if err != nil {
		return models.Period{}, fmt.Errorf("load period: %w", err)
	}
	if !found {
		return models.Period{}, ErrPeriodNotFound
	}

	period.StartDate = validated.Start
	period.EndDate = validated.End
	period.Notes = validated.Notes
	if err := service.periods.Save(&period); err != nil {
		return models.Period{}, fmt.Errorf("save period: %w", err)
	}
	return period, nil
}

func (service *PeriodService) Delete(userID uint, periodID uint) error {
	deleted, err := service.periods.DeleteByUserAndID(userID, periodID)
	if err != nil {
		return fmt.Errorf("delete period: %w", err)
	}
	if !deleted {
		return ErrPeriodNotFound
	}
	return nil
}

// ClearAll removes the user's whole period history.
func (service *PeriodService) ClearAll(userID uint) error {
	if err := service.periods.DeleteAllByUser(userID); err != nil {
		return fmt.Errorf("clear periods: %w", err)
	}
	return nil
}

// RecordsFromPeriods converts stored periods into the normalized cycle
// history. Periods the cycle engine cannot use are reported as discards
// indexed into periods; an inverted end date is dropped while the start is
// kept.
func RecordsFromPeriods(periods []models.Period) ([]cycle.Record, []cycle.Discard) {
	return cycle.ValidateRecords(PeriodRecords(periods))
}

// PeriodRecords maps periods onto cycle records one to one without
// validation.
func PeriodRecords(periods []models.Period) []cycle.Record {
	records := make([]cycle.Record, len(periods))
	for index, period := range periods {
		records[index] = PeriodRecord(period)
	}
	return records
}

func PeriodRecord(period models.Period) cycle.Record {
	return cycle.Record{StartDate: period.StartDate, EndDate: period.EndDate}
}
