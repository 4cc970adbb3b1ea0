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
	ErrDayInvalid       = errors.New("day invalid")
	ErrDayTooEarly      = errors.New("day too early")
	ErrDayInFuture      = errors.New("day in the future")
	ErrDayRangeInvalid  = errors.New("day range invalid")
	ErrDayFlowInvalid   = errors.New("flow value invalid")
	ErrDayMoodInvalid   = errors.New("mood value invalid")
	ErrDayNotesTooLong  = errors.New("day notes too long")
	ErrDayEntryNotFound = errors.New("day entry not found")
)

const maxDayNotesLength = 1000

var (
	allowedFlows = map[string]struct{}{
		models.FlowNone:   {},
		models.FlowLight:  {},
		models.FlowMedium: {},
		models.FlowHeavy:  {},
	}
	allowedMoods = map[string]struct{}{
		"":                   {},
		models.MoodHappy:     {},
		models.MoodNeutral:   {},
		models.MoodSad:       {},
		models.MoodIrritated: {},
	}
)

type DayEntryInput struct {
	Flow       string
	Mood       string
	Notes      string
	SymptomIDs []uint
}

type DayLogRepository interface {
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyLog, error)
	FindByUserAndDay(userID uint, day time.Time) (models.DailyLog, bool, error)
	Create(entry *models.DailyLog) error
	Save(entry *models.DailyLog) error
	DeleteByUserAndDay(userID uint, day time.Time) (bool, error)
	DeleteAllByUser(userID uint) error
}

type DaySymptomValidator interface {
	ValidateSymptomIDs(userID uint, ids []uint) ([]uint, error)
}

type DayService struct {
	logs     DayLogRepository
	symptoms DaySymptomValidator
}

func NewDayService(logs DayLogRepository, symptoms DaySymptomValidator) *DayService {
	return &DayService{
		logs:     logs,
		symptoms: symptoms,
	}
}

// ParseDayKey parses a YYYY-MM-DD day that may be logged: not before
// cycle.EarliestDay and not after today.
func ParseDayKey(raw string, today time.Time) (time.Time, error) {
	day, err := cycle.ParseDay(raw)
	if err != nil {
		return time.Time{}, ErrDayInvalid
	}
	if day.Before(cycle.EarliestDay) {
		return time.Time{}, ErrDayTooEarly
	}
	if day.After(cycle.CalendarDay(today)) {
		return time.Time{}, ErrDayInFuture
	}
	return day, nil
}

// NormalizeDayEntryInput lowercases flow and mood, defaults an empty flow to
// none and trims notes.
func NormalizeDayEntryInput(input DayEntryInput) (DayEntryInput, error) {
	input.Flow = strings.ToLower(strings.TrimSpace(input.Flow))
	if input.Flow == "" {
		input.Flow = models.FlowNone
	}
	if _, ok := allowedFlows[input.Flow]; !ok {
		return DayEntryInput{}, ErrDayFlowInvalid
	}

	input.Mood = strings.ToLower(strings.TrimSpace(input.Mood))
	if _, ok := allowedMoods[input.Mood]; !ok {
		return DayEntryInput{}, ErrDayMoodInvalid
	}

	input.Notes = strings.TrimSpace(input.Notes)
	if len([]rune(input.Notes)) > maxDayNotesLength {
		return DayEntryInput{}, ErrDayNotesTooLong
	}
	return input, nil
}

// List returns logs between from and to inclusive. A nil bound is open.
func (service *DayService) List(userID uint, from *time.Time, to *time.Time) ([]models.DailyLog, error) {
	var fromStart, toEnd *time.Time
	if from != nil {
		start := cycle.CalendarDay(*from)
		fromStart = &start
	}
	if to != nil {
		end := cycle.CalendarDay(*to).AddDate(0, 0, 1)
		toEnd = &end
	}
	if fromStart != nil && toEnd != nil && !fromStart.Before(*toEnd) {
		return nil, ErrDayRangeInvalid
	}

	logs, err := service.logs.ListByUserRange(userID, fromStart, toEnd)
	if err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}

// Get returns the stored log for day, or an empty unsaved entry.
func (service *DayService) Get(userID uint, day time.Time) (models.DailyLog, error) {
	day = cycle.CalendarDay(day)
	entry, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("load daily log: %w", err)
	}
	if !found {
		return models.DailyLog{
			UserID:     userID,
			Date:       day,
			Flow:       models.FlowNone,
			SymptomIDs: []uint{},
		}, nil
	}
	return entry, nil
}

// Upsert replaces the log for day with input.
func (service *DayService) Upsert(userID uint, day time.Time, input DayEntryInput) (models.DailyLog, error) {
	input, err := NormalizeDayEntryInput(input)
	if err != nil {
		return models.DailyLog{}, err
	}
	symptomIDs, err := service.symptoms.ValidateSymptomIDs(userID, input.SymptomIDs)
	if err != nil {
		if errors.Is(err, ErrInvalidSymptomID) {
			return models.DailyLog{}, err
		}
		return models.DailyLog{}, fmt.Errorf("validate symptoms: %w", err)
	}

	day = cycle.CalendarDay(day)
	entry, found, err := service.logs.FindByUserAndDay(userID, day)
	if err != nil {
		return models.DailyLog{}, fmt.Errorf("load daily log: %w", err)
	}

	entry.Flow = input.Flow
	entry.Mood = input.Mood
	entry.Notes = input.Notes
	entry.SymptomIDs = symptomIDs
	if found {
		if err := service.logs.Save(&entry); err != nil {
			return models.DailyLog{}, fmt.Errorf("update daily log: %w", err)
		}
		return entry, nil
	}

	entry.UserID = userID
	entry.Date = day
	if err := service.logs.Create(&entry); err != nil {
		return models.DailyLog{}, fmt.Errorf("create daily log: %w", err)
	}
	return entry, nil
}

func (service *DayService) Delete(userID uint, day time.Time) error {
	deleted, err := service.logs.DeleteByUserAndDay(userID, cycle.CalendarDay(day))
	if err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	if !deleted {
		return ErrDayEntryNotFound
	}
	return nil
}

func (service *DayService) ClearAll(userID uint) error {
	if err := service.logs.DeleteAllByUser(userID); err != nil {
		return fmt.Errorf("clear daily logs: %w", err)
	}
	return nil
}

// DayHasData reports whether an entry records anything beyond its date.
func DayHasData(entry models.DailyLog) bool {
	return (entry.Flow != models.FlowNone && entry.Flow != "") ||
		entry.Mood != "" ||
		len(entry.SymptomIDs) > 0 ||
		strings.TrimSpace(entry.Notes) != ""
}
