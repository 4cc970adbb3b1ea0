package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
)

const (
	DefaultReminderSchedule = "0 8 * * *"
	DefaultReminderLeadDays = 3
)

type ReminderKind string

const (
	ReminderPeriod    ReminderKind = "period"
	ReminderFertility ReminderKind = "fertility"
)

// Reminder is an upcoming-period or fertile-window notice for one user.
// Fertility reminders set FertileStart and DaysUntil; the period fields stay
// zero.
type Reminder struct {
	Kind           ReminderKind
	UserID         uint
	Email          string
	PredictedStart time.Time
	DaysUntil      int
	IsIrregular    bool
	WindowStart    time.Time
	WindowEnd      time.Time
	FertileStart   time.Time
}

type Notifier interface {
	Notify(ctx context.Context, reminder Reminder) error
}

type ReminderUserLister interface {
	ListAll() ([]models.User, error)
}

type ReminderInsightsBuilder interface {
	BuildForUser(userID uint, reference time.Time) (cycle.Insights, error)
}

type ReminderService struct {
	users    ReminderUserLister
	insights ReminderInsightsBuilder
	notifier Notifier
	location *time.Location
	schedule  string
	leadDays  int
	fertility bool
	now       func() time.Time
}

func NewReminderService(users ReminderUserLister, insights ReminderInsightsBuilder, notifier Notifier, location *time.Location, schedule string, leadDays int) *ReminderService {
	if location == nil {
		location = time.UTC
	}
	if schedule == "" {
		schedule = DefaultReminderSchedule
	}
	if leadDays < 0 {
		leadDays = DefaultReminderLeadDays
	}
	return &ReminderService{
		users:    users,
		insights: insights,
		notifier: notifier,
		location: location,
		schedule: schedule,
		leadDays: leadDays,
		now:      time.Now,
	}
}

// WithFertilityReminders also notifies users ahead of their fertile window.
func (service *ReminderService) WithFertilityReminders(enabled bool) *ReminderService {
	service.fertility = enabled
	return service
}

// Start registers the daily job and stops it when ctx is cancelled.
func (service *ReminderService) Start(ctx context.Context) error {
	scheduler := cron.New(cron.WithLocation(service.location))
	if _, err := scheduler.AddFunc(service.schedule, func() {
		sent, err := service.RunOnce(ctx, service.now())
		if err != nil {
			log.Printf("reminders: run failed: %v", err)
			return
		}
		log.Printf("reminders: sent %d", sent)
	}); err != nil {
		return fmt.Errorf("schedule reminders %q: %w", service.schedule, err)
	}

	scheduler.Start()
	go func() {
		<-ctx.Done()
		<-scheduler.Stop().Done()
	}()
	return nil
}

// RunOnce notifies every user whose next period is due within the lead window,
// including the predicted day itself, and with fertility reminders enabled
// every user whose fertile window opens within it. Failures for one user are
// logged and do not stop the others.
func (service *ReminderService) RunOnce(ctx context.Context, now time.Time) (int, error) {
	users, err := service.users.ListAll()
	if err != nil {
		return 0, fmt.Errorf("list users: %w", err)
	}

	today := TodayIn(now, service.location)
	sent := 0
	for _, user := range users {
		if err := ctx.Err(); err != nil {
			return sent, err
		}

		insights, err := service.insights.BuildForUser(user.ID, today)
		if err != nil {
			log.Printf("reminders: user %d: %v", user.ID, err)
			continue
		}
		due := make([]Reminder, 0, 2)
		if reminder, ok := ReminderFor(user, insights, service.leadDays); ok {
			due = append(due, reminder)
		}
		if service.fertility {
			if reminder, ok := FertilityReminderFor(user, insights, service.leadDays); ok {
				due = append(due, reminder)
			}
		}
		for _, reminder := range due {
			if err := service.notifier.Notify(ctx, reminder); err != nil {
				log.Printf("reminders: notify user %d (%s): %v", user.ID, reminder.Kind, err)
				continue
			}
			sent++
		}
	}
	return sent, nil
}

// ReminderFor decides whether insights warrant a reminder.
func ReminderFor(user models.User, insights cycle.Insights, leadDays int) (Reminder, bool) {
	prediction := insights.Prediction
	if insights.SetupNeeded || prediction == nil {
		return Reminder{}, false
	}
	if prediction.DaysUntil < 0 || prediction.DaysUntil > leadDays {
		return Reminder{}, false
	}

	windowStart, windowEnd := prediction.DisplayWindow()
	return Reminder{
		Kind:           ReminderPeriod,
		UserID:         user.ID,
		Email:          user.Email,
		PredictedStart: prediction.PredictedStartDate,
		DaysUntil:      prediction.DaysUntil,
		IsIrregular:    prediction.IsIrregular,
		WindowStart:    windowStart,
		WindowEnd:      windowEnd,
	}, true
}

// FertilityReminderFor reports a reminder when the fertile window of the
// current cycle opens within leadDays of the reference day, the opening day
// included.
func FertilityReminderFor(user models.User, insights cycle.Insights, leadDays int) (Reminder, bool) {
	if insights.SetupNeeded || insights.Phase == nil || insights.LastPeriodStart == nil {
		return Reminder{}, false
	}
	fertileDay := cycle.FertileWindowStartDay(insights.EffectiveCycleLength)
	daysUntil := fertileDay - insights.Phase.DayOfCycle
	if fertileDay < 0 || daysUntil < 0 || daysUntil > leadDays {
		return Reminder{}, false
	}

	return Reminder{
		Kind:         ReminderFertility,
		UserID:       user.ID,
		Email:        user.Email,
		DaysUntil:    daysUntil,
		FertileStart: cycle.CalendarDay(*insights.LastPeriodStart).AddDate(0, 0, fertileDay),
	}, true
}

// LogNotifier writes reminders to the standard logger.
type LogNotifier struct{}

func (LogNotifier) Notify(_ context.Context, reminder Reminder) error {
	if reminder.Kind == ReminderFertility {
		log.Printf("reminder: user %d (%s): fertile window opens on %s (in %d days)",
			reminder.UserID, reminder.Email, cycle.FormatDay(reminder.FertileStart), reminder.DaysUntil)
		return nil
	}
	if reminder.IsIrregular {
		log.Printf("reminder: user %d (%s): period expected between %s and %s",
			reminder.UserID, reminder.Email, cycle.FormatDay(reminder.WindowStart), cycle.FormatDay(reminder.WindowEnd))
		return nil
	}
	log.Printf("reminder: user %d (%s): period expected on %s (in %d days)",
		reminder.UserID, reminder.Email, cycle.FormatDay(reminder.PredictedStart), reminder.DaysUntil)
	return nil
}
