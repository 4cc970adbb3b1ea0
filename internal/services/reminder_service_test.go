package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
)

type recordingNotifier struct {
	reminders []Reminder
	err       error
}

func (notifier *recordingNotifier) Notify(_ context.Context, reminder Reminder) error {
	if notifier.err != nil {
		return notifier.err
	}
	notifier.reminders = append(notifier.reminders, reminder)
	return nil
}

func newReminderFixture(t *testing.T, notifier Notifier) *ReminderService {
	t.Helper()
	users := &stubUserRepository{users: []models.User{
		{ID: 1, Email: "due@example.com", CycleLength: 28, PeriodLength: 5},
		{ID: 2, Email: "empty@example.com", CycleLength: 28, PeriodLength: 5},
		{ID: 3, Email: "overdue@example.com", CycleLength: 28, PeriodLength: 5},
	}}
	periods := &stubPeriodRepository{}
	periods.add(t, 1, "2024-01-01", "2024-01-05")
	periods.add(t, 1, "2024-01-29", "2024-02-02")
	periods.add(t, 1, "2024-02-26", "2024-03-01")
	periods.add(t, 3, "2024-01-01", "")
	periods.add(t, 3, "2024-01-29", "")

	insights := NewInsightsService(periods, users)
	return NewReminderService(users, insights, notifier, time.UTC, "", DefaultReminderLeadDays)
}

func TestReminderServiceRunOnceNotifiesDueUsers(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newReminderFixture(t, notifier)

	sent, err := service.RunOnce(context.Background(), time.Date(2024, 3, 23, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunOnce() unexpected error: %v", err)
	}
	if sent != 1 || len(notifier.reminders) != 1 {
		t.Fatalf("expected one reminder, got %d (%d recorded)", sent, len(notifier.reminders))
	}

	reminder := notifier.reminders[0]
	if reminder.UserID != 1 || reminder.DaysUntil != 2 {
		t.Fatalf("unexpected reminder: %#v", reminder)
	}
	if !reminder.PredictedStart.Equal(mustParseDay(t, "2024-03-25")) {
		t.Fatalf("unexpected predicted start: %s", reminder.PredictedStart)
	}
}

func TestReminderServiceRunOnceContinuesAfterNotifyFailure(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("offline")}
	service := newReminderFixture(t, notifier)

	sent, err := service.RunOnce(context.Background(), time.Date(2024, 3, 23, 10, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunOnce() unexpected error: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no successful reminders, got %d", sent)
	}
}

func TestReminderServiceRunOnceStopsOnCancelledContext(t *testing.T) {
	service := newReminderFixture(t, &recordingNotifier{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := service.RunOnce(ctx, time.Date(2024, 3, 23, 10, 0, 0, 0, time.UTC)); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestReminderServiceStartRejectsInvalidSchedule(t *testing.T) {
	users := &stubUserRepository{}
	service := NewReminderService(users, NewInsightsService(&stubPeriodRepository{}, users), LogNotifier{}, time.UTC, "not a schedule", 3)
	if err := service.Start(context.Background()); err == nil {
		t.Fatal("expected invalid schedule error")
	}
}

func TestReminderFor(t *testing.T) {
	user := models.User{ID: 5, Email: "owner@example.com"}
	predicted := mustParseDay(t, "2024-03-25")

	tests := []struct {
		name     string
		insights cycle.Insights
		want     bool
	}{
		{name: "setup needed", insights: cycle.Insights{SetupNeeded: true}},
		{name: "no prediction", insights: cycle.Insights{}},
		{name: "inside lead window", insights: cycle.Insights{Prediction: &cycle.Prediction{PredictedStartDate: predicted, DaysUntil: 3}}, want: true},
		{name: "predicted today", insights: cycle.Insights{Prediction: &cycle.Prediction{PredictedStartDate: predicted, DaysUntil: 0}}, want: true},
		{name: "too far ahead", insights: cycle.Insights{Prediction: &cycle.Prediction{PredictedStartDate: predicted, DaysUntil: 4}}},
		{name: "overdue", insights: cycle.Insights{Prediction: &cycle.Prediction{PredictedStartDate: predicted, DaysUntil: -1}}},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			reminder, due := ReminderFor(user, testCase.insights, 3)
			if due != testCase.want {
				t.Fatalf("ReminderFor() due = %v, want %v", due, testCase.want)
			}
			if due && (reminder.UserID != 5 || !reminder.WindowStart.Equal(predicted)) {
				t.Fatalf("unexpected reminder: %#v", reminder)
			}
		})
	}
}

func TestReminderForIrregularUsesRange(t *testing.T) {
	prediction := &cycle.Prediction{
		PredictedStartDate: mustParseDay(t, "2024-03-25"),
		DaysUntil:          2,
		IsIrregular:        true,
		RangeStart:         mustParseDay(t, "2024-03-21"),
		RangeEnd:           mustParseDay(t, "2024-03-29"),
	}
	reminder, due := ReminderFor(models.User{ID: 1}, cycle.Insights{Prediction: prediction}, 3)
	if !due || !reminder.WindowStart.Equal(prediction.RangeStart) || !reminder.WindowEnd.Equal(prediction.RangeEnd) {
		t.Fatalf("expected irregular window, got %#v", reminder)
	}
}

func TestReminderServiceRunOnceSendsFertilityReminders(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newReminderFixture(t, notifier).WithFertilityReminders(true)

	// User 1 last started on 2024-02-26 with a 28-day cycle, so the fertile
	// window opens on cycle day 12: 2024-03-09.
	sent, err := service.RunOnce(context.Background(), time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunOnce() unexpected error: %v", err)
	}
	if sent != 1 || len(notifier.reminders) != 1 {
		t.Fatalf("expected one fertility reminder, got %d (%d recorded)", sent, len(notifier.reminders))
	}
	reminder := notifier.reminders[0]
	if reminder.Kind != ReminderFertility || reminder.UserID != 1 || reminder.DaysUntil != 2 {
		t.Fatalf("unexpected reminder: %#v", reminder)
	}
	if !reminder.FertileStart.Equal(mustParseDay(t, "2024-03-09")) {
		t.Fatalf("unexpected fertile start: %s", reminder.FertileStart)
	}
}

func TestReminderServiceRunOnceSkipsFertilityByDefault(t *testing.T) {
	notifier := &recordingNotifier{}
	service := newReminderFixture(t, notifier)

	sent, err := service.RunOnce(context.Background(), time.Date(2024, 3, 7, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("RunOnce() unexpected error: %v", err)
	}
	if sent != 0 {
		t.Fatalf("expected no reminders without fertility enabled, got %d", sent)
	}
}

func TestFertilityReminderFor(t *testing.T) {
	user := models.User{ID: 5, Email: "owner@example.com"}
	lastStart := mustParseDay(t, "2024-03-01")

	tests := []struct {
		name       string
		dayOfCycle int
		want       bool
		daysUntil  int
	}{
		{name: "opens today", dayOfCycle: 12, want: true, daysUntil: 0},
		{name: "inside lead window", dayOfCycle: 9, want: true, daysUntil: 3},
		{name: "too far ahead", dayOfCycle: 8},
		{name: "already open", dayOfCycle: 13},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			insights := cycle.Insights{
				EffectiveCycleLength: 28,
				LastPeriodStart:      &lastStart,
				Phase:                &cycle.PhaseResult{DayOfCycle: testCase.dayOfCycle},
			}
			reminder, due := FertilityReminderFor(user, insights, 3)
			if due != testCase.want {
				t.Fatalf("FertilityReminderFor() due = %v, want %v", due, testCase.want)
			}
			if due && (reminder.DaysUntil != testCase.daysUntil || !reminder.FertileStart.Equal(mustParseDay(t, "2024-03-13"))) {
				t.Fatalf("unexpected reminder: %#v", reminder)
			}
		})
	}

	if _, due := FertilityReminderFor(user, cycle.Insights{SetupNeeded: true}, 3); due {
		t.Fatal("expected no reminder without history")
	}
}
