package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/saukhya-health/saukhya/internal/cycle"
)

const defaultTelegramAPIBase = "https://api.telegram.org"

// TelegramNotifier sends reminders to a single Telegram chat and sends each
// user at most one reminder of each kind per calendar day.
type TelegramNotifier struct {
	apiBase  string
	botToken string
	chatID   string
	client   *http.Client
	now      func() time.Time

	mu   sync.Mutex
	sent map[sentKey]time.Time
}

type sentKey struct {
	userID uint
	kind   ReminderKind
}

func NewTelegramNotifier(botToken string, chatID string) *TelegramNotifier {
	return &TelegramNotifier{
		apiBase:  defaultTelegramAPIBase,
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 8 * time.Second},
		now:      time.Now,
		sent:     make(map[sentKey]time.Time),
	}
}

// WithClock replaces the clock used to decide the current calendar day.
func (notifier *TelegramNotifier) WithClock(now func() time.Time) *TelegramNotifier {
	if now != nil {
		notifier.now = now
	}
	return notifier
}

// WithAPIBase points the notifier at another Bot API host.
func (notifier *TelegramNotifier) WithAPIBase(apiBase string) *TelegramNotifier {
	notifier.apiBase = strings.TrimRight(apiBase, "/")
	return notifier
}

func (notifier *TelegramNotifier) Notify(ctx context.Context, reminder Reminder) error {
	key := sentKey{userID: reminder.UserID, kind: reminderKind(reminder)}
	if !notifier.claim(key, notifier.now()) {
		return nil
	}
	if err := notifier.send(ctx, reminderMessage(reminder)); err != nil {
		notifier.release(key)
		return err
	}
	return nil
}

func (notifier *TelegramNotifier) claim(key sentKey, now time.Time) bool {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()

	today := cycle.CalendarDay(now)
	if sentOn, ok := notifier.sent[key]; ok && sentOn.Equal(today) {
		return false
	}
	notifier.sent[key] = today
	return true
}

func (notifier *TelegramNotifier) release(key sentKey) {
	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	delete(notifier.sent, key)
}

func reminderKind(reminder Reminder) ReminderKind {
	if reminder.Kind == "" {
		return ReminderPeriod
	}
	return reminder.Kind
}

func (notifier *TelegramNotifier) send(ctx context.Context, message string) error {
	values := url.Values{}
	values.Set("chat_id", notifier.chatID)
	values.Set("text", message)

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", notifier.apiBase, notifier.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := notifier.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("telegram status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

func reminderMessage(reminder Reminder) string {
	if reminder.Kind == ReminderFertility {
		if reminder.DaysUntil == 0 {
			return fmt.Sprintf("Saukhya reminder: your fertile window starts today (%s).", reminder.FertileStart.Format("Jan 2"))
		}
		return fmt.Sprintf("Saukhya reminder: your fertile window starts in %d day(s) on %s.",
			reminder.DaysUntil, reminder.FertileStart.Format("Jan 2"))
	}
	if reminder.IsIrregular {
		return fmt.Sprintf("Saukhya reminder: your next period is expected between %s and %s.",
			reminder.WindowStart.Format("Jan 2"), reminder.WindowEnd.Format("Jan 2"))
	}
	if reminder.DaysUntil == 0 {
		return fmt.Sprintf("Saukhya reminder: your period is expected today (%s).", reminder.PredictedStart.Format("Jan 2"))
	}
	return fmt.Sprintf("Saukhya reminder: your predicted period starts in %d day(s) on %s.",
		reminder.DaysUntil, reminder.PredictedStart.Format("Jan 2"))
}
