package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
	"gorm.io/gorm"
)

var (
	ErrReferenceDateInvalid = errors.New("reference date invalid")
	ErrInsightsUserNotFound = errors.New("insights user not found")
)

type InsightsPeriodReader interface {
	ListByUser(userID uint) ([]models.Period, error)
}

type InsightsUserReader interface {
	FindByID(userID uint) (models.User, error)
}

type InsightsService struct {
	periods InsightsPeriodReader
	users   InsightsUserReader
}

func NewInsightsService(periods InsightsPeriodReader, users InsightsUserReader) *InsightsService {
	return &InsightsService{periods: periods, users: users}
}

// BuildForUser loads the user's periods and declared profile and runs the
// cycle engine for the reference day. Discarded periods are logged and added
// to the returned notices; they never fail the call.
func (service *InsightsService) BuildForUser(userID uint, reference time.Time) (cycle.Insights, error) {
	user, err := service.users.FindByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return cycle.Insights{}, ErrInsightsUserNotFound
	}
	if err != nil {
		return cycle.Insights{}, fmt.Errorf("load user: %w", err)
	}

	periods, err := service.periods.ListByUser(userID)
	if err != nil {
		return cycle.Insights{}, fmt.Errorf("load periods: %w", err)
	}

	records, discards := RecordsFromPeriods(periods)
	for _, discard := range discards {
		log.Printf("insights: user %d: discarded record %d: %v", userID, discard.Index, discard.Err)
	}

	insights := cycle.Build(records, ProfileFromUser(user), reference)
	for _, discard := range discards {
		insights.Notices = append(insights.Notices, discard)
	}
	return insights, nil
}

// NoticeCodes maps engine notices onto stable strings for API clients.
func NoticeCodes(notices []error) []string {
	codes := make([]string, 0, len(notices))
	for _, notice := range notices {
		switch {
		case errors.Is(notice, cycle.ErrInvalidRecord):
			codes = append(codes, "invalid_record_discarded")
		case errors.Is(notice, cycle.ErrInsufficientHistory):
			codes = append(codes, "insufficient_history")
		case errors.Is(notice, cycle.ErrReferenceBeforeHistory):
			codes = append(codes, "reference_date_precedes_history")
		default:
			codes = append(codes, "unknown")
		}
	}
	return codes
}
