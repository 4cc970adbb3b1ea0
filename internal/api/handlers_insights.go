package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/services"
)

type phaseResponse struct {
	Phase      cycle.Phase `json:"phase"`
	DayOfCycle int         `json:"day_of_cycle"`
	CycleDay   int         `json:"cycle_day"`
}

type predictionResponse struct {
	PredictedStartDate string `json:"predicted_start_date"`
	DaysUntil          int    `json:"days_until"`
	IsIrregular        bool   `json:"is_irregular"`
	RangeStart         string `json:"range_start"`
	RangeEnd           string `json:"range_end"`
	MarginDays         int    `json:"margin_days"`
	CycleLengthDays    int    `json:"cycle_length_days"`
	UsedFallbackLength bool   `json:"used_fallback_length"`
}

type insightsResponse struct {
	ReferenceDate        string                `json:"reference_date"`
	SetupNeeded          bool                  `json:"setup_needed"`
	RecordCount          int                   `json:"record_count"`
	EffectiveCycleLength int                   `json:"effective_cycle_length"`
	AveragePeriodLength  float64               `json:"average_period_length,omitempty"`
	LastPeriodStart      string                `json:"last_period_start,omitempty"`
	Statistics           *cycle.Statistics     `json:"statistics,omitempty"`
	Phase                *phaseResponse        `json:"phase,omitempty"`
	Countdown            *cycle.Countdown      `json:"countdown,omitempty"`
	Prediction           *predictionResponse   `json:"prediction,omitempty"`
	Recommendation       *cycle.Recommendation `json:"recommendation,omitempty"`
	Notices              []string              `json:"notices"`
}

func newInsightsResponse(insights cycle.Insights) insightsResponse {
	response := insightsResponse{
		ReferenceDate:        cycle.FormatDay(insights.ReferenceDate),
		SetupNeeded:          insights.SetupNeeded,
		RecordCount:          insights.RecordCount,
		EffectiveCycleLength: insights.EffectiveCycleLength,
		AveragePeriodLength:  insights.AveragePeriodLength,
		Statistics:           insights.Statistics,
		Countdown:            insights.Countdown,
		Recommendation:       insights.Recommendation,
		Notices:              services.NoticeCodes(insights.Notices),
	}
	if insights.LastPeriodStart != nil {
		response.LastPeriodStart = cycle.FormatDay(*insights.LastPeriodStart)
	}
	if phase := insights.Phase; phase != nil {
		response.Phase = &phaseResponse{Phase: phase.Phase, DayOfCycle: phase.DayOfCycle, CycleDay: phase.CycleDay()}
	}
	if prediction := insights.Prediction; prediction != nil {
		response.Prediction = &predictionResponse{
			PredictedStartDate: cycle.FormatDay(prediction.PredictedStartDate),
			DaysUntil:          prediction.DaysUntil,
			IsIrregular:        prediction.IsIrregular,
			RangeStart:         cycle.FormatDay(prediction.RangeStart),
			RangeEnd:           cycle.FormatDay(prediction.RangeEnd),
			MarginDays:         prediction.MarginDays,
			CycleLengthDays:    prediction.CycleLengthDays,
			UsedFallbackLength: prediction.UsedFallbackLength,
		}
	}
	return response
}

// GetInsights runs the cycle engine for ?date=YYYY-MM-DD, or today in the
// server's zone.
func (handler *Handler) GetInsights(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	reference, err := services.ParseReferenceDay(c.Query("date"), handler.now(), handler.location)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	}

	insights, err := handler.insightsService.BuildForUser(user.ID, reference)
	if errors.Is(err, services.ErrInsightsUserNotFound) {
		return apiError(c, fiber.StatusNotFound, "user not found")
	}
	if err != nil {
		log.Printf("insights: user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build insights")
	}
	return c.JSON(newInsightsResponse(insights))
}
