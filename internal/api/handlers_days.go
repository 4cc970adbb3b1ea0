package api

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
	"github.com/saukhya-health/saukhya/internal/services"
)

type dayInput struct {
	Flow       string `json:"flow" form:"flow"`
	Mood       string `json:"mood" form:"mood"`
	Notes      string `json:"notes" form:"notes"`
	SymptomIDs []uint `json:"symptom_ids" form:"symptom_ids"`
}

type dayResponse struct {
	Date       string `json:"date"`
	Flow       string `json:"flow"`
	Mood       string `json:"mood"`
	SymptomIDs []uint `json:"symptom_ids"`
	Notes      string `json:"notes"`
	HasData    bool   `json:"has_data"`
}

func newDayResponse(entry models.DailyLog) dayResponse {
	symptomIDs := entry.SymptomIDs
	if symptomIDs == nil {
		symptomIDs = []uint{}
	}
	return dayResponse{
		Date:       cycle.FormatDay(entry.Date),
		Flow:       entry.Flow,
		Mood:       entry.Mood,
		SymptomIDs: symptomIDs,
		Notes:      entry.Notes,
		HasData:    services.DayHasData(entry),
	}
}

func (handler *Handler) ListDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	from, to, err := parseDayRangeQuery(c)
	if err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	}

	logs, err := handler.dayService.List(user.ID, from, to)
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}
	response := make([]dayResponse, 0, len(logs))
	for _, entry := range logs {
		response = append(response, newDayResponse(entry))
	}
	return c.JSON(response)
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := services.ParseDayKey(c.Params("date"), handler.today())
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}

	entry, err := handler.dayService.Get(user.ID, day)
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}
	return c.JSON(newDayResponse(entry))
}

func (handler *Handler) UpsertDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := services.ParseDayKey(c.Params("date"), handler.today())
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}

	input := dayInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	entry, err := handler.dayService.Upsert(user.ID, day, services.DayEntryInput{
		Flow:       input.Flow,
		Mood:       input.Mood,
		Notes:      input.Notes,
		SymptomIDs: input.SymptomIDs,
	})
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}
	return c.JSON(newDayResponse(entry))
}

func (handler *Handler) DeleteDay(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	day, err := services.ParseDayKey(c.Params("date"), handler.today())
	if err != nil {
		return handler.respondDayError(c, user.ID, err)
	}

	if err := handler.dayService.Delete(user.ID, day); err != nil {
		return handler.respondDayError(c, user.ID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ClearDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.dayService.ClearAll(user.ID); err != nil {
		return handler.respondDayError(c, user.ID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// parseDayRangeQuery reads the optional from and to query values.
func parseDayRangeQuery(c *fiber.Ctx) (*time.Time, *time.Time, error) {
	parse := func(name string) (*time.Time, error) {
		raw := strings.TrimSpace(c.Query(name))
		if raw == "" {
			return nil, nil
		}
		day, err := cycle.ParseDay(raw)
		if err != nil {
			return nil, err
		}
		return &day, nil
	}

	from, err := parse("from")
	if err != nil {
		return nil, nil, err
	}
	to, err := parse("to")
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}

func (handler *Handler) respondDayError(c *fiber.Ctx, userID uint, err error) error {
	switch {
	case errors.Is(err, services.ErrDayInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid date")
	case errors.Is(err, services.ErrDayTooEarly):
		return apiError(c, fiber.StatusBadRequest, "date too early")
	case errors.Is(err, services.ErrDayInFuture):
		return apiError(c, fiber.StatusBadRequest, "date in the future")
	case errors.Is(err, services.ErrDayRangeInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid date range")
	case errors.Is(err, services.ErrDayFlowInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid flow value")
	case errors.Is(err, services.ErrDayMoodInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid mood value")
	case errors.Is(err, services.ErrDayNotesTooLong):
		return apiError(c, fiber.StatusBadRequest, "notes too long")
	case errors.Is(err, services.ErrInvalidSymptomID):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom ids")
	case errors.Is(err, services.ErrDayEntryNotFound):
		return apiError(c, fiber.StatusNotFound, "day not found")
	default:
		log.Printf("days: user %d: %v", userID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save day")
	}
}
