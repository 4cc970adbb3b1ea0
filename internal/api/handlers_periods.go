package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/models"
	"github.com/saukhya-health/saukhya/internal/services"
)

type periodInput struct {
	StartDate string `json:"start_date" form:"start_date"`
	EndDate   string `json:"end_date" form:"end_date"`
	Notes     string `json:"notes" form:"notes"`
}

type periodResponse struct {
	ID             uint    `json:"id"`
	StartDate      string  `json:"start_date"`
	EndDate        *string `json:"end_date"`
	DisplayEndDate string  `json:"display_end_date"`
	Ongoing        bool    `json:"ongoing"`
	DurationDays   *int    `json:"duration_days,omitempty"`
	Notes          string  `json:"notes"`
}

// newPeriodResponse renders a stored period. Ongoing periods get a
// display_end_date of start + the user's period duration; end_date stays null.
func newPeriodResponse(period models.Period, profile cycle.Profile) periodResponse {
	record := services.PeriodRecord(period)
	response := periodResponse{
		ID:             period.ID,
		StartDate:      cycle.FormatDay(period.StartDate),
		DisplayEndDate: cycle.FormatDay(record.DisplayEnd(profile.PeriodDurationDays)),
		Ongoing:        record.Ongoing(),
		Notes:          period.Notes,
	}
	if !record.Ongoing() {
		end := cycle.FormatDay(*period.EndDate)
		duration := cycle.DaysBetween(period.StartDate, *period.EndDate) + 1
		response.EndDate = &end
		response.DurationDays = &duration
	}
	return response
}

func (input periodInput) toService() services.PeriodInput {
	return services.PeriodInput{StartDate: input.StartDate, EndDate: input.EndDate, Notes: input.Notes}
}

func (handler *Handler) ListPeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	periods, err := handler.periodService.List(user.ID)
	if err != nil {
		log.Printf("periods: list user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load periods")
	}

	profile := services.ProfileFromUser(*user)
	response := make([]periodResponse, 0, len(periods))
	for _, period := range periods {
		response = append(response, newPeriodResponse(period, profile))
	}
	return c.JSON(response)
}

func (handler *Handler) CreatePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := periodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	period, err := handler.periodService.Create(user.ID, input.toService(), handler.today())
	if err != nil {
		return handler.respondPeriodError(c, user.ID, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newPeriodResponse(period, services.ProfileFromUser(*user)))
}

func (handler *Handler) UpdatePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	periodID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	input := periodInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	period, err := handler.periodService.Update(user.ID, periodID, input.toService(), handler.today())
	if err != nil {
		return handler.respondPeriodError(c, user.ID, err)
	}
	return c.JSON(newPeriodResponse(period, services.ProfileFromUser(*user)))
}

func (handler *Handler) DeletePeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	periodID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid period id")
	}

	if err := handler.periodService.Delete(user.ID, periodID); err != nil {
		return handler.respondPeriodError(c, user.ID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) ClearPeriods(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.periodService.ClearAll(user.ID); err != nil {
		return handler.respondPeriodError(c, user.ID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (handler *Handler) respondPeriodError(c *fiber.Ctx, userID uint, err error) error {
	switch {
	case errors.Is(err, services.ErrPeriodNotFound):
		return apiError(c, fiber.StatusNotFound, "period not found")
	case errors.Is(err, services.ErrPeriodStartInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid start date")
	case errors.Is(err, services.ErrPeriodEndInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid end date")
	case errors.Is(err, services.ErrPeriodEndBeforeStart):
		return apiError(c, fiber.StatusBadRequest, "end date before start date")
	case errors.Is(err, services.ErrPeriodTooLong):
		return apiError(c, fiber.StatusBadRequest, "period too long")
	case errors.Is(err, services.ErrPeriodStartTooEarly):
		return apiError(c, fiber.StatusBadRequest, "start date too early")
	case errors.Is(err, services.ErrPeriodInFuture):
		return apiError(c, fiber.StatusBadRequest, "start date in the future")
	case errors.Is(err, services.ErrPeriodNotesTooLong):
		return apiError(c, fiber.StatusBadRequest, "notes too long")
	default:
		log.Printf("periods: user %d: %v", userID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save period")
	}
}
