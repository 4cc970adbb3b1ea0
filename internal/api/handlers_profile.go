package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/cycle"
	"github.com/saukhya-health/saukhya/internal/services"
)

type profileInput struct {
	CycleLengthDays    int `json:"cycle_length_days" form:"cycle_length_days"`
	PeriodDurationDays int `json:"period_duration_days" form:"period_duration_days"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(services.ProfileFromUser(*user))
}

func (handler *Handler) UpdateProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := profileInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	profile, err := handler.profileService.Update(user.ID, cycle.Profile{
		CycleLengthDays:    input.CycleLengthDays,
		PeriodDurationDays: input.PeriodDurationDays,
	})
	switch {
	case errors.Is(err, services.ErrCycleLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "cycle length out of range")
	case errors.Is(err, services.ErrPeriodLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, "period length out of range")
	case errors.Is(err, services.ErrProfileUserNotFound):
		return apiError(c, fiber.StatusNotFound, "user not found")
	case err != nil:
		log.Printf("profile: update user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to update profile")
	}
	return c.JSON(profile)
}
