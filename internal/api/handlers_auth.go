package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/models"
	"github.com/saukhya-health/saukhya/internal/services"
)

type credentialsInput struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type userResponse struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	CycleLength  int    `json:"cycle_length_days"`
	PeriodLength int    `json:"period_duration_days"`
}

type sessionResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

func newUserResponse(user models.User) userResponse {
	profile := services.ProfileFromUser(user)
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		CycleLength:  profile.CycleLengthDays,
		PeriodLength: profile.PeriodDurationDays,
	}
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password)
	switch {
	case errors.Is(err, services.ErrAuthEmailInvalid):
		return apiError(c, fiber.StatusBadRequest, "invalid email")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case errors.Is(err, services.ErrAuthEmailTaken):
		return apiError(c, fiber.StatusConflict, "email already exists")
	case err != nil:
		log.Printf("auth: register failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to create account")
	}

	return handler.respondSession(c, fiber.StatusCreated, user)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	if handler.loginLimiter.blocked(limiterKey, handler.now()) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	if errors.Is(err, services.ErrAuthCredentialsInvalid) {
		handler.loginLimiter.fail(limiterKey, handler.now())
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	}
	if err != nil {
		log.Printf("auth: login failed: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to sign in")
	}

	handler.loginLimiter.reset(limiterKey)
	return handler.respondSession(c, fiber.StatusOK, user)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) respondSession(c *fiber.Ctx, status int, user models.User) error {
	token, err := handler.buildToken(&user, defaultAuthTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	handler.setAuthCookie(c, token)
	return c.Status(status).JSON(sessionResponse{User: newUserResponse(user), Token: token})
}
