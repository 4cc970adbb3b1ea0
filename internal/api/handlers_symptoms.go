package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/saukhya-health/saukhya/internal/models"
	"github.com/saukhya-health/saukhya/internal/services"
)

type symptomInput struct {
	Name  string `json:"name" form:"name"`
	Icon  string `json:"icon" form:"icon"`
	Color string `json:"color" form:"color"`
}

type symptomResponse struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Icon    string `json:"icon"`
	Color   string `json:"color"`
	Builtin bool   `json:"builtin"`
}

type symptomFrequencyResponse struct {
	SymptomID uint   `json:"symptom_id"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
	Count     int    `json:"count"`
	TotalDays int    `json:"total_days"`
}

func newSymptomResponse(symptom models.SymptomType) symptomResponse {
	return symptomResponse{
		ID:      symptom.ID,
		Name:    symptom.Name,
		Icon:    symptom.Icon,
		Color:   symptom.Color,
		Builtin: symptom.IsBuiltin,
	}
}

func (handler *Handler) ListSymptoms(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	symptoms, err := handler.symptomService.FetchSymptoms(user.ID)
	if err != nil {
		log.Printf("symptoms: list user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to load symptoms")
	}
	response := make([]symptomResponse, 0, len(symptoms))
	for _, symptom := range symptoms {
		response = append(response, newSymptomResponse(symptom))
	}
	return c.JSON(response)
}

func (handler *Handler) CreateSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := symptomInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	symptom, err := handler.symptomService.CreateSymptomForUser(user.ID, input.Name, input.Icon, input.Color)
	if err != nil {
		return handler.respondSymptomError(c, user.ID, err)
	}
	return c.Status(fiber.StatusCreated).JSON(newSymptomResponse(symptom))
}

func (handler *Handler) DeleteSymptom(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	symptomID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "invalid symptom id")
	}

	if err := handler.symptomService.DeleteSymptomForUser(user.ID, symptomID); err != nil {
		return handler.respondSymptomError(c, user.ID, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SymptomFrequency counts symptoms across the logs in the optional from/to
// range.
func (handler *Handler) SymptomFrequency(c *fiber.Ctx) error {
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

	frequencies, err := handler.symptomService.CalculateFrequencies(user.ID, logs)
	if err != nil {
		log.Printf("symptoms: frequency user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to count symptoms")
	}
	response := make([]symptomFrequencyResponse, 0, len(frequencies))
	for _, frequency := range frequencies {
		response = append(response, symptomFrequencyResponse(frequency))
	}
	return c.JSON(response)
}

func (handler *Handler) respondSymptomError(c *fiber.Ctx, userID uint, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidSymptomName):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom name")
	case errors.Is(err, services.ErrInvalidSymptomColor):
		return apiError(c, fiber.StatusBadRequest, "invalid symptom color")
	case errors.Is(err, services.ErrSymptomNameTaken):
		return apiError(c, fiber.StatusConflict, "symptom already exists")
	case errors.Is(err, services.ErrSymptomNotFound):
		return apiError(c, fiber.StatusNotFound, "symptom not found")
	case errors.Is(err, services.ErrBuiltinSymptomDeleteForbidden):
		return apiError(c, fiber.StatusBadRequest, "built-in symptom cannot be deleted")
	default:
		log.Printf("symptoms: user %d: %v", userID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to save symptom")
	}
}
