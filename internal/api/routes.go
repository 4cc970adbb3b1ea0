package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Post("/register", handler.Register)
	auth.Post("/login", handler.Login)
	auth.Post("/logout", handler.AuthRequired, handler.Logout)

	api.Get("/profile", handler.AuthRequired, handler.GetProfile)
	api.Put("/profile", handler.AuthRequired, handler.UpdateProfile)

	periods := api.Group("/periods", handler.AuthRequired)
	periods.Get("", handler.ListPeriods)
	periods.Post("", handler.CreatePeriod)
	periods.Delete("", handler.ClearPeriods)
	periods.Put("/:id", handler.UpdatePeriod)
	periods.Delete("/:id", handler.DeletePeriod)

	days := api.Group("/days", handler.AuthRequired)
	days.Get("", handler.ListDays)
	days.Delete("", handler.ClearDays)
	days.Get("/:date", handler.GetDay)
	days.Put("/:date", handler.UpsertDay)
	days.Delete("/:date", handler.DeleteDay)

	symptoms := api.Group("/symptoms", handler.AuthRequired)
	symptoms.Get("", handler.ListSymptoms)
	symptoms.Post("", handler.CreateSymptom)
	symptoms.Get("/frequency", handler.SymptomFrequency)
	symptoms.Delete("/:id", handler.DeleteSymptom)

	api.Get("/insights", handler.AuthRequired, handler.GetInsights)

	export := api.Group("/export", handler.AuthRequired)
	export.Get("/summary", handler.ExportSummary)
	export.Get("/csv", handler.ExportCSV)
	export.Get("/days.csv", handler.ExportDaysCSV)

	api.Use(handler.NotFound)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}

func (handler *Handler) NotFound(c *fiber.Ctx) error {
	return apiError(c, fiber.StatusNotFound, "not found")
}
