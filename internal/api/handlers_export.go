package api

import (
	"bytes"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ExportSummary(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	summary, err := handler.exportService.Summary(user.ID)
	if err != nil {
		log.Printf("export: summary user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build export summary")
	}
	return c.JSON(fiber.Map{
		"total_periods":    summary.TotalPeriods,
		"total_daily_logs": summary.TotalDailyLogs,
		"has_data":         summary.HasData,
		"date_from":        summary.DateFrom,
		"date_to":          summary.DateTo,
	})
}

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var output bytes.Buffer
	if err := handler.exportService.WriteCSV(user.ID, &output); err != nil {
		log.Printf("export: csv user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export periods")
	}

	filename := fmt.Sprintf("saukhya-periods-%s.csv", handler.today().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(output.Bytes())
}

func (handler *Handler) ExportDaysCSV(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var output bytes.Buffer
	if err := handler.exportService.WriteDaysCSV(user.ID, &output); err != nil {
		log.Printf("export: days csv user %d: %v", user.ID, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to export daily logs")
	}

	filename := fmt.Sprintf("saukhya-days-%s.csv", handler.today().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(output.Bytes())
}
