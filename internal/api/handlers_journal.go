package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) CreateEntry(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload entryPayload
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	entry, day, err := handler.journal.AppendEntry(c.UserContext(), userKey, payload.toInput(), handler.currentTime(), handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"date": day, "entry": entry})
}

func (handler *Handler) AttachMood(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload moodPayload
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	entry, err := handler.journal.AttachMood(c.UserContext(), userKey, c.Params("id"), payload.Mood, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(entry)
}

func (handler *Handler) GetDays(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(fiber.Map{"days": handler.journal.ListDays(c.UserContext(), userKey)})
}

func (handler *Handler) GetDay(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	report, err := handler.journal.DayReport(c.UserContext(), userKey, c.Params("date"), handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := handler.currentLanguage(c)
	report.Warnings = handler.localizeInsights(language, report.Warnings)
	report.Insights = handler.localizeInsights(language, report.Insights)
	return c.JSON(report)
}

func (handler *Handler) ClearJournal(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	if err := handler.journal.ClearHistory(c.UserContext(), userKey, handler.currentTime()); err != nil {
		return handler.serviceError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
