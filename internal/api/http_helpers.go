package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/services"
)

func (handler *Handler) apiError(c *fiber.Ctx, status int, key string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": handler.i18n.Translate(handler.currentLanguage(c), key),
		"code":  key,
	})
}

// serviceError maps domain errors to a status and a localized message.
// Anything unrecognised is logged and reported as an internal error.
func (handler *Handler) serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrInvalidProfileInput):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_profile")
	case errors.Is(err, services.ErrInvalidEntryInput):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_entry")
	case errors.Is(err, services.ErrInvalidDay):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_day")
	case errors.Is(err, services.ErrInvalidMood):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_mood")
	case errors.Is(err, services.ErrInvalidTimeframe):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_timeframe")
	case errors.Is(err, services.ErrInvalidSearch):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_search")
	case errors.Is(err, services.ErrInvalidCartItem):
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_cart_item")
	case errors.Is(err, services.ErrEntryNotFound):
		return handler.apiError(c, fiber.StatusNotFound, "error.entry_not_found")
	case errors.Is(err, services.ErrPersistenceRead):
		handler.logger.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Error("persistence read failed")
		return handler.apiError(c, fiber.StatusInternalServerError, "error.persistence_read")
	case errors.Is(err, services.ErrPersistenceWrite):
		handler.logger.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Error("persistence write failed")
		return handler.apiError(c, fiber.StatusInternalServerError, "error.persistence_write")
	default:
		handler.logger.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Error("request failed")
		return handler.apiError(c, fiber.StatusInternalServerError, "error.internal")
	}
}
