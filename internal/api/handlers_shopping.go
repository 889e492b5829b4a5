package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilog/internal/models"
)

func (handler *Handler) RecordScan(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload scanPayload
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	event, err := handler.journal.RecordScan(c.UserContext(), userKey, payload.NutriScore, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

func (handler *Handler) RecordSearch(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload searchPayload
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	entry, err := handler.journal.RecordSearch(c.UserContext(), userKey, payload.Query, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (handler *Handler) AddToCart(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload models.CartItem
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	item, err := handler.journal.AddToCart(c.UserContext(), userKey, payload)
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}
