package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/nutrilog/internal/models"
)

type profileResponse struct {
	Profile    *models.UserProfile   `json:"profile"`
	HasProfile bool                  `json:"hasProfile"`
	Limits     models.PersonalLimits `json:"limits"`
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	profile, limits := handler.profiles.Load(c.UserContext(), userKey)
	return c.JSON(profileResponse{Profile: profile, HasProfile: profile != nil, Limits: limits})
}

func (handler *Handler) SaveProfile(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	var payload models.UserProfile
	if err := c.BodyParser(&payload); err != nil {
		return handler.apiError(c, fiber.StatusBadRequest, "error.invalid_request")
	}

	saved, limits, err := handler.profiles.Save(c.UserContext(), userKey, payload, handler.currentTime())
	if err != nil {
		return handler.serviceError(c, err)
	}
	return c.JSON(profileResponse{Profile: &saved, HasProfile: true, Limits: limits})
}

func (handler *Handler) GetLimits(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	return c.JSON(handler.profiles.Limits(c.UserContext(), userKey))
}
