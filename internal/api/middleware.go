package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/nutrilog/internal/services"
)

const (
	contextUserKey     = "user_key"
	contextLanguageKey = "current_language"
	bearerPrefix       = "bearer "
)

func (handler *Handler) LanguageMiddleware(c *fiber.Ctx) error {
	c.Locals(contextLanguageKey, handler.i18n.DetectFromAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage)))
	return c.Next()
}

// AuthRequired accepts an "Authorization: Bearer <jwt>" header and stores
// the subject's storage key for the handlers.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	claims, err := services.ParseAccessToken(handler.secretKey, header[len(bearerPrefix):], handler.now())
	if err != nil {
		handler.logger.WithFields(logrus.Fields{"path": c.Path(), "error": err}).Debug("rejected access token")
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}
	userKey, err := services.UserKeyForSubject(claims.Subject)
	if err != nil {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	c.Locals(contextUserKey, userKey)
	return c.Next()
}

func currentUserKey(c *fiber.Ctx) (string, bool) {
	userKey, ok := c.Locals(contextUserKey).(string)
	return userKey, ok && userKey != ""
}

func (handler *Handler) currentLanguage(c *fiber.Ctx) string {
	language, ok := c.Locals(contextLanguageKey).(string)
	if !ok || language == "" {
		return handler.i18n.DefaultLanguage()
	}
	return language
}
