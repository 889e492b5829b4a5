package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api", handler.LanguageMiddleware, handler.AuthRequired)

	api.Get("/profile", handler.GetProfile)
	api.Put("/profile", handler.SaveProfile)
	api.Get("/limits", handler.GetLimits)

	journal := api.Group("/journal")
	journal.Post("/entries", handler.CreateEntry)
	journal.Post("/entries/:id/mood", handler.AttachMood)
	journal.Get("/days", handler.GetDays)
	journal.Get("/days/:date", handler.GetDay)
	journal.Delete("", handler.ClearJournal)

	api.Post("/scans", handler.RecordScan)
	api.Post("/searches", handler.RecordSearch)
	api.Post("/cart", handler.AddToCart)

	api.Get("/stats", handler.GetStats)
	api.Get("/mood", handler.GetMoodReport)
}

func (handler *Handler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok"})
}
