package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetStats(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	stats := handler.stats.HistoryStats(c.UserContext(), userKey, handler.currentTime(), handler.location)
	language := handler.currentLanguage(c)
	for index := range stats.WeeklyActivity {
		stats.WeeklyActivity[index].Label = handler.weekdayLabel(language, stats.WeeklyActivity[index].Day, stats.WeeklyActivity[index].Label)
	}
	return c.JSON(stats)
}

func (handler *Handler) GetMoodReport(c *fiber.Ctx) error {
	userKey, ok := currentUserKey(c)
	if !ok {
		return handler.apiError(c, fiber.StatusUnauthorized, "error.unauthorized")
	}

	report, err := handler.stats.MoodReport(c.UserContext(), userKey, c.Query("timeframe"), handler.currentTime(), handler.location)
	if err != nil {
		return handler.serviceError(c, err)
	}

	language := handler.currentLanguage(c)
	handler.localizeMoodShares(language, report.MoodDistribution)
	for _, tab := range report.NutriScoreMood {
		handler.localizeMoodShares(language, tab.Moods)
	}
	for _, tab := range report.SugarMood {
		handler.localizeMoodShares(language, tab.Moods)
	}
	for index := range report.WeeklyMoodTrend {
		report.WeeklyMoodTrend[index].Label = handler.weekdayLabel(language, report.WeeklyMoodTrend[index].Day, report.WeeklyMoodTrend[index].Label)
	}
	report.Insights = handler.localizeInsights(language, report.Insights)
	report.Recommendations = handler.localizeInsights(language, report.Recommendations)
	return c.JSON(report)
}
