package api

import (
	"strconv"

	"github.com/terraincognita07/nutrilog/internal/services"
)

func (handler *Handler) localizeInsights(language string, insights []services.Insight) []services.Insight {
	localized := make([]services.Insight, len(insights))
	for index, insight := range insights {
		insight.Message = handler.i18n.Localize(language, insight.Key, insight.Args...)
		localized[index] = insight
	}
	return localized
}

// localizeMoodShares keeps the built-in label for moods outside the catalog.
func (handler *Handler) localizeMoodShares(language string, shares []services.MoodShare) {
	for index := range shares {
		key := "mood." + string(shares[index].Mood)
		if translated := handler.i18n.Translate(language, key); translated != key {
			shares[index].Label = translated
		}
	}
}

func (handler *Handler) weekdayLabel(language string, day int, fallback string) string {
	key := "weekday." + strconv.Itoa(day)
	if translated := handler.i18n.Translate(language, key); translated != key {
		return translated
	}
	return fallback
}
