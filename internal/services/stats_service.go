package services

import (
	"context"
	"time"
)

type MoodReport struct {
	MoodStats
	NutriScoreMood  []CrossTabShare `json:"nutriScoreMood"`
	SugarMood       []CrossTabShare `json:"sugarMood"`
	Insights        []Insight       `json:"insights"`
	Recommendations []Insight       `json:"recommendations"`
}

type StatsService struct {
	store *EntryStore
}

func NewStatsService(store *EntryStore) *StatsService {
	return &StatsService{store: store}
}

func (service *StatsService) LoadStatsInput(ctx context.Context, userKey string) StatsInput {
	return StatsInput{
		History:     service.store.LoadHistory(ctx, userKey),
		Searches:    service.store.LoadSearchHistory(ctx, userKey),
		Nutriscores: service.store.LoadNutriscoreEvents(ctx, userKey),
		Cart:        service.store.LoadCart(ctx, userKey),
		CartUsage:   service.store.LoadCartUsage(ctx, userKey),
	}
}

func (service *StatsService) HistoryStats(ctx context.Context, userKey string, now time.Time, location *time.Location) HistoryStats {
	return BuildHistoryStats(service.LoadStatsInput(ctx, userKey), now, location)
}

func (service *StatsService) MoodReport(ctx context.Context, userKey string, rawTimeframe string, now time.Time, location *time.Location) (MoodReport, error) {
	timeframe, err := ParseTimeframe(rawTimeframe)
	if err != nil {
		return MoodReport{}, err
	}

	history := service.store.LoadHistory(ctx, userKey)
	stats := BuildMoodStats(MoodEntriesInTimeframe(history, timeframe, now, location), timeframe, location)
	return MoodReport{
		MoodStats:       stats,
		NutriScoreMood:  CrossTabPercentages(stats.NutriScoreCorrelation),
		SugarMood:       CrossTabPercentages(stats.SugarMoodCorrelation),
		Insights:        MoodInsights(stats),
		Recommendations: MoodRecommendations(stats),
	}, nil
}
