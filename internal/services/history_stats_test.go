package services

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
)

func TestBuildHistoryStatsEmptyInput(t *testing.T) {
	now := time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC)
	stats := BuildHistoryStats(StatsInput{History: models.NutritionHistory{}}, now, time.UTC)

	if stats.TotalSearches != 0 || stats.UniqueProducts != 0 {
		t.Fatalf("expected zero search counts, got %+v", stats)
	}
	if stats.TopQueries == nil || len(stats.TopQueries) != 0 {
		t.Fatalf("expected empty top queries, got %#v", stats.TopQueries)
	}
	if stats.NutriScoreDistribution == nil || len(stats.NutriScoreDistribution) != 0 {
		t.Fatalf("expected empty distribution, got %#v", stats.NutriScoreDistribution)
	}
	if len(stats.HealthTrend) != 7 || len(stats.WeeklyActivity) != 7 {
		t.Fatalf("expected 7 trend and activity buckets, got %d/%d", len(stats.HealthTrend), len(stats.WeeklyActivity))
	}
	if stats.AveragePrice != 0 || stats.TotalCartItems != 0 {
		t.Fatalf("expected zero cart stats, got %+v", stats)
	}
}

func sampleStatsInput() StatsInput {
	base := time.Date(2026, time.February, 16, 10, 0, 0, 0, time.UTC)
	searches := []models.SearchEntry{
		{Query: "milk", Timestamp: base.UnixMilli()},
		{Query: "bread", Timestamp: base.AddDate(0, 0, 1).UnixMilli()},
		{Query: "eggs", Timestamp: base.AddDate(0, 0, 6).UnixMilli()},
		{Query: "bread", Timestamp: base.AddDate(0, 0, 6).UnixMilli()},
		{Query: "milk", Timestamp: base.AddDate(0, 0, 2).UnixMilli()},
		{Query: "tea", Timestamp: base.AddDate(0, 0, 3).UnixMilli()},
		{Query: "cheese", Timestamp: base.AddDate(0, 0, 4).UnixMilli()},
		{Query: "apples", Timestamp: base.AddDate(0, 0, 5).UnixMilli()},
		{Query: "jam", Timestamp: base.AddDate(0, 0, 5).UnixMilli()},
	}
	return StatsInput{
		History: models.NutritionHistory{
			"2026-02-16": {{ID: "a"}, {ID: "b"}},
			"2026-02-17": {{ID: "c"}},
		},
		Searches: searches,
		Nutriscores: []models.NutriscoreEvent{
			{Timestamp: base.UnixMilli(), NutriScore: "A"},
			{Timestamp: base.UnixMilli(), NutriScore: "a"},
			{Timestamp: base.UnixMilli(), NutriScore: "C"},
			{Timestamp: base.UnixMilli(), NutriScore: "E"},
			{Timestamp: base.UnixMilli(), NutriScore: ""},
			{Timestamp: base.UnixMilli(), NutriScore: "unknown"},
		},
		Cart: []models.CartItem{
			{Titlu: "Milk", Magazin: "Lidl", Pret: "5.50"},
			{Titlu: "Bread", Magazin: "lidl", Pret: "3.50"},
			{Titlu: "Eggs", Magazin: "Kaufland", Pret: "12,50 lei"},
			{Titlu: "Tea", Pret: ""},
		},
		CartUsage: models.CartUsage{"Lidl": 2, "Kaufland": 1, "unknown": 1},
	}
}

func TestBuildHistoryStatsIsIdempotent(t *testing.T) {
	input := sampleStatsInput()
	now := time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC)

	first := BuildHistoryStats(input, now, time.UTC)
	second := BuildHistoryStats(input, now, time.UTC)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical stats on re-run:\n%+v\n%+v", first, second)
	}
	if first.JournalDays != 2 || first.JournalEntries != 3 {
		t.Fatalf("expected 2 days / 3 entries, got %d/%d", first.JournalDays, first.JournalEntries)
	}
}

func TestTopQueriesStableTieBreak(t *testing.T) {
	input := sampleStatsInput()

	if got := CountUniqueQueries(input.Searches); got != 7 {
		t.Fatalf("expected 7 unique queries, got %d", got)
	}
	top := TopQueries(input.Searches, 5)
	want := []QueryCount{
		{Name: "milk", Count: 2},
		{Name: "bread", Count: 2},
		{Name: "eggs", Count: 1},
		{Name: "tea", Count: 1},
		{Name: "cheese", Count: 1},
	}
	if !reflect.DeepEqual(top, want) {
		t.Fatalf("expected %+v, got %+v", want, top)
	}
}

func TestWeeklySearchActivityPartitionsSearches(t *testing.T) {
	input := sampleStatsInput()
	activity := WeeklySearchActivity(input.Searches, time.UTC)

	want := []int{1, 1, 1, 1, 1, 2, 2}
	total := 0
	for index, bucket := range activity {
		if bucket.Day != index || bucket.Searches != want[index] {
			t.Fatalf("bucket %d: expected %d searches, got %+v", index, want[index], bucket)
		}
		total += bucket.Searches
	}
	if total != len(input.Searches) {
		t.Fatalf("expected buckets to cover %d searches, got %d", len(input.Searches), total)
	}
}

func TestNutriScoreDistributionCountsValidGrades(t *testing.T) {
	distribution := NutriScoreDistribution(sampleStatsInput().Nutriscores)

	want := []NutriScoreShare{
		{Score: "A", Count: 2, Percentage: 50, Color: models.NutriScoreA.Color()},
		{Score: "C", Count: 1, Percentage: 25, Color: models.NutriScoreC.Color()},
		{Score: "E", Count: 1, Percentage: 25, Color: models.NutriScoreE.Color()},
	}
	if !reflect.DeepEqual(distribution, want) {
		t.Fatalf("expected %+v, got %+v", want, distribution)
	}
}

func TestHealthTrendUsesLocalCalendarDays(t *testing.T) {
	location := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2026, time.February, 21, 12, 0, 0, 0, location)

	events := []models.NutriscoreEvent{
		{Timestamp: time.Date(2026, time.February, 21, 0, 0, 0, 0, location).UnixMilli(), NutriScore: "A"},
		{Timestamp: time.Date(2026, time.February, 20, 23, 59, 59, 999000000, location).UnixMilli(), NutriScore: "b"},
		{Timestamp: time.Date(2026, time.February, 20, 10, 0, 0, 0, location).UnixMilli(), NutriScore: "D"},
		{Timestamp: time.Date(2026, time.February, 15, 10, 0, 0, 0, location).UnixMilli(), NutriScore: "A"},
		{Timestamp: time.Date(2026, time.February, 14, 23, 0, 0, 0, location).UnixMilli(), NutriScore: "A"},
	}

	trend := HealthTrend(events, now, location)
	if len(trend) != 7 {
		t.Fatalf("expected 7 points, got %d", len(trend))
	}
	if trend[0].Date != "2026-02-15" || trend[0].Period != "15/2" || trend[0].HealthyChoices != 1 {
		t.Fatalf("unexpected oldest point %+v", trend[0])
	}
	if trend[5].Date != "2026-02-20" || trend[5].HealthyChoices != 1 {
		t.Fatalf("unexpected yesterday point %+v", trend[5])
	}
	if trend[6].Date != "2026-02-21" || trend[6].HealthyChoices != 1 {
		t.Fatalf("unexpected today point %+v", trend[6])
	}
}

func TestStorePreferencesGroupCaseInsensitively(t *testing.T) {
	preferences := StorePreferences(sampleStatsInput().Cart, 5)
	want := []StoreShare{
		{Store: "lidl", Count: 2, Percentage: 67},
		{Store: "kaufland", Count: 1, Percentage: 33},
	}
	if !reflect.DeepEqual(preferences, want) {
		t.Fatalf("expected %+v, got %+v", want, preferences)
	}
}

func TestStoreUsageRanking(t *testing.T) {
	ranking := StoreUsageRanking(sampleStatsInput().CartUsage)
	want := []StoreShare{
		{Store: "Lidl", Count: 2, Percentage: 50},
		{Store: "Kaufland", Count: 1, Percentage: 25},
		{Store: "unknown", Count: 1, Percentage: 25},
	}
	if !reflect.DeepEqual(ranking, want) {
		t.Fatalf("expected %+v, got %+v", want, ranking)
	}
}

func TestAveragePriceSkipsUnparseablePrices(t *testing.T) {
	if got := AveragePrice(sampleStatsInput().Cart); math.Abs(got-4.5) > 1e-9 {
		t.Fatalf("expected average 4.5, got %f", got)
	}

	for _, raw := range []string{"", "abc", "NaN", "Inf", "12,50"} {
		if _, ok := ParsePrice(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
