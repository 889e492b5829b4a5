package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
)

func scenarioMoodEntries(moodTime time.Time) []models.ConsumptionEntry {
	moods := []models.Mood{
		models.MoodEnergetic, models.MoodEnergetic,
		models.MoodSatisfied, models.MoodSatisfied, models.MoodSatisfied,
		models.MoodNormal,
		models.MoodBloated,
		models.MoodTired,
		models.MoodCraving, models.MoodCraving,
	}
	entries := make([]models.ConsumptionEntry, 0, len(moods))
	for index, mood := range moods {
		entries = append(entries, moodEntry(mood, moodTime.Add(time.Duration(index)*time.Minute)))
	}
	return entries
}

func TestMoodDistributionTenEntries(t *testing.T) {
	distribution := MoodDistribution(scenarioMoodEntries(wednesdayNoon))

	want := []struct {
		mood       models.Mood
		count      int
		percentage int
	}{
		{models.MoodEnergetic, 2, 20},
		{models.MoodSatisfied, 3, 30},
		{models.MoodNormal, 1, 10},
		{models.MoodBloated, 1, 10},
		{models.MoodTired, 1, 10},
		{models.MoodCraving, 2, 20},
	}
	if len(distribution) != len(want) {
		t.Fatalf("expected %d moods, got %d", len(want), len(distribution))
	}
	for index, expected := range want {
		got := distribution[index]
		if got.Mood != expected.mood || got.Count != expected.count || got.Percentage != expected.percentage {
			t.Fatalf("index %d: expected %+v, got %+v", index, expected, got)
		}
	}
	if distribution[0].Emoji != "😊" {
		t.Fatalf("expected energetic emoji, got %q", distribution[0].Emoji)
	}
	if positive := moodPercentageSum(distribution, models.Mood.IsPositive); positive != 50 {
		t.Fatalf("expected positive share 50, got %d", positive)
	}
}

func TestMoodDistributionUnknownMoodUsesPlaceholder(t *testing.T) {
	entries := []models.ConsumptionEntry{moodEntry("ecstatic", wednesdayNoon)}
	distribution := MoodDistribution(entries)
	if len(distribution) != 1 || distribution[0].Emoji != "❓" || distribution[0].Percentage != 100 {
		t.Fatalf("expected placeholder share, got %+v", distribution)
	}
}

func TestMoodDistributionCountsMatchTotal(t *testing.T) {
	entries := append(scenarioMoodEntries(wednesdayNoon), repeatMood(models.MoodTired, 7, saturdayNoon)...)
	distribution := MoodDistribution(entries)

	sum := 0
	for _, share := range distribution {
		sum += share.Count
		if share.Percentage < 0 || share.Percentage > 100 {
			t.Fatalf("percentage out of range: %+v", share)
		}
	}
	if sum != len(entries) {
		t.Fatalf("expected counts to sum to %d, got %d", len(entries), sum)
	}
}

func TestParseTimeframe(t *testing.T) {
	tests := []struct {
		raw      string
		want     Timeframe
		wantDays int
	}{
		{raw: "week", want: TimeframeWeek, wantDays: 7},
		{raw: "MONTH", want: TimeframeMonth, wantDays: 30},
		{raw: "", want: TimeframeMonth, wantDays: 30},
		{raw: " all ", want: TimeframeAll, wantDays: 365},
	}
	for _, testCase := range tests {
		got, err := ParseTimeframe(testCase.raw)
		if err != nil {
			t.Fatalf("%q: unexpected error %v", testCase.raw, err)
		}
		if got != testCase.want || got.Days() != testCase.wantDays {
			t.Fatalf("%q: expected %s/%d, got %s/%d", testCase.raw, testCase.want, testCase.wantDays, got, got.Days())
		}
	}

	if _, err := ParseTimeframe("year"); !errors.Is(err, ErrInvalidTimeframe) {
		t.Fatalf("expected ErrInvalidTimeframe, got %v", err)
	}
}

func TestMoodEntriesInTimeframe(t *testing.T) {
	now := time.Date(2026, time.February, 21, 9, 0, 0, 0, time.UTC)
	withinWeek := moodEntry(models.MoodEnergetic, time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC))
	beforeWeek := moodEntry(models.MoodTired, time.Date(2026, time.February, 13, 23, 59, 0, 0, time.UTC))
	lastYear := moodEntry(models.MoodCraving, time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC))
	noMood := models.ConsumptionEntry{ID: "plain", Timestamp: now.UnixMilli()}

	history := models.NutritionHistory{
		"2026-02-14": {withinWeek, noMood},
		"2026-02-13": {beforeWeek},
		"2025-03-01": {lastYear},
	}

	tests := []struct {
		timeframe Timeframe
		want      []string
	}{
		{timeframe: TimeframeWeek, want: []string{withinWeek.ID}},
		{timeframe: TimeframeMonth, want: []string{beforeWeek.ID, withinWeek.ID}},
		{timeframe: TimeframeAll, want: []string{lastYear.ID, beforeWeek.ID, withinWeek.ID}},
	}
	for _, testCase := range tests {
		entries := MoodEntriesInTimeframe(history, testCase.timeframe, now, time.UTC)
		ids := make([]string, 0, len(entries))
		for _, entry := range entries {
			ids = append(ids, entry.ID)
		}
		if !reflect.DeepEqual(ids, testCase.want) {
			t.Fatalf("%s: expected %v, got %v", testCase.timeframe, testCase.want, ids)
		}
	}
}

func TestNutriScoreMoodCorrelation(t *testing.T) {
	entries := []models.ConsumptionEntry{
		moodEntry(models.MoodTired, wednesdayNoon),
		moodEntry(models.MoodEnergetic, wednesdayNoon),
		moodEntry(models.MoodTired, wednesdayNoon),
		moodEntry(models.MoodSatisfied, wednesdayNoon),
	}
	entries[0].NutriScore = "e"
	entries[1].NutriScore = "A"
	entries[2].NutriScore = "E"

	tabs := NutriScoreMoodCorrelation(entries)
	if len(tabs) != 3 {
		t.Fatalf("expected 3 groups, got %+v", tabs)
	}
	if tabs[0].Bucket != "E" || tabs[0].Total != 2 || tabs[0].Moods[models.MoodTired] != 2 {
		t.Fatalf("unexpected first group %+v", tabs[0])
	}
	if tabs[1].Bucket != "A" || tabs[2].Bucket != models.NutriScoreUnknownLabel {
		t.Fatalf("expected first-seen order E, A, Unknown, got %s, %s", tabs[1].Bucket, tabs[2].Bucket)
	}
}

func TestSugarMoodCorrelationRanges(t *testing.T) {
	sugars := []float64{0, 4.99, 5, 14.99, 15, 24.99, 25, 80, -1}
	entries := make([]models.ConsumptionEntry, 0, len(sugars))
	for _, sugar := range sugars {
		entry := moodEntry(models.MoodCraving, wednesdayNoon)
		entry.Zahar = sugar
		entries = append(entries, entry)
	}

	tabs := SugarMoodCorrelation(entries)
	wantBuckets := []string{"0-5g", "5-15g", "15-25g", "25g+"}
	for index, tab := range tabs {
		if tab.Bucket != wantBuckets[index] || tab.Total != 2 || tab.Moods[models.MoodCraving] != 2 {
			t.Fatalf("unexpected bucket %d: %+v", index, tab)
		}
	}

	empty := SugarMoodCorrelation(nil)
	if len(empty) != 4 || empty[3].Total != 0 {
		t.Fatalf("expected four empty ranges, got %+v", empty)
	}
}

func TestCrossTabPercentagesSkipEmptyGroups(t *testing.T) {
	tabs := []MoodCrossTab{
		{Bucket: "0-5g", Total: 3, Moods: map[models.Mood]int{models.MoodCraving: 2, models.MoodEnergetic: 1}},
		{Bucket: "5-15g", Total: 0, Moods: map[models.Mood]int{}},
	}

	shares := CrossTabPercentages(tabs)
	if len(shares) != 1 {
		t.Fatalf("expected empty group skipped, got %+v", shares)
	}
	moods := shares[0].Moods
	if len(moods) != 2 || moods[0].Mood != models.MoodEnergetic || moods[0].Percentage != 33 || moods[1].Percentage != 67 {
		t.Fatalf("unexpected shares %+v", moods)
	}
}

func TestWeeklyMoodTrendPartitionsByWeekday(t *testing.T) {
	entries := make([]models.ConsumptionEntry, 0)
	monday := time.Date(2026, time.February, 16, 10, 0, 0, 0, time.UTC)
	for offset := 0; offset < 7; offset++ {
		day := monday.AddDate(0, 0, offset)
		entries = append(entries, moodEntry(models.MoodEnergetic, day))
		entries = append(entries, moodEntry(models.MoodTired, day))
		entries = append(entries, moodEntry(models.MoodNormal, day))
	}

	trend := WeeklyMoodTrend(entries, time.UTC)
	if len(trend) != 7 {
		t.Fatalf("expected 7 buckets, got %d", len(trend))
	}
	classified := 0
	for index, point := range trend {
		if point.Day != index || point.PositiveCount != 1 || point.NegativeCount != 1 {
			t.Fatalf("unexpected bucket %d: %+v", index, point)
		}
		classified += point.PositiveCount + point.NegativeCount
	}
	if classified != 14 {
		t.Fatalf("expected 14 classified entries, got %d", classified)
	}
	if trend[6].Label != "Sun" {
		t.Fatalf("expected Sunday last, got %q", trend[6].Label)
	}
}
