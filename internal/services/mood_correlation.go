package services

import (
	"errors"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
)

var ErrInvalidTimeframe = errors.New("invalid timeframe")

type Timeframe string

const (
	TimeframeWeek  Timeframe = "week"
	TimeframeMonth Timeframe = "month"
	TimeframeAll   Timeframe = "all"
)

func ParseTimeframe(raw string) (Timeframe, error) {
	switch Timeframe(strings.ToLower(strings.TrimSpace(raw))) {
	case "", TimeframeMonth:
		return TimeframeMonth, nil
	case TimeframeWeek:
		return TimeframeWeek, nil
	case TimeframeAll:
		return TimeframeAll, nil
	default:
		return "", ErrInvalidTimeframe
	}
}

// Days is the look-back length; "all" is capped at one year.
func (timeframe Timeframe) Days() int {
	switch timeframe {
	case TimeframeWeek:
		return 7
	case TimeframeAll:
		return 365
	default:
		return 30
	}
}

type MoodShare struct {
	Mood       models.Mood `json:"mood"`
	Count      int         `json:"count"`
	Percentage int         `json:"percentage"`
	Emoji      string      `json:"emoji"`
	Label      string      `json:"label"`
}

// MoodCrossTab holds raw mood counts for one bucket (a NutriScore grade or a
// sugar range). Percentages are derived on demand against Total.
type MoodCrossTab struct {
	Bucket string              `json:"bucket"`
	Total  int                 `json:"total"`
	Moods  map[models.Mood]int `json:"moods"`
}

type WeeklyMoodPoint struct {
	Day           int    `json:"day"`
	Label         string `json:"label"`
	PositiveCount int    `json:"positiveCount"`
	NegativeCount int    `json:"negativeCount"`
}

type MoodStats struct {
	Timeframe             Timeframe         `json:"timeframe"`
	TotalEntries          int               `json:"totalEntries"`
	MoodDistribution      []MoodShare       `json:"moodDistribution"`
	NutriScoreCorrelation []MoodCrossTab    `json:"nutriScoreCorrelation"`
	SugarMoodCorrelation  []MoodCrossTab    `json:"sugarMoodCorrelation"`
	WeeklyMoodTrend       []WeeklyMoodPoint `json:"weeklyMoodTrend"`

	entries  []models.ConsumptionEntry
	location *time.Location
}

type sugarRange struct {
	label string
	min   float64
	max   float64
}

var sugarRanges = []sugarRange{
	{label: "0-5g", min: 0, max: 5},
	{label: "5-15g", min: 5, max: 15},
	{label: "15-25g", min: 15, max: 25},
	{label: "25g+", min: 25, max: math.Inf(1)},
}

// MoodEntriesInTimeframe collects entries with mood feedback recorded on or
// after local midnight timeframe.Days() days before today. Days are visited
// in ascending date order and entries keep their logging order.
func MoodEntriesInTimeframe(history models.NutritionHistory, timeframe Timeframe, now time.Time, location *time.Location) []models.ConsumptionEntry {
	windowStart := DateAtLocation(now, location).AddDate(0, 0, -timeframe.Days()).UnixMilli()

	days := make([]string, 0, len(history))
	for day := range history {
		days = append(days, day)
	}
	sort.Strings(days)

	entries := make([]models.ConsumptionEntry, 0)
	for _, day := range days {
		for _, entry := range history[day] {
			if !entry.HasMood() || entry.MoodTimestamp < windowStart {
				continue
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

func BuildMoodStats(entries []models.ConsumptionEntry, timeframe Timeframe, location *time.Location) MoodStats {
	return MoodStats{
		Timeframe:             timeframe,
		TotalEntries:          len(entries),
		MoodDistribution:      MoodDistribution(entries),
		NutriScoreCorrelation: NutriScoreMoodCorrelation(entries),
		SugarMoodCorrelation:  SugarMoodCorrelation(entries),
		WeeklyMoodTrend:       WeeklyMoodTrend(entries, location),
		entries:               entries,
		location:              location,
	}
}

// MoodDistribution lists each mood present, in first-seen order.
func MoodDistribution(entries []models.ConsumptionEntry) []MoodShare {
	shares := make([]MoodShare, 0)
	positions := make(map[models.Mood]int)
	for _, entry := range entries {
		mood := entry.MoodAfterConsumption
		if index, ok := positions[mood]; ok {
			shares[index].Count++
			continue
		}
		descriptor := mood.Describe()
		positions[mood] = len(shares)
		shares = append(shares, MoodShare{
			Mood:  mood,
			Count: 1,
			Emoji: descriptor.Emoji,
			Label: descriptor.Label,
		})
	}
	for index := range shares {
		shares[index].Percentage = roundedPercent(shares[index].Count, len(entries))
	}
	return shares
}

// NutriScoreMoodCorrelation groups by grade in first-seen order; entries
// without a grade land in the "Unknown" bucket.
func NutriScoreMoodCorrelation(entries []models.ConsumptionEntry) []MoodCrossTab {
	tabs := make([]MoodCrossTab, 0)
	positions := make(map[string]int)
	for _, entry := range entries {
		bucket := nutriScoreBucket(entry.NutriScore)
		index, ok := positions[bucket]
		if !ok {
			index = len(tabs)
			positions[bucket] = index
			tabs = append(tabs, MoodCrossTab{Bucket: bucket, Moods: map[models.Mood]int{}})
		}
		tabs[index].Total++
		tabs[index].Moods[entry.MoodAfterConsumption]++
	}
	return tabs
}

func nutriScoreBucket(raw models.NutriScore) string {
	if score, ok := models.NormalizeNutriScore(string(raw)); ok {
		return string(score)
	}
	if trimmed := strings.TrimSpace(string(raw)); trimmed != "" {
		return trimmed
	}
	return models.NutriScoreUnknownLabel
}

// SugarMoodCorrelation always returns the four sugar ranges, empty or not.
// Negative sugar values fall outside every range.
func SugarMoodCorrelation(entries []models.ConsumptionEntry) []MoodCrossTab {
	tabs := make([]MoodCrossTab, len(sugarRanges))
	for index, sugar := range sugarRanges {
		tabs[index] = MoodCrossTab{Bucket: sugar.label, Moods: map[models.Mood]int{}}
	}
	for _, entry := range entries {
		for index, sugar := range sugarRanges {
			if entry.Zahar >= sugar.min && entry.Zahar < sugar.max {
				tabs[index].Total++
				tabs[index].Moods[entry.MoodAfterConsumption]++
				break
			}
		}
	}
	return tabs
}

// WeeklyMoodTrend buckets by the weekday the mood was recorded. Neutral and
// unknown moods are counted in neither column.
func WeeklyMoodTrend(entries []models.ConsumptionEntry, location *time.Location) []WeeklyMoodPoint {
	points := make([]WeeklyMoodPoint, 7)
	for index := range points {
		points[index] = WeeklyMoodPoint{Day: index, Label: WeekdayLabel(index)}
	}
	for _, entry := range entries {
		index := WeekdayIndex(entry.MoodTimestamp, location)
		switch {
		case entry.MoodAfterConsumption.IsPositive():
			points[index].PositiveCount++
		case entry.MoodAfterConsumption.IsNegative():
			points[index].NegativeCount++
		}
	}
	return points
}

type CrossTabShare struct {
	Bucket string      `json:"bucket"`
	Moods  []MoodShare `json:"moods"`
}

// CrossTabPercentages renders each non-empty bucket's moods as percentages
// of that bucket's own total, in the fixed mood order.
func CrossTabPercentages(tabs []MoodCrossTab) []CrossTabShare {
	shares := make([]CrossTabShare, 0, len(tabs))
	for _, tab := range tabs {
		if tab.Total == 0 {
			continue
		}
		moods := make([]MoodShare, 0, len(tab.Moods))
		for _, mood := range orderedMoods(tab.Moods) {
			count := tab.Moods[mood]
			descriptor := mood.Describe()
			moods = append(moods, MoodShare{
				Mood:       mood,
				Count:      count,
				Percentage: roundedPercent(count, tab.Total),
				Emoji:      descriptor.Emoji,
				Label:      descriptor.Label,
			})
		}
		shares = append(shares, CrossTabShare{Bucket: tab.Bucket, Moods: moods})
	}
	return shares
}

func orderedMoods(counts map[models.Mood]int) []models.Mood {
	ordered := make([]models.Mood, 0, len(counts))
	for _, mood := range models.AllMoods() {
		if counts[mood] > 0 {
			ordered = append(ordered, mood)
		}
	}
	unknown := make([]models.Mood, 0)
	for mood, count := range counts {
		if count > 0 && !mood.IsKnown() {
			unknown = append(unknown, mood)
		}
	}
	sort.Slice(unknown, func(i, j int) bool { return unknown[i] < unknown[j] })
	return append(ordered, unknown...)
}
