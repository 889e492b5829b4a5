package services

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/terraincognita07/nutrilog/internal/models"
)

const (
	topQueriesLimit       = 5
	topStoresLimit        = 5
	healthTrendWindowDays = 7
)

type StatsInput struct {
	History     models.NutritionHistory
	Searches    []models.SearchEntry
	Nutriscores []models.NutriscoreEvent
	Cart        []models.CartItem
	CartUsage   models.CartUsage
}

type QueryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type WeekdayActivity struct {
	Day      int    `json:"day"`
	Label    string `json:"label"`
	Searches int    `json:"searches"`
}

type NutriScoreShare struct {
	Score      models.NutriScore `json:"score"`
	Count      int               `json:"count"`
	Percentage int               `json:"percentage"`
	Color      string            `json:"color"`
}

type HealthTrendPoint struct {
	Period         string `json:"period"`
	Date           string `json:"date"`
	HealthyChoices int    `json:"healthyChoices"`
}

type StoreShare struct {
	Store      string `json:"store"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

type HistoryStats struct {
	TotalSearches          int                `json:"totalSearches"`
	UniqueProducts         int                `json:"uniqueProducts"`
	TopQueries             []QueryCount       `json:"topQueries"`
	WeeklyActivity         []WeekdayActivity  `json:"weeklyActivity"`
	NutriScoreDistribution []NutriScoreShare  `json:"nutriScoreDistribution"`
	HealthTrend            []HealthTrendPoint `json:"healthTrend"`
	StorePreferences       []StoreShare       `json:"storePreferences"`
	StoreUsage             []StoreShare       `json:"storeUsage"`
	TotalCartItems         int                `json:"totalCartItems"`
	AveragePrice           float64            `json:"averagePrice"`
	JournalDays            int                `json:"journalDays"`
	JournalEntries         int                `json:"journalEntries"`
}

// BuildHistoryStats aggregates every statistic independently from the same
// input; it does not mutate the input and is deterministic for a fixed now.
func BuildHistoryStats(input StatsInput, now time.Time, location *time.Location) HistoryStats {
	journalDays, journalEntries := CountJournal(input.History)
	return HistoryStats{
		TotalSearches:          len(input.Searches),
		UniqueProducts:         CountUniqueQueries(input.Searches),
		TopQueries:             TopQueries(input.Searches, topQueriesLimit),
		WeeklyActivity:         WeeklySearchActivity(input.Searches, location),
		NutriScoreDistribution: NutriScoreDistribution(input.Nutriscores),
		HealthTrend:            HealthTrend(input.Nutriscores, now, location),
		StorePreferences:       StorePreferences(input.Cart, topStoresLimit),
		StoreUsage:             StoreUsageRanking(input.CartUsage),
		TotalCartItems:         len(input.Cart),
		AveragePrice:           AveragePrice(input.Cart),
		JournalDays:            journalDays,
		JournalEntries:         journalEntries,
	}
}

func CountJournal(history models.NutritionHistory) (int, int) {
	days := 0
	entries := 0
	for _, dayEntries := range history {
		if len(dayEntries) == 0 {
			continue
		}
		days++
		entries += len(dayEntries)
	}
	return days, entries
}

func CountUniqueQueries(searches []models.SearchEntry) int {
	seen := make(map[string]struct{}, len(searches))
	for _, search := range searches {
		seen[search.Query] = struct{}{}
	}
	return len(seen)
}

// TopQueries ranks queries by frequency; equal counts keep first-seen order.
func TopQueries(searches []models.SearchEntry, limit int) []QueryCount {
	ranked := make([]QueryCount, 0)
	positions := make(map[string]int)
	for _, search := range searches {
		if index, ok := positions[search.Query]; ok {
			ranked[index].Count++
			continue
		}
		positions[search.Query] = len(ranked)
		ranked = append(ranked, QueryCount{Name: search.Query, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}

func WeeklySearchActivity(searches []models.SearchEntry, location *time.Location) []WeekdayActivity {
	activity := make([]WeekdayActivity, 7)
	for index := range activity {
		activity[index] = WeekdayActivity{Day: index, Label: WeekdayLabel(index)}
	}
	for _, search := range searches {
		activity[WeekdayIndex(search.Timestamp, location)].Searches++
	}
	return activity
}

// NutriScoreDistribution counts A..E grades, case-insensitively. Events with
// any other grade are not counted and do not affect percentages.
func NutriScoreDistribution(events []models.NutriscoreEvent) []NutriScoreShare {
	counts := make(map[models.NutriScore]int, 5)
	total := 0
	for _, event := range events {
		score, ok := models.NormalizeNutriScore(string(event.NutriScore))
		if !ok {
			continue
		}
		counts[score]++
		total++
	}

	distribution := make([]NutriScoreShare, 0, len(counts))
	for _, score := range models.AllNutriScores() {
		count := counts[score]
		if count == 0 {
			continue
		}
		distribution = append(distribution, NutriScoreShare{
			Score:      score,
			Count:      count,
			Percentage: roundedPercent(count, total),
			Color:      score.Color(),
		})
	}
	return distribution
}

// HealthTrend counts A/B scans for each of the last seven local calendar
// days, oldest first, today included.
func HealthTrend(events []models.NutriscoreEvent, now time.Time, location *time.Location) []HealthTrendPoint {
	today := DateAtLocation(now, location)
	points := make([]HealthTrendPoint, 0, healthTrendWindowDays)
	for offset := healthTrendWindowDays - 1; offset >= 0; offset-- {
		dayStart := today.AddDate(0, 0, -offset)
		dayEnd := dayStart.AddDate(0, 0, 1)
		startMillis := dayStart.UnixMilli()
		endMillis := dayEnd.UnixMilli()

		healthy := 0
		for _, event := range events {
			if event.Timestamp < startMillis || event.Timestamp >= endMillis {
				continue
			}
			if score, ok := models.NormalizeNutriScore(string(event.NutriScore)); ok && score.IsHealthy() {
				healthy++
			}
		}

		points = append(points, HealthTrendPoint{
			Period:         ShortDayLabel(dayStart),
			Date:           dayStart.Format(DayKeyLayout),
			HealthyChoices: healthy,
		})
	}
	return points
}

// StorePreferences groups cart items by lower-cased store name.
func StorePreferences(cart []models.CartItem, limit int) []StoreShare {
	ranked := make([]StoreShare, 0)
	positions := make(map[string]int)
	total := 0
	for _, item := range cart {
		store := strings.ToLower(strings.TrimSpace(item.Magazin))
		if store == "" {
			continue
		}
		total++
		if index, ok := positions[store]; ok {
			ranked[index].Count++
			continue
		}
		positions[store] = len(ranked)
		ranked = append(ranked, StoreShare{Store: store, Count: 1})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	for index := range ranked {
		ranked[index].Percentage = roundedPercent(ranked[index].Count, total)
	}
	return ranked
}

// StoreUsageRanking orders the cart usage counters by count, then name.
func StoreUsageRanking(usage models.CartUsage) []StoreShare {
	total := 0
	ranked := make([]StoreShare, 0, len(usage))
	for store, count := range usage {
		if count <= 0 {
			continue
		}
		total += count
		ranked = append(ranked, StoreShare{Store: store, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count == ranked[j].Count {
			return ranked[i].Store < ranked[j].Store
		}
		return ranked[i].Count > ranked[j].Count
	})
	for index := range ranked {
		ranked[index].Percentage = roundedPercent(ranked[index].Count, total)
	}
	return ranked
}

func AveragePrice(cart []models.CartItem) float64 {
	sum := 0.0
	count := 0
	for _, item := range cart {
		price, ok := ParsePrice(item.Pret)
		if !ok {
			continue
		}
		sum += price
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

// ParsePrice accepts plain decimal numbers only; "12,50 lei" is rejected.
func ParsePrice(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
