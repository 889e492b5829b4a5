package services

import (
	"sort"

	"github.com/terraincognita07/nutrilog/internal/models"
)

type InsightKind string

const (
	InsightWarning        InsightKind = "warning"
	InsightObservation    InsightKind = "insight"
	InsightRecommendation InsightKind = "recommendation"
)

// Insight is a message key plus format arguments. Message is filled in when
// the insight is rendered for a language.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Key     string      `json:"key"`
	Args    []any       `json:"args,omitempty"`
	Message string      `json:"message,omitempty"`
}

const (
	InsightSaltExcess              = "insight.salt_excess"
	InsightSugarExcess             = "insight.sugar_excess"
	InsightCalorieExcess           = "insight.calorie_excess"
	InsightCalorieExcessExercise   = "insight.calorie_excess_exercise"
	InsightBalance                 = "insight.balance"
	InsightCaloriesRising          = "insight.calories_rising"
	InsightCaloriesBelow           = "insight.calories_below"
	InsightMoodPositive            = "insight.mood_positive"
	InsightMoodNegative            = "insight.mood_negative"
	InsightPoorScoresHurtMood      = "insight.poor_scores_hurt_mood"
	InsightHighSugarCravings       = "insight.high_sugar_cravings"
	InsightWeekendsHarder          = "insight.weekends_harder"
	RecommendHealthyScores         = "recommendation.healthy_scores"
	RecommendWater                 = "recommendation.water"
	RecommendLessSaltMoreFiber     = "recommendation.less_salt_more_fiber"
	RecommendFruitInsteadOfSweets  = "recommendation.fruit_instead_of_sweets"
	RecommendLowGlycemicIndex      = "recommendation.low_glycemic_index"
	exerciseKeyPrefix              = "exercise."
	highSugarThreshold             = 15.0
	moodCountRecommendationTrigger = 3
	weeklyTrendDays                = 7
	weeklyTrendMinimumDays         = 3
)

// DailyWarnings checks one day's totals against the limits. The calorie
// warning needs a profile since the exercise suggestion depends on weight.
func DailyWarnings(totals NutrientTotals, limits models.PersonalLimits, profile *models.UserProfile) []Insight {
	warnings := make([]Insight, 0)

	if totals.Sare > limits.Sare {
		warnings = append(warnings, Insight{Kind: InsightWarning, Key: InsightSaltExcess, Args: []any{totals.Sare - limits.Sare}})
	}
	if totals.Zahar > limits.Zahar {
		warnings = append(warnings, Insight{Kind: InsightWarning, Key: InsightSugarExcess, Args: []any{totals.Zahar - limits.Zahar}})
	}
	if totals.Calorii > limits.Calorii && profile != nil {
		excess := totals.Calorii - limits.Calorii
		if exercise, ok := TopExercise(excess, profile.Weight); ok {
			warnings = append(warnings, Insight{
				Kind: InsightWarning,
				Key:  InsightCalorieExcessExercise,
				Args: []any{roundHalfUp(excess), exercise.Icon, ExerciseMessageKey(exercise.Key), exercise.Minutes},
			})
		} else {
			warnings = append(warnings, Insight{Kind: InsightWarning, Key: InsightCalorieExcess, Args: []any{roundHalfUp(excess)}})
		}
	}
	return warnings
}

func ExerciseMessageKey(exercise string) string {
	return exerciseKeyPrefix + exercise
}

// DailyInsights covers the nutritional balance of the day and the calorie
// trend over the most recent logged days.
func DailyInsights(totals NutrientTotals, limits models.PersonalLimits, history models.NutritionHistory) []Insight {
	insights := make([]Insight, 0)

	if trend, ok := WeeklyCalorieTrend(history, limits); ok {
		insights = append(insights, trend)
	}
	if limits.Sare > 0 && limits.Zahar > 0 && totals.Sare/limits.Sare > 1.2 && totals.Zahar/limits.Zahar > 1.2 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightBalance})
	}
	return insights
}

// WeeklyCalorieTrend averages daily calories over the seven most recent
// logged dates and reports when the average leaves the 80%..110% band.
// Fewer than three logged dates yield nothing.
func WeeklyCalorieTrend(history models.NutritionHistory, limits models.PersonalLimits) (Insight, bool) {
	dates := LoggedDates(history)
	if len(dates) > weeklyTrendDays {
		dates = dates[:weeklyTrendDays]
	}
	if len(dates) < weeklyTrendMinimumDays {
		return Insight{}, false
	}

	sum := 0.0
	for _, date := range dates {
		sum += SumEntries(history[date]).Calorii
	}
	average := sum / float64(len(dates))

	switch {
	case average > limits.Calorii*1.1:
		return Insight{Kind: InsightObservation, Key: InsightCaloriesRising, Args: []any{roundHalfUp(average)}}, true
	case average < limits.Calorii*0.8:
		return Insight{Kind: InsightObservation, Key: InsightCaloriesBelow, Args: []any{roundHalfUp(average)}}, true
	default:
		return Insight{}, false
	}
}

// LoggedDates returns the days that hold at least one entry, newest first.
func LoggedDates(history models.NutritionHistory) []string {
	dates := make([]string, 0, len(history))
	for date, entries := range history {
		if len(entries) == 0 {
			continue
		}
		dates = append(dates, date)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))
	return dates
}

// MoodInsights evaluates every observation rule independently against the
// analysed entries.
func MoodInsights(stats MoodStats) []Insight {
	insights := make([]Insight, 0)

	positive := moodPercentageSum(stats.MoodDistribution, models.Mood.IsPositive)
	if positive > 60 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightMoodPositive, Args: []any{positive}})
	} else if positive < 30 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightMoodNegative, Args: []any{positive}})
	}

	poorCount, poorNegative := 0, 0
	highSugarCount, highSugarCravings := 0, 0
	weekendCount, weekendLow := 0, 0
	for _, entry := range stats.entries {
		mood := entry.MoodAfterConsumption
		if score, ok := models.NormalizeNutriScore(string(entry.NutriScore)); ok && score.IsPoor() {
			poorCount++
			if mood.IsNegative() {
				poorNegative++
			}
		}
		if entry.Zahar > highSugarThreshold {
			highSugarCount++
			if mood == models.MoodCraving {
				highSugarCravings++
			}
		}
		if IsWeekend(entry.MoodTimestamp, stats.location) {
			weekendCount++
			if mood == models.MoodBloated || mood == models.MoodTired {
				weekendLow++
			}
		}
	}

	if float64(poorNegative) > float64(poorCount)*0.6 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightPoorScoresHurtMood})
	}
	if float64(highSugarCravings) > float64(highSugarCount)*0.4 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightHighSugarCravings})
	}
	if float64(weekendLow) > float64(weekendCount)*0.5 {
		insights = append(insights, Insight{Kind: InsightObservation, Key: InsightWeekendsHarder})
	}
	return insights
}

func MoodRecommendations(stats MoodStats) []Insight {
	recommendations := make([]Insight, 0)

	if moodPercentageSum(stats.MoodDistribution, models.Mood.IsNegative) > 40 {
		recommendations = append(recommendations,
			Insight{Kind: InsightRecommendation, Key: RecommendHealthyScores},
			Insight{Kind: InsightRecommendation, Key: RecommendWater},
		)
	}
	if moodCount(stats.MoodDistribution, models.MoodBloated) > moodCountRecommendationTrigger {
		recommendations = append(recommendations, Insight{Kind: InsightRecommendation, Key: RecommendLessSaltMoreFiber})
	}
	if moodCount(stats.MoodDistribution, models.MoodCraving) > moodCountRecommendationTrigger {
		recommendations = append(recommendations, Insight{Kind: InsightRecommendation, Key: RecommendFruitInsteadOfSweets})
	}
	if moodCount(stats.MoodDistribution, models.MoodTired) > moodCountRecommendationTrigger {
		recommendations = append(recommendations, Insight{Kind: InsightRecommendation, Key: RecommendLowGlycemicIndex})
	}
	return recommendations
}

// moodPercentageSum adds the already rounded shares, so the result can differ
// from the exact combined share by a point or two.
func moodPercentageSum(shares []MoodShare, include func(models.Mood) bool) int {
	total := 0
	for _, share := range shares {
		if include(share.Mood) {
			total += share.Percentage
		}
	}
	return total
}

func moodCount(shares []MoodShare, mood models.Mood) int {
	for _, share := range shares {
		if share.Mood == mood {
			return share.Count
		}
	}
	return 0
}
