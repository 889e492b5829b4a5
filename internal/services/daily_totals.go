package services

import "github.com/terraincognita07/nutrilog/internal/models"

type ProgressLevel string

const (
	ProgressOK      ProgressLevel = "ok"
	ProgressWarning ProgressLevel = "warning"
	ProgressDanger  ProgressLevel = "danger"
)

type NutrientTotals struct {
	Calorii  float64 `json:"calorii"`
	Sare     float64 `json:"sare"`
	Zahar    float64 `json:"zahar"`
	Grasimi  float64 `json:"grasimi"`
	Proteine float64 `json:"proteine"`
	Fibre    float64 `json:"fibre"`
}

// MetricProgress keeps the uncapped percentage for threshold checks and a
// capped copy for progress bars.
type MetricProgress struct {
	Value          float64       `json:"value"`
	Limit          float64       `json:"limit"`
	Percentage     float64       `json:"percentage"`
	DisplayPercent float64       `json:"displayPercent"`
	Level          ProgressLevel `json:"level"`
}

type DailyProgress struct {
	Calorii MetricProgress `json:"calorii"`
	Sare    MetricProgress `json:"sare"`
	Zahar   MetricProgress `json:"zahar"`
	Grasimi MetricProgress `json:"grasimi"`
}

type DailyTotals struct {
	Date       string         `json:"date"`
	EntryCount int            `json:"entryCount"`
	Totals     NutrientTotals `json:"totals"`
	Progress   DailyProgress  `json:"progress"`
}

func SumEntries(entries []models.ConsumptionEntry) NutrientTotals {
	totals := NutrientTotals{}
	for _, entry := range entries {
		totals.Calorii += entry.Calorii
		totals.Sare += entry.Sare
		totals.Zahar += entry.Zahar
		totals.Grasimi += entry.Grasimi
		totals.Proteine += entry.Proteine
		totals.Fibre += entry.Fibre
	}
	return totals
}

func BuildDailyTotals(date string, entries []models.ConsumptionEntry, limits models.PersonalLimits) DailyTotals {
	totals := SumEntries(entries)
	return DailyTotals{
		Date:       date,
		EntryCount: len(entries),
		Totals:     totals,
		Progress: DailyProgress{
			Calorii: BuildMetricProgress(totals.Calorii, limits.Calorii),
			Sare:    BuildMetricProgress(totals.Sare, limits.Sare),
			Zahar:   BuildMetricProgress(totals.Zahar, limits.Zahar),
			Grasimi: BuildMetricProgress(totals.Grasimi, limits.Grasimi),
		},
	}
}

func BuildMetricProgress(value float64, limit float64) MetricProgress {
	percentage := percentOf(value, limit)
	display := percentage
	if display > 100 {
		display = 100
	}
	return MetricProgress{
		Value:          value,
		Limit:          limit,
		Percentage:     percentage,
		DisplayPercent: display,
		Level:          ProgressLevelFor(percentage),
	}
}

func ProgressLevelFor(percentage float64) ProgressLevel {
	switch {
	case percentage <= 70:
		return ProgressOK
	case percentage <= 90:
		return ProgressWarning
	default:
		return ProgressDanger
	}
}
