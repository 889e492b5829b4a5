package models

const (
	DefaultPortionSize = 100.0

	DefaultCalorieLimit = 2000
	DefaultSaltLimit    = 5
	DefaultSugarLimit   = 50
	DefaultFatLimit     = 70
)

// ConsumptionEntry is one food item logged in the journal for a given day.
// Timestamps are epoch milliseconds.
type ConsumptionEntry struct {
	ID                   string     `json:"id"`
	Timestamp            int64      `json:"timestamp"`
	Product              string     `json:"product"`
	Brand                string     `json:"brand,omitempty"`
	PortionSize          float64    `json:"portionSize"`
	Calorii              float64    `json:"calorii"`
	Sare                 float64    `json:"sare"`
	Zahar                float64    `json:"zahar"`
	Grasimi              float64    `json:"grasimi"`
	Proteine             float64    `json:"proteine"`
	Fibre                float64    `json:"fibre"`
	NutriScore           NutriScore `json:"nutriscore,omitempty"`
	Nova                 string     `json:"nova,omitempty"`
	MoodAfterConsumption Mood       `json:"moodAfterConsumption,omitempty"`
	MoodTimestamp        int64      `json:"moodTimestamp,omitempty"`
}

func (entry ConsumptionEntry) HasMood() bool {
	return entry.MoodAfterConsumption != "" && entry.MoodTimestamp != 0
}

// NutritionHistory maps a local calendar day (YYYY-MM-DD) to the entries
// logged that day, in logging order.
type NutritionHistory map[string][]ConsumptionEntry

type NutriscoreEvent struct {
	Timestamp  int64      `json:"timestamp"`
	NutriScore NutriScore `json:"nutriscore"`
}

type PersonalLimits struct {
	Calorii float64 `json:"calorii"`
	Sare    float64 `json:"sare"`
	Zahar   float64 `json:"zahar"`
	Grasimi float64 `json:"grasimi"`
}

func DefaultLimits() PersonalLimits {
	return PersonalLimits{
		Calorii: DefaultCalorieLimit,
		Sare:    DefaultSaltLimit,
		Zahar:   DefaultSugarLimit,
		Grasimi: DefaultFatLimit,
	}
}
