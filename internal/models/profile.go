package models

const (
	GenderMale   = "M"
	GenderFemale = "F"

	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

type UserProfile struct {
	Weight        float64 `json:"weight"`
	Height        float64 `json:"height"`
	Age           float64 `json:"age"`
	Gender        string  `json:"gender"`
	ActivityLevel string  `json:"activityLevel"`
}
