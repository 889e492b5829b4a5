package services

import (
	"errors"
	"math"
	"strings"

	"github.com/terraincognita07/nutrilog/internal/models"
)

var ErrInvalidProfileInput = errors.New("invalid profile input")

const (
	minProfileWeight = 10.0
	maxProfileWeight = 400.0
	minProfileHeight = 50.0
	maxProfileHeight = 250.0
	minProfileAge    = 1.0
	maxProfileAge    = 120.0

	defaultActivityFactor = 1.2
	heavySaltWeightKg     = 70.0
)

var activityFactors = map[string]float64{
	models.ActivitySedentary:  1.2,
	models.ActivityLight:      1.375,
	models.ActivityModerate:   1.55,
	models.ActivityActive:     1.725,
	models.ActivityVeryActive: 1.9,
}

// ActivityFactor returns the TDEE multiplier for a level, 1.2 when unknown.
func ActivityFactor(level string) float64 {
	if factor, ok := activityFactors[level]; ok {
		return factor
	}
	return defaultActivityFactor
}

// BasalMetabolicRate uses the revised Harris-Benedict equation. Any gender
// other than "M" takes the female coefficients.
func BasalMetabolicRate(profile models.UserProfile) float64 {
	if profile.Gender == models.GenderMale {
		return 88.362 + 13.397*profile.Weight + 4.799*profile.Height - 5.677*profile.Age
	}
	return 447.593 + 9.247*profile.Weight + 3.098*profile.Height - 4.330*profile.Age
}

func TotalDailyEnergyExpenditure(profile models.UserProfile) float64 {
	return BasalMetabolicRate(profile) * ActivityFactor(profile.ActivityLevel)
}

// CalculatePersonalLimits does not validate its input: NaN or non-positive
// fields flow through into the result. Call ValidateProfile first.
func CalculatePersonalLimits(profile models.UserProfile) models.PersonalLimits {
	tdee := TotalDailyEnergyExpenditure(profile)

	salt := 5.0
	if profile.Weight > heavySaltWeightKg {
		salt = 6.0
	}

	return models.PersonalLimits{
		Calorii: roundHalfUp(tdee),
		Sare:    salt,
		Zahar:   roundHalfUp(tdee * 0.10 / 4),
		Grasimi: roundHalfUp(tdee * 0.30 / 9),
	}
}

// LimitsForProfile falls back to the WHO defaults when no profile is stored
// or the stored one no longer validates.
func LimitsForProfile(profile *models.UserProfile) models.PersonalLimits {
	profile = usableProfile(profile)
	if profile == nil {
		return models.DefaultLimits()
	}
	return CalculatePersonalLimits(*profile)
}

// usableProfile returns the normalized profile, or nil when it would yield
// NaN or absurd limits.
func usableProfile(profile *models.UserProfile) *models.UserProfile {
	if profile == nil {
		return nil
	}
	normalized, err := NormalizeProfile(*profile)
	if err != nil {
		return nil
	}
	return &normalized
}

// NormalizeProfile trims enum fields, defaults an empty activity level to
// sedentary and checks every biometric field is a plausible finite number.
func NormalizeProfile(profile models.UserProfile) (models.UserProfile, error) {
	profile.Gender = strings.ToUpper(strings.TrimSpace(profile.Gender))
	profile.ActivityLevel = strings.ToLower(strings.TrimSpace(profile.ActivityLevel))
	if profile.ActivityLevel == "" {
		profile.ActivityLevel = models.ActivitySedentary
	}

	if err := ValidateProfile(profile); err != nil {
		return profile, err
	}
	return profile, nil
}

func ValidateProfile(profile models.UserProfile) error {
	if !inRange(profile.Weight, minProfileWeight, maxProfileWeight) {
		return ErrInvalidProfileInput
	}
	if !inRange(profile.Height, minProfileHeight, maxProfileHeight) {
		return ErrInvalidProfileInput
	}
	if !inRange(profile.Age, minProfileAge, maxProfileAge) {
		return ErrInvalidProfileInput
	}
	if profile.Gender != models.GenderMale && profile.Gender != models.GenderFemale {
		return ErrInvalidProfileInput
	}
	if _, ok := activityFactors[profile.ActivityLevel]; !ok {
		return ErrInvalidProfileInput
	}
	return nil
}

func inRange(value float64, min float64, max float64) bool {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return false
	}
	return value >= min && value <= max
}
