package services

import "math"

const maxExerciseMinutes = 120

type Exercise struct {
	Key               string  `json:"key"`
	Icon              string  `json:"icon"`
	CaloriesPerMinute float64 `json:"caloriesPerMinute"`
	Minutes           int     `json:"minutes"`
}

type exerciseFactor struct {
	key    string
	icon   string
	factor float64
}

// Fixed presentation order; recommendations keep it rather than ranking by
// efficiency.
var exerciseFactors = []exerciseFactor{
	{key: "brisk_walking", icon: "🚶", factor: 0.05},
	{key: "jogging", icon: "🏃", factor: 0.08},
	{key: "cycling", icon: "🚴", factor: 0.07},
	{key: "swimming", icon: "🏊", factor: 0.09},
	{key: "dancing", icon: "💃", factor: 0.06},
	{key: "yoga", icon: "🧘", factor: 0.03},
}

// ExerciseOptions lists the activities that burn excessCalories in more than
// zero and at most two hours for a person of the given weight.
func ExerciseOptions(excessCalories float64, weight float64) []Exercise {
	options := make([]Exercise, 0, len(exerciseFactors))
	if weight <= 0 || excessCalories <= 0 {
		return options
	}
	for _, candidate := range exerciseFactors {
		perMinute := weight * candidate.factor
		minutes := roundHalfUp(excessCalories / perMinute)
		if math.IsNaN(minutes) || minutes <= 0 || minutes > maxExerciseMinutes {
			continue
		}
		options = append(options, Exercise{
			Key:               candidate.key,
			Icon:              candidate.icon,
			CaloriesPerMinute: perMinute,
			Minutes:           int(minutes),
		})
	}
	return options
}

func TopExercise(excessCalories float64, weight float64) (Exercise, bool) {
	options := ExerciseOptions(excessCalories, weight)
	if len(options) == 0 {
		return Exercise{}, false
	}
	return options[0], true
}
