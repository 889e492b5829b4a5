package models

import "strings"

type NutriScore string

const (
	NutriScoreA NutriScore = "A"
	NutriScoreB NutriScore = "B"
	NutriScoreC NutriScore = "C"
	NutriScoreD NutriScore = "D"
	NutriScoreE NutriScore = "E"

	NutriScoreUnknownLabel = "Unknown"
)

func AllNutriScores() []NutriScore {
	return []NutriScore{NutriScoreA, NutriScoreB, NutriScoreC, NutriScoreD, NutriScoreE}
}

// NormalizeNutriScore upper-cases a raw grade. It returns false for anything
// outside A..E, including the empty string.
func NormalizeNutriScore(raw string) (NutriScore, bool) {
	score := NutriScore(strings.ToUpper(strings.TrimSpace(raw)))
	if !score.IsKnown() {
		return "", false
	}
	return score, true
}

func (score NutriScore) IsKnown() bool {
	switch score {
	case NutriScoreA, NutriScoreB, NutriScoreC, NutriScoreD, NutriScoreE:
		return true
	default:
		return false
	}
}

func (score NutriScore) IsHealthy() bool {
	return score == NutriScoreA || score == NutriScoreB
}

func (score NutriScore) IsPoor() bool {
	return score == NutriScoreD || score == NutriScoreE
}

func (score NutriScore) Color() string {
	switch score {
	case NutriScoreA:
		return "#27ae60"
	case NutriScoreB:
		return "#2ecc71"
	case NutriScoreC:
		return "#f39c12"
	case NutriScoreD:
		return "#e67e22"
	case NutriScoreE:
		return "#e74c3c"
	default:
		return "#95a5a6"
	}
}
