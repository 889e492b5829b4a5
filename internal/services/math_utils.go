package services

import "math"

// roundHalfUp rounds .5 toward positive infinity, matching how scores and
// percentages were always rounded for display.
func roundHalfUp(value float64) float64 {
	return math.Floor(value + 0.5)
}

func roundTo(value float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return roundHalfUp(value*scale) / scale
}

// percentOf returns 100*part/total, or 0 when total is not positive.
func percentOf(part float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * part / total
}

func roundedPercent(count int, total int) int {
	if total <= 0 {
		return 0
	}
	return int(roundHalfUp(float64(count) / float64(total) * 100))
}
