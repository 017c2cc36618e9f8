package presentation

import (
	"kolan-weather/i18n"
	"kolan-weather/models"
)

// CompassIndex buckets a bearing into one of eight sectors, 0 being north
func CompassIndex(degrees float64) int {
	i := roundHalfUp(degrees/45) % 8
	if i < 0 {
		i += 8
	}
	return i
}

// WindDirection returns the translated compass label for a bearing
func WindDirection(lang models.Language, degrees float64) string {
	return i18n.T(lang, i18n.CompassKeys[CompassIndex(degrees)])
}
