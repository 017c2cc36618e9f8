// Package presentation holds the client-side state of the weather app and derives everything
// the user sees from it: converted temperatures, condition icons, compass labels, theme and
// the hourly and daily rows.
package presentation

import (
	"math"

	"kolan-weather/models"
)

// roundHalfUp rounds to the nearest integer with halves going towards positive infinity
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// Fahrenheit converts a Celsius reading to rounded Fahrenheit
func Fahrenheit(c float64) int {
	return roundHalfUp(c*9/5 + 32)
}

// CelsiusDisplay rounds a Celsius reading for display
func CelsiusDisplay(c float64) int {
	return roundHalfUp(c)
}

// ConvertTemp converts a canonical Celsius reading to the display unit
func ConvertTemp(c float64, unit models.TemperatureUnit) int {
	if unit == models.Fahrenheit {
		return Fahrenheit(c)
	}
	return CelsiusDisplay(c)
}

// UnitSymbol returns the short suffix shown after a temperature
func UnitSymbol(unit models.TemperatureUnit) string {
	if unit == models.Fahrenheit {
		return "°F"
	}
	return "°C"
}
