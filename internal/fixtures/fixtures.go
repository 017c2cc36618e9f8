// Package fixtures builds forecast data for tests.
package fixtures

import (
	"time"

	"kolan-weather/models"
)

// Tehran is a geocoded place used across tests
var Tehran = models.Place{
	ID:          112931,
	Name:        "Tehran",
	Latitude:    35.69439,
	Longitude:   51.42151,
	Elevation:   1191,
	FeatureCode: "PPLC",
	CountryCode: "IR",
	Country:     "Iran",
	Admin1:      "Tehran",
	Timezone:    "Asia/Tehran",
	Population:  7153309,
}

// Snapshot builds an aligned snapshot whose hourly series starts at start's wall-clock hour
// and whose offset is start's zone offset. Temperatures count up from 10°C by one per hour.
func Snapshot(start time.Time, hours, days int) *models.ForecastSnapshot {
	name, offset := start.Zone()
	start = time.Date(start.Year(), start.Month(), start.Day(), start.Hour(), 0, 0, 0, start.Location())

	s := &models.ForecastSnapshot{
		Latitude:             35.7,
		Longitude:            51.4,
		GenerationTimeMs:     0.5,
		UTCOffsetSeconds:     offset,
		Timezone:             "Asia/Tehran",
		TimezoneAbbreviation: name,
		Elevation:            1191,
		Current: models.CurrentWeather{
			Time:                start.Format("2006-01-02T15:04"),
			Interval:            900,
			Temperature:         21.4,
			RelativeHumidity:    30,
			ApparentTemperature: 19.6,
			IsDay:               1,
			WeatherCode:         1,
			CloudCover:          10,
			PressureMSL:         1013.2,
			SurfacePressure:     880.1,
			WindSpeed:           12.3,
			WindDirection:       90,
			WindGusts:           20.1,
		},
	}

	h := &s.Hourly
	for i := 0; i < hours; i++ {
		t := start.Add(time.Duration(i) * time.Hour)
		h.Time = append(h.Time, t.Format("2006-01-02T15:04"))
		h.Temperature = append(h.Temperature, 10+float64(i))
		h.RelativeHumidity = append(h.RelativeHumidity, 40)
		h.ApparentTemperature = append(h.ApparentTemperature, 9+float64(i))
		h.PrecipitationProbability = append(h.PrecipitationProbability, 5)
		h.Precipitation = append(h.Precipitation, 0)
		h.Rain = append(h.Rain, 0)
		h.Showers = append(h.Showers, 0)
		h.Snowfall = append(h.Snowfall, 0)
		h.WeatherCode = append(h.WeatherCode, 0)
		h.CloudCover = append(h.CloudCover, 0)
		h.Visibility = append(h.Visibility, 24140)
		h.WindSpeed = append(h.WindSpeed, 10)
		h.WindDirection = append(h.WindDirection, 180)
		h.WindGusts = append(h.WindGusts, 15)
		h.UVIndex = append(h.UVIndex, 3.5)
		isDay := 0
		if t.Hour() >= 6 && t.Hour() < 18 {
			isDay = 1
		}
		h.IsDay = append(h.IsDay, isDay)
	}

	d := &s.Daily
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i)
		d.Time = append(d.Time, day.Format("2006-01-02"))
		d.WeatherCode = append(d.WeatherCode, 3)
		d.TemperatureMax = append(d.TemperatureMax, 25)
		d.TemperatureMin = append(d.TemperatureMin, 12)
		d.ApparentTemperatureMax = append(d.ApparentTemperatureMax, 24)
		d.ApparentTemperatureMin = append(d.ApparentTemperatureMin, 11)
		d.Sunrise = append(d.Sunrise, day.Format("2006-01-02")+"T06:05")
		d.Sunset = append(d.Sunset, day.Format("2006-01-02")+"T18:40")
		d.UVIndexMax = append(d.UVIndexMax, 6)
		d.PrecipitationSum = append(d.PrecipitationSum, 0)
		d.RainSum = append(d.RainSum, 0)
		d.ShowersSum = append(d.ShowersSum, 0)
		d.SnowfallSum = append(d.SnowfallSum, 0)
		d.PrecipitationProbabilityMax = append(d.PrecipitationProbabilityMax, 10)
		d.WindSpeedMax = append(d.WindSpeedMax, 20)
		d.WindGustsMax = append(d.WindGustsMax, 35)
		d.WindDirectionDominant = append(d.WindDirectionDominant, 200)
	}
	return s
}
