package models

import "fmt"

// HourlyWeather holds aligned hourly series; index i of every slice describes Time[i]
type HourlyWeather struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	RelativeHumidity         []float64 `json:"relative_humidity_2m"`
	ApparentTemperature      []float64 `json:"apparent_temperature"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	Precipitation            []float64 `json:"precipitation"`
	Rain                     []float64 `json:"rain"`
	Showers                  []float64 `json:"showers"`
	Snowfall                 []float64 `json:"snowfall"`
	WeatherCode              []int     `json:"weather_code"`
	CloudCover               []float64 `json:"cloud_cover"`
	Visibility               []float64 `json:"visibility"` // meters
	WindSpeed                []float64 `json:"wind_speed_10m"`
	WindDirection            []float64 `json:"wind_direction_10m"`
	WindGusts                []float64 `json:"wind_gusts_10m"`
	UVIndex                  []float64 `json:"uv_index"`
	IsDay                    []int     `json:"is_day"`
}

// DailyWeather holds aligned daily series; index i of every slice describes Time[i]
type DailyWeather struct {
	Time                        []string  `json:"time"`
	WeatherCode                 []int     `json:"weather_code"`
	TemperatureMax              []float64 `json:"temperature_2m_max"`
	TemperatureMin              []float64 `json:"temperature_2m_min"`
	ApparentTemperatureMax      []float64 `json:"apparent_temperature_max"`
	ApparentTemperatureMin      []float64 `json:"apparent_temperature_min"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
	UVIndexMax                  []float64 `json:"uv_index_max"`
	PrecipitationSum            []float64 `json:"precipitation_sum"`
	RainSum                     []float64 `json:"rain_sum"`
	ShowersSum                  []float64 `json:"showers_sum"`
	SnowfallSum                 []float64 `json:"snowfall_sum"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	WindSpeedMax                []float64 `json:"wind_speed_10m_max"`
	WindGustsMax                []float64 `json:"wind_gusts_10m_max"`
	WindDirectionDominant       []float64 `json:"wind_direction_10m_dominant"`
}

// ForecastSnapshot is one complete current, hourly and daily response for a coordinate pair
type ForecastSnapshot struct {
	Latitude             float64        `json:"latitude"`
	Longitude            float64        `json:"longitude"`
	GenerationTimeMs     float64        `json:"generationtime_ms"`
	UTCOffsetSeconds     int            `json:"utc_offset_seconds"`
	Timezone             string         `json:"timezone"`
	TimezoneAbbreviation string         `json:"timezone_abbreviation"`
	Elevation            float64        `json:"elevation"`
	Current              CurrentWeather `json:"current"`
	Hourly               HourlyWeather  `json:"hourly"`
	Daily                DailyWeather   `json:"daily"`
}

// Len returns the number of hours in the series
func (h HourlyWeather) Len() int { return len(h.Time) }

// Len returns the number of days in the series
func (d DailyWeather) Len() int { return len(d.Time) }

// Validate checks that every hourly and daily series has the same length as its time axis
func (s *ForecastSnapshot) Validate() error {
	h := s.Hourly
	hourly := map[string]int{
		"temperature_2m":            len(h.Temperature),
		"relative_humidity_2m":      len(h.RelativeHumidity),
		"apparent_temperature":      len(h.ApparentTemperature),
		"precipitation_probability": len(h.PrecipitationProbability),
		"precipitation":             len(h.Precipitation),
		"rain":                      len(h.Rain),
		"showers":                   len(h.Showers),
		"snowfall":                  len(h.Snowfall),
		"weather_code":              len(h.WeatherCode),
		"cloud_cover":               len(h.CloudCover),
		"visibility":                len(h.Visibility),
		"wind_speed_10m":            len(h.WindSpeed),
		"wind_direction_10m":        len(h.WindDirection),
		"wind_gusts_10m":            len(h.WindGusts),
		"uv_index":                  len(h.UVIndex),
		"is_day":                    len(h.IsDay),
	}
	if err := checkAligned("hourly", h.Len(), hourly); err != nil {
		return err
	}

	d := s.Daily
	daily := map[string]int{
		"weather_code":                  len(d.WeatherCode),
		"temperature_2m_max":            len(d.TemperatureMax),
		"temperature_2m_min":            len(d.TemperatureMin),
		"apparent_temperature_max":      len(d.ApparentTemperatureMax),
		"apparent_temperature_min":      len(d.ApparentTemperatureMin),
		"sunrise":                       len(d.Sunrise),
		"sunset":                        len(d.Sunset),
		"uv_index_max":                  len(d.UVIndexMax),
		"precipitation_sum":             len(d.PrecipitationSum),
		"rain_sum":                      len(d.RainSum),
		"showers_sum":                   len(d.ShowersSum),
		"snowfall_sum":                  len(d.SnowfallSum),
		"precipitation_probability_max": len(d.PrecipitationProbabilityMax),
		"wind_speed_10m_max":            len(d.WindSpeedMax),
		"wind_gusts_10m_max":            len(d.WindGustsMax),
		"wind_direction_10m_dominant":   len(d.WindDirectionDominant),
	}
	return checkAligned("daily", d.Len(), daily)
}

func checkAligned(series string, want int, lengths map[string]int) error {
	for field, n := range lengths {
		if n != want {
			return fmt.Errorf("%s.%s has %d entries, expected %d", series, field, n, want)
		}
	}
	return nil
}
