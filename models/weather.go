package models

// CurrentWeather represents the reading for the current instant
type CurrentWeather struct {
	Time                string  `json:"time"`     // local wall-clock time, e.g. 2024-03-01T14:15
	Interval            int     `json:"interval"` // seconds covered by the reading
	Temperature         float64 `json:"temperature_2m"`
	RelativeHumidity    float64 `json:"relative_humidity_2m"`
	ApparentTemperature float64 `json:"apparent_temperature"`
	IsDay               int     `json:"is_day"` // 1 during daylight, 0 at night
	Precipitation       float64 `json:"precipitation"`
	Rain                float64 `json:"rain"`
	Showers             float64 `json:"showers"`
	Snowfall            float64 `json:"snowfall"`
	WeatherCode         int     `json:"weather_code"`
	CloudCover          float64 `json:"cloud_cover"`
	PressureMSL         float64 `json:"pressure_msl"`
	SurfacePressure     float64 `json:"surface_pressure"`
	WindSpeed           float64 `json:"wind_speed_10m"`     // km/h
	WindDirection       float64 `json:"wind_direction_10m"` // degrees
	WindGusts           float64 `json:"wind_gusts_10m"`     // km/h
}

// Night reports whether the reading was taken after sunset
func (c CurrentWeather) Night() bool {
	return c.IsDay == 0
}
