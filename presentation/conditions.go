package presentation

import "kolan-weather/models"

// Icons
const (
	IconSun            = "sun"
	IconMoon           = "moon"
	IconCloud          = "cloud"
	IconCloudFog       = "cloud-fog"
	IconCloudRain      = "cloud-rain"
	IconCloudSnow      = "cloud-snow"
	IconCloudLightning = "cloud-lightning"
)

// Background gradients
const (
	GradientDay    = "day-gradient"
	GradientNight  = "night-gradient"
	GradientCloudy = "cloudy"
	GradientFoggy  = "foggy"
	GradientRainy  = "rainy"
	GradientSnowy  = "snowy"
	GradientStormy = "stormy"
)

// Condition describes how one WMO weather code is shown
type Condition struct {
	Code     int
	Key      string // translation key of the short description
	Detail   string // English label with intensity
	Icon     string
	Gradient string
}

// conditions maps the WMO weather codes reported by the forecast API
var conditions = map[int]Condition{
	0:  {Key: "clearSky", Detail: "Clear sky", Icon: IconSun, Gradient: GradientDay},
	1:  {Key: "mainlyClear", Detail: "Mainly clear", Icon: IconSun, Gradient: GradientDay},
	2:  {Key: "partlyCloudy", Detail: "Partly cloudy", Icon: IconCloud, Gradient: GradientDay},
	3:  {Key: "overcast", Detail: "Overcast", Icon: IconCloud, Gradient: GradientCloudy},
	45: {Key: "fog", Detail: "Fog", Icon: IconCloudFog, Gradient: GradientFoggy},
	48: {Key: "fog", Detail: "Depositing rime fog", Icon: IconCloudFog, Gradient: GradientFoggy},
	51: {Key: "drizzle", Detail: "Drizzle: Light", Icon: IconCloudRain, Gradient: GradientRainy},
	53: {Key: "drizzle", Detail: "Drizzle: Moderate", Icon: IconCloudRain, Gradient: GradientRainy},
	55: {Key: "drizzle", Detail: "Drizzle: Dense", Icon: IconCloudRain, Gradient: GradientRainy},
	56: {Key: "freezingDrizzle", Detail: "Freezing Drizzle: Light", Icon: IconCloudRain, Gradient: GradientRainy},
	57: {Key: "freezingDrizzle", Detail: "Freezing Drizzle: Dense", Icon: IconCloudRain, Gradient: GradientRainy},
	61: {Key: "rain", Detail: "Rain: Slight", Icon: IconCloudRain, Gradient: GradientRainy},
	63: {Key: "rain", Detail: "Rain: Moderate", Icon: IconCloudRain, Gradient: GradientRainy},
	65: {Key: "rain", Detail: "Rain: Heavy", Icon: IconCloudRain, Gradient: GradientRainy},
	66: {Key: "freezingRain", Detail: "Freezing Rain: Light", Icon: IconCloudRain, Gradient: GradientRainy},
	67: {Key: "freezingRain", Detail: "Freezing Rain: Heavy", Icon: IconCloudRain, Gradient: GradientRainy},
	71: {Key: "snow", Detail: "Snow fall: Slight", Icon: IconCloudSnow, Gradient: GradientSnowy},
	73: {Key: "snow", Detail: "Snow fall: Moderate", Icon: IconCloudSnow, Gradient: GradientSnowy},
	75: {Key: "snow", Detail: "Snow fall: Heavy", Icon: IconCloudSnow, Gradient: GradientSnowy},
	77: {Key: "snowGrains", Detail: "Snow grains", Icon: IconCloudSnow, Gradient: GradientSnowy},
	80: {Key: "rainShowers", Detail: "Rain showers: Slight", Icon: IconCloudRain, Gradient: GradientRainy},
	81: {Key: "rainShowers", Detail: "Rain showers: Moderate", Icon: IconCloudRain, Gradient: GradientRainy},
	82: {Key: "rainShowers", Detail: "Rain showers: Violent", Icon: IconCloudRain, Gradient: GradientStormy},
	85: {Key: "snowShowers", Detail: "Snow showers: Slight", Icon: IconCloudSnow, Gradient: GradientSnowy},
	86: {Key: "snowShowers", Detail: "Snow showers: Heavy", Icon: IconCloudSnow, Gradient: GradientSnowy},
	95: {Key: "thunderstorm", Detail: "Thunderstorm", Icon: IconCloudLightning, Gradient: GradientStormy},
	96: {Key: "thunderstorm", Detail: "Thunderstorm with hail", Icon: IconCloudLightning, Gradient: GradientStormy},
	99: {Key: "thunderstorm", Detail: "Thunderstorm with heavy hail", Icon: IconCloudLightning, Gradient: GradientStormy},
}

// KnownCode reports whether code has its own entry in the condition table
func KnownCode(code int) bool {
	_, ok := conditions[code]
	return ok
}

// Classify returns the condition for a weather code. Unknown codes are shown as clear sky.
// Clear and mainly clear skies use the moon icon at night.
func Classify(code int, night bool) Condition {
	c, ok := conditions[code]
	if !ok {
		c = conditions[0]
	}
	c.Code = code
	if night && (code == 0 || code == 1) {
		c.Icon = IconMoon
	}
	return c
}

// Gradient picks the page background for the current reading
func Gradient(s *models.ForecastSnapshot, dark bool) string {
	fallback := GradientDay
	if dark {
		fallback = GradientNight
	}
	if s == nil {
		return fallback
	}

	code := s.Current.WeatherCode
	if s.Current.Night() && code >= 0 && code <= 2 {
		return GradientNight
	}
	if c, ok := conditions[code]; ok {
		return c.Gradient
	}
	return fallback
}
