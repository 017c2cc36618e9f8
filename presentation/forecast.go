package presentation

import (
	"fmt"
	"time"

	"kolan-weather/i18n"
	"kolan-weather/models"
)

// HourlyWindowSize is the number of hours shown in the hourly strip
const HourlyWindowSize = 24

// Timestamp layouts used by the forecast API with timezone=auto
const (
	hourLayout = "2006-01-02T15:04"
	dayLayout  = "2006-01-02"
)

// HourEntry is one column of the hourly strip
type HourEntry struct {
	Time                     string
	Label                    string
	Temperature              int
	Condition                Condition
	PrecipitationProbability int
}

// DayEntry is one row of the daily list
type DayEntry struct {
	Date                        string
	DayName                     string
	Label                       string
	Max                         int
	Min                         int
	Condition                   Condition
	PrecipitationProbabilityMax int
	Sunrise                     string
	Sunset                      string
}

// Location returns the fixed zone the snapshot's timestamps are expressed in
func Location(s *models.ForecastSnapshot) *time.Location {
	name := s.TimezoneAbbreviation
	if name == "" {
		name = s.Timezone
	}
	return time.FixedZone(name, s.UTCOffsetSeconds)
}

// LocalNow returns now as wall-clock time at the forecast location
func LocalNow(s *models.ForecastSnapshot, now time.Time) time.Time {
	return now.In(Location(s))
}

// HourIndex returns the first hourly slot whose hour matches the location's current hour,
// or -1 when none does
func HourIndex(s *models.ForecastSnapshot, now time.Time) int {
	hour := LocalNow(s, now).Hour()
	for i, raw := range s.Hourly.Time {
		t, err := time.Parse(hourLayout, raw)
		if err != nil {
			continue
		}
		if t.Hour() == hour {
			return i
		}
	}
	return -1
}

// HourlyWindow returns up to 24 hours starting at the location's current hour.
// The snapshot must have passed Validate.
func HourlyWindow(s *models.ForecastSnapshot, now time.Time, lang models.Language, unit models.TemperatureUnit) []HourEntry {
	start := HourIndex(s, now)
	if start < 0 {
		return []HourEntry{}
	}
	end := min(start+HourlyWindowSize, s.Hourly.Len())

	h := s.Hourly
	entries := make([]HourEntry, 0, end-start)
	for i := start; i < end; i++ {
		entries = append(entries, HourEntry{
			Time:                     h.Time[i],
			Label:                    hourLabel(lang, h.Time[i]),
			Temperature:              ConvertTemp(h.Temperature[i], unit),
			Condition:                Classify(h.WeatherCode[i], h.IsDay[i] == 0),
			PrecipitationProbability: roundHalfUp(h.PrecipitationProbability[i]),
		})
	}
	return entries
}

// DailyEntries returns the daily rows, the first labelled as today.
// The snapshot must have passed Validate.
func DailyEntries(s *models.ForecastSnapshot, lang models.Language, unit models.TemperatureUnit) []DayEntry {
	d := s.Daily
	entries := make([]DayEntry, 0, d.Len())
	for i := 0; i < d.Len(); i++ {
		e := DayEntry{
			Date:                        d.Time[i],
			Max:                         ConvertTemp(d.TemperatureMax[i], unit),
			Min:                         ConvertTemp(d.TemperatureMin[i], unit),
			Condition:                   Classify(d.WeatherCode[i], false),
			PrecipitationProbabilityMax: roundHalfUp(d.PrecipitationProbabilityMax[i]),
			Sunrise:                     hourLabel(lang, d.Sunrise[i]),
			Sunset:                      hourLabel(lang, d.Sunset[i]),
		}
		if day, err := time.Parse(dayLayout, d.Time[i]); err == nil {
			e.DayName = i18n.DayName(lang, day.Weekday())
			e.Label = DateLabel(lang, day)
		}
		if i == 0 {
			e.DayName = i18n.T(lang, "today")
		}
		entries = append(entries, e)
	}
	return entries
}

// DateLabel renders a calendar date as "<day> <month>"
func DateLabel(lang models.Language, t time.Time) string {
	return i18n.LocalizeDigits(lang, fmt.Sprintf("%d %s", t.Day(), i18n.MonthName(lang, t.Month())))
}

// ClockLabel renders a wall-clock time as HH:MM in the digits of lang
func ClockLabel(lang models.Language, t time.Time) string {
	return i18n.LocalizeDigits(lang, t.Format("15:04"))
}

func hourLabel(lang models.Language, raw string) string {
	t, err := time.Parse(hourLayout, raw)
	if err != nil {
		return raw
	}
	return ClockLabel(lang, t)
}
