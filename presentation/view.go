package presentation

import (
	"errors"
	"time"

	"kolan-weather/i18n"
	"kolan-weather/models"
)

// CurrentView is the current-conditions card
type CurrentView struct {
	Temperature   int
	FeelsLike     int
	Unit          string
	Condition     Condition
	Description   string
	Humidity      int
	WindSpeed     int // km/h
	WindGusts     int // km/h
	WindDirection string
	Pressure      int // hPa
	CloudCover    int
	UVIndex       float64
	Visibility    float64 // km
	LocalTime     string
	Sunrise       string
	Sunset        string
}

// SavedView is one entry of the saved places list
type SavedView struct {
	ID   string
	Name string
}

// View is everything needed to render the page
type View struct {
	Language models.Language
	Dir      string
	Dark     bool
	Gradient string
	State    State
	Place    string
	Saved    bool
	Error    string
	Current  *CurrentView
	Hourly   []HourEntry
	Daily    []DayEntry
	Places   []SavedView
}

// View derives the page contents from the current state
func (s *Session) View() View {
	s.mu.Lock()
	prefs := s.prefs
	saved := s.saved
	state, selected, snap, err := s.state, s.selected, s.snapshot, s.err
	s.mu.Unlock()

	lang, unit := prefs.Language, prefs.TemperatureUnit
	dark := s.theme.Dark()
	v := View{
		Language: lang,
		Dir:      i18n.Direction(lang),
		Dark:     dark,
		Gradient: Gradient(snap, dark),
		State:    state,
		Places:   make([]SavedView, 0, len(saved)),
	}
	for _, p := range saved {
		v.Places = append(v.Places, SavedView{ID: p.ID, Name: SavedName(p, lang)})
	}

	if selected != nil {
		v.Place = DisplayName(*selected, lang, saved)
		_, v.Saved = FindSaved(saved, selected.Latitude, selected.Longitude)
	}
	if err != nil {
		v.Error = ErrorMessage(lang, err)
	}
	if snap == nil {
		return v
	}

	now := s.clock()
	v.Current = currentView(snap, now, lang, unit)
	v.Hourly = HourlyWindow(snap, now, lang, unit)
	v.Daily = DailyEntries(snap, lang, unit)
	return v
}

// ErrorMessage returns the user-visible message for a failed request
func ErrorMessage(lang models.Language, err error) string {
	if errors.Is(err, ErrLocationDenied) {
		return i18n.T(lang, "locationDenied")
	}
	return i18n.T(lang, "networkError")
}

func currentView(snap *models.ForecastSnapshot, now time.Time, lang models.Language, unit models.TemperatureUnit) *CurrentView {
	c := snap.Current
	cond := Classify(c.WeatherCode, c.Night())
	cv := &CurrentView{
		Temperature:   ConvertTemp(c.Temperature, unit),
		FeelsLike:     ConvertTemp(c.ApparentTemperature, unit),
		Unit:          UnitSymbol(unit),
		Condition:     cond,
		Description:   i18n.T(lang, cond.Key),
		Humidity:      roundHalfUp(c.RelativeHumidity),
		WindSpeed:     roundHalfUp(c.WindSpeed),
		WindGusts:     roundHalfUp(c.WindGusts),
		WindDirection: WindDirection(lang, c.WindDirection),
		Pressure:      roundHalfUp(c.PressureMSL),
		CloudCover:    roundHalfUp(c.CloudCover),
		LocalTime:     ClockLabel(lang, LocalNow(snap, now)),
	}
	if i := HourIndex(snap, now); i >= 0 {
		cv.UVIndex = snap.Hourly.UVIndex[i]
		cv.Visibility = snap.Hourly.Visibility[i] / 1000
	}
	if snap.Daily.Len() > 0 {
		cv.Sunrise = hourLabel(lang, snap.Daily.Sunrise[0])
		cv.Sunset = hourLabel(lang, snap.Daily.Sunset[0])
	}
	return cv
}
