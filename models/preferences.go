package models

// Language is one of the supported language tags
type Language string

const (
	LanguagePersian Language = "fa"
	LanguageEnglish Language = "en"
	LanguageKurdish Language = "ku"
)

// Languages lists every supported language in display order
var Languages = []Language{LanguagePersian, LanguageEnglish, LanguageKurdish}

// Valid reports whether l is a supported language
func (l Language) Valid() bool {
	switch l {
	case LanguagePersian, LanguageEnglish, LanguageKurdish:
		return true
	}
	return false
}

// TemperatureUnit selects how temperatures are displayed
type TemperatureUnit string

const (
	Celsius    TemperatureUnit = "celsius"
	Fahrenheit TemperatureUnit = "fahrenheit"
)

// ThemeMode selects light, dark or automatic (by local hour) rendering
type ThemeMode string

const (
	ThemeLight ThemeMode = "light"
	ThemeDark  ThemeMode = "dark"
	ThemeAuto  ThemeMode = "auto"
)

// Preferences holds the user's persisted display settings
type Preferences struct {
	Language        Language        `json:"language"`
	TemperatureUnit TemperatureUnit `json:"temperatureUnit"`
	Theme           ThemeMode       `json:"theme"`
}

// DefaultPreferences returns the settings used when nothing has been stored yet
func DefaultPreferences() Preferences {
	return Preferences{
		Language:        LanguageKurdish,
		TemperatureUnit: Celsius,
		Theme:           ThemeAuto,
	}
}

// WithDefaults fills every empty or unknown field from DefaultPreferences
func (p Preferences) WithDefaults() Preferences {
	d := DefaultPreferences()
	if !p.Language.Valid() {
		p.Language = d.Language
	}
	if p.TemperatureUnit != Celsius && p.TemperatureUnit != Fahrenheit {
		p.TemperatureUnit = d.TemperatureUnit
	}
	switch p.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		p.Theme = d.Theme
	}
	return p
}
