package models

import (
	"fmt"
	"time"
)

// LocalizedNames maps each supported language to a display name for one place
type LocalizedNames struct {
	EN string `json:"en"`
	FA string `json:"fa"`
	KU string `json:"ku"`
}

// UniformNames returns LocalizedNames with every slot set to name
func UniformNames(name string) LocalizedNames {
	return LocalizedNames{EN: name, FA: name, KU: name}
}

// Get returns the name for lang, or "" for an unsupported language
func (n LocalizedNames) Get(lang Language) string {
	switch lang {
	case LanguageEnglish:
		return n.EN
	case LanguagePersian:
		return n.FA
	case LanguageKurdish:
		return n.KU
	}
	return ""
}

// Set stores name in the slot for lang; unsupported languages are ignored
func (n *LocalizedNames) Set(lang Language, name string) {
	switch lang {
	case LanguageEnglish:
		n.EN = name
	case LanguagePersian:
		n.FA = name
	case LanguageKurdish:
		n.KU = name
	}
}

// SavedPlace is a place the user explicitly saved, with its names in every language
type SavedPlace struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"` // default name as returned by the geocoder
	Names     LocalizedNames `json:"names"`
	Country   string         `json:"country"`
	Admin1    string         `json:"admin1,omitempty"`
	Latitude  float64        `json:"latitude"`
	Longitude float64        `json:"longitude"`
	Timezone  string         `json:"timezone,omitempty"`
}

// NewSavedPlace builds a SavedPlace from a geocoded place. The identifier combines the place id
// with the creation time so that id 0 ("current location") can be saved more than once.
func NewSavedPlace(p Place, names LocalizedNames, now time.Time) SavedPlace {
	return SavedPlace{
		ID:        fmt.Sprintf("%d-%d", p.ID, now.UnixMilli()),
		Name:      p.Name,
		Names:     names,
		Country:   p.Country,
		Admin1:    p.Admin1,
		Latitude:  p.Latitude,
		Longitude: p.Longitude,
		Timezone:  p.Timezone,
	}
}

// Place converts the saved entry back into a Place suitable for fetching weather
func (s SavedPlace) Place() Place {
	return Place{
		Name:      s.Name,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Country:   s.Country,
		Admin1:    s.Admin1,
		Timezone:  s.Timezone,
	}
}

// Near reports whether the saved entry lies within tol degrees of the given point
func (s SavedPlace) Near(lat, lon, tol float64) bool {
	return s.Place().Near(lat, lon, tol)
}
