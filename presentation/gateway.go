package presentation

import (
	"context"
	"errors"

	"kolan-weather/models"
)

// ErrLocationDenied is returned when the device position cannot be obtained
var ErrLocationDenied = errors.New("location access denied")

// Gateway is the query interface the session talks to
type Gateway interface {
	Search(ctx context.Context, query string, lang models.Language) ([]models.Place, error)
	CityNames(ctx context.Context, place models.Place) (models.LocalizedNames, error)
	Weather(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error)
}

// Locator reports the device position
type Locator interface {
	Locate(ctx context.Context) (lat, lon float64, err error)
}

// LocatorFunc adapts a function to Locator
type LocatorFunc func(ctx context.Context) (float64, float64, error)

// Locate calls f
func (f LocatorFunc) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// SearchLanguage maps the active language to the one sent to the geocoder.
// The geocoder has no Kurdish index, so only Persian is passed through.
func SearchLanguage(lang models.Language) models.Language {
	if lang == models.LanguagePersian {
		return models.LanguagePersian
	}
	return models.LanguageEnglish
}
