package datasource

import (
	"context"

	"kolan-weather/models"
)

// MinQueryLength is the shortest search text that is forwarded upstream
const MinQueryLength = 2

// SearchQuery describes one forward geocoding lookup
type SearchQuery struct {
	Name     string
	Language models.Language
	Count    int
}

// Geocoder is an interface for services that can search places by name
type Geocoder interface {
	// Search returns candidate places ordered by upstream relevance
	Search(ctx context.Context, q SearchQuery) ([]models.Place, error)

	// Name returns the geocoder's name
	Name() string
}

// ForecastSource is an interface for services that can fetch weather forecasts
type ForecastSource interface {
	// FetchForecast fetches current, hourly and daily data for a coordinate pair
	FetchForecast(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error)

	// Name returns the source's name
	Name() string
}
