package client

import (
	"context"

	"kolan-weather/datasource"
	"kolan-weather/models"
	"kolan-weather/presentation"
	"kolan-weather/reconcile"
)

// Local serves the presentation layer directly from gateways in the same process
type Local struct {
	geocoder   datasource.Geocoder
	forecasts  datasource.ForecastSource
	reconciler *reconcile.Reconciler
	count      int
}

// Ensure Local implements presentation.Gateway
var _ presentation.Gateway = (*Local)(nil)

// NewLocal creates a new in-process gateway
func NewLocal(geocoder datasource.Geocoder, forecasts datasource.ForecastSource) *Local {
	return &Local{
		geocoder:   geocoder,
		forecasts:  forecasts,
		reconciler: reconcile.New(geocoder),
		count:      10,
	}
}

// Search forwards to the geocoder
func (l *Local) Search(ctx context.Context, query string, lang models.Language) ([]models.Place, error) {
	return l.geocoder.Search(ctx, datasource.SearchQuery{Name: query, Language: lang, Count: l.count})
}

// CityNames reconciles the place's name in every language; it never fails
func (l *Local) CityNames(ctx context.Context, place models.Place) (models.LocalizedNames, error) {
	return l.reconciler.Reconcile(ctx, place), nil
}

// Weather forwards to the forecast source
func (l *Local) Weather(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	return l.forecasts.FetchForecast(ctx, lat, lon)
}
