package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"kolan-weather/api"
	"kolan-weather/datasource"
	"kolan-weather/internal/fixtures"
	"kolan-weather/models"
	"kolan-weather/presentation"
	"kolan-weather/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls atomic.Int32
	err   error
}

func (s *stubGeocoder) Search(_ context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	if q.Language == models.LanguagePersian {
		return []models.Place{{Name: "تهران", Latitude: 35.69, Longitude: 51.42}}, nil
	}
	return []models.Place{fixtures.Tehran}, nil
}

func (s *stubGeocoder) Name() string { return "stub" }

type stubForecasts struct {
	err error
}

func (s *stubForecasts) FetchForecast(_ context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	if s.err != nil {
		return nil, s.err
	}
	snap := fixtures.Snapshot(time.Date(2024, 3, 1, 14, 0, 0, 0, time.FixedZone("+0330", 12600)), 48, 7)
	snap.Latitude, snap.Longitude = lat, lon
	return snap, nil
}

func (s *stubForecasts) Name() string { return "stub" }

func newQueryService(t *testing.T, g datasource.Geocoder, f datasource.ForecastSource) *Client {
	t.Helper()
	srv := httptest.NewServer(api.NewServer(g, f, 0, []string{"*"}).Handler())
	t.Cleanup(srv.Close)
	return New(srv.URL+"/", time.Second)
}

func TestClientSearch(t *testing.T) {
	g := &stubGeocoder{}
	c := newQueryService(t, g, &stubForecasts{})

	places, err := c.Search(context.Background(), "Tehran", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Equal(t, []models.Place{fixtures.Tehran}, places)

	places, err = c.Search(context.Background(), "T", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestClientCityNames(t *testing.T) {
	c := newQueryService(t, &stubGeocoder{}, &stubForecasts{})

	names, err := c.CityNames(context.Background(), fixtures.Tehran)
	require.NoError(t, err)
	assert.Equal(t, models.LocalizedNames{EN: "Tehran", FA: "تهران", KU: "Tehran"}, names)
}

func TestClientWeather(t *testing.T) {
	c := newQueryService(t, &stubGeocoder{}, &stubForecasts{})

	snap, err := c.Weather(context.Background(), 35.69, 51.42)
	require.NoError(t, err)
	assert.Equal(t, 35.69, snap.Latitude)
	assert.Equal(t, len(snap.Hourly.Time), len(snap.Hourly.Temperature))
}

func TestClientMapsServerErrors(t *testing.T) {
	c := newQueryService(t,
		&stubGeocoder{err: datasource.ErrLookupFailed},
		&stubForecasts{err: datasource.ErrFetchFailed})

	_, err := c.Search(context.Background(), "Tehran", models.LanguageEnglish)
	require.ErrorIs(t, err, datasource.ErrLookupFailed)
	var statusErr *datasource.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusInternalServerError, statusErr.Status)
	assert.Equal(t, "Failed to search cities", statusErr.Body)

	_, err = c.Weather(context.Background(), 35.69, 51.42)
	require.ErrorIs(t, err, datasource.ErrFetchFailed)
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, "Failed to fetch weather data", statusErr.Body)
}

func TestClientRejectsMisalignedForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"hourly":{"time":["2024-03-01T14:00"],"temperature_2m":[]}}`))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Weather(context.Background(), 1, 2)
	assert.ErrorIs(t, err, datasource.ErrFetchFailed)
}

func TestLocalGateway(t *testing.T) {
	l := NewLocal(&stubGeocoder{}, &stubForecasts{})
	ctx := context.Background()

	places, err := l.Search(ctx, "Tehran", models.LanguageEnglish)
	require.NoError(t, err)
	assert.Len(t, places, 1)

	names, err := l.CityNames(ctx, fixtures.Tehran)
	require.NoError(t, err)
	assert.Equal(t, "تهران", names.FA)

	snap, err := l.Weather(ctx, 35.69, 51.42)
	require.NoError(t, err)
	assert.NoError(t, snap.Validate())
}

// Scenario: search, select, save and remove through the query service
func TestSessionOverQueryService(t *testing.T) {
	c := newQueryService(t, &stubGeocoder{}, &stubForecasts{})
	ctx := context.Background()

	s := presentation.NewSession(ctx, c, storage.NewMemory())
	defer s.Close()

	places, err := s.Search(ctx, "Tehran")
	require.NoError(t, err)
	require.NotEmpty(t, places)

	require.NoError(t, s.Select(ctx, places[0]))
	assert.Equal(t, presentation.Loaded, s.Status().State)

	saved, err := s.SaveSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, "تهران", saved.Names.FA)
	assert.Len(t, s.SavedPlaces(), 1)

	require.NoError(t, s.Remove(ctx, saved.ID))
	assert.Empty(t, s.SavedPlaces())
}
