package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/internal/fixtures"
	"kolan-weather/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	calls   atomic.Int32
	places  []models.Place
	err     error
	lastReq atomic.Value
}

func (s *stubGeocoder) Search(_ context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	s.calls.Add(1)
	s.lastReq.Store(q)
	if s.err != nil {
		return nil, s.err
	}
	return s.places, nil
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

func newTestServer(g *stubGeocoder, f *stubForecasts) http.Handler {
	return NewServer(g, f, 0, []string{"*"}).Handler()
}

func get(t *testing.T, h http.Handler, target string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))

	var body map[string]json.RawMessage
	if strings.HasPrefix(rr.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	}
	return rr, body
}

func errorMessage(t *testing.T, body map[string]json.RawMessage) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(body["error"], &msg))
	return msg
}

func TestSearchAction(t *testing.T) {
	g := &stubGeocoder{places: []models.Place{fixtures.Tehran}}
	h := newTestServer(g, &stubForecasts{})

	rr, body := get(t, h, "/api/weather?action=search&q=Tehran&lang=fa-IR")
	require.Equal(t, http.StatusOK, rr.Code)

	var results []models.Place
	require.NoError(t, json.Unmarshal(body["results"], &results))
	assert.Equal(t, []models.Place{fixtures.Tehran}, results)

	q := g.lastReq.Load().(datasource.SearchQuery)
	assert.Equal(t, models.LanguagePersian, q.Language)
	assert.Equal(t, searchCount, q.Count)
}

func TestSearchActionShortQuery(t *testing.T) {
	g := &stubGeocoder{places: []models.Place{fixtures.Tehran}}
	h := newTestServer(g, &stubForecasts{})

	for _, q := range []string{"", "a", "%20b%20"} {
		rr, _ := get(t, h, "/api/weather?action=search&q="+q)
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"results":[]}`, rr.Body.String())
	}
	assert.Equal(t, int32(0), g.calls.Load())
}

func TestSearchActionNormalisesQueryAndLanguage(t *testing.T) {
	g := &stubGeocoder{places: []models.Place{fixtures.Tehran}}
	h := newTestServer(g, &stubForecasts{})

	rr, _ := get(t, h, "/api/weather?action=search&q=%20Tehran%20&lang=de")
	require.Equal(t, http.StatusOK, rr.Code)

	q := g.lastReq.Load().(datasource.SearchQuery)
	assert.Equal(t, "Tehran", q.Name)
	assert.Equal(t, models.LanguageEnglish, q.Language)

	rr, _ = get(t, h, "/api/weather?action=search&q=a%20")
	assert.JSONEq(t, `{"results":[]}`, rr.Body.String())
	assert.Equal(t, int32(1), g.calls.Load())
}

func TestSearchActionUpstreamFailure(t *testing.T) {
	g := &stubGeocoder{err: fmt.Errorf("%w: boom", datasource.ErrLookupFailed)}
	h := newTestServer(g, &stubForecasts{})

	rr, body := get(t, h, "/api/weather?action=search&q=Tehran")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to search cities", errorMessage(t, body))
}

func TestWeatherAction(t *testing.T) {
	h := newTestServer(&stubGeocoder{}, &stubForecasts{})

	rr, _ := get(t, h, "/api/weather?action=weather&lat=35.69&lon=51.42")
	require.Equal(t, http.StatusOK, rr.Code)

	var snap models.ForecastSnapshot
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &snap))
	assert.Equal(t, len(snap.Hourly.Time), len(snap.Hourly.Temperature))
	assert.Equal(t, 35.69, snap.Latitude)
	assert.Equal(t, 51.42, snap.Longitude)
	assert.NoError(t, snap.Validate())
}

func TestWeatherActionUpstreamFailure(t *testing.T) {
	h := newTestServer(&stubGeocoder{}, &stubForecasts{err: fmt.Errorf("%w: timeout", datasource.ErrFetchFailed)})

	rr, body := get(t, h, "/api/weather?action=weather&lat=35.69&lon=51.42")
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Failed to fetch weather data", errorMessage(t, body))
}

func TestCityNamesActionWithoutMatch(t *testing.T) {
	g := &stubGeocoder{places: []models.Place{{Name: "Far away", Latitude: -10, Longitude: -10}}}
	h := newTestServer(g, &stubForecasts{})

	rr, body := get(t, h, "/api/weather?action=city-names&lat=35.69&lon=51.42&name=Tehran")
	require.Equal(t, http.StatusOK, rr.Code)

	var names models.LocalizedNames
	require.NoError(t, json.Unmarshal(body["names"], &names))
	assert.Equal(t, models.UniformNames("Tehran"), names)
	assert.Equal(t, int32(3), g.calls.Load())
}

func TestCityNamesActionMatch(t *testing.T) {
	g := &stubGeocoder{places: []models.Place{{Name: "تهران", Latitude: 35.7, Longitude: 51.4}}}
	h := newTestServer(g, &stubForecasts{})

	_, body := get(t, h, "/api/weather?action=city-names&lat=35.69&lon=51.42&name=Tehran")

	var names models.LocalizedNames
	require.NoError(t, json.Unmarshal(body["names"], &names))
	assert.Equal(t, models.UniformNames("تهران"), names)
}

func TestBadRequests(t *testing.T) {
	h := newTestServer(&stubGeocoder{}, &stubForecasts{})

	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"missing action", "", "Invalid action"},
		{"unknown action", "action=forecast", "Invalid action"},
		{"missing lat", "action=weather&lon=51.42", "Missing coordinates"},
		{"missing lon", "action=city-names&lat=35.69", "Missing coordinates"},
		{"unparseable", "action=weather&lat=north&lon=51.42", "Invalid coordinates"},
		{"out of range", "action=weather&lat=35.69&lon=200", "Invalid coordinates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr, body := get(t, h, "/api/weather?"+tt.query)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Equal(t, tt.want, errorMessage(t, body))
		})
	}
}

func TestHealthAndMetrics(t *testing.T) {
	h := newTestServer(&stubGeocoder{}, &stubForecasts{})

	rr, body := get(t, h, "/api/health")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `"ok"`, string(body["status"]))

	get(t, h, "/api/weather?action=nope")
	rr, _ = get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `kolan_query_requests_total{action="invalid",status="400"}`)
}
