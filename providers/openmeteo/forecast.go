package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/metrics"
	"kolan-weather/models"
)

// DefaultForecastURL is the public Open-Meteo forecast endpoint
const DefaultForecastURL = "https://api.open-meteo.com/v1/forecast"

// Forecast horizons requested from the API
const (
	ForecastHours = 48
	ForecastDays  = 7
)

// Field sets requested for each series. They mirror the json tags in models.
var (
	currentFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "is_day",
		"precipitation", "rain", "showers", "snowfall", "weather_code", "cloud_cover",
		"pressure_msl", "surface_pressure", "wind_speed_10m", "wind_direction_10m", "wind_gusts_10m",
	}
	hourlyFields = []string{
		"temperature_2m", "relative_humidity_2m", "apparent_temperature", "precipitation_probability",
		"precipitation", "rain", "showers", "snowfall", "weather_code", "cloud_cover", "visibility",
		"wind_speed_10m", "wind_direction_10m", "wind_gusts_10m", "uv_index", "is_day",
	}
	dailyFields = []string{
		"weather_code", "temperature_2m_max", "temperature_2m_min", "apparent_temperature_max",
		"apparent_temperature_min", "sunrise", "sunset", "uv_index_max", "precipitation_sum",
		"rain_sum", "showers_sum", "snowfall_sum", "precipitation_probability_max",
		"wind_speed_10m_max", "wind_gusts_10m_max", "wind_direction_10m_dominant",
	}
)

// ForecastSource provides forecasts from Open-Meteo
type ForecastSource struct {
	baseURL string
	client  *http.Client
}

// Ensure ForecastSource implements datasource.ForecastSource
var _ datasource.ForecastSource = (*ForecastSource)(nil)

// NewForecastSource creates a new forecast source; an empty baseURL selects the public endpoint
func NewForecastSource(baseURL string, timeout time.Duration) *ForecastSource {
	if baseURL == "" {
		baseURL = DefaultForecastURL
	}
	return &ForecastSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (f *ForecastSource) Name() string {
	return "Open-Meteo Forecast"
}

// ForecastParams builds the query string for a coordinate pair
func ForecastParams(lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("current", strings.Join(currentFields, ","))
	params.Set("hourly", strings.Join(hourlyFields, ","))
	params.Set("daily", strings.Join(dailyFields, ","))
	params.Set("timezone", "auto")
	params.Set("forecast_days", strconv.Itoa(ForecastDays))
	params.Set("forecast_hours", strconv.Itoa(ForecastHours))
	return params
}

// FetchForecast gets forecast data from Open-Meteo
func (f *ForecastSource) FetchForecast(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	apiURL := f.baseURL + "?" + ForecastParams(lat, lon).Encode()
	slog.Debug("forecast request", "lat", lat, "lon", lon)

	snapshot, err := f.do(ctx, apiURL)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("forecast", "error").Inc()
		return nil, fmt.Errorf("%w: %w", datasource.ErrFetchFailed, err)
	}
	metrics.UpstreamRequests.WithLabelValues("forecast", "ok").Inc()
	return snapshot, nil
}

func (f *ForecastSource) do(ctx context.Context, apiURL string) (*models.ForecastSnapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &datasource.StatusError{Status: resp.StatusCode, Body: string(rawData)}
	}

	var snapshot models.ForecastSnapshot
	if err := json.Unmarshal(rawData, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	if err := snapshot.Validate(); err != nil {
		return nil, fmt.Errorf("misaligned forecast: %w", err)
	}
	return &snapshot, nil
}
