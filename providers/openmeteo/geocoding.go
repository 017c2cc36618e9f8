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

// DefaultGeocodingURL is the public Open-Meteo search endpoint
const DefaultGeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"

// maxCount is the largest result count the search endpoint accepts
const maxCount = 100

// GeocodingSource searches places through the Open-Meteo geocoding API
type GeocodingSource struct {
	baseURL string
	client  *http.Client
}

// Ensure GeocodingSource implements datasource.Geocoder
var _ datasource.Geocoder = (*GeocodingSource)(nil)

// NewGeocodingSource creates a new geocoder; an empty baseURL selects the public endpoint
func NewGeocodingSource(baseURL string, timeout time.Duration) *GeocodingSource {
	if baseURL == "" {
		baseURL = DefaultGeocodingURL
	}
	return &GeocodingSource{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the provider name
func (g *GeocodingSource) Name() string {
	return "Open-Meteo Geocoding"
}

// geocodingResponse represents the API response structure
type geocodingResponse struct {
	Results []models.Place `json:"results"`
}

// Search gets candidate places for a name in the requested language
func (g *GeocodingSource) Search(ctx context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	if !datasource.Searchable(q.Name) {
		return []models.Place{}, nil
	}

	count := q.Count
	if count <= 0 || count > maxCount {
		count = maxCount
	}
	lang := q.Language
	if lang == "" {
		lang = models.LanguageEnglish
	}

	params := url.Values{}
	params.Set("name", strings.TrimSpace(q.Name))
	params.Set("count", strconv.Itoa(count))
	params.Set("language", string(lang))
	params.Set("format", "json")

	apiURL := g.baseURL + "?" + params.Encode()
	slog.Debug("geocoding request", "url", apiURL)

	places, err := g.do(ctx, apiURL)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("geocoding", "error").Inc()
		return nil, fmt.Errorf("%w: %w", datasource.ErrLookupFailed, err)
	}
	metrics.UpstreamRequests.WithLabelValues("geocoding", "ok").Inc()
	return places, nil
}

func (g *GeocodingSource) do(ctx context.Context, apiURL string) ([]models.Place, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := g.client.Do(req)
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

	var geoResp geocodingResponse
	if err := json.Unmarshal(rawData, &geoResp); err != nil {
		return nil, fmt.Errorf("failed to parse API response: %w", err)
	}
	if geoResp.Results == nil {
		return []models.Place{}, nil
	}
	return geoResp.Results, nil
}
