// Package client talks to the weather query service on behalf of the presentation layer.
package client

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
	"kolan-weather/models"
	"kolan-weather/presentation"
)

// DefaultBaseURL is where a locally started query service listens
const DefaultBaseURL = "http://localhost:8080"

// queryPath is the query interface endpoint
const queryPath = "/api/weather"

// Client calls the query interface over HTTP
type Client struct {
	baseURL string
	client  *http.Client
}

// Ensure Client implements presentation.Gateway
var _ presentation.Gateway = (*Client)(nil)

// New creates a new query client; an empty baseURL selects DefaultBaseURL
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type searchResponse struct {
	Results []models.Place `json:"results"`
}

type cityNamesResponse struct {
	Names models.LocalizedNames `json:"names"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Search runs the search action
func (c *Client) Search(ctx context.Context, query string, lang models.Language) ([]models.Place, error) {
	if !datasource.Searchable(query) {
		return []models.Place{}, nil
	}

	params := url.Values{}
	params.Set("action", "search")
	params.Set("q", strings.TrimSpace(query))
	params.Set("lang", string(lang))

	var resp searchResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("%w: %w", datasource.ErrLookupFailed, err)
	}
	if resp.Results == nil {
		return []models.Place{}, nil
	}
	return resp.Results, nil
}

// CityNames runs the city-names action for place
func (c *Client) CityNames(ctx context.Context, place models.Place) (models.LocalizedNames, error) {
	params := coordinateParams("city-names", place.Latitude, place.Longitude)
	params.Set("name", place.Name)

	var resp cityNamesResponse
	if err := c.get(ctx, params, &resp); err != nil {
		return models.LocalizedNames{}, fmt.Errorf("%w: %w", datasource.ErrLookupFailed, err)
	}
	return resp.Names, nil
}

// Weather runs the weather action
func (c *Client) Weather(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	var snap models.ForecastSnapshot
	if err := c.get(ctx, coordinateParams("weather", lat, lon), &snap); err != nil {
		return nil, fmt.Errorf("%w: %w", datasource.ErrFetchFailed, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, fmt.Errorf("%w: misaligned forecast: %w", datasource.ErrFetchFailed, err)
	}
	return &snap, nil
}

func coordinateParams(action string, lat, lon float64) url.Values {
	params := url.Values{}
	params.Set("action", action)
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	return params
}

func (c *Client) get(ctx context.Context, params url.Values, out any) error {
	apiURL := c.baseURL + queryPath + "?" + params.Encode()
	slog.Debug("query request", "url", apiURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	rawData, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e errorResponse
		if json.Unmarshal(rawData, &e) == nil && e.Error != "" {
			return &datasource.StatusError{Status: resp.StatusCode, Body: e.Error}
		}
		return &datasource.StatusError{Status: resp.StatusCode, Body: string(rawData)}
	}

	if err := json.Unmarshal(rawData, out); err != nil {
		return fmt.Errorf("failed to parse API response: %w", err)
	}
	return nil
}
