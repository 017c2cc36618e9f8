// Package collector keeps forecasts for frequently requested places warm in the cache.
package collector

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/models"
)

// DefaultInterval is how often each location is refreshed, half the default forecast TTL
const DefaultInterval = 5 * time.Minute

// Refresher is implemented by cached sources that can bypass an unexpired entry
type Refresher interface {
	Refresh(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error)
}

// Coordinate is one place kept warm
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.4f,%.4f", c.Latitude, c.Longitude)
}

// ParseCoordinate parses "lat,lon"
func ParseCoordinate(s string) (Coordinate, error) {
	latStr, lonStr, ok := strings.Cut(s, ",")
	if !ok {
		return Coordinate{}, fmt.Errorf("invalid coordinate %q: expected lat,lon", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(latStr), 64)
	if err != nil || lat < -90 || lat > 90 {
		return Coordinate{}, fmt.Errorf("invalid latitude in %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(lonStr), 64)
	if err != nil || lon < -180 || lon > 180 {
		return Coordinate{}, fmt.Errorf("invalid longitude in %q", s)
	}
	return Coordinate{Latitude: lat, Longitude: lon}, nil
}

// ParseCoordinates parses every entry, failing on the first invalid one
func ParseCoordinates(raw []string) ([]Coordinate, error) {
	coords := make([]Coordinate, 0, len(raw))
	for _, s := range raw {
		c, err := ParseCoordinate(s)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}
	return coords, nil
}

// Refresh reports the outcome of one fetch
type Refresh struct {
	Coordinate Coordinate
	Snapshot   *models.ForecastSnapshot
	Err        error
}

// Warmer periodically fetches forecasts for a fixed set of coordinates
type Warmer struct {
	source       datasource.ForecastSource
	locations    []Coordinate
	interval     time.Duration
	fetchTimeout time.Duration
	results      chan Refresh
}

// NewWarmer creates a new warmer. source is normally a cached forecast source, so each
// refresh repopulates the cache entry that user requests will hit.
func NewWarmer(source datasource.ForecastSource, locations []Coordinate, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Warmer{
		source:       source,
		locations:    locations,
		interval:     interval,
		fetchTimeout: 10 * time.Second,
		results:      make(chan Refresh, 100),
	}
}

// SetFetchTimeout changes the timeout for each fetch
func (w *Warmer) SetFetchTimeout(timeout time.Duration) {
	w.fetchTimeout = timeout
}

// Results returns the channel of refresh outcomes. It is closed once the warmer stops.
// Outcomes are dropped when nobody reads it.
func (w *Warmer) Results() <-chan Refresh {
	return w.results
}

// Start begins warming every location.
// The returned function can be called to stop warming
func (w *Warmer) Start(ctx context.Context) func() {
	warmCtx, cancel := context.WithCancel(ctx)

	var wg sync.WaitGroup
	for _, loc := range w.locations {
		wg.Add(1)
		go w.warm(warmCtx, &wg, loc)
	}

	go func() {
		wg.Wait()
		close(w.results)
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func (w *Warmer) warm(ctx context.Context, wg *sync.WaitGroup, loc Coordinate) {
	defer wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.fetchOnce(ctx, loc)
	for {
		select {
		case <-ticker.C:
			w.fetchOnce(ctx, loc)
		case <-ctx.Done():
			return
		}
	}
}

func (w *Warmer) fetchOnce(ctx context.Context, loc Coordinate) {
	fetchCtx, cancel := context.WithTimeout(ctx, w.fetchTimeout)
	defer cancel()

	var (
		snap *models.ForecastSnapshot
		err  error
	)
	if r, ok := w.source.(Refresher); ok {
		snap, err = r.Refresh(fetchCtx, loc.Latitude, loc.Longitude)
	} else {
		snap, err = w.source.FetchForecast(fetchCtx, loc.Latitude, loc.Longitude)
	}
	if err != nil {
		slog.Warn("Failed to warm forecast", "location", loc.String(), "source", w.source.Name(), "error", err)
	} else {
		slog.Debug("Warmed forecast", "location", loc.String())
	}

	select {
	case w.results <- Refresh{Coordinate: loc, Snapshot: snap, Err: err}:
	default:
	}
}
