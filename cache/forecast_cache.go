package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/metrics"
	"kolan-weather/models"

	"golang.org/x/sync/singleflight"
)

// SnapshotStore keeps forecast snapshots for a limited time
type SnapshotStore interface {
	// Get returns the snapshot stored under key; found is false when absent or expired
	Get(ctx context.Context, key string) (snapshot *models.ForecastSnapshot, found bool, err error)
	// Set stores a snapshot for ttl
	Set(ctx context.Context, key string, snapshot *models.ForecastSnapshot, ttl time.Duration) error
}

// CachedForecastSource wraps a ForecastSource and adds caching functionality
type CachedForecastSource struct {
	source         datasource.ForecastSource
	store          SnapshotStore
	group          singleflight.Group
	mutex          sync.Mutex
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// NewCachedForecastSource creates a new cached wrapper around a forecast source
func NewCachedForecastSource(source datasource.ForecastSource, store SnapshotStore, cacheDuration time.Duration) *CachedForecastSource {
	return &CachedForecastSource{
		source:        source,
		store:         store,
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying forecast source with [Cached] suffix
func (c *CachedForecastSource) Name() string {
	return c.source.Name() + " [Cached]"
}

// ForecastKey rounds coordinates to four decimals, roughly ten metres
func ForecastKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// FetchForecast fetches forecast data, using cache when available. Store failures are logged
// and treated as misses so that a cache outage never hides the upstream.
func (c *CachedForecastSource) FetchForecast(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	key := ForecastKey(lat, lon)

	snapshot, found, err := c.store.Get(ctx, key)
	if err != nil {
		slog.Warn("forecast cache read failed", "key", key, "error", err)
	}
	if found {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		metrics.CacheLookups.WithLabelValues("forecast", "hit").Inc()
		slog.Debug("forecast cache hit", "key", key)
		return snapshot, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()
	metrics.CacheLookups.WithLabelValues("forecast", "miss").Inc()

	return c.fill(ctx, key, lat, lon)
}

// Refresh fetches a snapshot from the underlying source and stores it, replacing any entry
// that has not yet expired
func (c *CachedForecastSource) Refresh(ctx context.Context, lat, lon float64) (*models.ForecastSnapshot, error) {
	return c.fill(ctx, ForecastKey(lat, lon), lat, lon)
}

func (c *CachedForecastSource) fill(ctx context.Context, key string, lat, lon float64) (*models.ForecastSnapshot, error) {
	return shared(ctx, &c.group, key, func(ctx context.Context) (*models.ForecastSnapshot, error) {
		fresh, err := c.source.FetchForecast(ctx, lat, lon)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(ctx, key, fresh, c.cacheDuration); err != nil {
			slog.Warn("forecast cache write failed", "key", key, "error", err)
		}
		return fresh, nil
	})
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedForecastSource) CacheStats() (hits, misses int) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedForecastSource implements ForecastSource
var _ datasource.ForecastSource = (*CachedForecastSource)(nil)
