package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kolan-weather/api"
	"kolan-weather/cache"
	"kolan-weather/collector"
	"kolan-weather/datasource"
	"kolan-weather/providers/openmeteo"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// pruneInterval is how often expired cache entries are dropped
const pruneInterval = 10 * time.Minute

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	// Parse command line arguments
	port := flag.Int("port", 0, "Port to run the server on (overrides config)")
	configFile := flag.String("config", "config.json", "Path to configuration file")
	enableRateLimiting := flag.Bool("rate-limit", true, "Enable upstream rate limiting")
	flag.Parse()

	// Load configuration
	config, err := datasource.LoadConfig(*configFile)
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if *port > 0 {
		config.Port = *port
	}
	config.RateLimit.Enabled = config.RateLimit.Enabled && *enableRateLimiting

	slog.SetDefault(newLogger(config.LogLevel))

	// Upstream gateways
	var geocoder datasource.Geocoder = openmeteo.NewGeocodingSource(config.GeocodingURL, config.HTTPTimeout)
	var forecasts datasource.ForecastSource = openmeteo.NewForecastSource(config.ForecastURL, config.HTTPTimeout)

	if config.RateLimit.Enabled {
		geocoder = datasource.NewRateLimitedGeocoder(geocoder, config.RateLimit.RPS, config.RateLimit.Burst)
		forecasts = datasource.NewRateLimitedForecastSource(forecasts, config.RateLimit.RPS, config.RateLimit.Burst)
		slog.Info("Applied rate limiting to upstream gateways", "rps", config.RateLimit.RPS, "burst", config.RateLimit.Burst)
	}

	// Caches
	cachedGeocoder := cache.NewCachedGeocoder(geocoder, config.Cache.SearchTTL)

	var store cache.SnapshotStore
	var memoryStore *cache.MemorySnapshotStore
	if config.Cache.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: config.Cache.RedisAddr})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			slog.Warn("Redis not reachable, snapshot lookups will miss until it is", "addr", config.Cache.RedisAddr, "error", err)
		}
		cancel()

		store = cache.NewRedisSnapshotStore(rdb)
		slog.Info("Caching forecast snapshots in Redis", "addr", config.Cache.RedisAddr)
	} else {
		memoryStore = cache.NewMemorySnapshotStore()
		store = memoryStore
	}
	cachedForecasts := cache.NewCachedForecastSource(forecasts, store, config.Cache.ForecastTTL)

	warmLocations, err := collector.ParseCoordinates(config.Warm.Locations)
	if err != nil {
		slog.Error("Invalid warm location", "error", err)
		os.Exit(1)
	}

	// Create API server
	server := api.NewServer(cachedGeocoder, cachedForecasts, config.Port, config.CORSOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Periodically drop expired cache entries
	go func() {
		ticker := time.NewTicker(pruneInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				searches := cachedGeocoder.Prune()
				snapshots := 0
				if memoryStore != nil {
					snapshots = memoryStore.PruneExpired()
				}
				slog.Debug("Pruned expired cache entries", "searches", searches, "snapshots", snapshots)
			case <-ctx.Done():
				return
			}
		}
	}()

	// Keep configured locations warm in the forecast cache
	if len(warmLocations) > 0 {
		warmer := collector.NewWarmer(cachedForecasts, warmLocations, config.Warm.Interval)
		stopWarming := warmer.Start(ctx)
		defer stopWarming()
		slog.Info("Warming forecasts", "locations", len(warmLocations), "interval", config.Warm.Interval)
	}

	// Start the API server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
		slog.Info("Shutting down")
	case err := <-serverErr:
		slog.Error("Server stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Graceful shutdown failed", "error", err)
	}

	hits, misses := cachedForecasts.CacheStats()
	slog.Info("Shutdown complete", "forecast_cache_hits", hits, "forecast_cache_misses", misses)
}

// newLogger builds a text logger on stdout at the named level
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
}
