package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"kolan-weather/cache"
	"kolan-weather/datasource"
	"kolan-weather/models"
	"kolan-weather/providers/openmeteo"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	redisAddr := flag.String("redis", "", "Redis address for forecast snapshots (memory when empty)")
	cacheDuration := flag.Duration("ttl", 15*time.Second, "Cache duration")
	flag.Parse()

	fmt.Println("=== Running Cache Demo ===")
	fmt.Println("This shows how repeated searches and forecasts are served from cache")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file:", err)
	}

	var store cache.SnapshotStore = cache.NewMemorySnapshotStore()
	if *redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: *redisAddr})
		defer rdb.Close()
		store = cache.NewRedisSnapshotStore(rdb)
		fmt.Printf("Caching snapshots in Redis at %s\n", *redisAddr)
	}

	geocoder := cache.NewCachedGeocoder(openmeteo.NewGeocodingSource("", 10*time.Second), *cacheDuration)
	forecasts := cache.NewCachedForecastSource(openmeteo.NewForecastSource("", 10*time.Second), store, *cacheDuration)

	ctx := context.Background()
	queries := []string{"Tehran", "Sulaymaniyah"}

	fmt.Println("\n*** First Request - Should be cache misses ***")
	makeRequests(ctx, geocoder, forecasts, queries)

	fmt.Println("\n*** Second Request - Should use cached data ***")
	makeRequests(ctx, geocoder, forecasts, queries)

	fmt.Printf("\nWaiting for cache to expire (%s)...\n", *cacheDuration)
	time.Sleep(*cacheDuration + time.Second)

	fmt.Println("\n*** After Expiry - Should be cache misses again ***")
	makeRequests(ctx, geocoder, forecasts, queries)

	hits, misses := geocoder.CacheStats()
	fmt.Printf("\nStats for %s: %d cache hits, %d cache misses\n", geocoder.Name(), hits, misses)
	hits, misses = forecasts.CacheStats()
	fmt.Printf("Stats for %s: %d cache hits, %d cache misses\n", forecasts.Name(), hits, misses)

	fmt.Println("\n=== Cache Demo Complete ===")
}

func makeRequests(ctx context.Context, geocoder datasource.Geocoder, forecasts datasource.ForecastSource, queries []string) {
	for _, q := range queries {
		places, err := geocoder.Search(ctx, datasource.SearchQuery{Name: q, Language: models.LanguageEnglish, Count: 1})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		if len(places) == 0 {
			fmt.Printf("No match for %s\n", q)
			continue
		}

		p := places[0]
		start := time.Now()
		snap, err := forecasts.FetchForecast(ctx, p.Latitude, p.Longitude)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("Got forecast for %s, %s: %.1f°C in %v\n", p.Name, p.Country, snap.Current.Temperature, time.Since(start))
	}
}
