package datasource

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Port         int           `mapstructure:"port"`
	GeocodingURL string        `mapstructure:"geocoding_url"`
	ForecastURL  string        `mapstructure:"forecast_url"`
	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	LogLevel     string        `mapstructure:"log_level"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`

	Cache struct {
		SearchTTL   time.Duration `mapstructure:"search_ttl"`
		ForecastTTL time.Duration `mapstructure:"forecast_ttl"`
		RedisAddr   string        `mapstructure:"redis_addr"` // empty keeps snapshots in memory
	} `mapstructure:"cache"`

	// Forecasts refreshed in the background, as "lat,lon" strings. From the environment the
	// entries are separated by semicolons: KOLAN_WARM_LOCATIONS="35.69,51.42;36.19,44.01".
	// A zero interval refreshes at half the forecast TTL.
	Warm struct {
		Interval  time.Duration `mapstructure:"interval"`
		Locations []string      `mapstructure:"locations"`
	} `mapstructure:"warm"`

	// Open-Meteo's free tier allows 600 calls/minute
	RateLimit struct {
		Enabled bool    `mapstructure:"enabled"`
		RPS     float64 `mapstructure:"rps"`
		Burst   int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
}

// DefaultConfig creates a default configuration
func DefaultConfig() *Config {
	config := &Config{
		Port:         8080,
		GeocodingURL: "https://geocoding-api.open-meteo.com/v1/search",
		ForecastURL:  "https://api.open-meteo.com/v1/forecast",
		HTTPTimeout:  10 * time.Second,
		LogLevel:     "info",
		CORSOrigins:  []string{"*"},
	}
	config.Cache.SearchTTL = time.Hour
	config.Cache.ForecastTTL = 10 * time.Minute
	config.Warm.Interval = config.Cache.ForecastTTL / 2
	config.Warm.Locations = []string{}
	config.RateLimit.Enabled = true
	config.RateLimit.RPS = 10
	config.RateLimit.Burst = 5
	return config
}

// LoadConfig loads configuration from a file, with KOLAN_* environment variables taking
// precedence. A missing file is not an error: the defaults are used instead.
func LoadConfig(filename string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix("KOLAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if filename != "" {
		v.SetConfigFile(filename)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if raw, ok := v.Get("warm.locations").(string); ok {
		config.Warm.Locations = splitLocations(raw)
	}
	if config.Warm.Interval <= 0 {
		config.Warm.Interval = config.Cache.ForecastTTL / 2
	}
	if config.RateLimit.Enabled && config.RateLimit.RPS <= 0 {
		return nil, fmt.Errorf("rate_limit.rps must be positive, got %v", config.RateLimit.RPS)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("port", d.Port)
	v.SetDefault("geocoding_url", d.GeocodingURL)
	v.SetDefault("forecast_url", d.ForecastURL)
	v.SetDefault("http_timeout", d.HTTPTimeout)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("cors_origins", d.CORSOrigins)
	v.SetDefault("cache.search_ttl", d.Cache.SearchTTL)
	v.SetDefault("cache.forecast_ttl", d.Cache.ForecastTTL)
	v.SetDefault("cache.redis_addr", d.Cache.RedisAddr)
	v.SetDefault("warm.interval", time.Duration(0))
	v.SetDefault("warm.locations", d.Warm.Locations)
	v.SetDefault("rate_limit.enabled", d.RateLimit.Enabled)
	v.SetDefault("rate_limit.rps", d.RateLimit.RPS)
	v.SetDefault("rate_limit.burst", d.RateLimit.Burst)
}

// splitLocations splits a semicolon separated list of "lat,lon" entries
func splitLocations(raw string) []string {
	locations := []string{}
	for _, entry := range strings.Split(raw, ";") {
		if entry = strings.TrimSpace(entry); entry != "" {
			locations = append(locations, entry)
		}
	}
	return locations
}
