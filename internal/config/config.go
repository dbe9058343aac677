package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port     string `validate:"required,numeric"`
	LogLevel string `validate:"oneof=debug info warn error"`

	// CatalogPath selects a YAML catalog; empty uses the embedded one.
	CatalogPath string

	OpenAQBaseURL     string `validate:"omitempty,url"`
	OpenAQAPIKey      string
	OpenWeatherAPIKey string
	WeatherAPIKey     string
	NewsDataAPIKey    string

	PollutantCacheTTL time.Duration `validate:"gt=0"`
	WeatherCacheTTL   time.Duration `validate:"gt=0"`
	NewsCacheTTL      time.Duration `validate:"gt=0"`
	FetchTimeout      time.Duration `validate:"gt=0"`

	CacheBackend    string `validate:"oneof=memory valkey"`
	ValkeyAddr      string `validate:"required_if=CacheBackend valkey"`
	CacheMaxEntries int    `validate:"gte=0"`

	// FetchInterval controls how often WarmLocations are refreshed.
	FetchInterval time.Duration `validate:"gt=0"`
	WarmLocations []string

	// In-memory report history retention.
	StoreMaxHistory int           `validate:"gte=0"` // 0 = unlimited
	StoreMaxAge     time.Duration `validate:"gte=0"` // 0 = unlimited

	HistoryHours int `validate:"gt=0,lte=168"`
}

var validate = validator.New()

// Load reads configuration from the environment (and an optional .env file)
// with defaults for everything.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	return FromEnv()
}

// FromEnv builds and validates the configuration from the current environment.
func FromEnv() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:              getenvDefault("PORT", "8080"),
		LogLevel:          strings.ToLower(getenvDefault("LOG_LEVEL", "info")),
		CatalogPath:       os.Getenv("CATALOG_PATH"),
		OpenAQBaseURL:     os.Getenv("OPENAQ_BASE_URL"),
		OpenAQAPIKey:      os.Getenv("OPENAQ_API_KEY"),
		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
		WeatherAPIKey:     os.Getenv("WEATHERAPI_API_KEY"),
		NewsDataAPIKey:    os.Getenv("NEWSDATA_API_KEY"),
		CacheBackend:      strings.ToLower(getenvDefault("CACHE_BACKEND", "memory")),
		ValkeyAddr:        os.Getenv("VALKEY_ADDR"),
		CacheMaxEntries:   getenvInt("CACHE_MAX_ENTRIES", 0),
		WarmLocations:     splitList(os.Getenv("WARM_LOCATIONS")),
		StoreMaxHistory:   getenvInt("STORE_MAX_HISTORY", 96), // roughly 24h at 15-minute intervals
		HistoryHours:      getenvInt("HISTORY_HOURS", 24),
	}

	durations := []struct {
		key string
		def string
		dst *time.Duration
	}{
		{"POLLUTANT_CACHE_TTL", "30m", &cfg.PollutantCacheTTL},
		{"WEATHER_CACHE_TTL", "30m", &cfg.WeatherCacheTTL},
		{"NEWS_CACHE_TTL", "1h", &cfg.NewsCacheTTL},
		{"FETCH_TIMEOUT", "3s", &cfg.FetchTimeout},
		{"FETCH_INTERVAL", "15m", &cfg.FetchInterval},
		{"STORE_MAX_AGE", "24h", &cfg.StoreMaxAge},
	}
	for _, d := range durations {
		v, err := getenvDuration(d.key, d.def)
		if err != nil {
			return nil, err
		}
		*d.dst = v
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
