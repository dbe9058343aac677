package weather

import (
	"context"
	"time"
)

// Reading is a single provider's normalized current conditions.
type Reading struct {
	ProviderName string
	Timestamp    time.Time

	TemperatureC  float64
	FeelsLikeC    float64
	HumidityPct   float64
	WindSpeedKmh  float64
	WindDirection float64
	Description   string
	Icon          string
	Condition     Condition
}

// Provider abstracts a weather data source (e.g. OpenWeatherMap, WeatherAPI, Open-Meteo).
type Provider interface {
	Name() string
	Fetch(ctx context.Context, at Coordinates) (Reading, error)
}
