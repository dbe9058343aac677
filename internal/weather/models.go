package weather

import (
	"fmt"
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// Coordinates is the point weather is requested for.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Key returns the cache key for these coordinates.
func (c Coordinates) Key() string {
	return fmt.Sprintf("weather_%g_%g", c.Lat, c.Lng)
}

// HourlyForecast is one slot of the short-range forecast strip.
type HourlyForecast struct {
	Time      string `json:"time"`
	Temp      int    `json:"temp"`
	Icon      string `json:"icon"`
	Condition string `json:"condition"`
}

// Snapshot is the current-conditions view shown alongside the index.
// Temperatures are °C and wind speed is km/h.
type Snapshot struct {
	Temperature    int              `json:"temperature"`
	FeelsLike      int              `json:"feels_like"`
	Humidity       int              `json:"humidity"`
	WindSpeed      int              `json:"wind_speed"`
	WindDirection  int              `json:"wind_direction"`
	Description    string           `json:"description"`
	Icon           string           `json:"icon"`
	Condition      Condition        `json:"condition"`
	HourlyForecast []HourlyForecast `json:"hourly_forecast,omitempty"`

	// Providers contributing to this snapshot; empty for synthetic weather.
	Providers []ProviderContribution `json:"providers,omitempty"`
}

// ProviderContribution describes data coming from a single provider used in aggregation.
type ProviderContribution struct {
	ProviderName string    `json:"provider"`
	Timestamp    time.Time `json:"timestamp"`
}
