// Package airquality assembles city reports from live measurements, cached
// values and synthetic fallbacks.
package airquality

import (
	"context"
	"time"

	"github.com/i474232898/airaware/internal/aqi"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/demo"
	"github.com/i474232898/airaware/internal/weather"
)

// Provenance tells where the data behind a report came from.
type Provenance string

const (
	ProvenanceLive      Provenance = "live"
	ProvenanceCached    Provenance = "cached"
	ProvenanceSynthetic Provenance = "synthetic"
)

// Synthetic reports whether the data was generated rather than measured.
func (p Provenance) Synthetic() bool {
	return p == ProvenanceSynthetic
}

// DataSource is the short label shown to users.
func (p Provenance) DataSource() string {
	if p.Synthetic() {
		return "demo"
	}
	return "openaq"
}

// Source returns zero or more per-station vectors for a location.
type Source interface {
	Name() string
	Fetch(ctx context.Context, loc catalog.Location) ([]aqi.Vector, error)
}

// BulkSource is implemented by sources that can return every station of the
// country in one call, grouped by normalized city name.
type BulkSource interface {
	FetchAll(ctx context.Context) (map[string][]aqi.Vector, error)
}

// WeatherSource returns current conditions for a coordinate pair.
type WeatherSource interface {
	Current(ctx context.Context, at weather.Coordinates) (weather.Snapshot, error)
}

// PollutantRow is one measured pollutant formatted for display.
type PollutantRow struct {
	Key      aqi.Pollutant `json:"key"`
	Name     string        `json:"name"`
	Value    float64       `json:"value"`
	Unit     string        `json:"unit"`
	FullName string        `json:"full_name"`
	SubIndex int           `json:"sub_index"`
}

// CityReport is the full view of one location. It is rebuilt on every call.
type CityReport struct {
	City      string   `json:"city"`
	Slug      string   `json:"slug"`
	State     string   `json:"state"`
	StateSlug string   `json:"state_slug"`
	Lat       *float64 `json:"lat"`
	Lng       *float64 `json:"lng"`

	aqi.Report

	Pollutants     []PollutantRow      `json:"pollutants"`
	Weather        weather.Snapshot    `json:"weather"`
	Recommendation aqi.Recommendation  `json:"health"`
	HealthImpact   aqi.HealthImpact    `json:"health_impact"`
	HealthRisks    map[string]aqi.Risk `json:"health_risks"`
	Historical     []demo.HistoryPoint `json:"historical"`

	LastUpdated       time.Time  `json:"last_updated"`
	DataSource        string     `json:"data_source"`
	Provenance        Provenance `json:"provenance"`
	WeatherProvenance Provenance `json:"weather_provenance"`
}

// MapRow is the compact per-city entry of the national map.
type MapRow struct {
	Name     string   `json:"name"`
	Slug     string   `json:"slug"`
	State    string   `json:"state"`
	Lat      *float64 `json:"lat"`
	Lng      *float64 `json:"lng"`
	AQI      int      `json:"aqi"`
	Category string   `json:"category"`
	Color    string   `json:"color"`
	IsDemo   bool     `json:"is_demo"`
}

func pollutantRows(v aqi.Vector, r aqi.Report) []PollutantRow {
	rows := make([]PollutantRow, 0, len(aqi.Pollutants))
	for _, p := range aqi.Pollutants {
		c, ok := v.Get(p)
		if !ok {
			continue
		}
		d := aqi.Display(p)
		rows = append(rows, PollutantRow{
			Key:      p,
			Name:     d.Name,
			Value:    c,
			Unit:     d.Unit,
			FullName: d.FullName,
			SubIndex: r.SubIndices[p],
		})
	}
	return rows
}
