// Package demo generates plausible, reproducible air-quality and weather
// data for locations without live measurements.
package demo

import (
	"hash/fnv"
	"math"
	"math/rand/v2"
	"time"

	"github.com/i474232898/airaware/internal/aqi"
)

// IST is the zone hour buckets and diurnal patterns are computed in.
var IST = time.FixedZone("Asia/Kolkata", 5*60*60+30*60)

// HistoryPoint is one hour of the synthetic index series.
type HistoryPoint struct {
	Timestamp time.Time `json:"time"`
	Label     string    `json:"timestamp"`
	Hour      int       `json:"hour"`
	AQI       int       `json:"aqi"`
}

// Synthesizer produces demo data that is stable for a location within a
// wall-clock hour: every generator is seeded from (location, hour bucket).
type Synthesizer struct {
	now  func() time.Time
	zone *time.Location
}

// New creates a Synthesizer. A nil now uses time.Now.
func New(now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{now: now, zone: IST}
}

// HourBucket truncates t to the start of its hour in the synthesizer zone.
func (s *Synthesizer) HourBucket(t time.Time) time.Time {
	t = t.In(s.zone)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, s.zone)
}

// CurrentBucket is HourBucket of the current time.
func (s *Synthesizer) CurrentBucket() time.Time {
	return s.HourBucket(s.now())
}

func (s *Synthesizer) rng(location string, bucket time.Time, stream string) *rand.Rand {
	h := fnv.New64a()
	_, _ = h.Write([]byte(location))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(s.HourBucket(bucket).Format("2006010215")))
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(stream))
	seed := h.Sum64()
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// multiplier scales the secondary pollutants with PM2.5 severity.
func multiplier(pm25 float64) float64 {
	switch {
	case pm25 <= 30:
		return 0.3
	case pm25 <= 60:
		return 0.6
	case pm25 <= 90:
		return 1.0
	case pm25 <= 120:
		return 1.4
	default:
		return 1.8
	}
}

// Vector synthesizes a full pollutant vector for location in the hour
// containing hour.
func (s *Synthesizer) Vector(location string, hour time.Time) aqi.Vector {
	p := ProfileFor(location)
	r := s.rng(location, hour, "vector")

	pm25 := uniform(r, p.PM25Min, p.PM25Max)
	m := multiplier(pm25)
	pm10 := pm25 * uniform(r, 1.5, 2.2)

	var v aqi.Vector
	v.Set(aqi.PM25, roundTo(pm25, 1))
	v.Set(aqi.PM10, roundTo(pm10, 1))
	v.Set(aqi.NO2, roundTo(uniform(r, 12, 60)*m, 1))
	v.Set(aqi.SO2, roundTo(uniform(r, 6, 35)*m, 1))
	v.Set(aqi.CO, roundTo(uniform(r, 0.2, 2.0)*m, 2))
	v.Set(aqi.O3, roundTo(uniform(r, 20, 80)*m, 1))
	return v
}

// History returns hours hourly index points ending at the current hour
// bucket, oldest first. The series is a bounded random walk inside the
// location's range, raised during the 07-10 and 17-21 rush hours and lowered
// between 02 and 05.
func (s *Synthesizer) History(location string, hours int) []HistoryPoint {
	if hours <= 0 {
		return nil
	}
	bucket := s.CurrentBucket()
	rg := historyRangeFor(location)
	r := s.rng(location, bucket, "history")

	base := randInt(r, rg.min, rg.max)
	out := make([]HistoryPoint, 0, hours)

	for i := hours; i > 0; i-- {
		ts := bucket.Add(-time.Duration(i) * time.Hour)
		hour := ts.Hour()

		factor := 1.0
		switch {
		case (hour >= 7 && hour <= 10) || (hour >= 17 && hour <= 21):
			factor = 1.15
		case hour >= 2 && hour <= 5:
			factor = 0.85
		}

		variation := randInt(r, -20, 20)
		value := math.Max(10, math.Min(aqi.MaxIndex, float64(base+variation)*factor))

		out = append(out, HistoryPoint{
			Timestamp: ts,
			Label:     ts.Format("15:04"),
			Hour:      hour,
			AQI:       int(value),
		})

		base = clamp(base+randInt(r, -8, 8), rg.min, rg.max)
	}
	return out
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + (hi-lo)*r.Float64()
}

// randInt returns an integer in [lo, hi].
func randInt(r *rand.Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo+1)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
