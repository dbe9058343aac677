package demo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/airaware/internal/aqi"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var morning = time.Date(2024, 11, 3, 9, 5, 0, 0, IST)

func TestVectorStableWithinHour(t *testing.T) {
	s := New(fixedClock(morning))

	a := s.Vector("Delhi", morning)
	b := s.Vector("Delhi", morning.Add(50*time.Minute))
	require.Equal(t, a, b)
}

func TestVectorChangesAcrossHoursAndLocations(t *testing.T) {
	s := New(nil)

	seen := map[float64]bool{}
	for h := 0; h < 6; h++ {
		pm25, _ := s.Vector("Delhi", morning.Add(time.Duration(h)*time.Hour)).Get(aqi.PM25)
		seen[pm25] = true
	}
	require.Greater(t, len(seen), 1)

	require.NotEqual(t, s.Vector("Delhi", morning), s.Vector("Ghaziabad", morning))
}

func TestVectorWithinProfile(t *testing.T) {
	s := New(nil)
	for _, name := range []string{"Delhi", "Leh", "Mumbai", "Unlisted Town"} {
		p := ProfileFor(name)
		for h := 0; h < 48; h++ {
			v := s.Vector(name, morning.Add(time.Duration(h)*time.Hour))
			for _, pol := range aqi.Pollutants {
				_, ok := v.Get(pol)
				require.True(t, ok, "%s missing %s", name, pol)
			}
			pm25, _ := v.Get(aqi.PM25)
			require.GreaterOrEqual(t, pm25, p.PM25Min-0.05)
			require.LessOrEqual(t, pm25, p.PM25Max+0.05)

			pm10, _ := v.Get(aqi.PM10)
			require.GreaterOrEqual(t, pm10, pm25*1.5-0.2)
			require.LessOrEqual(t, pm10, pm25*2.2+0.2)
		}
	}
}

func TestProfileFallback(t *testing.T) {
	require.Equal(t, DefaultProfile, ProfileFor("Nowhere"))
	require.Equal(t, Profile{100, 220, 250, 450}, ProfileFor("Delhi"))
}

func TestMultiplierBands(t *testing.T) {
	require.Equal(t, 0.3, multiplier(30))
	require.Equal(t, 0.6, multiplier(60))
	require.Equal(t, 1.0, multiplier(90))
	require.Equal(t, 1.4, multiplier(120))
	require.Equal(t, 1.8, multiplier(120.1))
}

func TestHistoryDeterministicAndBounded(t *testing.T) {
	s := New(fixedClock(morning))
	h1 := s.History("Delhi", 24)
	h2 := New(fixedClock(morning.Add(40 * time.Minute))).History("Delhi", 24)

	require.Len(t, h1, 24)
	require.Equal(t, h1, h2)

	for i, p := range h1 {
		require.GreaterOrEqual(t, p.AQI, 10)
		require.LessOrEqual(t, p.AQI, aqi.MaxIndex)
		require.Equal(t, p.Timestamp.Hour(), p.Hour)
		if i > 0 {
			require.Equal(t, time.Hour, p.Timestamp.Sub(h1[i-1].Timestamp))
		}
	}
	require.Equal(t, s.CurrentBucket().Add(-time.Hour), h1[len(h1)-1].Timestamp)
}

func TestHistoryRespectsRangeWithDiurnalFactors(t *testing.T) {
	s := New(fixedClock(morning))
	rg := historyRangeFor("Leh")
	for _, p := range s.History("Leh", 72) {
		lo := float64(rg.min-20) * 0.85
		hi := float64(rg.max+20) * 1.15
		require.GreaterOrEqual(t, float64(p.AQI), minFloat(lo, 10))
		require.LessOrEqual(t, float64(p.AQI), hi)
	}
}

func TestHistoryEmpty(t *testing.T) {
	require.Nil(t, New(nil).History("Delhi", 0))
}

func TestWeatherStableWithinHour(t *testing.T) {
	a := New(fixedClock(morning)).Weather("Pune")
	b := New(fixedClock(morning.Add(30 * time.Minute))).Weather("Pune")
	require.Equal(t, a, b)

	require.Len(t, a.HourlyForecast, 6)
	require.Equal(t, "Now", a.HourlyForecast[0].Time)
	require.Equal(t, "10:00", a.HourlyForecast[1].Time)
	require.GreaterOrEqual(t, a.Temperature, 18)
	require.LessOrEqual(t, a.Temperature, 35)
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
