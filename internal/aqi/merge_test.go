package aqi

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeKeepsMaximumPerPollutant(t *testing.T) {
	merged := Merge(
		Vector{PM25: ptr(40)},
		Vector{PM25: ptr(85), NO2: ptr(12)},
		Vector{PM25: ptr(60), NO2: ptr(30)},
	)

	pm25, ok := merged.Get(PM25)
	require.True(t, ok)
	require.Equal(t, 85.0, pm25)

	no2, _ := merged.Get(NO2)
	require.Equal(t, 30.0, no2)

	_, ok = merged.Get(O3)
	require.False(t, ok)
}

func TestMergeIgnoresNegativeReadings(t *testing.T) {
	merged := Merge(Vector{SO2: ptr(-10)}, Vector{SO2: nil, CO: ptr(1.2)})

	_, ok := merged.Get(SO2)
	require.False(t, ok)
	co, _ := merged.Get(CO)
	require.Equal(t, 1.2, co)
}

func TestMergeOrderAndGrouping(t *testing.T) {
	a := Vector{PM25: ptr(40), PM10: ptr(150)}
	b := Vector{PM25: ptr(85), O3: ptr(33)}
	c := Vector{PM10: ptr(90), O3: ptr(70), CO: ptr(0.8)}

	want := Merge(a, b, c)
	require.Equal(t, want, Merge(c, a, b))
	require.Equal(t, want, Merge(b, c, a))
	require.Equal(t, want, Merge(Merge(a, b), c))
	require.Equal(t, want, Merge(a, Merge(b, c)))
}

func TestMergeIdempotent(t *testing.T) {
	a := Vector{PM25: ptr(40), NO2: ptr(22)}
	require.Equal(t, Merge(a), Merge(a, a))
	require.Equal(t, a, Merge(a, a))
}

func TestMergeNoStations(t *testing.T) {
	require.True(t, Merge().Empty())
}
