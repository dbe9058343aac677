package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var base = time.Date(2024, 11, 3, 9, 0, 0, 0, time.UTC)

func snapAt(minutes, index int) Snapshot {
	return Snapshot{Timestamp: base.Add(time.Duration(minutes) * time.Minute), AQI: index, Category: "Poor"}
}

func TestSaveAndGetLatest(t *testing.T) {
	s := NewMemoryStore(0, 0)

	_, err := s.GetLatest("delhi-aqi")
	require.ErrorIs(t, err, ErrNotFound)

	s.SaveSnapshot("delhi-aqi", snapAt(0, 250))
	s.SaveSnapshot("delhi-aqi", snapAt(15, 260))

	latest, err := s.GetLatest("delhi-aqi")
	require.NoError(t, err)
	require.Equal(t, 260, latest.AQI)
}

func TestRetentionByCount(t *testing.T) {
	s := NewMemoryStore(2, 0)
	for i := 0; i < 5; i++ {
		s.SaveSnapshot("pune-aqi", snapAt(i*15, 100+i))
	}

	all, err := s.GetRange("pune-aqi", base, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, 103, all[0].AQI)
	require.Equal(t, 104, all[1].AQI)
}

func TestRetentionByAge(t *testing.T) {
	now := base.Add(3 * time.Hour)
	s := NewMemoryStore(0, time.Hour).WithClock(func() time.Time { return now })

	s.SaveSnapshot("leh-aqi", snapAt(0, 20))
	_, err := s.GetLatest("leh-aqi")
	require.ErrorIs(t, err, ErrNotFound)

	s.SaveSnapshot("leh-aqi", snapAt(150, 25))
	latest, err := s.GetLatest("leh-aqi")
	require.NoError(t, err)
	require.Equal(t, 25, latest.AQI)
}

func TestGetRangeInclusive(t *testing.T) {
	s := NewMemoryStore(0, 0)
	for i := 0; i < 4; i++ {
		s.SaveSnapshot("kochi-aqi", snapAt(i*30, 40+i))
	}

	got, err := s.GetRange("kochi-aqi", base.Add(30*time.Minute), base.Add(60*time.Minute))
	require.NoError(t, err)
	require.Len(t, got, 2)

	_, err = s.GetRange("kochi-aqi", base.Add(5*time.Hour), base.Add(6*time.Hour))
	require.ErrorIs(t, err, ErrNotFound)
}
