package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	name    string
	reading Reading
	err     error
}

func (s stubProvider) Name() string { return s.name }

func (s stubProvider) Fetch(context.Context, Coordinates) (Reading, error) {
	if s.err != nil {
		return Reading{}, s.err
	}
	r := s.reading
	r.ProviderName = s.name
	return r, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServiceCurrentSkipsFailingProviders(t *testing.T) {
	svc := NewService([]Provider{
		stubProvider{name: "down", err: errors.New("timeout")},
		stubProvider{name: "up", reading: Reading{TemperatureC: 30, Condition: ConditionClear}},
	}, discardLogger())

	snap, err := svc.Current(context.Background(), Coordinates{Lat: 1, Lng: 2})
	require.NoError(t, err)
	require.Equal(t, 30, snap.Temperature)
	require.Len(t, snap.Providers, 1)
}

func TestServiceCurrentAllFail(t *testing.T) {
	svc := NewService([]Provider{stubProvider{name: "down", err: errors.New("boom")}}, discardLogger())

	_, err := svc.Current(context.Background(), Coordinates{})
	require.ErrorIs(t, err, ErrNoReadings)
}

func TestServiceWithoutProviders(t *testing.T) {
	_, err := NewService(nil, nil).Current(context.Background(), Coordinates{})
	require.ErrorIs(t, err, ErrNoReadings)
}

func TestCoordinatesKey(t *testing.T) {
	require.Equal(t, "weather_28.6139_77.209", Coordinates{Lat: 28.6139, Lng: 77.209}.Key())
}
