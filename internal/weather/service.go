package weather

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// ErrNoReadings is returned when no provider produced a reading.
var ErrNoReadings = errors.New("no weather readings available")

// Service fetches current conditions from all providers concurrently and
// aggregates the successful readings.
type Service struct {
	providers []Provider
	logger    *slog.Logger
}

// NewService creates a new Service.
func NewService(providers []Provider, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		providers: providers,
		logger:    logger.With("component", "weather.service"),
	}
}

// Current returns the aggregated snapshot for at. Individual provider
// failures are logged and skipped; ErrNoReadings means all of them failed.
func (s *Service) Current(ctx context.Context, at Coordinates) (Snapshot, error) {
	if len(s.providers) == 0 {
		return Snapshot{}, ErrNoReadings
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		readings []Reading
	)

	for _, p := range s.providers {
		wg.Add(1)
		go func(p Provider) {
			defer wg.Done()

			r, err := p.Fetch(ctx, at)
			if err != nil {
				s.logger.Warn("weather provider fetch failed", "provider", p.Name(), "key", at.Key(), "error", err)
				return
			}

			mu.Lock()
			readings = append(readings, r)
			mu.Unlock()
		}(p)
	}

	wg.Wait()

	if len(readings) == 0 {
		return Snapshot{}, ErrNoReadings
	}
	return AggregateReadings(readings), nil
}
