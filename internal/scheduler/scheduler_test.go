package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/i474232898/airaware/internal/airquality"
	"github.com/i474232898/airaware/internal/logger"
)

type recordingRefresher struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingRefresher) GetReport(_ context.Context, id string) (airquality.CityReport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	if id == "atlantis" {
		return airquality.CityReport{}, errors.New("not found")
	}
	return airquality.CityReport{City: id}, nil
}

func TestRunOnceRefreshesEveryLocation(t *testing.T) {
	rec := &recordingRefresher{}
	s := New([]string{"delhi-aqi", "atlantis", "pune-aqi"}, time.Minute, rec, logger.Discard())

	s.RunOnce()

	sort.Strings(rec.ids)
	require.Equal(t, []string{"atlantis", "delhi-aqi", "pune-aqi"}, rec.ids)
}

func TestStartWithoutLocationsIsNoop(t *testing.T) {
	rec := &recordingRefresher{}
	s := New(nil, time.Minute, rec, logger.Discard())

	require.NoError(t, s.Start())
	s.Stop()
	require.Empty(t, rec.ids)
}
