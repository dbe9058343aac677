package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "CACHE_BACKEND", "POLLUTANT_CACHE_TTL", "FETCH_TIMEOUT", "WARM_LOCATIONS", "HISTORY_HOURS"} {
		t.Setenv(k, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "memory", cfg.CacheBackend)
	require.Equal(t, 30*time.Minute, cfg.PollutantCacheTTL)
	require.Equal(t, time.Hour, cfg.NewsCacheTTL)
	require.Equal(t, 3*time.Second, cfg.FetchTimeout)
	require.Equal(t, 24, cfg.HistoryHours)
	require.Empty(t, cfg.WarmLocations)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_BACKEND", "valkey")
	t.Setenv("VALKEY_ADDR", "localhost:6379")
	t.Setenv("WARM_LOCATIONS", "delhi-aqi, mumbai-aqi,,")
	t.Setenv("FETCH_TIMEOUT", "1500ms")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, []string{"delhi-aqi", "mumbai-aqi"}, cfg.WarmLocations)
	require.Equal(t, 1500*time.Millisecond, cfg.FetchTimeout)
}

func TestFromEnvRejectsInvalid(t *testing.T) {
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("FETCH_TIMEOUT", "soon")
		_, err := FromEnv()
		require.ErrorContains(t, err, "FETCH_TIMEOUT")
	})
	t.Run("valkey without address", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "valkey")
		t.Setenv("VALKEY_ADDR", "")
		_, err := FromEnv()
		require.Error(t, err)
	})
	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("CACHE_BACKEND", "memcached")
		_, err := FromEnv()
		require.Error(t, err)
	})
	t.Run("zero ttl", func(t *testing.T) {
		t.Setenv("NEWS_CACHE_TTL", "0s")
		_, err := FromEnv()
		require.Error(t, err)
	})
}
