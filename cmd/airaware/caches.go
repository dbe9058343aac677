package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/i474232898/airaware/internal/aqi"
	"github.com/i474232898/airaware/internal/cache"
	"github.com/i474232898/airaware/internal/config"
	"github.com/i474232898/airaware/internal/news"
	"github.com/i474232898/airaware/internal/weather"
)

// caches groups the per-domain TTL caches.
type caches struct {
	pollutants cache.Cache[aqi.Vector]
	bulk       cache.Cache[map[string]aqi.Vector]
	weather    cache.Cache[weather.Snapshot]
	news       cache.Cache[[]news.Article]

	close func()
}

// provideCaches builds Valkey-backed caches when configured and reachable,
// in-memory caches otherwise.
func provideCaches(cfg *config.AppConfig, logger *slog.Logger) caches {
	if cfg.CacheBackend == "valkey" {
		if client, ok := connectValkey(cfg.ValkeyAddr, logger); ok {
			logger.Info("valkey cache enabled", "addr", cfg.ValkeyAddr)
			return caches{
				pollutants: cache.NewValkey[aqi.Vector](client, "airaware:pollutants", cfg.PollutantCacheTTL, logger),
				bulk:       cache.NewValkey[map[string]aqi.Vector](client, "airaware:bulk", cfg.PollutantCacheTTL, logger),
				weather:    cache.NewValkey[weather.Snapshot](client, "airaware:weather", cfg.WeatherCacheTTL, logger),
				news:       cache.NewValkey[[]news.Article](client, "airaware:news", cfg.NewsCacheTTL, logger),
				close:      client.Close,
			}
		}
	}

	return caches{
		pollutants: cache.NewMemory[aqi.Vector](cfg.PollutantCacheTTL, cfg.CacheMaxEntries, nil),
		bulk:       cache.NewMemory[map[string]aqi.Vector](cfg.PollutantCacheTTL, 1, nil),
		weather:    cache.NewMemory[weather.Snapshot](cfg.WeatherCacheTTL, cfg.CacheMaxEntries, nil),
		news:       cache.NewMemory[[]news.Article](cfg.NewsCacheTTL, 1, nil),
		close:      func() {},
	}
}

func connectValkey(addr string, logger *slog.Logger) (valkey.Client, bool) {
	opt, err := buildValkeyOptions(addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory cache", "error", err)
		return nil, false
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory cache", "error", err)
		return nil, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory cache", "error", err)
		client.Close()
		return nil, false
	}
	return client, true
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
