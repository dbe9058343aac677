package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/i474232898/airaware/internal/airquality"
	aqproviders "github.com/i474232898/airaware/internal/airquality/providers"
	httpapi "github.com/i474232898/airaware/internal/api/http"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/config"
	"github.com/i474232898/airaware/internal/demo"
	"github.com/i474232898/airaware/internal/logger"
	"github.com/i474232898/airaware/internal/news"
	"github.com/i474232898/airaware/internal/scheduler"
	"github.com/i474232898/airaware/internal/store"
	"github.com/i474232898/airaware/internal/weather"
	"github.com/i474232898/airaware/internal/weather/providers"
)

func main() {
	// Load configuration (.env included).
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLogger := logger.New(cfg.LogLevel)

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}

	// Shared HTTP client for outbound calls; each call also carries FETCH_TIMEOUT.
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
	}

	caches := provideCaches(cfg, appLogger)
	defer caches.close()

	// Weather providers with resilience (backoff + circuit breaker). Keyed
	// providers are only added when a key is configured.
	provs := []weather.Provider{providers.NewOpenMeteoProvider(httpClient)}
	if cfg.OpenWeatherAPIKey != "" {
		provs = append(provs, providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey))
	}
	if cfg.WeatherAPIKey != "" {
		provs = append(provs, providers.NewWeatherAPIProvider(httpClient, cfg.WeatherAPIKey))
	}

	service := airquality.NewService(
		airquality.Options{
			FetchTimeout: cfg.FetchTimeout,
			HistoryHours: cfg.HistoryHours,
		},
		airquality.Deps{
			Catalog:        cat,
			Source:         aqproviders.NewOpenAQProvider(httpClient, cfg.OpenAQBaseURL, cfg.OpenAQAPIKey),
			Weather:        weather.NewService(provs, appLogger),
			Synthesizer:    demo.New(time.Now),
			Store:          store.NewMemoryStore(cfg.StoreMaxHistory, cfg.StoreMaxAge),
			PollutantCache: caches.pollutants,
			BulkCache:      caches.bulk,
			WeatherCache:   caches.weather,
			Logger:         appLogger,
		},
	)

	newsService := news.NewService(news.NewClient(httpClient, cfg.NewsDataAPIKey), caches.news, 10*time.Second, appLogger)

	// Scheduler that keeps the caches of popular locations warm.
	sched := scheduler.New(cfg.WarmLocations, cfg.FetchInterval, service, appLogger)
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "airaware",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          15 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "airaware",
		})
	})

	httpapi.RegisterRoutes(app, httpapi.Deps{
		Reports: service,
		Catalog: cat,
		News:    newsService,
	})

	go func() {
		appLogger.Info("http server listening", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			appLogger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		appLogger.Error("error during shutdown", "error", err)
	}
}
