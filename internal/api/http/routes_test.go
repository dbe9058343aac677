package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/airaware/internal/airquality"
	"github.com/i474232898/airaware/internal/aqi"
	"github.com/i474232898/airaware/internal/cache"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/logger"
	"github.com/i474232898/airaware/internal/news"
	"github.com/i474232898/airaware/internal/store"
)

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) Fetch(context.Context, catalog.Location) ([]aqi.Vector, error) {
	return nil, errors.New("unreachable")
}

type staticNews struct{}

func (staticNews) Latest(context.Context) ([]news.Article, error) {
	return []news.Article{{Title: "Delhi smog"}}, nil
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cat, err := catalog.Load("")
	require.NoError(t, err)

	svc := airquality.NewService(airquality.Options{FetchTimeout: time.Second}, airquality.Deps{
		Catalog: cat,
		Source:  failingSource{},
		Store:   store.NewMemoryStore(10, 0),
		Logger:  logger.Discard(),
	})
	newsSvc := news.NewService(staticNews{}, cache.NewMemory[[]news.Article](time.Hour, 0, nil), time.Second, logger.Discard())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Deps{Reports: svc, Catalog: cat, News: newsSvc})
	return app
}

func get(t *testing.T, app *fiber.App, target string) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestReportEndpoint(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/aqi/delhi-aqi")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, "Delhi", body["city"])
	require.Equal(t, "demo", body["data_source"])
	require.Equal(t, "synthetic", body["provenance"])
	require.Contains(t, body, "aqi")
	require.Contains(t, body, "health_impact")
	require.Len(t, body["historical"], 24)
}

func TestReportUnknownLocationIs404(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/aqi/atlantis")
	require.Equal(t, http.StatusNotFound, code)
	require.Equal(t, true, body["error"])
}

func TestHistoryValidation(t *testing.T) {
	app := newTestApp(t)

	// Missing range.
	code, _ := get(t, app, "/api/v1/aqi/delhi-aqi/history")
	require.Equal(t, http.StatusBadRequest, code)

	// Range ends before it starts.
	code, _ = get(t, app, "/api/v1/aqi/delhi-aqi/history?from=2024-11-03T10:00:00Z&to=2024-11-03T09:00:00Z")
	require.Equal(t, http.StatusBadRequest, code)

	code, _ = get(t, app, "/api/v1/aqi/delhi-aqi/history?from=yesterday&to=today")
	require.Equal(t, http.StatusBadRequest, code)
}

func TestHistoryAfterReport(t *testing.T) {
	app := newTestApp(t)

	code, _ := get(t, app, "/api/v1/aqi/pune-aqi/history?from=0&to=4102444800")
	require.Equal(t, http.StatusNotFound, code)

	code, _ = get(t, app, "/api/v1/aqi/pune-aqi")
	require.Equal(t, http.StatusOK, code)

	code, body := get(t, app, "/api/v1/aqi/pune-aqi/history?from=0&to=4102444800")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["snapshots"], 1)

	latest := body["latest"].(map[string]any)
	require.Equal(t, "synthetic", latest["source"])
	require.Equal(t, body["snapshots"].([]any)[0].(map[string]any)["aqi"], latest["aqi"])
}

func TestSearchEndpoint(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/search?q=del&limit=5")
	require.Equal(t, http.StatusOK, code)
	results := body["results"].([]any)
	require.NotEmpty(t, results)
	first := results[0].(map[string]any)
	require.Equal(t, "Delhi", first["name"])
	require.Equal(t, "/in/delhi/delhi-aqi", first["url"])

	code, body = get(t, app, "/api/v1/search?q=d")
	require.Equal(t, http.StatusOK, code)
	require.Empty(t, body["results"])

	code, _ = get(t, app, "/api/v1/search?q="+strings.Repeat("x", 101))
	require.Equal(t, http.StatusBadRequest, code)
}

func TestSearchNonPositiveLimitIsEmpty(t *testing.T) {
	app := newTestApp(t)

	for _, limit := range []string{"0", "-3"} {
		code, body := get(t, app, "/api/v1/search?q=delhi&limit="+limit)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "delhi", body["query"])
		require.Empty(t, body["results"])
	}
}

func TestCatalogEndpoints(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/cities")
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, len(body["cities"].([]any)), body["total"])

	code, body = get(t, app, "/api/v1/states")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, body["states"])
}

func TestTopCitiesSorted(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/top-cities")
	require.Equal(t, http.StatusOK, code)

	cities := body["cities"].([]any)
	require.Len(t, cities, len(airquality.DefaultTopCities))
	for i := 1; i < len(cities); i++ {
		prev := cities[i-1].(map[string]any)["aqi"].(float64)
		cur := cities[i].(map[string]any)["aqi"].(float64)
		require.GreaterOrEqual(t, prev, cur)
	}
}

func TestMapDataAndNews(t *testing.T) {
	app := newTestApp(t)

	code, body := get(t, app, "/api/v1/map-data")
	require.Equal(t, http.StatusOK, code)
	require.EqualValues(t, len(body["cities"].([]any)), body["count"])

	code, body = get(t, app, "/api/v1/news")
	require.Equal(t, http.StatusOK, code)
	require.Len(t, body["news"], 1)
}

func TestParseTime(t *testing.T) {
	ts, err := parseTime("1730624400")
	require.NoError(t, err)
	require.Equal(t, int64(1730624400), ts.Unix())

	ts, err = parseTime("2024-11-03T09:00:00+05:30")
	require.NoError(t, err)
	require.Equal(t, 3, ts.UTC().Hour())

	_, err = parseTime("soon")
	require.Error(t, err)
}
