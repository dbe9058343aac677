package httpapi

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/airaware/internal/airquality"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/news"
	"github.com/i474232898/airaware/internal/store"
)

var validate = validator.New()

// Deps are the services behind the API. News may be nil.
type Deps struct {
	Reports *airquality.Service
	Catalog *catalog.Catalog
	News    *news.Service
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	v1 := app.Group("/api/v1")

	v1.Get("/aqi/:slug", func(c *fiber.Ctx) error {
		report, err := deps.Reports.GetReport(c.UserContext(), c.Params("slug"))
		if err != nil {
			return notFoundOr(err, "failed to build report")
		}
		return c.JSON(report)
	})

	v1.Get("/aqi/:slug/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		snapshots, err := deps.Reports.History(c.Params("slug"), req.From, req.To)
		if err != nil {
			return notFoundOr(err, "failed to fetch history")
		}
		latest, err := deps.Reports.Latest(c.Params("slug"))
		if err != nil {
			return notFoundOr(err, "failed to fetch history")
		}

		return c.JSON(fiber.Map{
			"slug":      c.Params("slug"),
			"from":      req.From,
			"to":        req.To,
			"latest":    latest,
			"snapshots": snapshots,
		})
	})

	v1.Get("/search", func(c *fiber.Ctx) error {
		req := searchQuery{Query: c.Query("q"), Limit: c.QueryInt("limit", 10)}
		if req.Limit > catalog.MaxSearchResults {
			req.Limit = catalog.MaxSearchResults
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		results := make([]fiber.Map, 0)
		if req.Limit <= 0 {
			return c.JSON(fiber.Map{"query": req.Query, "results": results})
		}
		for _, loc := range deps.Catalog.Search(req.Query, req.Limit) {
			results = append(results, fiber.Map{
				"name":  loc.Name,
				"state": loc.State,
				"slug":  loc.Slug,
				"url":   fmt.Sprintf("/in/%s/%s", loc.StateSlug, loc.Slug),
			})
		}
		return c.JSON(fiber.Map{"query": req.Query, "results": results})
	})

	v1.Get("/cities", func(c *fiber.Ctx) error {
		all := deps.Catalog.All()
		return c.JSON(fiber.Map{"total": len(all), "cities": all})
	})

	v1.Get("/states", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"states": deps.Catalog.States()})
	})

	v1.Get("/top-cities", func(c *fiber.Ctx) error {
		reports, err := deps.Reports.TopCities(c.UserContext(), nil)
		if err != nil {
			return notFoundOr(err, "failed to rank cities")
		}

		cities := make([]fiber.Map, 0, len(reports))
		for _, r := range reports {
			cities = append(cities, fiber.Map{
				"name":     r.City,
				"slug":     r.Slug,
				"state":    r.State,
				"aqi":      r.Index,
				"category": r.Category,
				"color":    r.Color,
			})
		}
		return c.JSON(fiber.Map{"cities": cities})
	})

	v1.Get("/map-data", func(c *fiber.Ctx) error {
		rows := deps.Reports.MapData(c.UserContext())
		return c.JSON(fiber.Map{
			"cities":    rows,
			"count":     len(rows),
			"timestamp": time.Now().UTC(),
		})
	})

	v1.Get("/news", func(c *fiber.Ctx) error {
		articles := []news.Article{}
		if deps.News != nil {
			articles = deps.News.Articles(c.UserContext())
		}
		return c.JSON(fiber.Map{"news": articles})
	})
}

func notFoundOr(err error, msg string) error {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "location not found")
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "no history for requested range")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, msg)
	}
}

// searchQuery holds the query parameters of the search endpoint. A
// non-positive limit yields no results.
type searchQuery struct {
	Query string `validate:"max=100"`
	Limit int
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	From time.Time `validate:"required"`
	To   time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
