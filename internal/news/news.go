// Package news serves recent air-quality headlines from NewsData.io.
package news

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/airaware/internal/cache"
	"github.com/i474232898/airaware/internal/upstream"
)

const (
	DefaultBaseURL = "https://newsdata.io/api/1/latest"
	DefaultTTL     = time.Hour

	cacheKey = "news_aqi_in"
)

var (
	errNoAPIKey  = errors.New("newsdata api key is not configured")
	errBadStatus = errors.New("newsdata returned non-success status")
)

// Article is one headline.
type Article struct {
	ArticleID   string   `json:"article_id"`
	Title       string   `json:"title"`
	Link        string   `json:"link"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	SourceID    string   `json:"source_id"`
	PubDate     string   `json:"pubDate"`
	Keywords    []string `json:"keywords"`
}

// Client fetches AQI headlines for India.
type Client struct {
	baseURL string
	apiKey  string
	client  *upstream.Client
}

// NewClient creates a NewsData client.
func NewClient(httpClient *http.Client, apiKey string) *Client {
	return &Client{
		baseURL: DefaultBaseURL,
		apiKey:  apiKey,
		client:  upstream.NewClient("newsdata", httpClient, upstream.DefaultBackoff),
	}
}

// WithBaseURL points the client at another endpoint.
func (c *Client) WithBaseURL(u string) *Client {
	c.baseURL = u
	return c
}

// Latest returns the newest English AQI articles with images, duplicates removed.
func (c *Client) Latest(ctx context.Context) ([]Article, error) {
	if c.apiKey == "" {
		return nil, errNoAPIKey
	}

	buildRequest := func() (*http.Request, error) {
		values := url.Values{}
		values.Set("apikey", c.apiKey)
		values.Set("q", "AQI")
		values.Set("country", "in")
		values.Set("language", "en")
		values.Set("image", "1")
		values.Set("removeduplicate", "1")
		return http.NewRequest(http.MethodGet, fmt.Sprintf("%s?%s", c.baseURL, values.Encode()), nil)
	}

	var payload struct {
		Status  string    `json:"status"`
		Results []Article `json:"results"`
	}
	if err := c.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return nil, err
	}
	if payload.Status != "success" {
		return nil, fmt.Errorf("%w: %q", errBadStatus, payload.Status)
	}
	return payload.Results, nil
}

// Fetcher is the upstream used by Service.
type Fetcher interface {
	Latest(ctx context.Context) ([]Article, error)
}

// Service caches headlines. Failures are logged and yield an empty list.
type Service struct {
	fetcher Fetcher
	loader  *cache.Loader[[]Article]
	timeout time.Duration
	logger  *slog.Logger
}

// NewService creates a Service backed by c.
func NewService(fetcher Fetcher, c cache.Cache[[]Article], timeout time.Duration, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Service{
		fetcher: fetcher,
		loader:  cache.NewLoader(c),
		timeout: timeout,
		logger:  logger.With("component", "news.service"),
	}
}

// Articles returns the cached or freshly fetched headlines; never nil.
func (s *Service) Articles(ctx context.Context) []Article {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	articles, _, err := s.loader.Load(ctx, cacheKey, s.fetcher.Latest)
	if err != nil {
		s.logger.Warn("news fetch failed", "error", err)
		return []Article{}
	}
	if articles == nil {
		return []Article{}
	}
	return articles
}
