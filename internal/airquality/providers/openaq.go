package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/i474232898/airaware/internal/aqi"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/common"
	"github.com/i474232898/airaware/internal/upstream"
)

const (
	// DefaultOpenAQBaseURL is the OpenAQ v2 API root.
	DefaultOpenAQBaseURL = "https://api.openaq.org/v2"

	stationLimit = 10
	bulkLimit    = 500
	searchRadius = 50000 // metres
)

// OpenAQProvider reads the latest station measurements from OpenAQ.
type OpenAQProvider struct {
	baseURL string
	apiKey  string
	country string
	client  *upstream.Client
}

// NewOpenAQProvider creates a provider for stations in India. apiKey may be
// empty; it is sent as X-API-Key when set.
func NewOpenAQProvider(client *http.Client, baseURL, apiKey string) *OpenAQProvider {
	if baseURL == "" {
		baseURL = DefaultOpenAQBaseURL
	}
	return &OpenAQProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		country: "IN",
		client:  upstream.NewClient("openaq", client, upstream.DefaultBackoff),
	}
}

func (p *OpenAQProvider) Name() string {
	return "openaq"
}

type measurement struct {
	Parameter string   `json:"parameter"`
	Value     *float64 `json:"value"`
}

type latestResponse struct {
	Results []struct {
		Location     string        `json:"location"`
		City         string        `json:"city"`
		Measurements []measurement `json:"measurements"`
	} `json:"results"`
}

// Fetch returns one vector per station near loc. Stations are looked up by
// a 50 km radius around the coordinates when the location has them, by city
// name otherwise.
func (p *OpenAQProvider) Fetch(ctx context.Context, loc catalog.Location) ([]aqi.Vector, error) {
	values := url.Values{}
	values.Set("limit", strconv.Itoa(stationLimit))
	if loc.HasCoordinates() {
		values.Set("coordinates", fmt.Sprintf("%g,%g", *loc.Lat, *loc.Lng))
		values.Set("radius", strconv.Itoa(searchRadius))
	} else {
		values.Set("country", p.country)
		values.Set("city", loc.Name)
	}

	payload, err := p.latest(ctx, values)
	if err != nil {
		return nil, err
	}

	stations := make([]aqi.Vector, 0, len(payload.Results))
	for _, r := range payload.Results {
		stations = append(stations, stationVector(r.Measurements))
	}
	return stations, nil
}

// FetchAll returns the stations of the whole country grouped by normalized
// city name. Stations without a city are skipped.
func (p *OpenAQProvider) FetchAll(ctx context.Context) (map[string][]aqi.Vector, error) {
	values := url.Values{}
	values.Set("country", p.country)
	values.Set("limit", strconv.Itoa(bulkLimit))
	values.Set("order_by", "city")

	payload, err := p.latest(ctx, values)
	if err != nil {
		return nil, err
	}

	out := make(map[string][]aqi.Vector)
	for _, r := range payload.Results {
		key := common.NormalizeName(r.City)
		if key == "" {
			continue
		}
		out[key] = append(out[key], stationVector(r.Measurements))
	}
	return out, nil
}

func (p *OpenAQProvider) latest(ctx context.Context, values url.Values) (latestResponse, error) {
	buildRequest := func() (*http.Request, error) {
		req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/latest?%s", p.baseURL, values.Encode()), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if p.apiKey != "" {
			req.Header.Set("X-API-Key", p.apiKey)
		}
		return req, nil
	}

	var payload latestResponse
	if err := p.client.GetJSON(ctx, buildRequest, &payload); err != nil {
		return latestResponse{}, err
	}
	return payload, nil
}

// stationVector keeps the worst reading per pollutant of one station;
// unknown parameters and invalid values are dropped.
func stationVector(measurements []measurement) aqi.Vector {
	var v aqi.Vector
	for _, m := range measurements {
		p, ok := aqi.ParsePollutant(m.Parameter)
		if !ok || m.Value == nil {
			continue
		}
		if cur, ok := v.Get(p); ok && cur >= *m.Value {
			continue
		}
		v.Set(p, *m.Value)
	}
	return v
}
