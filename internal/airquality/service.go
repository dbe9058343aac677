package airquality

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/i474232898/airaware/internal/aqi"
	"github.com/i474232898/airaware/internal/cache"
	"github.com/i474232898/airaware/internal/catalog"
	"github.com/i474232898/airaware/internal/common"
	"github.com/i474232898/airaware/internal/demo"
	"github.com/i474232898/airaware/internal/store"
	"github.com/i474232898/airaware/internal/weather"
)

var (
	// ErrNoData means a live source answered but had no usable measurement.
	ErrNoData = errors.New("no live measurements")
	// ErrNoSource means no live source is configured.
	ErrNoSource = errors.New("no live source configured")
)

const (
	DefaultFetchTimeout = 3 * time.Second
	DefaultHistoryHours = 24
	DefaultCacheTTL     = 30 * time.Minute

	bulkCacheKey   = "openaq_all_india"
	maxConcurrency = 8
)

// DefaultTopCities are the locations ranked by TopCities when none are given.
var DefaultTopCities = []string{
	"delhi-aqi", "mumbai-aqi", "kolkata-aqi", "chennai-aqi", "bengaluru-aqi",
	"hyderabad-aqi", "ahmedabad-aqi", "pune-aqi", "lucknow-aqi", "jaipur-aqi",
}

// Options tunes the Service.
type Options struct {
	FetchTimeout time.Duration
	HistoryHours int
}

// Deps are the collaborators of the Service. Source, Weather and Store may be
// nil; nil caches default to unbounded in-memory caches with DefaultCacheTTL.
type Deps struct {
	Catalog     *catalog.Catalog
	Source      Source
	Weather     WeatherSource
	Synthesizer *demo.Synthesizer
	Store       *store.MemoryStore

	PollutantCache cache.Cache[aqi.Vector]
	BulkCache      cache.Cache[map[string]aqi.Vector]
	WeatherCache   cache.Cache[weather.Snapshot]

	Logger *slog.Logger
	Now    func() time.Time
}

// Service is the retrieval orchestrator. Apart from unknown locations it
// never returns an error: every upstream failure degrades to synthetic data.
type Service struct {
	catalog *catalog.Catalog
	source  Source
	weather WeatherSource
	synth   *demo.Synthesizer
	store   *store.MemoryStore

	pollutants *cache.Loader[aqi.Vector]
	bulk       *cache.Loader[map[string]aqi.Vector]
	weathers   *cache.Loader[weather.Snapshot]

	opts   Options
	logger *slog.Logger
	now    func() time.Time
}

// NewService creates a Service.
func NewService(opts Options, deps Deps) *Service {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = DefaultFetchTimeout
	}
	if opts.HistoryHours <= 0 {
		opts.HistoryHours = DefaultHistoryHours
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Synthesizer == nil {
		deps.Synthesizer = demo.New(deps.Now)
	}
	if deps.PollutantCache == nil {
		deps.PollutantCache = cache.NewMemory[aqi.Vector](DefaultCacheTTL, 0, deps.Now)
	}
	if deps.BulkCache == nil {
		deps.BulkCache = cache.NewMemory[map[string]aqi.Vector](DefaultCacheTTL, 0, deps.Now)
	}
	if deps.WeatherCache == nil {
		deps.WeatherCache = cache.NewMemory[weather.Snapshot](DefaultCacheTTL, 0, deps.Now)
	}

	return &Service{
		catalog:    deps.Catalog,
		source:     deps.Source,
		weather:    deps.Weather,
		synth:      deps.Synthesizer,
		store:      deps.Store,
		pollutants: cache.NewLoader(deps.PollutantCache),
		bulk:       cache.NewLoader(deps.BulkCache),
		weathers:   cache.NewLoader(deps.WeatherCache),
		opts:       opts,
		logger:     deps.Logger.With("component", "airquality.service"),
		now:        deps.Now,
	}
}

// GetReport builds the report for a location slug or name. The only error is
// a wrapped catalog.ErrNotFound.
func (s *Service) GetReport(ctx context.Context, id string) (CityReport, error) {
	loc, err := s.catalog.Find(id)
	if err != nil {
		return CityReport{}, err
	}
	return s.build(ctx, loc), nil
}

// GetReports builds reports for ids concurrently, preserving their order.
func (s *Service) GetReports(ctx context.Context, ids []string) ([]CityReport, error) {
	reports := make([]CityReport, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)
	for i, id := range ids {
		g.Go(func() error {
			loc, err := s.catalog.Find(id)
			if err != nil {
				return err
			}
			reports[i] = s.build(gctx, loc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// TopCities returns the reports for ids (DefaultTopCities when empty), worst
// index first. Ids missing from the catalog are skipped.
func (s *Service) TopCities(ctx context.Context, ids []string) ([]CityReport, error) {
	if len(ids) == 0 {
		ids = DefaultTopCities
	}

	known := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, err := s.catalog.Find(id); err != nil {
			s.logger.Warn("skipping unknown top city", "location", id)
			continue
		}
		known = append(known, id)
	}

	reports, err := s.GetReports(ctx, known)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Index > reports[j].Index
	})
	return reports, nil
}

// History returns the snapshots recorded for a location between from and to.
func (s *Service) History(id string, from, to time.Time) ([]store.Snapshot, error) {
	loc, err := s.catalog.Find(id)
	if err != nil {
		return nil, err
	}
	if s.store == nil {
		return nil, store.ErrNotFound
	}
	return s.store.GetRange(loc.Slug, from, to)
}

// Latest returns the most recently recorded snapshot for a location.
func (s *Service) Latest(id string) (store.Snapshot, error) {
	loc, err := s.catalog.Find(id)
	if err != nil {
		return store.Snapshot{}, err
	}
	if s.store == nil {
		return store.Snapshot{}, store.ErrNotFound
	}
	return s.store.GetLatest(loc.Slug)
}

// MapData returns one row per catalog location, live where the bulk fetch
// covered the city and synthetic otherwise.
func (s *Service) MapData(ctx context.Context) []MapRow {
	live := s.liveByCity(ctx)
	now := s.now()

	all := s.catalog.All()
	rows := make([]MapRow, 0, len(all))
	for _, loc := range all {
		v, ok := live[common.NormalizeName(loc.Name)]
		isDemo := !ok || v.Empty()
		if isDemo {
			v = s.synth.Vector(loc.Name, now)
		}
		r := aqi.Aggregate(v)
		rows = append(rows, MapRow{
			Name:     loc.Name,
			Slug:     loc.Slug,
			State:    loc.State,
			Lat:      loc.Lat,
			Lng:      loc.Lng,
			AQI:      r.Index,
			Category: r.Category,
			Color:    r.Color,
			IsDemo:   isDemo,
		})
	}
	return rows
}

func (s *Service) build(ctx context.Context, loc catalog.Location) CityReport {
	now := s.now()

	vector, prov := s.pollutantVector(ctx, loc, now)
	report := aqi.Aggregate(vector)
	wx, wxProv := s.currentWeather(ctx, loc)

	out := CityReport{
		City:              loc.Name,
		Slug:              loc.Slug,
		State:             loc.State,
		StateSlug:         loc.StateSlug,
		Lat:               loc.Lat,
		Lng:               loc.Lng,
		Report:            report,
		Pollutants:        pollutantRows(vector, report),
		Weather:           wx,
		Recommendation:    aqi.RecommendationFor(report.Category),
		HealthImpact:      aqi.Impact(vector, report),
		HealthRisks:       aqi.HealthRisks(report.Category),
		Historical:        s.synth.History(loc.Name, s.opts.HistoryHours),
		LastUpdated:       now,
		DataSource:        prov.DataSource(),
		Provenance:        prov,
		WeatherProvenance: wxProv,
	}

	if s.store != nil {
		s.store.SaveSnapshot(loc.Slug, store.Snapshot{
			Timestamp: now,
			AQI:       report.Index,
			Category:  report.Category,
			Dominant:  report.Dominant,
			Source:    string(prov),
		})
	}
	return out
}

func (s *Service) pollutantVector(ctx context.Context, loc catalog.Location, now time.Time) (aqi.Vector, Provenance) {
	v, prov, err := s.livePollutants(ctx, loc)
	if err == nil {
		return v, prov
	}
	s.logger.Warn("using synthetic pollutants", "location", loc.Name, "error", err)
	return s.synth.Vector(loc.Name, now), ProvenanceSynthetic
}

func (s *Service) livePollutants(ctx context.Context, loc catalog.Location) (aqi.Vector, Provenance, error) {
	if s.source == nil {
		return aqi.Vector{}, "", ErrNoSource
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	v, cached, err := s.pollutants.Load(ctx, "openaq_"+loc.Name, func(ctx context.Context) (aqi.Vector, error) {
		stations, err := s.source.Fetch(ctx, loc)
		if err != nil {
			return aqi.Vector{}, err
		}
		merged := aqi.Merge(stations...)
		if merged.Empty() {
			return aqi.Vector{}, ErrNoData
		}
		return merged, nil
	})
	if err != nil {
		return aqi.Vector{}, "", fmt.Errorf("%s: %w", s.source.Name(), err)
	}
	if v.Empty() {
		return aqi.Vector{}, "", ErrNoData
	}
	if cached {
		return v.Clone(), ProvenanceCached, nil
	}
	return v.Clone(), ProvenanceLive, nil
}

func (s *Service) currentWeather(ctx context.Context, loc catalog.Location) (weather.Snapshot, Provenance) {
	if s.weather != nil && loc.HasCoordinates() {
		at := weather.Coordinates{Lat: *loc.Lat, Lng: *loc.Lng}

		ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
		defer cancel()

		snap, cached, err := s.weathers.Load(ctx, at.Key(), func(ctx context.Context) (weather.Snapshot, error) {
			return s.weather.Current(ctx, at)
		})
		if err == nil {
			if cached {
				return snap, ProvenanceCached
			}
			return snap, ProvenanceLive
		}
		s.logger.Warn("using synthetic weather", "location", loc.Name, "error", err)
	}
	return s.synth.Weather(loc.Name), ProvenanceSynthetic
}

func (s *Service) liveByCity(ctx context.Context) map[string]aqi.Vector {
	bulk, ok := s.source.(BulkSource)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.FetchTimeout)
	defer cancel()

	byCity, _, err := s.bulk.Load(ctx, bulkCacheKey, func(ctx context.Context) (map[string]aqi.Vector, error) {
		stations, err := bulk.FetchAll(ctx)
		if err != nil {
			return nil, err
		}
		merged := make(map[string]aqi.Vector, len(stations))
		for city, vs := range stations {
			if v := aqi.Merge(vs...); !v.Empty() {
				merged[city] = v
			}
		}
		if len(merged) == 0 {
			return nil, ErrNoData
		}
		return merged, nil
	})
	if err != nil {
		s.logger.Warn("bulk fetch failed; map uses synthetic data", "error", err)
		return nil
	}
	return byCity
}
