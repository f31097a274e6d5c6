package service

import (
	"context"
	"log/slog"
	"time"

	"order-forecast/pkg/cache"
	"order-forecast/pkg/calculator"
	"order-forecast/pkg/forecast"
	"order-forecast/pkg/models"
)

// Source supplies the raw snapshots. database.Store implements it.
type Source interface {
	OrderLines(ctx context.Context, dollars bool) ([]models.TransactionRecord, error)
	DespatchLines(ctx context.Context) ([]models.TransactionRecord, error)
	OrdersPlacedToday(ctx context.Context, dollars bool) (float64, error)
}

// ForecastObserver records model runs.
type ForecastObserver interface {
	ObserveForecast(d time.Duration, err error)
}

// Options configure a Service. Zero values fall back to the defaults below.
type Options struct {
	CacheTTL  time.Duration // 4h
	TodayTTL  time.Duration // 2m
	CacheSize int
	Boundary  calculator.Boundary
	Recorder  cache.Recorder
	Observer  ForecastObserver
	Clock     func() time.Time
	Logger    *slog.Logger
}

// OrderQuery selects the order lines behind a forecast.
type OrderQuery struct {
	ItemCode string
	Site     string
	AltSite  string
	Dollars  bool
}

func (q OrderQuery) criteria() models.Criteria {
	return models.Criteria{ItemCode: q.ItemCode, Site: q.Site, AltSite: q.AltSite}
}

func (q OrderQuery) key() string {
	return cache.Key(q.ItemCode, q.Site, q.AltSite, q.Dollars)
}

// WaitQuery selects the despatch lines behind a wait-time view.
type WaitQuery struct {
	ItemCode       string
	CustomerCode   string
	Site           string
	SalesTerritory string
	Category       string
	ItemType       string
	ParentCategory string
}

func (q WaitQuery) criteria() models.Criteria {
	return models.Criteria{
		ItemCode:       q.ItemCode,
		CustomerCode:   q.CustomerCode,
		Site:           q.Site,
		SalesTerritory: q.SalesTerritory,
		Category:       q.Category,
		ItemType:       q.ItemType,
		ParentCategory: q.ParentCategory,
	}
}

// Service answers order-forecast and wait-time questions from cached snapshots.
type Service struct {
	source   Source
	adapter  *forecast.Adapter
	boundary calculator.Boundary
	observer ForecastObserver
	now      func() time.Time
	logger   *slog.Logger

	orderLines    *cache.Cache[[]models.TransactionRecord]
	despatchLines *cache.Cache[[]models.TransactionRecord]
	histories     *cache.Cache[[]models.OrderDay]
	forecasts     *cache.Cache[[]models.ForecastPoint]
	today         *cache.Cache[float64]
}

// New wires a Service over source, forecasting with adapter.
func New(source Source, adapter *forecast.Adapter, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 4 * time.Hour
	}
	if opts.TodayTTL <= 0 {
		opts.TodayTTL = 2 * time.Minute
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Service{
		source:   source,
		adapter:  adapter,
		boundary: opts.Boundary,
		observer: opts.Observer,
		now:      opts.Clock,
		logger:   opts.Logger,

		orderLines:    cache.New[[]models.TransactionRecord]("order_lines", 2, opts.CacheTTL, opts.Recorder),
		despatchLines: cache.New[[]models.TransactionRecord]("despatch_lines", 1, opts.CacheTTL, opts.Recorder),
		histories:     cache.New[[]models.OrderDay]("order_history", opts.CacheSize, opts.CacheTTL, opts.Recorder),
		forecasts:     cache.New[[]models.ForecastPoint]("forecast", opts.CacheSize, opts.CacheTTL, opts.Recorder),
		today:         cache.New[float64]("orders_placed_today", 2, opts.TodayTTL, opts.Recorder),
	}
}

// Orders returns the dense daily order history of q through today.
func (s *Service) Orders(ctx context.Context, q OrderQuery) ([]models.OrderDay, error) {
	return s.histories.GetOrCompute(q.key(), func() ([]models.OrderDay, error) {
		lines, err := s.loadOrderLines(ctx, q.Dollars)
		if err != nil {
			return nil, err
		}
		return calculator.OrderHistory(calculator.Filter(lines, q.criteria()), s.now())
	})
}

// Predictions forecasts the days following q's history.
func (s *Service) Predictions(ctx context.Context, q OrderQuery, days int) ([]models.ForecastPoint, error) {
	return s.forecasts.GetOrCompute(cache.Key(q.key(), days), func() ([]models.ForecastPoint, error) {
		history, err := s.Orders(ctx, q)
		if err != nil {
			return nil, err
		}

		start := time.Now()
		points, err := s.adapter.Forecast(ctx, history, days, s.now())
		if s.observer != nil {
			s.observer.ObserveForecast(time.Since(start), err)
		}
		if err != nil {
			s.logger.Warn("forecast failed", "item_code", q.ItemCode, "days", days, "error", err)
			return nil, err
		}
		return points, nil
	})
}

// OrdersPlacedToday totals today's new order lines.
func (s *Service) OrdersPlacedToday(ctx context.Context, dollars bool) (float64, error) {
	return s.today.GetOrCompute(cache.Key(dollars), func() (float64, error) {
		return s.source.OrdersPlacedToday(ctx, dollars)
	})
}

// WaitDays summarises wait times per despatch day. smoothing > 0 pools the
// samples of smoothing days either side of each day.
func (s *Service) WaitDays(ctx context.Context, q WaitQuery, mode models.Mode, smoothing int) ([]models.AggregatedDay, error) {
	lines, err := s.loadDespatchLines(ctx)
	if err != nil {
		return nil, err
	}
	series, err := calculator.WaitHistory(calculator.Filter(lines, q.criteria()), mode)
	if err != nil {
		return nil, err
	}
	if smoothing > 0 {
		series = calculator.SmoothWaits(series, smoothing, mode)
	}
	return series, nil
}

// Scatter summarises the last year of waits per group key.
func (s *Service) Scatter(ctx context.Context, q WaitQuery, key models.GroupKey, mode models.Mode) ([]models.GroupSummaryPoint, error) {
	lines, err := s.loadDespatchLines(ctx)
	if err != nil {
		return nil, err
	}
	return calculator.GroupSummarize(calculator.Filter(lines, q.criteria()), key, mode, s.now(), s.boundary), nil
}

// Lines returns the matching despatch lines, newest first. limit <= 0 means all.
func (s *Service) Lines(ctx context.Context, q WaitQuery, limit int) ([]models.TransactionRecord, error) {
	lines, err := s.loadDespatchLines(ctx)
	if err != nil {
		return nil, err
	}
	out := calculator.Filter(lines, q.criteria())
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// RawWaits returns every despatch line in the snapshot.
func (s *Service) RawWaits(ctx context.Context) ([]models.TransactionRecord, error) {
	return s.loadDespatchLines(ctx)
}

// Reload drops every cached snapshot and derived series.
func (s *Service) Reload() {
	s.orderLines.InvalidateAll()
	s.despatchLines.InvalidateAll()
	s.histories.InvalidateAll()
	s.forecasts.InvalidateAll()
	s.today.InvalidateAll()
	s.logger.Info("caches cleared")
}

func (s *Service) loadOrderLines(ctx context.Context, dollars bool) ([]models.TransactionRecord, error) {
	return s.orderLines.GetOrCompute(cache.Key(dollars), func() ([]models.TransactionRecord, error) {
		return s.source.OrderLines(ctx, dollars)
	})
}

func (s *Service) loadDespatchLines(ctx context.Context) ([]models.TransactionRecord, error) {
	return s.despatchLines.GetOrCompute("all", func() ([]models.TransactionRecord, error) {
		return s.source.DespatchLines(ctx)
	})
}
