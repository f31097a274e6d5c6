package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "order_forecast"

// Metrics holds the service collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	CacheRequests       *prometheus.CounterVec
	FetchDuration       *prometheus.HistogramVec
	FetchRows           *prometheus.GaugeVec
	ForecastDuration    prometheus.Histogram
	ForecastFailures    prometheus.Counter
}

// New registers every collector plus the Go and process collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 14),
		}, []string{"route"}),
		CacheRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_requests_total",
			Help:      "Cache lookups by cache name and result.",
		}, []string{"cache", "result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_fetch_duration_seconds",
			Help:      "Time spent pulling snapshots from the ERP database.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"query"}),
		FetchRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_fetch_rows",
			Help:      "Rows returned by the last snapshot pull.",
		}, []string{"query"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "forecast_fit_duration_seconds",
			Help:      "Model fit and predict latency.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
		ForecastFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forecast_failures_total",
			Help:      "Forecasts that failed to fit or predict.",
		}),
	}
	registry.MustRegister(
		m.HTTPRequestsTotal, m.HTTPRequestDuration, m.CacheRequests,
		m.FetchDuration, m.FetchRows, m.ForecastDuration, m.ForecastFailures,
	)
	return m
}

// Handler serves the registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// CacheHit implements cache.Recorder.
func (m *Metrics) CacheHit(name string) { m.CacheRequests.WithLabelValues(name, "hit").Inc() }

// CacheMiss implements cache.Recorder.
func (m *Metrics) CacheMiss(name string) { m.CacheRequests.WithLabelValues(name, "miss").Inc() }

// ObserveFetch records one database pull.
func (m *Metrics) ObserveFetch(query string, rows int, d time.Duration) {
	m.FetchDuration.WithLabelValues(query).Observe(d.Seconds())
	m.FetchRows.WithLabelValues(query).Set(float64(rows))
}

// ObserveForecast records one model run.
func (m *Metrics) ObserveForecast(d time.Duration, err error) {
	m.ForecastDuration.Observe(d.Seconds())
	if err != nil {
		m.ForecastFailures.Inc()
	}
}

// Middleware counts and times requests by matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPRequestsTotal.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
