// Package metrics provides Prometheus metrics for the ladder service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const defaultRefreshInterval = 10 * time.Second

// Manager manages all Prometheus metrics for the ladder service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Business metrics
	playersCreated  prometheus.Counter
	seasonsCreated  prometheus.Counter
	rankingsUpdated prometheus.Counter
	rosterImports   *prometheus.CounterVec

	// Standings cache metrics
	standingsCacheHits   prometheus.Counter
	standingsCacheMisses prometheus.Counter

	// Scale gauges
	totalPlayers prometheus.Gauge
	totalSeasons prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "ladder",
		subsystem:        "competition",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.playersCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "players_created_total",
		Help:      "Total number of players created",
	})

	m.seasonsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_created_total",
		Help:      "Total number of seasons created",
	})

	m.rankingsUpdated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_updated_total",
		Help:      "Total number of ranking updates",
	})

	m.rosterImports = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "roster_import_results_total",
			Help:      "Total number of roster import entries by outcome",
		},
		[]string{"action"},
	)

	m.standingsCacheHits = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_cache_hits_total",
		Help:      "Total number of standings cache hits",
	})

	m.standingsCacheMisses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "standings_cache_misses_total",
		Help:      "Total number of standings cache misses",
	})

	m.totalPlayers = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_players",
		Help:      "Total number of registered players",
	})

	m.totalSeasons = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "total_seasons",
		Help:      "Total number of seasons",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint and method",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordPlayerCreated increments the players created counter.
func RecordPlayerCreated() {
	globalManager.playersCreated.Inc()
}

// RecordSeasonCreated increments the seasons created counter.
func RecordSeasonCreated() {
	globalManager.seasonsCreated.Inc()
}

// RecordRankingUpdated increments the ranking updates counter.
func RecordRankingUpdated() {
	globalManager.rankingsUpdated.Inc()
}

// RecordRosterImportResult records a single roster import entry outcome.
func RecordRosterImportResult(action string) {
	globalManager.rosterImports.WithLabelValues(action).Inc()
}

// RecordStandingsCacheHit increments the standings cache hit counter.
func RecordStandingsCacheHit() {
	globalManager.standingsCacheHits.Inc()
}

// RecordStandingsCacheMiss increments the standings cache miss counter.
func RecordStandingsCacheMiss() {
	globalManager.standingsCacheMisses.Inc()
}

// UpdateTotalPlayers sets the registered player count gauge.
func UpdateTotalPlayers(count int) {
	globalManager.totalPlayers.Set(float64(count))
}

// UpdateTotalSeasons sets the season count gauge.
func UpdateTotalSeasons(count int) {
	globalManager.totalSeasons.Set(float64(count))
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
