package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many instances as
// they like without default-registry collisions.
type Metrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	pipelineRunsTotal  *prometheus.CounterVec
	stageDuration      *prometheus.HistogramVec
	providerTotal      *prometheus.CounterVec
	parseDegradedTotal prometheus.Counter
	actionItems        prometheus.Histogram
}

func New(service string) *Metrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scribe",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "scribe",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	pipelineRunsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "pipeline",
			Name:      "runs_total",
			Help:      "Total pipeline runs by provider mode and outcome.",
		},
		[]string{"mode", "status"},
	)
	stageDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "scribe",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 30, 60, 120},
		},
		[]string{"stage"},
	)
	providerTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "provider",
			Name:      "requests_total",
			Help:      "Total provider calls by service and outcome.",
		},
		[]string{"service", "outcome"},
	)
	parseDegradedTotal := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "pipeline",
			Name:      "parse_degraded_total",
			Help:      "Total model responses that yielded no recognizable sections.",
		},
	)
	actionItems := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "scribe",
			Subsystem: "pipeline",
			Name:      "action_items",
			Help:      "Distribution of extracted action items per run.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		pipelineRunsTotal,
		stageDuration,
		providerTotal,
		parseDegradedTotal,
		actionItems,
	)

	return &Metrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		pipelineRunsTotal:  pipelineRunsTotal,
		stageDuration:      stageDuration,
		providerTotal:      providerTotal,
		parseDegradedTotal: parseDegradedTotal,
		actionItems:        actionItems,
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per route template.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			m.requestInFlight.Inc()
			defer m.requestInFlight.Dec()

			err := next(c)

			status := c.Response().Status
			if err != nil {
				var httpErr *echo.HTTPError
				if errors.As(err, &httpErr) {
					status = httpErr.Code
				}
			}

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			method := c.Request().Method

			m.requestTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
			m.requestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) RecordPipelineRun(mode, status string) {
	if status == "" {
		status = "unknown"
	}
	m.pipelineRunsTotal.WithLabelValues(mode, status).Inc()
}

func (m *Metrics) RecordStage(stage string, duration time.Duration) {
	m.stageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

func (m *Metrics) RecordProviderRequest(service, outcome string) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.providerTotal.WithLabelValues(service, outcome).Inc()
}

func (m *Metrics) RecordParseDegraded() {
	m.parseDegradedTotal.Inc()
}

func (m *Metrics) RecordActionItems(count int) {
	if count < 0 {
		return
	}
	m.actionItems.Observe(float64(count))
}
