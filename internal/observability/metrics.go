package observability

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"github.com/yungbote/university-backend/internal/platform/logger"
)

const namespace = "university"

// Metrics owns a dedicated Prometheus registry for the service.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	dispatchTotal   *prometheus.CounterVec
	dispatchLatency *prometheus.HistogramVec

	txTotal           *prometheus.CounterVec
	txDuration        *prometheus.HistogramVec
	txRollbackFailure prometheus.Counter
}

// New builds the metric set and registers it, plus the Go runtime and process
// collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		apiRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "requests_total",
				Help:      "Total API requests by method/route/status.",
			},
			[]string{"method", "route", "status"},
		),
		apiLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "api",
				Name:      "request_duration_seconds",
				Help:      "API request latency in seconds by method/route/status.",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
			},
			[]string{"method", "route", "status"},
		),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "api",
			Name:      "inflight_requests",
			Help:      "In-flight API requests.",
		}),
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "dispatch_total",
				Help:      "Dispatched requests by request/kind/status.",
			},
			[]string{"request", "kind", "status"},
		),
		dispatchLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "mediator",
				Name:      "dispatch_duration_seconds",
				Help:      "Handler latency in seconds by request/kind.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"request", "kind"},
		),
		txTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "transaction",
				Name:      "outcomes_total",
				Help:      "Transaction boundary exits by outcome/status.",
			},
			[]string{"outcome", "status"},
		),
		txDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "transaction",
				Name:      "duration_seconds",
				Help:      "Time from begin to commit or rollback by outcome.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		txRollbackFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "transaction",
			Name:      "rollback_failures_total",
			Help:      "Rollbacks that failed and were suppressed.",
		}),
	}
	m.registry.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.dispatchTotal,
		m.dispatchLatency,
		m.txTotal,
		m.txDuration,
		m.txRollbackFailure,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveDispatch(request, kind, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if request == "" {
		request = "unknown"
	}
	m.dispatchTotal.WithLabelValues(request, kind, status).Inc()
	m.dispatchLatency.WithLabelValues(request, kind).Observe(dur.Seconds())
}

func (m *Metrics) ObserveTransaction(outcome, status string, dur time.Duration) {
	if m == nil {
		return
	}
	outcome = strings.TrimSpace(outcome)
	if outcome == "" {
		outcome = "unknown"
	}
	m.txTotal.WithLabelValues(outcome, status).Inc()
	m.txDuration.WithLabelValues(outcome).Observe(dur.Seconds())
}

func (m *Metrics) IncRollbackFailure() {
	if m == nil {
		return
	}
	m.txRollbackFailure.Inc()
}

// RegisterDBStats exports connection pool statistics for db.
func (m *Metrics) RegisterDBStats(ctx context.Context, log *logger.Logger, db *gorm.DB, name string) {
	if m == nil || db == nil {
		return
	}
	sqlDB, err := db.WithContext(ctx).DB()
	if err != nil {
		if log != nil {
			log.Warn("db stats collector unavailable", "error", err)
		}
		return
	}
	if err := m.registry.Register(collectors.NewDBStatsCollector(sqlDB, name)); err != nil && log != nil {
		log.Warn("db stats collector registration failed", "error", err)
	}
}
