package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "goexpense"

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Ledger metrics
	RecordsCreated   *prometheus.CounterVec
	TransfersCreated prometheus.Counter
	LimitsSpent      prometheus.Counter
	LedgerErrors     *prometheus.CounterVec
	LedgerDuration   *prometheus.HistogramVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Authentication metrics
	AuthFailures *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits prometheus.Counter

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxFailures  prometheus.Counter
}

// New creates the metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		RecordsCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_created_total",
				Help:      "Total number of records written by the ledger",
			},
			[]string{"mode", "kind"},
		),
		TransfersCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transfers_created_total",
			Help:      "Total number of transfers created",
		}),
		LimitsSpent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "limit_spend_total",
			Help:      "Total number of expenses counted against a spending limit",
		}),
		LedgerErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_errors_total",
				Help:      "Total ledger errors by operation and kind",
			},
			[]string{"operation", "kind"},
		),
		LedgerDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "ledger_duration_seconds",
				Help:      "Duration of ledger operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),

		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_duration_seconds",
				Help:      "HTTP request duration",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_failures_total",
				Help:      "Total authentication failures",
			},
			[]string{"reason"},
		),

		RateLimitHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_hits_total",
			Help:      "Total requests rejected by the rate limiter",
		}),

		OutboxPublished: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_published_total",
			Help:      "Total outbox events published",
		}),
		OutboxFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "outbox_failures_total",
			Help:      "Total outbox events that failed to publish",
		}),
	}
}

// RecordCreated counts a written record.
func (m *Metrics) RecordCreated(mode, kind string) {
	m.RecordsCreated.WithLabelValues(mode, kind).Inc()
}

// TransferCreated counts a transfer.
func (m *Metrics) TransferCreated() {
	m.TransfersCreated.Inc()
}

// LimitSpent counts an expense booked against a limit.
func (m *Metrics) LimitSpent() {
	m.LimitsSpent.Inc()
}

// LedgerError counts a failed ledger operation.
func (m *Metrics) LedgerError(operation, kind string) {
	m.LedgerErrors.WithLabelValues(operation, kind).Inc()
}

// ObserveLedger records the duration of a ledger operation.
func (m *Metrics) ObserveLedger(operation string, d time.Duration) {
	m.LedgerDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// ObserveHTTP records a finished HTTP request.
func (m *Metrics) ObserveHTTP(method, path string, status int, d time.Duration) {
	m.HTTPRequests.WithLabelValues(method, path, statusClass(status)).Inc()
	m.HTTPDuration.WithLabelValues(method, path).Observe(d.Seconds())
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// EventPublished counts a relayed outbox event.
func (m *Metrics) EventPublished() {
	m.OutboxPublished.Inc()
}

// EventFailed counts an outbox event that could not be relayed.
func (m *Metrics) EventFailed() {
	m.OutboxFailures.Inc()
}

// AuthFailed counts a rejected authentication attempt.
func (m *Metrics) AuthFailed(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

// RateLimited counts a request rejected by the rate limiter.
func (m *Metrics) RateLimited() {
	m.RateLimitHits.Inc()
}
