// Package metrics exposes Prometheus instruments for the dashboard core.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/blizon/ops-dashboard/internal/domain"
)

const namespace = "opsdash"

type Metrics struct {
	registry prometheus.Gatherer

	StoreMutations      *prometheus.CounterVec
	StoreSize           *prometheus.GaugeVec
	LedgerOperations    *prometheus.CounterVec
	SearchEvaluations   *prometheus.CounterVec
	SearchDuration      prometheus.Histogram
	DebounceCoalesced   prometheus.Counter
	ViewTransitions     *prometheus.CounterVec
	ActiveSessions      prometheus.Gauge
	HTTPRequestDuration *prometheus.HistogramVec
}

// New registers every instrument on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return NewWithRegistry(reg, reg)
}

// NewWithRegistry registers every instrument on reg and serves from gatherer
func NewWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		registry: gatherer,
		StoreMutations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_mutations_total",
				Help:      "Completed entity store mutations",
			},
			[]string{"kind", "op"},
		),
		StoreSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "store_records",
				Help:      "Records held per entity collection",
			},
			[]string{"kind"},
		),
		LedgerOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ledger_operations_total",
				Help:      "Milestone ledger operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		SearchEvaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_evaluations_total",
				Help:      "Search evaluations by focus target",
			},
			[]string{"focus"},
		),
		SearchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "search_duration_seconds",
				Help:      "Time spent filtering all collections for one query",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
		),
		DebounceCoalesced: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "search_debounce_coalesced_total",
				Help:      "Live search keystrokes superseded before evaluation",
			},
		),
		ViewTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "view_transitions_total",
				Help:      "Section changes by cause",
			},
			[]string{"section", "cause"},
		),
		ActiveSessions: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sessions_active",
				Help:      "Open dashboard sessions",
			},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"method", "route", "status"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	if m == nil || m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// OnChange counts store completion signals
func (m *Metrics) OnChange(event domain.ChangeEvent) {
	if m == nil {
		return
	}
	m.StoreMutations.WithLabelValues(string(event.Kind), string(event.Op)).Inc()
}

func (m *Metrics) SetStoreSize(kind domain.EntityKind, n int) {
	if m == nil {
		return
	}
	m.StoreSize.WithLabelValues(string(kind)).Set(float64(n))
}

func (m *Metrics) RecordLedger(operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "rejected"
	}
	m.LedgerOperations.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) RecordSearch(focus domain.Section, d time.Duration) {
	if m == nil {
		return
	}
	label := string(focus)
	if label == "" {
		label = "none"
	}
	m.SearchEvaluations.WithLabelValues(label).Inc()
	m.SearchDuration.Observe(d.Seconds())
}

func (m *Metrics) RecordCoalesced() {
	if m == nil {
		return
	}
	m.DebounceCoalesced.Inc()
}

func (m *Metrics) RecordTransition(section domain.Section, cause string) {
	if m == nil {
		return
	}
	m.ViewTransitions.WithLabelValues(string(section), cause).Inc()
}

func (m *Metrics) SetActiveSessions(n int) {
	if m == nil {
		return
	}
	m.ActiveSessions.Set(float64(n))
}

func (m *Metrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestDuration.WithLabelValues(method, route, http.StatusText(status)).Observe(d.Seconds())
}
