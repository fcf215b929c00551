package observability

import (
	"time"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Metrics holds all Prometheus metrics for the quote API.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can serve it.
	Registry *prometheus.Registry

	requestDuration *prometheus.HistogramVec
	externalErrors  *prometheus.CounterVec
	quotations      *prometheus.CounterVec
	crmRecords      *prometheus.CounterVec
	tokenRefreshes  prometheus.Counter
	domainFailovers prometheus.Counter
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. A private registry avoids "duplicate collector"
// panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "g12_request_duration_seconds",
				Help:    "Duration of requests by operation.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		externalErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "g12_external_errors_total",
				Help: "Total errors from external services.",
			},
			[]string{"service"},
		),
		quotations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "g12_quotations_total",
				Help: "Total quotations issued, by business-setup type.",
			},
			[]string{"type"},
		),
		crmRecords: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "g12_crm_records_total",
				Help: "Total CRM record submissions, by module and outcome.",
			},
			[]string{"module", "outcome"},
		),
		tokenRefreshes: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "g12_token_refreshes_total",
				Help: "Total OAuth refresh-token exchanges performed.",
			},
		),
		domainFailovers: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "g12_domain_failovers_total",
				Help: "Total switches of the preferred CRM API domain.",
			},
		),
	}
}

// RecordRequestDuration records the duration of an operation.
func (m *Metrics) RecordRequestDuration(operation string, d time.Duration) {
	m.requestDuration.WithLabelValues(operation).Observe(d.Seconds())
}

// IncrExternalError increments the external error counter.
func (m *Metrics) IncrExternalError(service string) {
	m.externalErrors.WithLabelValues(service).Inc()
}

// IncrQuotation counts an issued quotation by business-setup type.
func (m *Metrics) IncrQuotation(setupType string) {
	m.quotations.WithLabelValues(setupType).Inc()
}

// IncrCRMRecord counts a CRM submission outcome ("created" or "failed").
func (m *Metrics) IncrCRMRecord(module, outcome string) {
	m.crmRecords.WithLabelValues(module, outcome).Inc()
}

// IncrTokenRefresh counts a completed refresh-token exchange.
func (m *Metrics) IncrTokenRefresh() {
	m.tokenRefreshes.Inc()
}

// IncrDomainFailover counts a preferred-domain switch.
func (m *Metrics) IncrDomainFailover() {
	m.domainFailovers.Inc()
}

// GetSummary returns a snapshot of the business counters for the
// GET /v1/metrics/summary endpoint.
func (m *Metrics) GetSummary() *domain.MetricsSummary {
	return &domain.MetricsSummary{
		QuotationsFreezone: int64(getCounterValue(m.quotations, domain.TypeFreezone)),
		QuotationsMainland: int64(getCounterValue(m.quotations, domain.TypeMainland)),
		LeadsCreated:       int64(getCounterValue(m.crmRecords, "Leads", "created")),
		LeadsFailed:        int64(getCounterValue(m.crmRecords, "Leads", "failed")),
		DealsCreated:       int64(getCounterValue(m.crmRecords, "Deals", "created")),
		DealsFailed:        int64(getCounterValue(m.crmRecords, "Deals", "failed")),
		TokenRefreshes:     int64(getPlainCounterValue(m.tokenRefreshes)),
		DomainFailovers:    int64(getPlainCounterValue(m.domainFailovers)),
	}
}

// getCounterValue extracts the current float64 value from a CounterVec for
// the given label values.
func getCounterValue(cv *prometheus.CounterVec, labels ...string) float64 {
	counter := cv.WithLabelValues(labels...)
	msg := &dto.Metric{}
	if err := counter.(prometheus.Metric).Write(msg); err != nil {
		return 0
	}
	if msg.Counter != nil && msg.Counter.Value != nil {
		return *msg.Counter.Value
	}
	return 0
}

func getPlainCounterValue(c prometheus.Counter) float64 {
	msg := &dto.Metric{}
	if err := c.Write(msg); err != nil {
		return 0
	}
	if msg.Counter != nil && msg.Counter.Value != nil {
		return *msg.Counter.Value
	}
	return 0
}
