package domain

// MetricsSummary is a point-in-time snapshot of the business counters,
// served by GET /v1/metrics/summary for dashboards that do not scrape
// Prometheus directly.
type MetricsSummary struct {
	QuotationsFreezone int64 `json:"quotationsFreezone"`
	QuotationsMainland int64 `json:"quotationsMainland"`
	LeadsCreated       int64 `json:"leadsCreated"`
	LeadsFailed        int64 `json:"leadsFailed"`
	DealsCreated       int64 `json:"dealsCreated"`
	DealsFailed        int64 `json:"dealsFailed"`
	TokenRefreshes     int64 `json:"tokenRefreshes"`
	DomainFailovers    int64 `json:"domainFailovers"`
}
