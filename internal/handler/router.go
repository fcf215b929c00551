package handler

import (
	"net/http"

	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"
	"github.com/shoaibzain/G12-Quote-AI/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(quoteSvc *service.QuotationService, leadSvc *service.LeadService, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler())
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		// Quotation path: always answers for well-formed input, never
		// touches the CRM.
		r.Post("/quotations", computeQuotationHandler(quoteSvc, logger))

		// CRM side channel: independent of the quotation path.
		r.Post("/leads", submitLeadHandler(leadSvc, logger))
		r.Post("/deals", submitDealHandler(leadSvc, logger))
		r.Get("/crm/status", crmStatusHandler(leadSvc, logger))

		r.Get("/metrics/summary", metricsSummaryHandler(metrics))
	})

	return r
}

func healthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// The CRM is a best-effort side channel; its availability does not
		// gate service health.
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func metricsSummaryHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetSummary())
	}
}
