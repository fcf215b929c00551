package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/service"

	"go.uber.org/zap"
)

// submitLeadHandler forwards a lead record to the CRM. POST /v1/leads
func submitLeadHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/leads")
		defer span.End()

		var lead domain.LeadRecord
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.SubmitLead(ctx, &lead)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// submitDealHandler forwards an opportunity record to the CRM. POST /v1/deals
func submitDealHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/deals")
		defer span.End()

		var deal domain.DealRecord
		if err := json.NewDecoder(r.Body).Decode(&deal); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		resp, err := svc.SubmitDeal(ctx, &deal)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusCreated, resp)
	}
}

// crmStatusHandler reports CRM connectivity. GET /v1/crm/status
func crmStatusHandler(svc *service.LeadService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/crm/status")
		defer span.End()

		status, err := svc.CRMStatus(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, status)
	}
}
