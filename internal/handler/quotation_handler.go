package handler

import (
	"encoding/json"
	"net/http"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/service"

	"go.uber.org/zap"
)

// computeQuotationHandler accepts a business-setup form submission and
// returns the computed quotation. POST /v1/quotations
func computeQuotationHandler(svc *service.QuotationService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/quotations")
		defer span.End()

		var req domain.BusinessSetupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		quotation, err := svc.ComputeQuotation(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, quotation)
	}
}
