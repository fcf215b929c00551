package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"

	"go.uber.org/zap"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// handleServiceError maps domain errors to HTTP responses. Upstream CRM
// failures surface as 502 with their diagnostic text; credentials never
// appear in any of these messages.
func handleServiceError(w http.ResponseWriter, err error, logger *zap.Logger) {
	var validation *domain.ErrValidation
	var auth *domain.ErrAuthentication
	var noDomain *domain.ErrNoReachableDomain
	var submission *domain.ErrLeadSubmission
	var external *domain.ErrExternalService

	switch {
	case errors.As(err, &validation):
		logger.Debug("validation error", zap.String("error", err.Error()))
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &auth):
		logger.Error("CRM authentication failed", zap.Int("upstream_status", auth.Status))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &noDomain):
		logger.Error("no reachable CRM domain", zap.Strings("tried", noDomain.Tried))
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &submission):
		logger.Error("CRM rejected record",
			zap.String("module", submission.Module),
			zap.Int("upstream_status", submission.Status),
		)
		writeError(w, http.StatusBadGateway, err.Error())
	case errors.As(err, &external):
		logger.Error("external service failure", zap.Error(err))
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		logger.Error("unhandled error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
