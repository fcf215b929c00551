package service

import (
	"context"
	"time"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"
	"github.com/shoaibzain/G12-Quote-AI/internal/port"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LeadService validates inbound sales records and forwards them to the CRM.
// This path is best-effort: its failures are reported but never affect an
// already-computed quotation.
type LeadService struct {
	crm     port.CRM
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewLeadService creates the lead service with its CRM port injected.
func NewLeadService(crm port.CRM, metrics *observability.Metrics, logger *zap.Logger) *LeadService {
	return &LeadService{crm: crm, metrics: metrics, logger: logger}
}

// SubmitLead validates the record and creates it in the CRM Leads module.
// Last_Name and Email are required; the CRM client is not invoked without
// them.
func (s *LeadService) SubmitLead(ctx context.Context, lead *domain.LeadRecord) (*domain.CRMResponse, error) {
	ctx, span := tracer.Start(ctx, "LeadService.SubmitLead")
	defer span.End()

	if lead.LastName == "" {
		return nil, &domain.ErrValidation{Field: "Last_Name", Message: "is required"}
	}
	if lead.Email == "" {
		return nil, &domain.ErrValidation{Field: "Email", Message: "is required"}
	}

	// Reference for correlating logs with support requests; the email itself
	// is not logged.
	ref := uuid.New().String()
	s.logger.Info("submitting lead to CRM",
		zap.String("lead_ref", ref),
		zap.String("company", lead.Company),
		zap.String("lead_source", lead.LeadSource),
	)

	start := time.Now()
	resp, err := s.crm.CreateLead(ctx, lead)
	s.metrics.RecordRequestDuration("lead_submit", time.Since(start))

	if err != nil {
		s.metrics.IncrCRMRecord("Leads", "failed")
		s.metrics.IncrExternalError("zoho/Leads")
		s.logger.Error("lead submission failed", zap.String("lead_ref", ref), zap.Error(err))
		return nil, err
	}

	s.metrics.IncrCRMRecord("Leads", "created")
	if len(resp.Data) > 0 {
		s.logger.Info("lead created",
			zap.String("lead_ref", ref),
			zap.String("crm_id", resp.Data[0].Details.ID),
			zap.String("crm_status", resp.Data[0].Status),
		)
	}
	return resp, nil
}

// SubmitDeal validates the record and creates it in the CRM Deals module.
func (s *LeadService) SubmitDeal(ctx context.Context, deal *domain.DealRecord) (*domain.CRMResponse, error) {
	ctx, span := tracer.Start(ctx, "LeadService.SubmitDeal")
	defer span.End()

	if deal.DealName == "" {
		return nil, &domain.ErrValidation{Field: "Deal_Name", Message: "is required"}
	}

	start := time.Now()
	resp, err := s.crm.CreateDeal(ctx, deal)
	s.metrics.RecordRequestDuration("deal_submit", time.Since(start))

	if err != nil {
		s.metrics.IncrCRMRecord("Deals", "failed")
		s.metrics.IncrExternalError("zoho/Deals")
		return nil, err
	}

	s.metrics.IncrCRMRecord("Deals", "created")
	return resp, nil
}

// CRMStatus checks token validity and domain reachability for the status
// endpoint.
func (s *LeadService) CRMStatus(ctx context.Context) (*domain.CRMStatus, error) {
	ctx, span := tracer.Start(ctx, "LeadService.CRMStatus")
	defer span.End()

	return s.crm.CheckConnection(ctx)
}
