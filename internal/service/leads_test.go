package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"
	"github.com/shoaibzain/G12-Quote-AI/internal/service"

	"go.uber.org/zap"
)

type fakeCRM struct {
	leadCalls int
	dealCalls int
	lastLead  *domain.LeadRecord
	resp      *domain.CRMResponse
	err       error
}

func (f *fakeCRM) CreateLead(ctx context.Context, lead *domain.LeadRecord) (*domain.CRMResponse, error) {
	f.leadCalls++
	f.lastLead = lead
	return f.resp, f.err
}

func (f *fakeCRM) CreateDeal(ctx context.Context, deal *domain.DealRecord) (*domain.CRMResponse, error) {
	f.dealCalls++
	return f.resp, f.err
}

func (f *fakeCRM) CheckConnection(ctx context.Context) (*domain.CRMStatus, error) {
	return &domain.CRMStatus{Reachable: true, APIDomain: "https://www.zohoapis.com"}, nil
}

func successResponse() *domain.CRMResponse {
	result := domain.CRMRecordResult{Code: "SUCCESS", Status: "success", Message: "record added"}
	result.Details.ID = "523930000001"
	return &domain.CRMResponse{Data: []domain.CRMRecordResult{result}}
}

func TestSubmitLead_Success(t *testing.T) {
	crm := &fakeCRM{resp: successResponse()}
	svc := service.NewLeadService(crm, observability.NewMetrics(), zap.NewNop())

	resp, err := svc.SubmitLead(context.Background(), &domain.LeadRecord{
		LastName: "Rahman",
		Email:    "amina@example.com",
		Company:  "G12",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if crm.leadCalls != 1 {
		t.Fatalf("expected 1 CRM call, got %d", crm.leadCalls)
	}
	if resp.Data[0].Details.ID != "523930000001" {
		t.Errorf("unexpected record id %q", resp.Data[0].Details.ID)
	}
}

func TestSubmitLead_MissingFieldsSkipCRM(t *testing.T) {
	cases := []struct {
		name string
		lead domain.LeadRecord
	}{
		{"missing last name", domain.LeadRecord{Email: "amina@example.com"}},
		{"missing email", domain.LeadRecord{LastName: "Rahman"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			crm := &fakeCRM{resp: successResponse()}
			svc := service.NewLeadService(crm, observability.NewMetrics(), zap.NewNop())

			_, err := svc.SubmitLead(context.Background(), &tc.lead)
			var validation *domain.ErrValidation
			if !errors.As(err, &validation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
			if crm.leadCalls != 0 {
				t.Errorf("expected CRM not to be invoked, got %d calls", crm.leadCalls)
			}
		})
	}
}

func TestSubmitLead_PropagatesCRMError(t *testing.T) {
	wantErr := &domain.ErrLeadSubmission{Module: "Leads", Status: 400, Body: `{"code":"MANDATORY_NOT_FOUND"}`}
	crm := &fakeCRM{err: wantErr}
	svc := service.NewLeadService(crm, observability.NewMetrics(), zap.NewNop())

	_, err := svc.SubmitLead(context.Background(), &domain.LeadRecord{
		LastName: "Rahman",
		Email:    "amina@example.com",
	})
	var submission *domain.ErrLeadSubmission
	if !errors.As(err, &submission) {
		t.Fatalf("expected ErrLeadSubmission, got %v", err)
	}
	if submission.Status != 400 {
		t.Errorf("expected status 400, got %d", submission.Status)
	}
}

func TestSubmitDeal_RequiresDealName(t *testing.T) {
	crm := &fakeCRM{resp: successResponse()}
	svc := service.NewLeadService(crm, observability.NewMetrics(), zap.NewNop())

	_, err := svc.SubmitDeal(context.Background(), &domain.DealRecord{Amount: 28000})
	var validation *domain.ErrValidation
	if !errors.As(err, &validation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if crm.dealCalls != 0 {
		t.Errorf("expected CRM not to be invoked, got %d calls", crm.dealCalls)
	}

	if _, err := svc.SubmitDeal(context.Background(), &domain.DealRecord{DealName: "Amina Rahman - Freezone", Amount: 28000}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if crm.dealCalls != 1 {
		t.Errorf("expected 1 CRM call, got %d", crm.dealCalls)
	}
}
