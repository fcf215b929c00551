// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the service layer
// from the concrete CRM adapter.
package port

import (
	"context"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
)

// CRM submits sales records to the remote CRM.
type CRM interface {
	CreateLead(ctx context.Context, lead *domain.LeadRecord) (*domain.CRMResponse, error)
	CreateDeal(ctx context.Context, deal *domain.DealRecord) (*domain.CRMResponse, error)
	CheckConnection(ctx context.Context) (*domain.CRMStatus, error)
}
