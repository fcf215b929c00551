package service

import (
	"context"
	"fmt"
	"math/rand"
	"net/mail"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service")

// Pricing rule table. This is the entire business logic: Mainland is a flat
// base price regardless of emirate, Freezone depends on Dubai vs the rest,
// and visa cost is a Freezone-only line item.
const (
	mainlandBasePrice      = 13000
	freezoneDubaiBasePrice = 15000
	freezoneOtherBasePrice = 6000
	visaUnitPrice          = 6500

	disclaimerOfficeYes = "The cost of the license is dependent on the rental fee. The price shown is a starting price."
	disclaimerOfficeNo  = "You might need a virtual rental contract. The price shown is a starting price."
)

// QuotationService computes price quotations from business-setup requests.
// Pure computation apart from the issue date and quotation number.
type QuotationService struct {
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewQuotationService creates the quotation service.
func NewQuotationService(metrics *observability.Metrics, logger *zap.Logger) *QuotationService {
	return &QuotationService{metrics: metrics, logger: logger}
}

// ComputeQuotation validates a submitted form and produces a quotation.
// A CRM submission is never part of this path; the quotation must reach the
// user regardless of what the sales side channel does.
func (s *QuotationService) ComputeQuotation(ctx context.Context, req *domain.BusinessSetupRequest) (*domain.Quotation, error) {
	_, span := tracer.Start(ctx, "QuotationService.ComputeQuotation")
	defer span.End()
	span.SetAttributes(
		attribute.String("setup.type", req.Type),
		attribute.String("setup.emirate", req.Emirate),
	)

	start := time.Now()
	defer func() {
		s.metrics.RecordRequestDuration("quotation_compute", time.Since(start))
	}()

	if err := validateRequest(req); err != nil {
		return nil, err
	}

	pricing := computePricing(req)

	q := &domain.Quotation{
		QuotationNumber: nextQuotationNumber(),
		Date:            time.Now().Format("02/01/2006"),
		Client: domain.ClientInfo{
			Name:        strings.TrimSpace(req.FirstName + " " + req.LastName),
			Mobile:      strings.TrimSpace(req.CountryCode + " " + req.Mobile),
			Email:       req.Email,
			Nationality: req.Nationality,
		},
		BusinessSetup: domain.BusinessSetup{
			Type:               req.Type,
			Emirate:            req.Emirate,
			BusinessActivities: req.BusinessActivities,
			OfficeSpace:        req.OfficeSpace,
			Shareholders:       int(req.Shareholders),
			Visas:              int(req.Visas),
		},
		Pricing: pricing,
		Display: domain.PriceDisplay{
			BasePrice:  domain.FormatAED(pricing.BasePrice),
			VisaPrice:  domain.FormatAED(pricing.VisaPrice),
			TotalPrice: domain.FormatAED(pricing.TotalPrice),
		},
	}

	s.metrics.IncrQuotation(req.Type)
	s.logger.Info("quotation issued",
		zap.String("quotation_number", q.QuotationNumber),
		zap.String("type", req.Type),
		zap.String("emirate", req.Emirate),
		zap.Int("total_price", pricing.TotalPrice),
	)

	return q, nil
}

// computePricing applies the rule table. TotalPrice is always the exact sum
// of the two components.
func computePricing(req *domain.BusinessSetupRequest) domain.PriceBreakdown {
	var p domain.PriceBreakdown

	switch req.Type {
	case domain.TypeMainland:
		p.BasePrice = mainlandBasePrice
		// Visa cost is not modeled as a Mainland line item in this version.
		switch req.OfficeSpace {
		case domain.OfficeSpaceYes:
			p.Disclaimer = disclaimerOfficeYes
		case domain.OfficeSpaceNo:
			p.Disclaimer = disclaimerOfficeNo
		}
	case domain.TypeFreezone:
		if req.Emirate == "Dubai" {
			p.BasePrice = freezoneDubaiBasePrice
		} else {
			p.BasePrice = freezoneOtherBasePrice
		}
		p.VisaPrice = int(req.Visas) * visaUnitPrice
	}

	p.TotalPrice = p.BasePrice + p.VisaPrice
	return p
}

// validateRequest enforces the form contract on the inbound request.
func validateRequest(req *domain.BusinessSetupRequest) error {
	if len(strings.TrimSpace(req.FirstName)) < 2 {
		return &domain.ErrValidation{Field: "firstName", Message: "must be at least 2 characters"}
	}
	if len(strings.TrimSpace(req.LastName)) < 2 {
		return &domain.ErrValidation{Field: "lastName", Message: "must be at least 2 characters"}
	}
	if strings.TrimSpace(req.CountryCode) == "" {
		return &domain.ErrValidation{Field: "countryCode", Message: "is required"}
	}
	if countDigits(req.Mobile) < 8 {
		return &domain.ErrValidation{Field: "mobile", Message: "must contain at least 8 digits"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &domain.ErrValidation{Field: "email", Message: "must be a valid email address"}
	}
	if strings.TrimSpace(req.Nationality) == "" {
		return &domain.ErrValidation{Field: "nationality", Message: "is required"}
	}
	if req.Type != domain.TypeFreezone && req.Type != domain.TypeMainland {
		return &domain.ErrValidation{Field: "type", Message: "must be Freezone or Mainland"}
	}
	if !slices.Contains(domain.Emirates, req.Emirate) {
		return &domain.ErrValidation{Field: "emirate", Message: "is not a recognized emirate"}
	}
	if len(req.BusinessActivities) == 0 {
		return &domain.ErrValidation{Field: "businessActivities", Message: "select at least one activity"}
	}
	if req.Type == domain.TypeMainland && len(req.BusinessActivities) != 1 {
		return &domain.ErrValidation{Field: "businessActivities", Message: "Mainland allows exactly one activity"}
	}
	for _, a := range req.BusinessActivities {
		if !slices.Contains(domain.BusinessActivities, a) {
			return &domain.ErrValidation{Field: "businessActivities", Message: "unknown activity: " + a}
		}
	}
	switch req.OfficeSpace {
	case domain.OfficeSpaceYes, domain.OfficeSpaceNo, domain.OfficeSpaceUndecided:
	default:
		return &domain.ErrValidation{Field: "officeSpace", Message: "must be Yes, No or Not decided yet"}
	}
	if req.Shareholders < 1 || req.Shareholders > 6 {
		return &domain.ErrValidation{Field: "shareholders", Message: "must be between 1 and 6"}
	}
	if req.Visas < 0 || req.Visas > 15 {
		return &domain.ErrValidation{Field: "visas", Message: "must be between 0 and 15"}
	}
	return nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}

// nextQuotationNumber produces an identifier of the form
// G12-{last 6 digits of epoch millis}-{3-digit random}. Collisions are
// unlikely within a short window but not impossible; there is no registry.
func nextQuotationNumber() string {
	millis := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("G12-%s-%03d", millis[len(millis)-6:], rand.Intn(1000))
}
