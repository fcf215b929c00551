package zoho

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("zoho")

// FailoverDomains is the fixed, ordered list of regional API domains probed
// after an authorization failure. First domain to answer the probe wins.
var FailoverDomains = []string{
	"https://www.zohoapis.eu",     // Europe
	"https://www.zohoapis.in",     // India
	"https://www.zohoapis.com.cn", // China
	"https://www.zohoapis.com.au", // Australia
}

// probePath is the lightweight authenticated metadata endpoint used to decide
// whether a domain is reachable and authorized.
const probePath = "/crm/v2/settings/modules"

// Client submits records to Zoho CRM using tokens from the shared Session.
type Client struct {
	session    *Session
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewClient creates a CRM client bound to the given session.
func NewClient(session *Session, httpClient *http.Client, metrics *observability.Metrics, logger *zap.Logger) *Client {
	return &Client{
		session:    session,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger,
	}
}

// CreateLead submits a lead to the CRM Leads module.
func (c *Client) CreateLead(ctx context.Context, lead *domain.LeadRecord) (*domain.CRMResponse, error) {
	ctx, span := tracer.Start(ctx, "Zoho.CreateLead")
	defer span.End()

	return c.createRecord(ctx, "Leads", lead)
}

// CreateDeal submits an opportunity to the CRM Deals module.
func (c *Client) CreateDeal(ctx context.Context, deal *domain.DealRecord) (*domain.CRMResponse, error) {
	ctx, span := tracer.Start(ctx, "Zoho.CreateDeal")
	defer span.End()

	return c.createRecord(ctx, "Deals", deal)
}

// createRecord POSTs {data:[record]} to {apiDomain}/crm/v2/{module}. On a 401
// it probes the regional domains once, switches the session to the first one
// that answers, and retries the POST exactly once. Other non-2xx statuses are
// returned verbatim for support diagnostics.
func (c *Client) createRecord(ctx context.Context, module string, record any) (*domain.CRMResponse, error) {
	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	status, body, err := c.postRecord(ctx, c.session.APIDomain(), module, token, record)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "zoho/" + module, Err: err}
	}

	if status == http.StatusUnauthorized {
		newDomain, err := c.findWorkingDomain(ctx, token)
		if err != nil {
			return nil, err
		}

		c.logger.Info("zoho: retrying after domain failover",
			zap.String("module", module),
			zap.String("api_domain", newDomain),
		)
		status, body, err = c.postRecord(ctx, newDomain, module, token, record)
		if err != nil {
			return nil, &domain.ErrExternalService{Service: "zoho/" + module, Err: err}
		}
	}

	if status < 200 || status >= 300 {
		c.logger.Warn("zoho: record rejected",
			zap.String("module", module),
			zap.Int("status", status),
			zap.String("body", body),
		)
		return nil, &domain.ErrLeadSubmission{Module: module, Status: status, Body: body}
	}

	var parsed domain.CRMResponse
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return nil, &domain.ErrExternalService{Service: "zoho/" + module, Err: fmt.Errorf("decode response: %w", err)}
	}
	return &parsed, nil
}

// postRecord performs a single create call and returns the raw status/body.
// Only transport failures produce an error.
func (c *Client) postRecord(ctx context.Context, apiDomain, module, token string, record any) (int, string, error) {
	payload, err := json.Marshal(struct {
		Data []any `json:"data"`
	}{Data: []any{record}})
	if err != nil {
		return 0, "", fmt.Errorf("marshal record: %w", err)
	}

	endpoint := fmt.Sprintf("%s/crm/v2/%s", apiDomain, module)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", err
	}

	c.logger.Debug("zoho: create call",
		zap.String("module", module),
		zap.String("api_domain", apiDomain),
		zap.Int("status", resp.StatusCode),
	)
	return resp.StatusCode, string(body), nil
}

// findWorkingDomain probes the regional domains in their fixed order and
// promotes the first one that answers 2xx to the session's preferred domain.
// A bounded loop, so the retry ceiling stays obvious.
func (c *Client) findWorkingDomain(ctx context.Context, token string) (string, error) {
	tried := make([]string, 0, len(FailoverDomains))

	for _, d := range FailoverDomains {
		tried = append(tried, d)

		ok, err := c.probe(ctx, d, token)
		if err != nil {
			c.logger.Debug("zoho: domain probe failed", zap.String("api_domain", d), zap.Error(err))
			continue
		}
		if ok {
			c.session.SetAPIDomain(d)
			c.metrics.IncrDomainFailover()
			c.logger.Info("zoho: switched preferred API domain", zap.String("api_domain", d))
			return d, nil
		}
	}

	return "", &domain.ErrNoReachableDomain{Tried: tried}
}

// probe issues the authenticated metadata GET against one domain. A 2xx means
// reachable and authorized.
func (c *Client) probe(ctx context.Context, apiDomain, token string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiDomain+probePath, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// CheckConnection refreshes the token if needed and probes the preferred
// domain. Used by the CRM status endpoint; only the last four characters of
// the token ever leave this method.
func (c *Client) CheckConnection(ctx context.Context) (*domain.CRMStatus, error) {
	ctx, span := tracer.Start(ctx, "Zoho.CheckConnection")
	defer span.End()

	token, err := c.session.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	apiDomain := c.session.APIDomain()
	span.SetAttributes(attribute.String("zoho.api_domain", apiDomain))

	status := &domain.CRMStatus{
		APIDomain:   apiDomain,
		TokenSuffix: tokenSuffix(token),
	}

	ok, err := c.probe(ctx, apiDomain, token)
	if err != nil {
		status.Error = err.Error()
		return status, nil
	}
	if !ok {
		status.Error = "metadata probe returned a non-2xx status"
		return status, nil
	}

	status.Reachable = true
	return status, nil
}

func tokenSuffix(token string) string {
	if len(token) < 4 {
		return ""
	}
	return "****" + token[len(token)-4:]
}
