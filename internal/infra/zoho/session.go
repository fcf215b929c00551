// Package zoho implements the Zoho CRM integration: OAuth refresh-token
// session management and record submission with regional domain failover.
package zoho

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Credentials is the static OAuth configuration for a Zoho account. The
// refresh token is long-lived; access tokens are derived from it at runtime.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	AccountsURL  string // e.g. https://accounts.zoho.com
	APIBaseURL   string // initial API domain, e.g. https://www.zohoapis.com
}

// tokenSkew is subtracted from the advertised expiry so the token is renewed
// before it actually lapses mid-request.
const tokenSkew = 60 * time.Second

// Session owns the process-wide CRM auth state: the cached access token, its
// expiry, and the preferred API domain. It is created once in main and
// injected into the client, so tests can run against isolated instances.
type Session struct {
	creds      Credentials
	httpClient *http.Client
	metrics    *observability.Metrics
	logger     *zap.Logger

	mu        sync.Mutex
	token     string
	expiry    time.Time
	apiDomain string

	refresh singleflight.Group
}

// NewSession creates a session in the NoToken state.
func NewSession(creds Credentials, httpClient *http.Client, metrics *observability.Metrics, logger *zap.Logger) *Session {
	return &Session{
		creds:      creds,
		httpClient: httpClient,
		metrics:    metrics,
		logger:     logger,
		apiDomain:  strings.TrimSuffix(creds.APIBaseURL, "/"),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	APIDomain   string `json:"api_domain"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// AccessToken returns the cached token without I/O while it is still valid,
// refreshing it via the accounts endpoint otherwise. Concurrent refreshes are
// collapsed into a single exchange; the exchange itself is idempotent on the
// provider side, so a duplicate would only waste a network call.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.token != "" && time.Now().Before(s.expiry.Add(-tokenSkew)) {
		token := s.token
		s.mu.Unlock()
		return token, nil
	}
	s.mu.Unlock()

	v, err, _ := s.refresh.Do("token", func() (any, error) {
		return s.refreshAccessToken(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// refreshAccessToken performs the refresh-token exchange. On failure the
// session state is left untouched and the caller decides whether to retry.
func (s *Session) refreshAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", s.creds.ClientID)
	form.Set("client_secret", s.creds.ClientSecret)
	form.Set("refresh_token", s.creds.RefreshToken)

	endpoint := fmt.Sprintf("%s/oauth/v2/token", strings.TrimSuffix(s.creds.AccountsURL, "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", &domain.ErrExternalService{Service: "zoho/accounts", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", &domain.ErrExternalService{Service: "zoho/accounts", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ErrExternalService{Service: "zoho/accounts", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		s.logger.Warn("zoho: token refresh rejected",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return "", &domain.ErrAuthentication{Status: resp.StatusCode, Detail: string(body)}
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		return "", &domain.ErrAuthentication{Status: resp.StatusCode, Detail: "malformed token response body"}
	}

	s.mu.Lock()
	s.token = tr.AccessToken
	s.expiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	if tr.APIDomain != "" {
		s.apiDomain = normalizeDomain(tr.APIDomain)
	}
	apiDomain := s.apiDomain
	s.mu.Unlock()

	s.metrics.IncrTokenRefresh()
	s.logger.Info("zoho: access token refreshed",
		zap.Int("expires_in_s", tr.ExpiresIn),
		zap.String("api_domain", apiDomain),
	)

	return tr.AccessToken, nil
}

// APIDomain returns the currently preferred API domain.
func (s *Session) APIDomain() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apiDomain
}

// SetAPIDomain updates the preferred API domain after a successful failover
// probe. The change is process-wide, not per-call.
func (s *Session) SetAPIDomain(d string) {
	s.mu.Lock()
	s.apiDomain = normalizeDomain(d)
	s.mu.Unlock()
}

// normalizeDomain accepts either a bare host (as Zoho advertises api_domain)
// or a full URL and returns a scheme-qualified base URL.
func normalizeDomain(d string) string {
	d = strings.TrimSuffix(d, "/")
	if !strings.HasPrefix(d, "http://") && !strings.HasPrefix(d, "https://") {
		return "https://" + d
	}
	return d
}
