package zoho_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/shoaibzain/G12-Quote-AI/internal/domain"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/zoho"

	"go.uber.org/zap"
)

// newAccountsServer returns a fake OAuth accounts endpoint counting how many
// token exchanges it served.
func newAccountsServer(t *testing.T, expiresIn int, apiDomain string) (*httptest.Server, *atomic.Int64) {
	t.Helper()
	var calls atomic.Int64

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth/v2/token" {
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		if got := r.PostForm.Get("grant_type"); got != "refresh_token" {
			t.Errorf("expected grant_type refresh_token, got %q", got)
		}
		n := calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"tok-%d","api_domain":%q,"token_type":"Bearer","expires_in":%d}`,
			n, apiDomain, expiresIn)
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func newSession(t *testing.T, accountsURL string) *zoho.Session {
	t.Helper()
	creds := zoho.Credentials{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RefreshToken: "refresh-token",
		AccountsURL:  accountsURL,
		APIBaseURL:   "https://www.zohoapis.com",
	}
	return zoho.NewSession(creds, &http.Client{}, observability.NewMetrics(), zap.NewNop())
}

func TestAccessToken_CachedWhileValid(t *testing.T) {
	srv, calls := newAccountsServer(t, 3600, "www.zohoapis.com")
	session := newSession(t, srv.URL)

	first, err := session.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := session.AccessToken(context.Background())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if first != second {
		t.Errorf("expected cached token, got %q then %q", first, second)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("expected exactly 1 token exchange, got %d", n)
	}
}

func TestAccessToken_RefreshesWhenExpired(t *testing.T) {
	// expires_in below the renewal skew, so every call sees an expired token.
	srv, calls := newAccountsServer(t, 30, "www.zohoapis.com")
	session := newSession(t, srv.URL)

	if _, err := session.AccessToken(context.Background()); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := session.AccessToken(context.Background()); err != nil {
		t.Fatalf("second call: %v", err)
	}

	if n := calls.Load(); n != 2 {
		t.Errorf("expected 2 token exchanges, got %d", n)
	}
}

func TestAccessToken_UpdatesAPIDomainFromResponse(t *testing.T) {
	srv, _ := newAccountsServer(t, 3600, "www.zohoapis.eu")
	session := newSession(t, srv.URL)

	if _, err := session.AccessToken(context.Background()); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// Bare hosts in api_domain come back scheme-qualified.
	if got := session.APIDomain(); got != "https://www.zohoapis.eu" {
		t.Errorf("expected api domain https://www.zohoapis.eu, got %q", got)
	}
}

func TestAccessToken_RejectedExchange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":"invalid_code"}`)
	}))
	t.Cleanup(srv.Close)
	session := newSession(t, srv.URL)

	_, err := session.AccessToken(context.Background())
	var auth *domain.ErrAuthentication
	if !errors.As(err, &auth) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
	if auth.Status != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", auth.Status)
	}
	if auth.Detail != `{"error":"invalid_code"}` {
		t.Errorf("expected verbatim body in detail, got %q", auth.Detail)
	}
}

func TestAccessToken_MalformedResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"token_type":"Bearer"}`)
	}))
	t.Cleanup(srv.Close)
	session := newSession(t, srv.URL)

	_, err := session.AccessToken(context.Background())
	var auth *domain.ErrAuthentication
	if !errors.As(err, &auth) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

func TestAccessToken_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()
	session := newSession(t, srv.URL)

	_, err := session.AccessToken(context.Background())
	var external *domain.ErrExternalService
	if !errors.As(err, &external) {
		t.Fatalf("expected ErrExternalService, got %v", err)
	}
}
