package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shoaibzain/G12-Quote-AI/internal/config"
	"github.com/shoaibzain/G12-Quote-AI/internal/handler"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/observability"
	"github.com/shoaibzain/G12-Quote-AI/internal/infra/zoho"
	"github.com/shoaibzain/G12-Quote-AI/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	_ = config.LoadDotEnv(".env")

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.String("zoho_accounts_url", cfg.ZohoAccountsURL),
		zap.String("zoho_api_base_url", cfg.ZohoAPIBaseURL),
		zap.Bool("crm_configured", cfg.CRMConfigured()),
	)

	// --- Tracing ---
	shutdown, err := observability.InitTracer(cfg.OTLPEndpoint, "g12-quote-api")
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer shutdown(context.Background())

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- CRM client ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	if !cfg.CRMConfigured() {
		logger.Warn("Zoho credentials incomplete: lead submissions will fail with an authentication error")
	}
	session := zoho.NewSession(zoho.Credentials{
		ClientID:     cfg.ZohoClientID,
		ClientSecret: cfg.ZohoClientSecret,
		RefreshToken: cfg.ZohoRefreshToken,
		AccountsURL:  cfg.ZohoAccountsURL,
		APIBaseURL:   cfg.ZohoAPIBaseURL,
	}, httpClient, metrics, logger)
	crmClient := zoho.NewClient(session, httpClient, metrics, logger)

	// --- Services ---
	quoteSvc := service.NewQuotationService(metrics, logger)
	leadSvc := service.NewLeadService(crmClient, metrics, logger)

	// --- Router ---
	router := handler.NewRouter(quoteSvc, leadSvc, metrics, logger)

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
