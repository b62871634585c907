package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/config"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/handler"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/cache"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/client"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/resilience"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/money"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
		os.Exit(1)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("finance_api_url", cfg.FinanceAPIURL),
		zap.Duration("http_timeout", cfg.HTTPTimeout),
		zap.Int("max_retries", cfg.MaxRetries),
		zap.Duration("initial_backoff", cfg.InitialBackoff),
		zap.Duration("session_ttl", cfg.SessionTTL),
		zap.String("display_locale", cfg.DisplayLocale),
		zap.String("display_timezone", cfg.DisplayTimezone),
	)

	// --- Tracing ---
	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracer(context.Background(), cfg.OTLPEndpoint, "finance-dashboard-bfa")
		if err != nil {
			logger.Fatal("failed to init tracer", zap.Error(err))
		}
		defer shutdown(context.Background())
	} else {
		observability.InitPropagator()
	}

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Resilience ---
	resilienceCfg := resilience.Config{
		MaxRetries:     cfg.MaxRetries,
		InitialBackoff: cfg.InitialBackoff,
		MaxConcurrency: cfg.MaxConcurrency,
	}
	cb := resilience.NewCircuitBreaker(client.ServiceName, client.IsClientError)

	// --- Remote finance API ---
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	gateway := client.NewGatewayClient(httpClient, cfg.FinanceAPIURL, cb, resilienceCfg, metrics)

	// --- Cache & sessions ---
	readCache := cache.New[any](time.Minute)
	defer readCache.Close()

	sessions := session.NewStore(cfg.SessionTTL)
	defer sessions.Close()

	codec, err := session.NewCodec(cfg.SessionSecret)
	if err != nil {
		logger.Fatal("failed to init session codec", zap.Error(err))
	}

	// --- Display ---
	formatter, err := money.NewFormatter(cfg.DisplayLocale)
	if err != nil {
		logger.Fatal("failed to init currency formatter", zap.Error(err))
	}

	// --- Services ---
	financeSvc := service.NewFinanceService(gateway, readCache, service.FinanceOptions{
		Formatter:          formatter,
		Location:           cfg.Location(),
		RecentTransactions: cfg.RecentTransactions,
	}, metrics, logger)
	authSvc := service.NewAuthService(gateway, sessions, metrics, logger)

	// --- Router ---
	cookie := handler.SessionCookie{
		Name:   cfg.SessionCookie,
		Secure: cfg.CookieSecure,
		Codec:  codec,
	}
	router := handler.NewRouter(financeSvc, authSvc, cookie, gateway, metrics, logger)

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
