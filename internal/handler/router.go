package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/infra/observability"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// BreakerStater reports the circuit breaker state of the remote finance API.
type BreakerStater interface {
	BreakerState() string
}

// NewRouter creates the HTTP router with all routes and middleware.
func NewRouter(financeSvc *service.FinanceService, authSvc *service.AuthService, cookie SessionCookie, breaker BreakerStater, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(breaker))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {
		r.Get("/metrics/gateway", gatewayMetricsHandler(metrics, breaker))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authRegisterHandler(authSvc, logger))
			r.Post("/login", authLoginHandler(authSvc, cookie, logger))
			r.Post("/verify-email", authVerifyEmailHandler(authSvc, logger))
			r.Post("/resend-verification", authResendVerificationHandler(authSvc, logger))

			r.Group(func(r chi.Router) {
				r.Use(SessionMiddleware(authSvc, cookie, logger))
				r.Post("/logout", authLogoutHandler(authSvc, cookie))
				r.Get("/me", authMeHandler(authSvc, logger))
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(authSvc, cookie, logger))

			r.Get("/currencies", listCurrenciesHandler(financeSvc, logger))

			r.Get("/accounts", listAccountsHandler(financeSvc, logger))
			r.Post("/accounts", createAccountHandler(financeSvc, logger))

			r.Route("/accounts/{accountId}", func(r chi.Router) {
				r.Get("/", getAccountHandler(financeSvc, logger))
				r.Put("/", updateAccountHandler(financeSvc, logger))
				r.Delete("/", deleteAccountHandler(financeSvc, logger))

				r.Get("/dashboard", dashboardHandler(financeSvc, logger))
				r.Get("/calendar", calendarHandler(financeSvc, logger))

				r.Get("/transactions", listTransactionsHandler(financeSvc, logger))
				r.Post("/transactions", createTransactionHandler(financeSvc, logger))
				r.Get("/transactions/{transactionId}", getTransactionHandler(financeSvc, logger))
				r.Put("/transactions/{transactionId}", updateTransactionHandler(financeSvc, logger))
				r.Delete("/transactions/{transactionId}", deleteTransactionHandler(financeSvc, logger))

				r.Get("/categories", listCategoriesHandler(financeSvc, logger))
				r.Post("/categories", createCategoryHandler(financeSvc, logger))
				r.Get("/categories/breakdown", categoryBreakdownHandler(financeSvc, logger))
				r.Get("/categories/{categoryId}", getCategoryHandler(financeSvc, logger))
				r.Put("/categories/{categoryId}", updateCategoryHandler(financeSvc, logger))
				r.Delete("/categories/{categoryId}", deleteCategoryHandler(financeSvc, logger))
			})
		})
	})

	return r
}

// ============================================================
// Operational
// ============================================================

// healthzHandler reports the BFA itself and the remote finance API as seen
// through its circuit breaker. It never calls the remote API.
func healthzHandler(breaker BreakerStater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		services := []domain.ServiceHealth{
			{Name: "bfa-api", Status: "healthy", LastChecked: now},
		}
		if breaker != nil {
			status := "healthy"
			switch breaker.BreakerState() {
			case "half-open":
				status = "degraded"
			case "open":
				status = "unhealthy"
			}
			services = append(services, domain.ServiceHealth{
				Name: "finance-api", Status: status, LastChecked: now,
			})
		}

		// The BFA keeps serving while the remote API is down, so a failing
		// dependency only degrades the overall status.
		overallStatus := "healthy"
		for _, s := range services {
			if s.Status != "healthy" {
				overallStatus = "degraded"
			}
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status:   overallStatus,
			Services: services,
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func gatewayMetricsHandler(metrics *observability.Metrics, breaker BreakerStater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := "unknown"
		if breaker != nil {
			state = breaker.BreakerState()
		}
		writeJSON(w, http.StatusOK, metrics.GetGatewaySnapshot(state))
	}
}
