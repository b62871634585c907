package handler

import (
	"net/http"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Dashboard views
// ============================================================

func dashboardHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/dashboard")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		view, err := svc.Dashboard(ctx, accountID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// categoryBreakdownHandler answers ?domain=EXPENSE|INCOME, EXPENSE by default.
func categoryBreakdownHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/categories/breakdown")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		d := domain.TypeExpense
		if v := r.URL.Query().Get("domain"); v != "" {
			parsed, ok := domain.ParseTransactionType(v)
			if !ok {
				handleServiceError(w, &domain.ErrValidation{Field: "domain", Message: "must be INCOME or EXPENSE"}, logger)
				return
			}
			d = parsed
		}

		view, err := svc.CategoryBreakdown(ctx, accountID, d)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

// calendarHandler answers ?year=&month=; without them the current month is shown.
func calendarHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/calendar")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		year, err := queryInt(r, "year")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		month, err := queryInt(r, "month")
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if (year == 0) != (month == 0) {
			handleServiceError(w, &domain.ErrValidation{Field: "month", Message: "year and month go together"}, logger)
			return
		}

		view, err := svc.Calendar(ctx, accountID, year, time.Month(month))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}
