package handler

import (
	"net/http"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/report"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Transactions Handlers
// ============================================================

// listTransactionsHandler serves the transaction table. The query accepts
// q, type, category, from and to; missing parameters do not filter.
func listTransactionsHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/transactions")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		filter, err := report.ParseTransactionFilter(r.URL.Query(), svc.Location())
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		view, err := svc.FilteredTransactions(ctx, accountID, filter)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, view)
	}
}

func getTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/transactions/{transactionId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		transactionID := chi.URLParam(r, "transactionId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("transaction.id", transactionID),
		)

		tx, err := svc.GetTransaction(ctx, accountID, transactionID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func createTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/accounts/{accountId}/transactions")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		var req domain.CreateTransactionRequest
		if !readJSON(w, r, &req) {
			return
		}

		tx, err := svc.CreateTransaction(ctx, accountID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, tx)
	}
}

func updateTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/accounts/{accountId}/transactions/{transactionId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		transactionID := chi.URLParam(r, "transactionId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("transaction.id", transactionID),
		)

		var req domain.UpdateTransactionRequest
		if !readJSON(w, r, &req) {
			return
		}

		tx, err := svc.UpdateTransaction(ctx, accountID, transactionID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, tx)
	}
}

func deleteTransactionHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/accounts/{accountId}/transactions/{transactionId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		transactionID := chi.URLParam(r, "transactionId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("transaction.id", transactionID),
		)

		if err := svc.DeleteTransaction(ctx, accountID, transactionID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
