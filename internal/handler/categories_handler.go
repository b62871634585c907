package handler

import (
	"net/http"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Categories Handlers
// ============================================================

func listCategoriesHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/categories")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		categories, err := svc.ListCategories(ctx, accountID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		if categories == nil {
			categories = []domain.Category{}
		}
		writeJSON(w, http.StatusOK, categories)
	}
}

func getCategoryHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/accounts/{accountId}/categories/{categoryId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		categoryID := chi.URLParam(r, "categoryId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("category.id", categoryID),
		)

		category, err := svc.GetCategory(ctx, accountID, categoryID)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func createCategoryHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/accounts/{accountId}/categories")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		span.SetAttributes(attribute.String("account.id", accountID))

		var req domain.CreateCategoryRequest
		if !readJSON(w, r, &req) {
			return
		}

		category, err := svc.CreateCategory(ctx, accountID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, category)
	}
}

func updateCategoryHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/accounts/{accountId}/categories/{categoryId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		categoryID := chi.URLParam(r, "categoryId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("category.id", categoryID),
		)

		var req domain.UpdateCategoryRequest
		if !readJSON(w, r, &req) {
			return
		}

		category, err := svc.UpdateCategory(ctx, accountID, categoryID, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

func deleteCategoryHandler(svc *service.FinanceService, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/accounts/{accountId}/categories/{categoryId}")
		defer span.End()
		accountID := chi.URLParam(r, "accountId")
		categoryID := chi.URLParam(r, "categoryId")
		span.SetAttributes(
			attribute.String("account.id", accountID),
			attribute.String("category.id", categoryID),
		)

		if err := svc.DeleteCategory(ctx, accountID, categoryID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
