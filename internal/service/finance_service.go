// Package service provides the business logic layer (use cases).
// FinanceService fronts the /finance/* API of the remote backend with a read
// cache and turns its data into dashboard view models; AuthService manages
// sessions on top of /auth/*.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/money"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/port"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

var financeTracer = otel.Tracer("service/finance")

// Read cache freshness per resource. Currencies never go stale.
const (
	accountsTTL     = 5 * time.Minute
	accountTTL      = 2 * time.Minute
	transactionsTTL = time.Minute
	categoriesTTL   = 5 * time.Minute
	currenciesTTL   = 0

	currenciesKey = "currencies"
)

// FinanceOptions tunes how view models are rendered.
type FinanceOptions struct {
	Formatter          *money.Formatter
	Location           *time.Location
	RecentTransactions int
}

// FinanceService orchestrates account, transaction and category operations
// against the remote finance API.
type FinanceService struct {
	gateway   port.FinanceGateway
	cache     port.Cache[any]
	formatter *money.Formatter
	loc       *time.Location
	recent    int
	metrics   port.MetricsRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewFinanceService creates a new finance service.
func NewFinanceService(gateway port.FinanceGateway, cache port.Cache[any], opts FinanceOptions, metrics port.MetricsRecorder, logger *zap.Logger) *FinanceService {
	if opts.Formatter == nil {
		opts.Formatter = money.Default()
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.RecentTransactions < 0 {
		opts.RecentTransactions = 0
	}
	return &FinanceService{
		gateway:   gateway,
		cache:     cache,
		formatter: opts.Formatter,
		loc:       opts.Location,
		recent:    opts.RecentTransactions,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// Location is the time zone used for calendar days and date filters.
func (s *FinanceService) Location() *time.Location { return s.loc }

// ============================================================
// Cache keys: scoped to the session user
// ============================================================

// userScope returns the cache namespace of the caller, "" when ctx carries no
// session (such reads bypass the cache).
func userScope(ctx context.Context) string {
	s, ok := session.FromContext(ctx)
	if !ok {
		return ""
	}
	if s.User.ID != "" {
		return "user:" + s.User.ID
	}
	return "session:" + s.ID
}

func accountScope(scope, accountID string) string {
	return scope + ":acc:" + accountID + ":"
}

// cached returns the value under key or loads and stores it.
func cached[T any](ctx context.Context, s *FinanceService, resource, key string, ttl time.Duration, load func(context.Context) (T, error)) (T, error) {
	if key != "" {
		if v, ok := s.cache.Get(key); ok {
			if typed, ok := v.(T); ok {
				s.metrics.IncrCacheHit(resource)
				return typed, nil
			}
		}
		s.metrics.IncrCacheMiss(resource)
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}
	if key != "" {
		s.cache.SetWithTTL(key, v, ttl)
	}
	return v, nil
}

func (s *FinanceService) observe(operation string, start time.Time) {
	s.metrics.RecordRequestDuration(operation, time.Since(start))
}

// invalidateAccounts drops the account list of the caller.
func (s *FinanceService) invalidateAccounts(ctx context.Context) {
	if scope := userScope(ctx); scope != "" {
		s.cache.Delete(scope + ":accounts")
	}
}

// invalidate drops the given per-account entries of the caller.
func (s *FinanceService) invalidate(ctx context.Context, accountID string, entries ...string) {
	scope := userScope(ctx)
	if scope == "" {
		return
	}
	for _, e := range entries {
		s.cache.Delete(accountScope(scope, accountID) + e)
	}
}

func keyFor(ctx context.Context, accountID, entry string) string {
	scope := userScope(ctx)
	if scope == "" {
		return ""
	}
	if accountID == "" {
		return scope + ":" + entry
	}
	return accountScope(scope, accountID) + entry
}

// ============================================================
// Accounts
// ============================================================

func (s *FinanceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListAccounts")
	defer span.End()
	defer s.observe("list_accounts", time.Now())

	return cached(ctx, s, "accounts", keyFor(ctx, "", "accounts"), accountsTTL, s.gateway.ListAccounts)
}

func (s *FinanceService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("get_account", time.Now())

	return cached(ctx, s, "account", keyFor(ctx, accountID, "account"), accountTTL,
		func(ctx context.Context) (*domain.Account, error) {
			return s.gateway.GetAccount(ctx, accountID)
		})
}

func (s *FinanceService) CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CreateAccount")
	defer span.End()
	defer s.observe("create_account", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}
	acc, err := s.gateway.CreateAccount(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.invalidateAccounts(ctx)

	s.logger.Info("account created",
		zap.String("account_id", acc.ID),
		zap.String("currency", string(acc.Currency)),
	)
	return acc, nil
}

func (s *FinanceService) UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAccountRequest) (*domain.Account, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.UpdateAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("update_account", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}
	acc, err := s.gateway.UpdateAccount(ctx, accountID, req)
	if err != nil {
		return nil, fmt.Errorf("update account: %w", err)
	}
	s.invalidateAccounts(ctx)
	s.invalidate(ctx, accountID, "account")
	return acc, nil
}

func (s *FinanceService) DeleteAccount(ctx context.Context, accountID string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("delete_account", time.Now())

	if err := s.gateway.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.invalidateAccounts(ctx)
	if scope := userScope(ctx); scope != "" {
		s.cache.DeletePrefix(accountScope(scope, accountID))
	}

	s.logger.Info("account deleted", zap.String("account_id", accountID))
	return nil
}

func (s *FinanceService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListCurrencies")
	defer span.End()
	defer s.observe("list_currencies", time.Now())

	return cached(ctx, s, "currencies", currenciesKey, currenciesTTL, s.gateway.ListCurrencies)
}

// ============================================================
// Transactions
// ============================================================

func (s *FinanceService) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("list_transactions", time.Now())

	return cached(ctx, s, "transactions", keyFor(ctx, accountID, "transactions"), transactionsTTL,
		func(ctx context.Context) ([]domain.Transaction, error) {
			return s.gateway.ListTransactions(ctx, accountID)
		})
}

func (s *FinanceService) GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetTransaction")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("transaction.id", transactionID),
	)
	defer s.observe("get_transaction", time.Now())

	return s.gateway.GetTransaction(ctx, accountID, transactionID)
}

func (s *FinanceService) CreateTransaction(ctx context.Context, accountID string, req *domain.CreateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CreateTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("create_transaction", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.gateway.CreateTransaction(ctx, accountID, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	if tx.Type == "" {
		tx.Type = req.Type
	}
	s.invalidateAccounts(ctx)
	s.invalidate(ctx, accountID, "account", "transactions")

	s.logger.Info("transaction created",
		zap.String("account_id", accountID),
		zap.String("transaction_id", tx.ID),
		zap.String("type", string(req.Type)),
	)
	return tx, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, accountID, transactionID string, req *domain.UpdateTransactionRequest) (*domain.Transaction, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.UpdateTransaction")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("transaction.id", transactionID),
	)
	defer s.observe("update_transaction", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}

	tx, err := s.gateway.UpdateTransaction(ctx, accountID, transactionID, req.Payload())
	if err != nil {
		return nil, fmt.Errorf("update transaction: %w", err)
	}
	s.invalidateAccounts(ctx)
	s.invalidate(ctx, accountID, "account", "transactions")
	return tx, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, accountID, transactionID string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteTransaction")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("transaction.id", transactionID),
	)
	defer s.observe("delete_transaction", time.Now())

	if err := s.gateway.DeleteTransaction(ctx, accountID, transactionID); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	s.invalidateAccounts(ctx)
	s.invalidate(ctx, accountID, "account", "transactions")
	return nil
}

// ============================================================
// Categories
// ============================================================

func (s *FinanceService) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.ListCategories")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("list_categories", time.Now())

	return cached(ctx, s, "categories", keyFor(ctx, accountID, "categories"), categoriesTTL,
		func(ctx context.Context) ([]domain.Category, error) {
			return s.gateway.ListCategories(ctx, accountID)
		})
}

func (s *FinanceService) GetCategory(ctx context.Context, accountID, categoryID string) (*domain.Category, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.GetCategory")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("category.id", categoryID),
	)
	defer s.observe("get_category", time.Now())

	return s.gateway.GetCategory(ctx, accountID, categoryID)
}

func (s *FinanceService) CreateCategory(ctx context.Context, accountID string, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CreateCategory")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("create_category", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}
	cat, err := s.gateway.CreateCategory(ctx, accountID, req)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidate(ctx, accountID, "categories")

	s.logger.Info("category created",
		zap.String("account_id", accountID),
		zap.String("category_id", cat.ID),
		zap.String("domain", string(req.Domain)),
	)
	return cat, nil
}

func (s *FinanceService) UpdateCategory(ctx context.Context, accountID, categoryID string, req *domain.UpdateCategoryRequest) (*domain.Category, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.UpdateCategory")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("category.id", categoryID),
	)
	defer s.observe("update_category", time.Now())

	if err := req.Validate(); err != nil {
		return nil, err
	}
	cat, err := s.gateway.UpdateCategory(ctx, accountID, categoryID, req)
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	s.invalidate(ctx, accountID, "categories", "transactions")
	return cat, nil
}

func (s *FinanceService) DeleteCategory(ctx context.Context, accountID, categoryID string) error {
	ctx, span := financeTracer.Start(ctx, "FinanceService.DeleteCategory")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("category.id", categoryID),
	)
	defer s.observe("delete_category", time.Now())

	if err := s.gateway.DeleteCategory(ctx, accountID, categoryID); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	s.invalidate(ctx, accountID, "categories", "transactions")
	return nil
}
