package service_test

import (
	"context"
	"sync"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/session"
)

// --- Mocks ---

type mockGateway struct {
	mu sync.Mutex

	accounts     []domain.Account
	account      *domain.Account
	transactions []domain.Transaction
	categories   []domain.Category
	currencies   []domain.Currency
	err          error

	calls       map[string]int
	lastPayload domain.TransactionPayload
	tokens      []string
}

func newMockGateway() *mockGateway {
	return &mockGateway{calls: map[string]int{}}
}

func (m *mockGateway) record(ctx context.Context, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls[name]++
	m.tokens = append(m.tokens, session.TokenFromContext(ctx))
}

func (m *mockGateway) count(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[name]
}

func (m *mockGateway) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	m.record(ctx, "ListAccounts")
	return m.accounts, m.err
}

func (m *mockGateway) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	m.record(ctx, "GetAccount")
	if m.err != nil {
		return nil, m.err
	}
	if m.account == nil || m.account.ID != accountID {
		return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
	}
	acc := *m.account
	return &acc, nil
}

func (m *mockGateway) CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	m.record(ctx, "CreateAccount")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{ID: "new", Name: req.Name, Currency: req.Currency}, nil
}

func (m *mockGateway) UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAccountRequest) (*domain.Account, error) {
	m.record(ctx, "UpdateAccount")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Account{ID: accountID, Name: *req.Name}, nil
}

func (m *mockGateway) DeleteAccount(ctx context.Context, _ string) error {
	m.record(ctx, "DeleteAccount")
	return m.err
}

func (m *mockGateway) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	m.record(ctx, "ListCurrencies")
	return m.currencies, m.err
}

func (m *mockGateway) ListTransactions(ctx context.Context, _ string) ([]domain.Transaction, error) {
	m.record(ctx, "ListTransactions")
	return m.transactions, m.err
}

func (m *mockGateway) GetTransaction(ctx context.Context, _, transactionID string) (*domain.Transaction, error) {
	m.record(ctx, "GetTransaction")
	for _, t := range m.transactions {
		if t.ID == transactionID {
			return &t, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "transaction", ID: transactionID}
}

func (m *mockGateway) CreateTransaction(ctx context.Context, _ string, p domain.TransactionPayload) (*domain.Transaction, error) {
	m.record(ctx, "CreateTransaction")
	m.lastPayload = p
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Transaction{ID: "tx-new", Amount: domain.Number(*p.Amount)}, nil
}

func (m *mockGateway) UpdateTransaction(ctx context.Context, _, transactionID string, p domain.TransactionPayload) (*domain.Transaction, error) {
	m.record(ctx, "UpdateTransaction")
	m.lastPayload = p
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Transaction{ID: transactionID}, nil
}

func (m *mockGateway) DeleteTransaction(ctx context.Context, _, _ string) error {
	m.record(ctx, "DeleteTransaction")
	return m.err
}

func (m *mockGateway) ListCategories(ctx context.Context, _ string) ([]domain.Category, error) {
	m.record(ctx, "ListCategories")
	return m.categories, m.err
}

func (m *mockGateway) GetCategory(ctx context.Context, _, categoryID string) (*domain.Category, error) {
	m.record(ctx, "GetCategory")
	for _, c := range m.categories {
		if c.ID == categoryID {
			return &c, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "category", ID: categoryID}
}

func (m *mockGateway) CreateCategory(ctx context.Context, accountID string, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	m.record(ctx, "CreateCategory")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Category{ID: "cat-new", AccountID: accountID, Name: req.Name, Domain: req.Domain}, nil
}

func (m *mockGateway) UpdateCategory(ctx context.Context, _, categoryID string, _ *domain.UpdateCategoryRequest) (*domain.Category, error) {
	m.record(ctx, "UpdateCategory")
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Category{ID: categoryID}, nil
}

func (m *mockGateway) DeleteCategory(ctx context.Context, _, _ string) error {
	m.record(ctx, "DeleteCategory")
	return m.err
}

type mockAuthGateway struct {
	login    *domain.LoginResponse
	loginErr error
	user     *domain.User
	meErr    error
	message  *domain.MessageResponse
	meTokens []string
}

func (m *mockAuthGateway) Register(_ context.Context, _ *domain.RegisterRequest) (*domain.MessageResponse, error) {
	return m.message, nil
}

func (m *mockAuthGateway) Login(_ context.Context, _ *domain.LoginRequest) (*domain.LoginResponse, error) {
	return m.login, m.loginErr
}

func (m *mockAuthGateway) Me(ctx context.Context) (*domain.User, error) {
	m.meTokens = append(m.meTokens, session.TokenFromContext(ctx))
	return m.user, m.meErr
}

func (m *mockAuthGateway) VerifyEmail(_ context.Context, _ *domain.VerifyEmailRequest) (*domain.MessageResponse, error) {
	return m.message, nil
}

func (m *mockAuthGateway) ResendVerification(_ context.Context, _ *domain.ResendVerificationRequest) (*domain.MessageResponse, error) {
	return m.message, nil
}
