package port

import (
	"context"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// TransactionGateway handles the transactions of one account.
type TransactionGateway interface {
	ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, accountID string, p domain.TransactionPayload) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, accountID, transactionID string, p domain.TransactionPayload) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, accountID, transactionID string) error
}

// CategoryGateway handles the categories of one account.
type CategoryGateway interface {
	ListCategories(ctx context.Context, accountID string) ([]domain.Category, error)
	GetCategory(ctx context.Context, accountID, categoryID string) (*domain.Category, error)
	CreateCategory(ctx context.Context, accountID string, req *domain.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, accountID, categoryID string, req *domain.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, accountID, categoryID string) error
}

// FinanceGateway is the whole /finance/* surface of the remote API.
type FinanceGateway interface {
	AccountGateway
	TransactionGateway
	CategoryGateway
}

// AuthGateway is the /auth/* surface of the remote API.
type AuthGateway interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.MessageResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error)
	Me(ctx context.Context) (*domain.User, error)
	VerifyEmail(ctx context.Context, req *domain.VerifyEmailRequest) (*domain.MessageResponse, error)
	ResendVerification(ctx context.Context, req *domain.ResendVerificationRequest) (*domain.MessageResponse, error)
}
