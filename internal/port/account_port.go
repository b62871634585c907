package port

import (
	"context"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// AccountGateway handles account operations of the remote finance API.
// The caller's token travels in ctx (see session.WithSession).
type AccountGateway interface {
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error)
	UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
