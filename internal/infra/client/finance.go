package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

func accountPath(accountID string) string {
	return "/finance/accounts/" + url.PathEscape(accountID)
}

// ============================================================
// Accounts
// ============================================================

// ListAccounts fetches the accounts of the session user.
func (c *GatewayClient) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	var out []wireAccount
	err := c.do(ctx, call{
		method: http.MethodGet, path: "/finance/accounts",
		endpoint: "GET /finance/accounts", resource: "accounts", out: &out,
	})
	if err != nil {
		return nil, err
	}
	accounts := make([]domain.Account, 0, len(out))
	for _, w := range out {
		accounts = append(accounts, w.toDomain())
	}
	return accounts, nil
}

// GetAccount fetches one account with its transactions.
func (c *GatewayClient) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	var out wireAccount
	err := c.do(ctx, call{
		method: http.MethodGet, path: accountPath(accountID),
		endpoint: "GET /finance/accounts/:id", resource: "account", id: accountID, out: &out,
	})
	if err != nil {
		return nil, err
	}
	a := out.toDomain()
	return &a, nil
}

// CreateAccount creates an account.
func (c *GatewayClient) CreateAccount(ctx context.Context, req *domain.CreateAccountRequest) (*domain.Account, error) {
	var out wireAccount
	err := c.do(ctx, call{
		method: http.MethodPost, path: "/finance/accounts",
		endpoint: "POST /finance/accounts", resource: "account", body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	a := out.toDomain()
	return &a, nil
}

// UpdateAccount renames an account or changes its currency.
func (c *GatewayClient) UpdateAccount(ctx context.Context, accountID string, req *domain.UpdateAccountRequest) (*domain.Account, error) {
	var out struct {
		Account wireAccount `json:"account"`
	}
	err := c.do(ctx, call{
		method: http.MethodPut, path: accountPath(accountID),
		endpoint: "PUT /finance/accounts/:id", resource: "account", id: accountID, body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	a := out.Account.toDomain()
	return &a, nil
}

// DeleteAccount deletes an account.
func (c *GatewayClient) DeleteAccount(ctx context.Context, accountID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete, path: accountPath(accountID),
		endpoint: "DELETE /finance/accounts/:id", resource: "account", id: accountID,
	})
}

// ListCurrencies fetches the supported account currencies.
func (c *GatewayClient) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	var out struct {
		Currencies []domain.Currency `json:"currencies"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet, path: "/finance/currencies",
		endpoint: "GET /finance/currencies", resource: "currencies", out: &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Currencies == nil {
		out.Currencies = []domain.Currency{}
	}
	return out.Currencies, nil
}

// ============================================================
// Transactions
// ============================================================

func transactionPath(accountID, transactionID string) string {
	return accountPath(accountID) + "/transactions/" + url.PathEscape(transactionID)
}

// ListTransactions fetches every transaction of an account.
func (c *GatewayClient) ListTransactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	var out struct {
		Transactions []wireTransaction `json:"transactions"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet, path: accountPath(accountID) + "/transactions",
		endpoint: "GET /finance/accounts/:id/transactions", resource: "transactions", id: accountID, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return transactionsToDomain(out.Transactions), nil
}

// GetTransaction fetches one transaction.
func (c *GatewayClient) GetTransaction(ctx context.Context, accountID, transactionID string) (*domain.Transaction, error) {
	var out wireTransaction
	err := c.do(ctx, call{
		method: http.MethodGet, path: transactionPath(accountID, transactionID),
		endpoint: "GET /finance/accounts/:id/transactions/:tid", resource: "transaction", id: transactionID, out: &out,
	})
	if err != nil {
		return nil, err
	}
	t := out.toDomain()
	return &t, nil
}

// CreateTransaction records a transaction. The amount in p is already signed.
func (c *GatewayClient) CreateTransaction(ctx context.Context, accountID string, p domain.TransactionPayload) (*domain.Transaction, error) {
	var out wireTransaction
	err := c.do(ctx, call{
		method: http.MethodPost, path: accountPath(accountID) + "/transactions",
		endpoint: "POST /finance/accounts/:id/transactions", resource: "transaction", id: accountID, body: p, out: &out,
	})
	if err != nil {
		return nil, err
	}
	t := out.toDomain()
	return &t, nil
}

// UpdateTransaction changes a transaction.
func (c *GatewayClient) UpdateTransaction(ctx context.Context, accountID, transactionID string, p domain.TransactionPayload) (*domain.Transaction, error) {
	var out wireTransaction
	err := c.do(ctx, call{
		method: http.MethodPut, path: transactionPath(accountID, transactionID),
		endpoint: "PUT /finance/accounts/:id/transactions/:tid", resource: "transaction", id: transactionID, body: p, out: &out,
	})
	if err != nil {
		return nil, err
	}
	t := out.toDomain()
	return &t, nil
}

// DeleteTransaction deletes a transaction.
func (c *GatewayClient) DeleteTransaction(ctx context.Context, accountID, transactionID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete, path: transactionPath(accountID, transactionID),
		endpoint: "DELETE /finance/accounts/:id/transactions/:tid", resource: "transaction", id: transactionID,
	})
}

// ============================================================
// Categories
// ============================================================

func categoryPath(accountID, categoryID string) string {
	return accountPath(accountID) + "/categories/" + url.PathEscape(categoryID)
}

// ListCategories fetches every category of an account.
func (c *GatewayClient) ListCategories(ctx context.Context, accountID string) ([]domain.Category, error) {
	var out struct {
		Categories []wireCategory `json:"categories"`
	}
	err := c.do(ctx, call{
		method: http.MethodGet, path: accountPath(accountID) + "/categories",
		endpoint: "GET /finance/accounts/:id/categories", resource: "categories", id: accountID, out: &out,
	})
	if err != nil {
		return nil, err
	}
	return categoriesToDomain(out.Categories), nil
}

// GetCategory fetches one category.
func (c *GatewayClient) GetCategory(ctx context.Context, accountID, categoryID string) (*domain.Category, error) {
	var out wireCategory
	err := c.do(ctx, call{
		method: http.MethodGet, path: categoryPath(accountID, categoryID),
		endpoint: "GET /finance/accounts/:id/categories/:cid", resource: "category", id: categoryID, out: &out,
	})
	if err != nil {
		return nil, err
	}
	cat := out.toDomain()
	return &cat, nil
}

// CreateCategory creates a category.
func (c *GatewayClient) CreateCategory(ctx context.Context, accountID string, req *domain.CreateCategoryRequest) (*domain.Category, error) {
	var out wireCategory
	err := c.do(ctx, call{
		method: http.MethodPost, path: accountPath(accountID) + "/categories",
		endpoint: "POST /finance/accounts/:id/categories", resource: "category", id: accountID, body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	cat := out.toDomain()
	return &cat, nil
}

// UpdateCategory changes a category.
func (c *GatewayClient) UpdateCategory(ctx context.Context, accountID, categoryID string, req *domain.UpdateCategoryRequest) (*domain.Category, error) {
	var out wireCategory
	err := c.do(ctx, call{
		method: http.MethodPut, path: categoryPath(accountID, categoryID),
		endpoint: "PUT /finance/accounts/:id/categories/:cid", resource: "category", id: categoryID, body: req, out: &out,
	})
	if err != nil {
		return nil, err
	}
	cat := out.toDomain()
	return &cat, nil
}

// DeleteCategory deletes a category.
func (c *GatewayClient) DeleteCategory(ctx context.Context, accountID, categoryID string) error {
	return c.do(ctx, call{
		method: http.MethodDelete, path: categoryPath(accountID, categoryID),
		endpoint: "DELETE /finance/accounts/:id/categories/:cid", resource: "category", id: categoryID,
	})
}
