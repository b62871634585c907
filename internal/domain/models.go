// Package domain defines the core entities of the finance dashboard BFA.
// These models are independent of the remote finance API wire format and
// represent the canonical data structures used throughout the BFA.
package domain

import (
	"encoding/json"
	"math"
	"strings"
	"time"
)

// Number is a monetary or percentage value as served to the dashboard.
// Non-finite values, which come from malformed remote amounts, encode as null.
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// Finite reports whether n is neither NaN nor infinite.
func (n Number) Finite() bool {
	f := float64(n)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ============================================================
// Currency
// ============================================================

// Currency is one of the currencies supported by the finance API.
type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyBRL Currency = "BRL"
	CurrencyGBP Currency = "GBP"
)

// SupportedCurrencies lists the closed set of account currencies.
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyBRL, CurrencyGBP}

// Valid reports whether c belongs to the supported set.
func (c Currency) Valid() bool {
	for _, s := range SupportedCurrencies {
		if c == s {
			return true
		}
	}
	return false
}

// ============================================================
// Transaction type / category domain
// ============================================================

// TransactionType tags a transaction (and a category domain) as income or expense.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
)

// Valid reports whether t is INCOME or EXPENSE.
func (t TransactionType) Valid() bool {
	return t == TypeIncome || t == TypeExpense
}

// ParseTransactionType accepts the type case-insensitively.
func ParseTransactionType(s string) (TransactionType, bool) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	return t, t.Valid()
}

// SignAmount applies the sign convention of the dashboard:
// expenses are stored negative, incomes positive.
func (t TransactionType) SignAmount(amount float64) float64 {
	if amount < 0 {
		amount = -amount
	}
	if t == TypeExpense {
		return -amount
	}
	return amount
}

// ============================================================
// Accounts
// ============================================================

// Account is a named ledger with a currency. Balance is computed by the
// remote API and never mutated locally.
type Account struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Balance      Number        `json:"balance"`
	Currency     Currency      `json:"currency"`
	Transactions []Transaction `json:"transactions,omitempty"`
	CreatedAt    time.Time     `json:"createdAt,omitempty"`
	UpdatedAt    time.Time     `json:"updatedAt,omitempty"`
}

// ============================================================
// Transactions
// ============================================================

// CategoryRef is the category summary embedded in a transaction.
type CategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Transaction is a single signed monetary movement of an account.
type Transaction struct {
	ID          string          `json:"id"`
	Amount      Number          `json:"amount"`
	Description string          `json:"description,omitempty"`
	Type        TransactionType `json:"type"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Category    *CategoryRef    `json:"category,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt,omitempty"`
}

// CategoryKey returns the id of the category the transaction is attached to,
// falling back to the embedded category when categoryId is absent.
func (t Transaction) CategoryKey() string {
	if t.CategoryID != "" {
		return t.CategoryID
	}
	if t.Category != nil {
		return t.Category.ID
	}
	return ""
}

// ============================================================
// Categories
// ============================================================

// Category is a user-defined label scoped to one domain (income or expense).
type Category struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"accountId"`
	Name         string          `json:"name"`
	Domain       TransactionType `json:"domain"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"createdAt,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt,omitempty"`
	Transactions []Transaction   `json:"transactions,omitempty"`
}

// TransactionFilterAll disables the type or category predicate of a filter.
const TransactionFilterAll = "ALL"

// TransactionFilter holds the predicates of the transaction table.
// Zero From/To impose no bound; an empty Type or CategoryID behaves like ALL.
type TransactionFilter struct {
	Search     string    `json:"search,omitempty"`
	Type       string    `json:"type"`
	CategoryID string    `json:"categoryId"`
	From       time.Time `json:"from,omitempty"`
	To         time.Time `json:"to,omitempty"`
}

// DefaultTransactionFilter returns the filter that matches every transaction.
func DefaultTransactionFilter() TransactionFilter {
	return TransactionFilter{Type: TransactionFilterAll, CategoryID: TransactionFilterAll}
}
