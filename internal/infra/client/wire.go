package client

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/shopspring/decimal"
)

// The remote API serializes timestamps and decimals loosely, so the wire
// structs decode them tolerantly before mapping to domain types.

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// wireTime accepts RFC 3339, zone-less datetimes (read as UTC) and dates.
// Anything else decodes to the zero time.
type wireTime time.Time

func (t *wireTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil || s == "" {
		*t = wireTime{}
		return nil
	}
	*t = wireTime(parseTime(s))
	return nil
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if v, err := time.Parse(layout, s); err == nil {
			return v
		}
	}
	return time.Time{}
}

// wireAmount accepts a JSON number or a decimal string. Unparseable values
// decode to NaN.
type wireAmount float64

func (a *wireAmount) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*a = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			*a = wireAmount(math.NaN())
			return nil
		}
		b = []byte(s)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(string(b)))
	if err != nil {
		*a = wireAmount(math.NaN())
		return nil
	}
	f, _ := d.Float64()
	*a = wireAmount(f)
	return nil
}

type wireCategoryRef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type wireTransaction struct {
	ID          string           `json:"id"`
	Amount      wireAmount       `json:"amount"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	CategoryID  string           `json:"categoryId"`
	Category    *wireCategoryRef `json:"category"`
	CreatedAt   wireTime         `json:"createdAt"`
	UpdatedAt   wireTime         `json:"updatedAt"`
}

func (w wireTransaction) toDomain() domain.Transaction {
	t := domain.Transaction{
		ID:          w.ID,
		Amount:      domain.Number(w.Amount),
		Description: w.Description,
		Type:        domain.TransactionType(strings.ToUpper(w.Type)),
		CategoryID:  w.CategoryID,
		CreatedAt:   time.Time(w.CreatedAt),
		UpdatedAt:   time.Time(w.UpdatedAt),
	}
	if w.Category != nil && w.Category.ID != "" {
		t.Category = &domain.CategoryRef{
			ID:          w.Category.ID,
			Name:        w.Category.Name,
			Description: w.Category.Description,
		}
	}
	return t
}

func transactionsToDomain(ws []wireTransaction) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toDomain())
	}
	return out
}

type wireAccount struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Balance      wireAmount        `json:"balance"`
	Currency     string            `json:"currency"`
	Transactions []wireTransaction `json:"transactions"`
	CreatedAt    wireTime          `json:"createdAt"`
	UpdatedAt    wireTime          `json:"updatedAt"`
}

func (w wireAccount) toDomain() domain.Account {
	a := domain.Account{
		ID:        w.ID,
		Name:      w.Name,
		Balance:   domain.Number(w.Balance),
		Currency:  domain.Currency(strings.ToUpper(w.Currency)),
		CreatedAt: time.Time(w.CreatedAt),
		UpdatedAt: time.Time(w.UpdatedAt),
	}
	if w.Transactions != nil {
		a.Transactions = transactionsToDomain(w.Transactions)
	}
	return a
}

type wireCategory struct {
	ID           string            `json:"id"`
	AccountID    string            `json:"accountId"`
	Name         string            `json:"name"`
	Domain       string            `json:"domain"`
	Description  string            `json:"description"`
	CreatedAt    wireTime          `json:"createdAt"`
	UpdatedAt    wireTime          `json:"updatedAt"`
	Transactions []wireTransaction `json:"transactions"`
}

func (w wireCategory) toDomain() domain.Category {
	c := domain.Category{
		ID:          w.ID,
		AccountID:   w.AccountID,
		Name:        w.Name,
		Domain:      domain.TransactionType(strings.ToUpper(w.Domain)),
		Description: w.Description,
		CreatedAt:   time.Time(w.CreatedAt),
		UpdatedAt:   time.Time(w.UpdatedAt),
	}
	if w.Transactions != nil {
		c.Transactions = transactionsToDomain(w.Transactions)
	}
	return c
}

func categoriesToDomain(ws []wireCategory) []domain.Category {
	out := make([]domain.Category, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.toDomain())
	}
	return out
}
