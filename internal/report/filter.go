package report

import (
	"net/url"
	"strings"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

const dateLayout = "2006-01-02"

// Filter returns the transactions matching every predicate of f, in input
// order. The input slice is never modified.
func Filter(transactions []domain.Transaction, f domain.TransactionFilter) []domain.Transaction {
	search := strings.ToLower(f.Search)
	out := make([]domain.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if search != "" && !strings.Contains(strings.ToLower(t.Description), search) {
			continue
		}
		if !matchesAll(f.Type) && string(t.Type) != f.Type {
			continue
		}
		if !matchesAll(f.CategoryID) && t.CategoryKey() != f.CategoryID {
			continue
		}
		if !f.From.IsZero() && t.CreatedAt.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && t.CreatedAt.After(f.To) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesAll(v string) bool {
	return v == "" || v == domain.TransactionFilterAll
}

// ParseTransactionFilter reads a filter from query parameters:
// q (search text), type (ALL|INCOME|EXPENSE), category (ALL|id),
// from and to (YYYY-MM-DD in loc, or RFC 3339). A date-only "to" covers the
// whole day.
func ParseTransactionFilter(q url.Values, loc *time.Location) (domain.TransactionFilter, error) {
	if loc == nil {
		loc = time.UTC
	}
	f := domain.DefaultTransactionFilter()
	f.Search = q.Get("q")

	if v := strings.TrimSpace(q.Get("type")); v != "" && !strings.EqualFold(v, domain.TransactionFilterAll) {
		t, ok := domain.ParseTransactionType(v)
		if !ok {
			return f, &domain.ErrValidation{Field: "type", Message: "must be ALL, INCOME or EXPENSE"}
		}
		f.Type = string(t)
	}
	if v := strings.TrimSpace(q.Get("category")); v != "" && !strings.EqualFold(v, domain.TransactionFilterAll) {
		f.CategoryID = v
	}

	var err error
	if f.From, err = parseBound(q.Get("from"), loc, false); err != nil {
		return f, &domain.ErrValidation{Field: "from", Message: err.Error()}
	}
	if f.To, err = parseBound(q.Get("to"), loc, true); err != nil {
		return f, &domain.ErrValidation{Field: "to", Message: err.Error()}
	}
	if !f.From.IsZero() && !f.To.IsZero() && f.To.Before(f.From) {
		return f, &domain.ErrValidation{Field: "to", Message: "must not be before from"}
	}
	return f, nil
}

func parseBound(v string, loc *time.Location, endOfDay bool) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, nil
	}
	if d, err := time.ParseInLocation(dateLayout, v, loc); err == nil {
		if endOfDay {
			return d.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return d, nil
	}
	return time.Parse(time.RFC3339, v)
}
