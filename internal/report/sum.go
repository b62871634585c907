// Package report turns the transactions and categories of an account into the
// aggregates the dashboard renders: category breakdowns, month calendars,
// overview totals and filtered transaction lists. Every function is pure.
package report

import (
	"math"

	"github.com/shopspring/decimal"
)

// absSum accumulates absolute amounts exactly. Non-finite amounts cannot be
// represented as decimals, so they are kept aside and propagate into Float.
type absSum struct {
	exact     decimal.Decimal
	nonFinite float64
}

func (s *absSum) add(amount float64) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		s.nonFinite += math.Abs(amount)
		return
	}
	s.exact = s.exact.Add(decimal.NewFromFloat(amount).Abs())
}

func (s absSum) Float() float64 {
	f, _ := s.exact.Float64()
	return f + s.nonFinite
}

// Percentage returns value as a percentage of total, or 0 when total is 0.
func Percentage(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}
