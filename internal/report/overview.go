package report

import (
	"sort"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// Overview computes the income and expense totals of an account and picks
// its `recent` newest transactions.
func Overview(transactions []domain.Transaction, recent int) domain.AccountOverview {
	var income, expense absSum
	for _, t := range transactions {
		switch t.Type {
		case domain.TypeIncome:
			income.add(float64(t.Amount))
		case domain.TypeExpense:
			expense.add(float64(t.Amount))
		}
	}

	sorted := make([]domain.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if recent < 0 {
		recent = 0
	}
	if recent < len(sorted) {
		sorted = sorted[:recent]
	}

	return domain.AccountOverview{
		IncomeTotal:      income.Float(),
		ExpenseTotal:     expense.Float(),
		TransactionCount: len(transactions),
		Recent:           sorted,
	}
}
