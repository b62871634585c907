package report

import (
	"sort"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// Labels of the synthetic buckets, as shown by the dashboard.
const (
	UncategorizedName        = "Sem Categoria"
	UncategorizedDescription = "Transações sem categoria atribuída"
	UnmatchedName            = "Categoria Incompatível"
	UnmatchedDescription     = "Transações com categoria de outro tipo ou removida"
)

// ByCategory totals the transactions of domain d per category.
//
// Only categories of domain d are listed, zero-total ones included. A
// transaction of type d counts towards the category it references when that
// category belongs to d. Without a category it falls into the uncategorized
// bucket; a reference to a category of the other domain or to an unknown id
// falls into the unmatched bucket. Each bucket only exists when it holds
// something. Transactions of the other type are ignored, so the breakdown
// total always equals the sum of |amount| over the transactions of type d.
func ByCategory(categories []domain.Category, transactions []domain.Transaction, d domain.TransactionType) domain.CategoryBreakdown {
	index := make(map[string]int, len(categories))
	rows := make([]domain.CategoryTotal, 0, len(categories))
	for _, c := range categories {
		if c.Domain != d || c.ID == "" {
			continue
		}
		if _, dup := index[c.ID]; dup {
			continue
		}
		index[c.ID] = len(rows)
		rows = append(rows, domain.CategoryTotal{
			CategoryID:   c.ID,
			Name:         c.Name,
			Description:  c.Description,
			Domain:       d,
			Transactions: []domain.Transaction{},
		})
	}

	sums := make([]absSum, len(rows))
	var (
		total         absSum
		uncategorized absSum
		unmatched     absSum
		orphans       []domain.Transaction
		strays        []domain.Transaction
	)
	for _, t := range transactions {
		if t.Type != d {
			continue
		}
		total.add(float64(t.Amount))
		if i, ok := index[t.CategoryKey()]; ok {
			sums[i].add(float64(t.Amount))
			rows[i].Transactions = append(rows[i].Transactions, t)
			continue
		}
		if t.CategoryKey() != "" {
			unmatched.add(float64(t.Amount))
			strays = append(strays, t)
			continue
		}
		uncategorized.add(float64(t.Amount))
		orphans = append(orphans, t)
	}

	breakdown := domain.CategoryBreakdown{
		Domain: d,
		Total:  total.Float(),
	}
	for i := range rows {
		rows[i].Total = sums[i].Float()
		rows[i].TransactionCount = len(rows[i].Transactions)
		rows[i].Percentage = Percentage(rows[i].Total, breakdown.Total)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	breakdown.Categories = rows

	if len(orphans) > 0 {
		u := uncategorized.Float()
		breakdown.Uncategorized = &domain.CategoryTotal{
			CategoryID:       domain.UncategorizedID,
			Name:             UncategorizedName,
			Description:      UncategorizedDescription,
			Domain:           d,
			Uncategorized:    true,
			Total:            u,
			Percentage:       Percentage(u, breakdown.Total),
			TransactionCount: len(orphans),
			Transactions:     orphans,
		}
	}
	if len(strays) > 0 {
		u := unmatched.Float()
		breakdown.Unmatched = &domain.CategoryTotal{
			CategoryID:       domain.UnmatchedID,
			Name:             UnmatchedName,
			Description:      UnmatchedDescription,
			Domain:           d,
			Unmatched:        true,
			Total:            u,
			Percentage:       Percentage(u, breakdown.Total),
			TransactionCount: len(strays),
			Transactions:     strays,
		}
	}
	return breakdown
}

// TypeMismatches lists the transactions attached to a category of the other
// domain. The dashboard tolerates them; callers decide whether to warn.
func TypeMismatches(categories []domain.Category, transactions []domain.Transaction) []domain.TypeMismatch {
	domains := make(map[string]domain.TransactionType, len(categories))
	for _, c := range categories {
		domains[c.ID] = c.Domain
	}

	var out []domain.TypeMismatch
	for _, t := range transactions {
		key := t.CategoryKey()
		if key == "" {
			continue
		}
		d, ok := domains[key]
		if !ok || d == t.Type {
			continue
		}
		out = append(out, domain.TypeMismatch{
			TransactionID:  t.ID,
			CategoryID:     key,
			Type:           t.Type,
			CategoryDomain: d,
		})
	}
	return out
}
