package report_test

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/report"
)

func TestByCategory_Example(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Name: "Mercado", Domain: domain.TypeExpense}}
	transactions := []domain.Transaction{
		{ID: "t1", Amount: -50, Type: domain.TypeExpense, CategoryID: "c1"},
		{ID: "t2", Amount: -30, Type: domain.TypeExpense},
	}

	b := report.ByCategory(categories, transactions, domain.TypeExpense)

	if b.Total != 80 {
		t.Fatalf("expected total 80, got %v", b.Total)
	}
	rows := b.Rows()
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].CategoryID != "c1" || rows[0].Total != 50 || rows[0].Percentage != 62.5 {
		t.Errorf("unexpected first row: %+v", rows[0])
	}
	if !rows[1].Uncategorized || rows[1].Total != 30 || rows[1].Percentage != 37.5 {
		t.Errorf("unexpected second row: %+v", rows[1])
	}
	if rows[1].CategoryID != domain.UncategorizedID {
		t.Errorf("expected uncategorized id, got %s", rows[1].CategoryID)
	}
}

func TestByCategory_EmptyTransactions(t *testing.T) {
	categories := []domain.Category{
		{ID: "c1", Domain: domain.TypeExpense},
		{ID: "c2", Domain: domain.TypeExpense},
		{ID: "c3", Domain: domain.TypeIncome},
	}

	b := report.ByCategory(categories, nil, domain.TypeExpense)

	if b.Uncategorized != nil {
		t.Error("expected no uncategorized bucket for empty transactions")
	}
	if len(b.Categories) != 2 {
		t.Fatalf("expected 2 expense categories, got %d", len(b.Categories))
	}
	for _, c := range b.Categories {
		if c.Total != 0 || c.Percentage != 0 || c.TransactionCount != 0 {
			t.Errorf("expected zero row, got %+v", c)
		}
	}
	if b.Categories[0].CategoryID != "c1" || b.Categories[1].CategoryID != "c2" {
		t.Error("expected ties to keep input order")
	}
}

func TestByCategory_SortedDescendingWithStableTies(t *testing.T) {
	categories := []domain.Category{
		{ID: "a", Domain: domain.TypeIncome},
		{ID: "b", Domain: domain.TypeIncome},
		{ID: "c", Domain: domain.TypeIncome},
		{ID: "d", Domain: domain.TypeIncome},
	}
	transactions := []domain.Transaction{
		{Amount: 10, Type: domain.TypeIncome, CategoryID: "a"},
		{Amount: 40, Type: domain.TypeIncome, CategoryID: "b"},
		{Amount: 10, Type: domain.TypeIncome, CategoryID: "c"},
		{Amount: 25, Type: domain.TypeIncome, CategoryID: "d"},
	}

	b := report.ByCategory(categories, transactions, domain.TypeIncome)

	want := []string{"b", "d", "a", "c"}
	for i, id := range want {
		if b.Categories[i].CategoryID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, b.Categories[i].CategoryID)
		}
	}
}

func TestByCategory_UncategorizedWinsTies(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Domain: domain.TypeExpense}}
	transactions := []domain.Transaction{
		{Amount: -20, Type: domain.TypeExpense, CategoryID: "c1"},
		{Amount: -20, Type: domain.TypeExpense},
	}

	rows := report.ByCategory(categories, transactions, domain.TypeExpense).Rows()

	if !rows[0].Uncategorized {
		t.Errorf("expected uncategorized bucket first on ties, got %+v", rows[0])
	}
}

func TestByCategory_IgnoresOtherDomain(t *testing.T) {
	categories := []domain.Category{
		{ID: "salary", Domain: domain.TypeIncome},
		{ID: "rent", Domain: domain.TypeExpense},
	}
	transactions := []domain.Transaction{
		{Amount: 1000, Type: domain.TypeIncome, CategoryID: "salary"},
		{Amount: -400, Type: domain.TypeExpense, CategoryID: "rent"},
		{Amount: 15, Type: domain.TypeIncome},
	}

	b := report.ByCategory(categories, transactions, domain.TypeExpense)

	if b.Total != 400 {
		t.Errorf("expected expense total 400, got %v", b.Total)
	}
	if b.Uncategorized != nil {
		t.Error("income without category must not create an expense bucket")
	}
	if len(b.Categories) != 1 || b.Categories[0].CategoryID != "rent" {
		t.Errorf("expected only the rent category, got %+v", b.Categories)
	}
}

func TestByCategory_UnknownCategoryIsUnmatched(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Domain: domain.TypeExpense}}
	transactions := []domain.Transaction{
		{Amount: -12.5, Type: domain.TypeExpense, CategoryID: "deleted"},
	}

	b := report.ByCategory(categories, transactions, domain.TypeExpense)

	if b.Uncategorized != nil {
		t.Errorf("a dangling reference is not a missing category, got %+v", b.Uncategorized)
	}
	if b.Unmatched == nil || b.Unmatched.Total != 12.5 || b.Unmatched.CategoryID != domain.UnmatchedID {
		t.Fatalf("expected dangling reference in unmatched bucket, got %+v", b.Unmatched)
	}
}

func TestByCategory_OtherDomainCategoryIsUnmatched(t *testing.T) {
	categories := []domain.Category{
		{ID: "food", Name: "Mercado", Domain: domain.TypeExpense},
		{ID: "salary", Name: "Salário", Domain: domain.TypeIncome},
	}
	transactions := []domain.Transaction{
		{ID: "refund", Amount: 50, Type: domain.TypeIncome, CategoryID: "food"},
		{ID: "tip", Amount: 10, Type: domain.TypeIncome},
		{ID: "pay", Amount: 140, Type: domain.TypeIncome, CategoryID: "salary"},
	}

	b := report.ByCategory(categories, transactions, domain.TypeIncome)

	if b.Unmatched == nil || b.Unmatched.TransactionCount != 1 || b.Unmatched.Transactions[0].ID != "refund" {
		t.Fatalf("unexpected unmatched bucket: %+v", b.Unmatched)
	}
	if b.Unmatched.Name != report.UnmatchedName || b.Unmatched.Uncategorized {
		t.Errorf("unexpected unmatched labels: %+v", b.Unmatched)
	}
	if b.Uncategorized == nil || b.Uncategorized.Transactions[0].ID != "tip" {
		t.Fatalf("unexpected uncategorized bucket: %+v", b.Uncategorized)
	}
	if b.Unmatched.Percentage != 25 {
		t.Errorf("expected 25%%, got %v", b.Unmatched.Percentage)
	}

	rows := b.Rows()
	if len(rows) != 3 || rows[0].CategoryID != "salary" || !rows[1].Unmatched || !rows[2].Uncategorized {
		t.Errorf("unexpected row order: %+v", rows)
	}
}

func TestByCategory_EmbeddedCategoryReference(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Domain: domain.TypeExpense}}
	transactions := []domain.Transaction{
		{Amount: -5, Type: domain.TypeExpense, Category: &domain.CategoryRef{ID: "c1"}},
	}

	b := report.ByCategory(categories, transactions, domain.TypeExpense)

	if b.Categories[0].Total != 5 {
		t.Errorf("expected embedded category to count, got %v", b.Categories[0].Total)
	}
}

func TestByCategory_DecimalSums(t *testing.T) {
	categories := []domain.Category{{ID: "c1", Domain: domain.TypeExpense}}
	transactions := []domain.Transaction{
		{Amount: -0.1, Type: domain.TypeExpense, CategoryID: "c1"},
		{Amount: -0.2, Type: domain.TypeExpense, CategoryID: "c1"},
	}

	b := report.ByCategory(categories, transactions, domain.TypeExpense)

	if b.Categories[0].Total != 0.3 {
		t.Errorf("expected exact 0.3, got %v", b.Categories[0].Total)
	}
}

func TestByCategory_NaNPropagates(t *testing.T) {
	transactions := []domain.Transaction{
		{Amount: domain.Number(math.NaN()), Type: domain.TypeExpense},
	}

	b := report.ByCategory(nil, transactions, domain.TypeExpense)

	if !math.IsNaN(b.Total) {
		t.Errorf("expected NaN total, got %v", b.Total)
	}
}

// Category totals plus the uncategorized bucket add up to the domain total.
func TestByCategory_TotalsAddUp(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	types := []domain.TransactionType{domain.TypeIncome, domain.TypeExpense}

	for round := 0; round < 50; round++ {
		var categories []domain.Category
		nCategories := rng.Intn(6)
		for i := 0; i < nCategories; i++ {
			categories = append(categories, domain.Category{
				ID:     string(rune('a' + i)),
				Domain: types[rng.Intn(2)],
			})
		}
		var transactions []domain.Transaction
		nTransactions := rng.Intn(30)
		for i := 0; i < nTransactions; i++ {
			tx := domain.Transaction{
				Amount: domain.Number(rng.Intn(100000)-50000) / 100,
				Type:   types[rng.Intn(2)],
			}
			if rng.Intn(3) > 0 {
				tx.CategoryID = string(rune('a' + rng.Intn(8)))
			}
			transactions = append(transactions, tx)
		}

		for _, d := range types {
			b := report.ByCategory(categories, transactions, d)

			var expected, got float64
			for _, tx := range transactions {
				if tx.Type == d {
					expected += math.Abs(float64(tx.Amount))
				}
			}
			for _, row := range b.Rows() {
				got += row.Total
			}
			if math.Abs(expected-got) > 1e-6 || math.Abs(expected-b.Total) > 1e-6 {
				t.Fatalf("round %d %s: expected %v, rows sum %v, total %v", round, d, expected, got, b.Total)
			}

			rows := b.Rows()
			for i := 1; i < len(rows); i++ {
				if rows[i].Total > rows[i-1].Total {
					t.Fatalf("round %d %s: rows not sorted at %d", round, d, i)
				}
			}
		}
	}
}

func TestPercentage(t *testing.T) {
	if got := report.Percentage(0, 0); got != 0 {
		t.Errorf("expected 0 for empty total, got %v", got)
	}
	if got := report.Percentage(5, 0); got != 0 {
		t.Errorf("expected 0 for zero total, got %v", got)
	}
	if got := report.Percentage(25, 200); got != 12.5 {
		t.Errorf("expected 12.5, got %v", got)
	}
}

func TestTypeMismatches(t *testing.T) {
	categories := []domain.Category{
		{ID: "food", Domain: domain.TypeExpense},
		{ID: "salary", Domain: domain.TypeIncome},
	}
	transactions := []domain.Transaction{
		{ID: "ok", Type: domain.TypeExpense, CategoryID: "food"},
		{ID: "bad", Type: domain.TypeIncome, CategoryID: "food"},
		{ID: "none", Type: domain.TypeIncome},
		{ID: "unknown", Type: domain.TypeIncome, CategoryID: "gone", CreatedAt: time.Now()},
	}

	got := report.TypeMismatches(categories, transactions)

	if len(got) != 1 {
		t.Fatalf("expected 1 mismatch, got %d", len(got))
	}
	if got[0].TransactionID != "bad" || got[0].CategoryDomain != domain.TypeExpense {
		t.Errorf("unexpected mismatch: %+v", got[0])
	}
}
