package report_test

import (
	"testing"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/report"
)

func TestByDay_EmptyFebruary(t *testing.T) {
	cases := []struct {
		year   int
		days   int
		blanks int
	}{
		{2023, 28, 3}, // Feb 1st 2023 was a Wednesday
		{2024, 29, 4}, // Feb 1st 2024 was a Thursday
	}

	for _, tc := range cases {
		cal := report.ByDay(nil, tc.year, time.February, time.UTC)

		if len(cal.Days) != tc.days {
			t.Errorf("%d: expected %d days, got %d", tc.year, tc.days, len(cal.Days))
		}
		if cal.LeadingBlanks != tc.blanks {
			t.Errorf("%d: expected %d blanks, got %d", tc.year, tc.blanks, cal.LeadingBlanks)
		}
		for _, d := range cal.Days {
			if d.IncomeTotal != 0 || d.ExpenseTotal != 0 || d.HasTransactions() {
				t.Fatalf("%d: expected empty day, got %+v", tc.year, d)
			}
		}
		if len(cal.Cells()) != tc.days+tc.blanks {
			t.Errorf("%d: expected %d cells, got %d", tc.year, tc.days+tc.blanks, len(cal.Cells()))
		}
		if cal.Cells()[0] != nil && tc.blanks > 0 {
			t.Errorf("%d: expected first cell to be blank", tc.year)
		}
	}
}

func TestByDay_BucketsByCreationDate(t *testing.T) {
	transactions := []domain.Transaction{
		{ID: "salary", Amount: 3000, Type: domain.TypeIncome, CreatedAt: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
		{ID: "lunch", Amount: -45.9, Type: domain.TypeExpense, CreatedAt: time.Date(2024, 3, 5, 12, 30, 0, 0, time.UTC)},
		{ID: "rent", Amount: -1200, Type: domain.TypeExpense, CreatedAt: time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC)},
		{ID: "april", Amount: -10, Type: domain.TypeExpense, CreatedAt: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "last-year", Amount: -10, Type: domain.TypeExpense, CreatedAt: time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC)},
	}

	cal := report.ByDay(transactions, 2024, time.March, time.UTC)

	fifth := cal.Days[4]
	if len(fifth.Transactions) != 2 {
		t.Fatalf("expected 2 transactions on the 5th, got %d", len(fifth.Transactions))
	}
	if fifth.IncomeTotal != 3000 || fifth.ExpenseTotal != 45.9 {
		t.Errorf("unexpected totals on the 5th: %+v", fifth)
	}
	if !fifth.Positive() {
		t.Error("expected the 5th to be positive")
	}

	last := cal.Days[30]
	if last.ExpenseTotal != 1200 || last.Positive() {
		t.Errorf("unexpected 31st: %+v", last)
	}

	if cal.IncomeTotal != 3000 || cal.ExpenseTotal != 1245.9 {
		t.Errorf("unexpected month totals: income=%v expense=%v", cal.IncomeTotal, cal.ExpenseTotal)
	}
}

func TestByDay_UsesLocation(t *testing.T) {
	saoPaulo := time.FixedZone("BRT", -3*60*60)
	// 01:00 UTC on the 1st is still the last day of the previous month in BRT.
	transactions := []domain.Transaction{
		{Amount: -10, Type: domain.TypeExpense, CreatedAt: time.Date(2024, 6, 1, 1, 0, 0, 0, time.UTC)},
	}

	may := report.ByDay(transactions, 2024, time.May, saoPaulo)
	if may.Days[30].ExpenseTotal != 10 {
		t.Errorf("expected transaction on May 31st BRT, got %+v", may.Days[30])
	}

	june := report.ByDay(transactions, 2024, time.June, saoPaulo)
	if june.ExpenseTotal != 0 {
		t.Errorf("expected nothing in June BRT, got %v", june.ExpenseTotal)
	}
}

func TestByDay_NormalisesMonth(t *testing.T) {
	cal := report.ByDay(nil, 2024, 13, nil)

	if cal.Year != 2025 || cal.Month != time.January {
		t.Errorf("expected January 2025, got %d/%d", cal.Month, cal.Year)
	}
	if len(cal.Days) != 31 {
		t.Errorf("expected 31 days, got %d", len(cal.Days))
	}
}

func TestPrevNextMonth(t *testing.T) {
	if y, m := report.PrevMonth(2024, time.January); y != 2023 || m != time.December {
		t.Errorf("expected December 2023, got %d/%d", m, y)
	}
	if y, m := report.PrevMonth(2024, time.July); y != 2024 || m != time.June {
		t.Errorf("expected June 2024, got %d/%d", m, y)
	}
	if y, m := report.NextMonth(2024, time.December); y != 2025 || m != time.January {
		t.Errorf("expected January 2025, got %d/%d", m, y)
	}
	if y, m := report.NextMonth(2024, time.July); y != 2024 || m != time.August {
		t.Errorf("expected August 2024, got %d/%d", m, y)
	}
}
