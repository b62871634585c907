package domain

import (
	"sort"
	"time"
)

// ============================================================
// Category breakdown
// ============================================================

// Ids of the synthetic buckets of a breakdown: transactions without a
// category, and transactions whose category is of the other domain or no
// longer exists.
const (
	UncategorizedID = "uncategorized"
	UnmatchedID     = "unmatched"
)

// CategoryTotal is one row of a category breakdown.
type CategoryTotal struct {
	CategoryID       string          `json:"categoryId"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Domain           TransactionType `json:"domain"`
	Uncategorized    bool            `json:"uncategorized"`
	Unmatched        bool            `json:"unmatched"`
	Total            float64         `json:"total"`
	Percentage       float64         `json:"percentage"`
	TransactionCount int             `json:"transactionCount"`
	Transactions     []Transaction   `json:"transactions,omitempty"`
}

// CategoryBreakdown aggregates the transactions of one domain per category.
// Categories are sorted by total, descending. Uncategorized is nil when every
// transaction of the domain has a category; Unmatched is nil when every
// category reference resolves to a category of the domain.
type CategoryBreakdown struct {
	Domain        TransactionType `json:"domain"`
	Total         float64         `json:"total"`
	Categories    []CategoryTotal `json:"categories"`
	Uncategorized *CategoryTotal  `json:"uncategorized,omitempty"`
	Unmatched     *CategoryTotal  `json:"unmatched,omitempty"`
}

// Rows returns the display sequence: the synthetic buckets first, then the
// categories, stably ordered by total descending.
func (b CategoryBreakdown) Rows() []CategoryTotal {
	rows := make([]CategoryTotal, 0, len(b.Categories)+2)
	if b.Uncategorized != nil {
		rows = append(rows, *b.Uncategorized)
	}
	if b.Unmatched != nil {
		rows = append(rows, *b.Unmatched)
	}
	rows = append(rows, b.Categories...)
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Total > rows[j].Total
	})
	return rows
}

// ============================================================
// Calendar
// ============================================================

// DayBucket holds the transactions created on one calendar day.
type DayBucket struct {
	Date         time.Time     `json:"date"`
	Transactions []Transaction `json:"transactions"`
	IncomeTotal  float64       `json:"incomeTotal"`
	ExpenseTotal float64       `json:"expenseTotal"`
}

// HasTransactions reports whether anything happened on the day.
func (d DayBucket) HasTransactions() bool { return len(d.Transactions) > 0 }

// Positive reports whether income covered the expenses of the day.
func (d DayBucket) Positive() bool { return d.IncomeTotal >= d.ExpenseTotal }

// MonthCalendar is a Sunday-first month grid.
type MonthCalendar struct {
	Year          int         `json:"year"`
	Month         time.Month  `json:"month"`
	LeadingBlanks int         `json:"leadingBlanks"`
	Days          []DayBucket `json:"days"`
	IncomeTotal   float64     `json:"incomeTotal"`
	ExpenseTotal  float64     `json:"expenseTotal"`
}

// Cells returns the grid as rendered: nil for each leading blank, then one
// cell per day of the month.
func (c MonthCalendar) Cells() []*DayBucket {
	cells := make([]*DayBucket, c.LeadingBlanks, c.LeadingBlanks+len(c.Days))
	for i := range c.Days {
		cells = append(cells, &c.Days[i])
	}
	return cells
}

// ============================================================
// Overview
// ============================================================

// AccountOverview backs the stats cards of the dashboard.
type AccountOverview struct {
	IncomeTotal      float64       `json:"incomeTotal"`
	ExpenseTotal     float64       `json:"expenseTotal"`
	TransactionCount int           `json:"transactionCount"`
	Recent           []Transaction `json:"recent"`
}

// TypeMismatch is a transaction whose type disagrees with its category's domain.
type TypeMismatch struct {
	TransactionID  string          `json:"transactionId"`
	CategoryID     string          `json:"categoryId"`
	Type           TransactionType `json:"type"`
	CategoryDomain TransactionType `json:"categoryDomain"`
}
