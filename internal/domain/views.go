package domain

// ============================================================
// View models: what the dashboard renders
// ============================================================

// MoneyView pairs a raw amount with its display string.
type MoneyView struct {
	Amount    Number `json:"amount"`
	Formatted string  `json:"formatted"`
}

// TransactionView is a transaction with its formatted amount.
type TransactionView struct {
	Transaction
	AmountFormatted string `json:"amountFormatted"`
}

// TransactionListView is returned by GET /v1/accounts/{accountId}/transactions.
type TransactionListView struct {
	Transactions []TransactionView `json:"transactions"`
	Count        int               `json:"count"`
	Filter       TransactionFilter `json:"filter"`
}

// CategoryRowView is one row of the category breakdown.
type CategoryRowView struct {
	CategoryID       string          `json:"categoryId"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Domain           TransactionType `json:"domain"`
	Uncategorized    bool            `json:"uncategorized"`
	Unmatched        bool            `json:"unmatched"`
	Total            MoneyView       `json:"total"`
	Percentage       Number          `json:"percentage"`
	PercentageLabel  string          `json:"percentageLabel"`
	TransactionCount int             `json:"transactionCount"`
}

// BreakdownView is returned by GET /v1/accounts/{accountId}/categories/breakdown.
type BreakdownView struct {
	Domain TransactionType   `json:"domain"`
	Total  MoneyView         `json:"total"`
	Rows   []CategoryRowView `json:"rows"`
}

// MonthRef points at a calendar month.
type MonthRef struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// DayView is one day cell of the calendar.
type DayView struct {
	Date             string            `json:"date"`
	Day              int               `json:"day"`
	Income           MoneyView         `json:"income"`
	Expense          MoneyView         `json:"expense"`
	Positive         bool              `json:"positive"`
	TransactionCount int               `json:"transactionCount"`
	Transactions     []TransactionView `json:"transactions"`
}

// CalendarView is returned by GET /v1/accounts/{accountId}/calendar.
type CalendarView struct {
	Year          int       `json:"year"`
	Month         int       `json:"month"`
	LeadingBlanks int       `json:"leadingBlanks"`
	Days          []DayView `json:"days"`
	Income        MoneyView `json:"income"`
	Expense       MoneyView `json:"expense"`
	Previous      MonthRef  `json:"previous"`
	Next          MonthRef  `json:"next"`
}

// OverviewView backs the stats cards.
type OverviewView struct {
	Balance          MoneyView         `json:"balance"`
	Income           MoneyView         `json:"income"`
	Expense          MoneyView         `json:"expense"`
	TransactionCount int               `json:"transactionCount"`
	Recent           []TransactionView `json:"recent"`
}

// DashboardView is returned by GET /v1/accounts/{accountId}/dashboard.
type DashboardView struct {
	Account  Account        `json:"account"`
	Overview OverviewView   `json:"overview"`
	Expenses BreakdownView  `json:"expenses"`
	Incomes  BreakdownView  `json:"incomes"`
	Warnings []TypeMismatch `json:"warnings,omitempty"`
}
