package service

import (
	"context"
	"fmt"
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/money"
	"github.com/boddenberg/finance-dashboard-bfa-go/internal/report"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// accountData is everything the dashboard views of one account are built from.
type accountData struct {
	account      *domain.Account
	transactions []domain.Transaction
	categories   []domain.Category
}

// load fetches the account and, when asked, its transactions and categories
// concurrently.
func (s *FinanceService) load(ctx context.Context, accountID string, withTransactions, withCategories bool) (*accountData, error) {
	var data accountData

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		acc, err := s.GetAccount(gCtx, accountID)
		if err != nil {
			return fmt.Errorf("account fetch: %w", err)
		}
		data.account = acc
		return nil
	})

	if withTransactions {
		g.Go(func() error {
			t, err := s.ListTransactions(gCtx, accountID)
			if err != nil {
				return fmt.Errorf("transactions fetch: %w", err)
			}
			data.transactions = t
			return nil
		})
	}

	if withCategories {
		g.Go(func() error {
			c, err := s.ListCategories(gCtx, accountID)
			if err != nil {
				return fmt.Errorf("categories fetch: %w", err)
			}
			data.categories = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error("failed to load account data",
			zap.String("account_id", accountID),
			zap.Error(err),
		)
		return nil, err
	}
	return &data, nil
}

// warnMismatches logs transactions filed under a category of the other
// domain. They are kept as they are; the breakdown counts them in the
// unmatched bucket of their own domain.
func (s *FinanceService) warnMismatches(accountID string, categories []domain.Category, transactions []domain.Transaction) []domain.TypeMismatch {
	mismatches := report.TypeMismatches(categories, transactions)
	if len(mismatches) == 0 {
		return nil
	}
	s.metrics.AddTypeMismatches(len(mismatches))
	for _, m := range mismatches {
		s.logger.Warn("transaction type differs from category domain",
			zap.String("account_id", accountID),
			zap.String("transaction_id", m.TransactionID),
			zap.String("category_id", m.CategoryID),
			zap.String("type", string(m.Type)),
			zap.String("category_domain", string(m.CategoryDomain)),
		)
	}
	return mismatches
}

// Dashboard builds the account page: stats cards plus both category breakdowns.
func (s *FinanceService) Dashboard(ctx context.Context, accountID string) (*domain.DashboardView, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.Dashboard")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("dashboard", time.Now())

	data, err := s.load(ctx, accountID, true, true)
	if err != nil {
		return nil, err
	}
	cur := data.account.Currency

	overview := report.Overview(data.transactions, s.recent)
	expenses := report.ByCategory(data.categories, data.transactions, domain.TypeExpense)
	incomes := report.ByCategory(data.categories, data.transactions, domain.TypeIncome)

	account := *data.account
	account.Transactions = nil

	return &domain.DashboardView{
		Account: account,
		Overview: domain.OverviewView{
			Balance:          s.moneyView(float64(data.account.Balance), cur),
			Income:           s.moneyView(overview.IncomeTotal, cur),
			Expense:          s.moneyView(overview.ExpenseTotal, cur),
			TransactionCount: overview.TransactionCount,
			Recent:           s.transactionViews(overview.Recent, cur),
		},
		Expenses: s.breakdownView(expenses, cur),
		Incomes:  s.breakdownView(incomes, cur),
		Warnings: s.warnMismatches(accountID, data.categories, data.transactions),
	}, nil
}

// CategoryBreakdown returns the per-category totals of one domain.
func (s *FinanceService) CategoryBreakdown(ctx context.Context, accountID string, d domain.TransactionType) (*domain.BreakdownView, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.CategoryBreakdown")
	defer span.End()
	span.SetAttributes(
		attribute.String("account.id", accountID),
		attribute.String("domain", string(d)),
	)
	defer s.observe("category_breakdown", time.Now())

	if !d.Valid() {
		return nil, &domain.ErrValidation{Field: "domain", Message: "must be INCOME or EXPENSE"}
	}

	data, err := s.load(ctx, accountID, true, true)
	if err != nil {
		return nil, err
	}
	s.warnMismatches(accountID, data.categories, data.transactions)

	view := s.breakdownView(report.ByCategory(data.categories, data.transactions, d), data.account.Currency)
	return &view, nil
}

// Calendar returns the month grid of an account. A zero year or month means
// the current month in the display time zone.
func (s *FinanceService) Calendar(ctx context.Context, accountID string, year int, month time.Month) (*domain.CalendarView, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.Calendar")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("calendar", time.Now())

	if year == 0 || month == 0 {
		now := s.now().In(s.loc)
		year, month = now.Year(), now.Month()
	}
	if month < time.January || month > time.December {
		return nil, &domain.ErrValidation{Field: "month", Message: "must be between 1 and 12"}
	}

	data, err := s.load(ctx, accountID, true, false)
	if err != nil {
		return nil, err
	}

	view := s.calendarView(report.ByDay(data.transactions, year, month, s.loc), data.account.Currency)
	return &view, nil
}

// FilteredTransactions returns the transaction table of an account.
func (s *FinanceService) FilteredTransactions(ctx context.Context, accountID string, f domain.TransactionFilter) (*domain.TransactionListView, error) {
	ctx, span := financeTracer.Start(ctx, "FinanceService.FilteredTransactions")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))
	defer s.observe("list_transactions", time.Now())

	data, err := s.load(ctx, accountID, true, false)
	if err != nil {
		return nil, err
	}

	filtered := report.Filter(data.transactions, f)
	return &domain.TransactionListView{
		Transactions: s.transactionViews(filtered, data.account.Currency),
		Count:        len(filtered),
		Filter:       f,
	}, nil
}

// ============================================================
// View model rendering
// ============================================================

func (s *FinanceService) moneyView(amount float64, cur domain.Currency) domain.MoneyView {
	return domain.MoneyView{Amount: domain.Number(amount), Formatted: s.formatter.Format(amount, string(cur))}
}

func (s *FinanceService) transactionViews(ts []domain.Transaction, cur domain.Currency) []domain.TransactionView {
	out := make([]domain.TransactionView, 0, len(ts))
	for _, t := range ts {
		out = append(out, domain.TransactionView{
			Transaction:     t,
			AmountFormatted: s.formatter.Format(float64(t.Amount), string(cur)),
		})
	}
	return out
}

func (s *FinanceService) breakdownView(b domain.CategoryBreakdown, cur domain.Currency) domain.BreakdownView {
	rows := b.Rows()
	view := domain.BreakdownView{
		Domain: b.Domain,
		Total:  s.moneyView(b.Total, cur),
		Rows:   make([]domain.CategoryRowView, 0, len(rows)),
	}
	for _, r := range rows {
		view.Rows = append(view.Rows, domain.CategoryRowView{
			CategoryID:       r.CategoryID,
			Name:             r.Name,
			Description:      r.Description,
			Domain:           r.Domain,
			Uncategorized:    r.Uncategorized,
			Unmatched:        r.Unmatched,
			Total:            s.moneyView(r.Total, cur),
			Percentage:       domain.Number(r.Percentage),
			PercentageLabel:  money.FormatPercent(r.Percentage) + "%",
			TransactionCount: r.TransactionCount,
		})
	}
	return view
}

func (s *FinanceService) calendarView(cal domain.MonthCalendar, cur domain.Currency) domain.CalendarView {
	prevYear, prevMonth := report.PrevMonth(cal.Year, cal.Month)
	nextYear, nextMonth := report.NextMonth(cal.Year, cal.Month)

	view := domain.CalendarView{
		Year:          cal.Year,
		Month:         int(cal.Month),
		LeadingBlanks: cal.LeadingBlanks,
		Days:          make([]domain.DayView, 0, len(cal.Days)),
		Income:        s.moneyView(cal.IncomeTotal, cur),
		Expense:       s.moneyView(cal.ExpenseTotal, cur),
		Previous:      domain.MonthRef{Year: prevYear, Month: int(prevMonth)},
		Next:          domain.MonthRef{Year: nextYear, Month: int(nextMonth)},
	}
	for _, d := range cal.Days {
		view.Days = append(view.Days, domain.DayView{
			Date:             d.Date.Format("2006-01-02"),
			Day:              d.Date.Day(),
			Income:           s.moneyView(d.IncomeTotal, cur),
			Expense:          s.moneyView(d.ExpenseTotal, cur),
			Positive:         d.Positive(),
			TransactionCount: len(d.Transactions),
			Transactions:     s.transactionViews(d.Transactions, cur),
		})
	}
	return view
}
