package report

import (
	"time"

	"github.com/boddenberg/finance-dashboard-bfa-go/internal/domain"
)

// ByDay lays out a Sunday-first calendar for the given month and drops every
// transaction created in that month into its day, using the calendar date in
// loc (UTC when nil). Out-of-range months are normalised (month 13 is January
// of the next year).
func ByDay(transactions []domain.Transaction, year int, month time.Month, loc *time.Location) domain.MonthCalendar {
	if loc == nil {
		loc = time.UTC
	}
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	year, month = first.Year(), first.Month()
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()

	cal := domain.MonthCalendar{
		Year:          year,
		Month:         month,
		LeadingBlanks: int(first.Weekday()),
		Days:          make([]domain.DayBucket, daysInMonth),
	}
	income := make([]absSum, daysInMonth)
	expense := make([]absSum, daysInMonth)
	for i := range cal.Days {
		cal.Days[i] = domain.DayBucket{
			Date:         first.AddDate(0, 0, i),
			Transactions: []domain.Transaction{},
		}
	}

	var monthIncome, monthExpense absSum
	for _, t := range transactions {
		created := t.CreatedAt.In(loc)
		if created.Year() != year || created.Month() != month {
			continue
		}
		i := created.Day() - 1
		cal.Days[i].Transactions = append(cal.Days[i].Transactions, t)
		switch t.Type {
		case domain.TypeIncome:
			income[i].add(float64(t.Amount))
			monthIncome.add(float64(t.Amount))
		case domain.TypeExpense:
			expense[i].add(float64(t.Amount))
			monthExpense.add(float64(t.Amount))
		}
	}

	for i := range cal.Days {
		cal.Days[i].IncomeTotal = income[i].Float()
		cal.Days[i].ExpenseTotal = expense[i].Float()
	}
	cal.IncomeTotal = monthIncome.Float()
	cal.ExpenseTotal = monthExpense.Float()
	return cal
}

// PrevMonth returns the month before year/month.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month <= time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the month after year/month.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month >= time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
