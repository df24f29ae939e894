// Package stats derives the month aggregates shown on the dashboard.
package stats

import (
	"sort"
	"time"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/service"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Totals are a month's income and expense. Transfers count toward neither.
type Totals struct {
	Income  decimal.Decimal
	Expense decimal.Decimal
	Balance decimal.Decimal
}

// Point is one day of a daily series.
type Point struct {
	Day    time.Time
	Amount decimal.Decimal
	Label  string
}

// DayTotals is a single day's expense and income.
type DayTotals struct {
	Expense decimal.Decimal
	Income  decimal.Decimal
}

// Monthly sums the records dated inside month.
func Monthly(txs []model.Transaction, month model.MonthRange) Totals {
	totals := Totals{Income: decimal.Zero, Expense: decimal.Zero}
	for _, tx := range ledger.FilterByMonth(txs, month) {
		switch tx.Type {
		case model.TypeIncome:
			totals.Income = totals.Income.Add(tx.Amount)
		case model.TypeExpense:
			totals.Expense = totals.Expense.Add(tx.Amount)
		}
	}
	totals.Balance = totals.Income.Sub(totals.Expense)
	return totals
}

// DailySeries returns one point per day of month with the total of records
// of type typ on that day.
func DailySeries(txs []model.Transaction, month model.MonthRange, typ model.TransactionType) []Point {
	inMonth := ledger.FilterByMonth(txs, month)
	days := month.Days()
	points := make([]Point, 0, len(days))
	for _, day := range days {
		sum := decimal.Zero
		for _, tx := range inMonth {
			if tx.Type == typ && model.SameDay(tx.Date, day) {
				sum = sum.Add(tx.Amount)
			}
		}
		points = append(points, Point{Day: day, Label: day.Format("2"), Amount: sum})
	}
	return points
}

// Categories totals the month's records of type typ per category, largest
// first. Percentages are of the month's total for typ.
func Categories(txs []model.Transaction, month model.MonthRange, typ model.TransactionType) []service.CategorySummary {
	var order []string
	byID := make(map[string]*service.CategorySummary)
	total := decimal.Zero

	for _, tx := range ledger.FilterByMonth(txs, month) {
		if tx.Type != typ {
			continue
		}
		summary, ok := byID[tx.CategoryID]
		if !ok {
			summary = &service.CategorySummary{ID: tx.CategoryID, Amount: decimal.Zero, Icon: "MoreHorizontal"}
			if c, found := model.CategoryByID(tx.CategoryID); found {
				summary.Name = c.Name
				summary.Icon = c.Icon
			} else {
				summary.Name = model.UnknownCategoryName
			}
			byID[tx.CategoryID] = summary
			order = append(order, tx.CategoryID)
		}
		summary.Amount = summary.Amount.Add(tx.Amount)
		summary.Count++
		total = total.Add(tx.Amount)
	}

	out := make([]service.CategorySummary, 0, len(order))
	for _, id := range order {
		summary := *byID[id]
		if total.IsPositive() {
			summary.Percentage = summary.Amount.Div(total).Mul(hundred).InexactFloat64()
		}
		out = append(out, summary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}

// DailySummary maps each day of month that has activity (YYYY-MM-DD, in the
// month's location) to its expense and income.
func DailySummary(txs []model.Transaction, month model.MonthRange) map[string]DayTotals {
	loc := month.Start.Location()
	out := make(map[string]DayTotals)
	for _, tx := range ledger.FilterByMonth(txs, month) {
		key := model.DayKey(tx.Date, loc)
		day, ok := out[key]
		if !ok {
			day = DayTotals{Expense: decimal.Zero, Income: decimal.Zero}
		}
		switch tx.Type {
		case model.TypeExpense:
			day.Expense = day.Expense.Add(tx.Amount)
		case model.TypeIncome:
			day.Income = day.Income.Add(tx.Amount)
		}
		out[key] = day
	}
	return out
}

// BuildReport assembles the export report for one ledger and month.
func BuildReport(txs []model.Transaction, ledgerName string, month model.MonthRange) *service.Report {
	scoped := ledger.FilterByMonth(ledger.FilterByLedger(txs, ledgerName), month)
	totals := Monthly(scoped, month)

	sort.SliceStable(scoped, func(i, j int) bool {
		return scoped[i].Date.After(scoped[j].Date)
	})

	return &service.Report{
		Ledger:            ledgerName,
		Month:             month,
		Income:            totals.Income,
		Expense:           totals.Expense,
		Balance:           totals.Balance,
		ExpenseByCategory: Categories(scoped, month, model.TypeExpense),
		IncomeByCategory:  Categories(scoped, month, model.TypeIncome),
		Transactions:      scoped,
	}
}
