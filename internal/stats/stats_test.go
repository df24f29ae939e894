package stats

import (
	"testing"
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(id string, typ model.TransactionType, amount, category string, date time.Time) model.Transaction {
	return model.Transaction{
		ID:         id,
		Type:       typ,
		Amount:     decimal.RequireFromString(amount),
		CategoryID: category,
		Ledger:     "L1",
		Date:       date,
	}
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func fixture() []model.Transaction {
	return []model.Transaction{
		txn("1", model.TypeExpense, "50", "meals", day(5)),
		txn("2", model.TypeExpense, "30", "transport", day(5)),
		txn("3", model.TypeIncome, "1000", "salary", day(10)),
		txn("4", model.TypeExpense, "20", "meals", day(20)),
		txn("5", model.TypeTransfer, "500", "other", day(20)),
		txn("6", model.TypeExpense, "999", "meals", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)),
		txn("7", model.TypeExpense, "10", "mystery", day(31)),
	}
}

var january = model.MonthOf(day(1))

func TestMonthly(t *testing.T) {
	totals := Monthly(fixture(), january)

	assert.Equal(t, "1000", totals.Income.String())
	assert.Equal(t, "110", totals.Expense.String())
	assert.Equal(t, "890", totals.Balance.String())
}

func TestMonthlyEmpty(t *testing.T) {
	totals := Monthly(nil, january)
	assert.True(t, totals.Income.IsZero())
	assert.True(t, totals.Expense.IsZero())
	assert.True(t, totals.Balance.IsZero())
}

func TestDailySeries(t *testing.T) {
	series := DailySeries(fixture(), january, model.TypeExpense)

	require.Len(t, series, 31)
	assert.Equal(t, "1", series[0].Label)
	assert.Equal(t, "80", series[4].Amount.String())
	assert.Equal(t, "20", series[19].Amount.String())
	assert.True(t, series[9].Amount.IsZero(), "income day has no expense")
	assert.Equal(t, "10", series[30].Amount.String())
}

func TestCategories(t *testing.T) {
	cats := Categories(fixture(), january, model.TypeExpense)

	require.Len(t, cats, 3)
	assert.Equal(t, "meals", cats[0].ID)
	assert.Equal(t, "三餐", cats[0].Name)
	assert.Equal(t, "70", cats[0].Amount.String())
	assert.Equal(t, 2, cats[0].Count)
	assert.InDelta(t, 63.636, cats[0].Percentage, 0.01)

	assert.Equal(t, "transport", cats[1].ID)
	assert.Equal(t, "mystery", cats[2].ID)
	assert.Equal(t, model.UnknownCategoryName, cats[2].Name)
	assert.Equal(t, "MoreHorizontal", cats[2].Icon)

	var sum float64
	for _, c := range cats {
		sum += c.Percentage
	}
	assert.InDelta(t, 100, sum, 0.001)
}

func TestCategoriesNoneOfType(t *testing.T) {
	transfers := Categories(fixture(), january, model.TypeTransfer)
	require.Len(t, transfers, 1)
	assert.InDelta(t, 100, transfers[0].Percentage, 1e-9)

	assert.Empty(t, Categories(nil, january, model.TypeIncome))
}

func TestDailySummary(t *testing.T) {
	summary := DailySummary(fixture(), january)

	require.Contains(t, summary, "2024-01-05")
	assert.Equal(t, "80", summary["2024-01-05"].Expense.String())
	assert.True(t, summary["2024-01-05"].Income.IsZero())
	assert.Equal(t, "1000", summary["2024-01-10"].Income.String())
	assert.NotContains(t, summary, "2024-02-01")
	assert.Contains(t, summary, "2024-01-20", "transfer-only days still appear")
}

func TestBuildReport(t *testing.T) {
	txs := fixture()
	other := txn("8", model.TypeExpense, "5", "meals", day(6))
	other.Ledger = "L2"
	txs = append(txs, other)

	report := BuildReport(txs, "L1", january)

	assert.Equal(t, "L1", report.Ledger)
	assert.Equal(t, "110", report.Expense.String())
	assert.Len(t, report.Transactions, 6)
	assert.Equal(t, "7", report.Transactions[0].ID, "newest first")
	require.Len(t, report.IncomeByCategory, 1)
	assert.Equal(t, "salary", report.IncomeByCategory[0].ID)
}
