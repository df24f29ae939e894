package ledger

import (
	"testing"
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterByLedger_Scenario(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx("a").Expense("50").Category("meals").Ledger("L1").On(2024, 1, 5).Build(),
	}

	got := FilterByLedger(txs, "L1")
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(txs[0]))

	assert.Empty(t, FilterByLedger(txs, "L2"))
}

func TestFilterByMonth(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx("dec").At(time.Date(2023, 12, 31, 23, 59, 59, 0, time.UTC)).Build(),
		testutil.NewTx("jan-first").At(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).Build(),
		testutil.NewTx("jan-last").At(time.Date(2024, 1, 31, 23, 59, 59, 999, time.UTC)).Build(),
		testutil.NewTx("feb").At(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)).Build(),
	}

	got := FilterByMonth(txs, model.MonthOf(time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []string{"jan-first", "jan-last"}, ids(got))
}

func TestFilterByDay(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx("morning").At(time.Date(2024, 1, 5, 1, 0, 0, 0, time.UTC)).Build(),
		testutil.NewTx("night").At(time.Date(2024, 1, 5, 23, 0, 0, 0, time.UTC)).Build(),
		testutil.NewTx("next").At(time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)).Build(),
	}

	got := FilterByDay(txs, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []string{"morning", "night"}, ids(got))
}

func TestFilterByQuery(t *testing.T) {
	txs := []model.Transaction{
		testutil.NewTx("cat").Expense("12").Category("coffee").Build(),
		testutil.NewTx("note").Expense("8").Category("meals").Note("Birthday dinner").Build(),
		testutil.NewTx("amount").Expense("123.45").Category("transport").Build(),
		testutil.NewTx("unknown").Expense("7").Category("ghost").Build(),
	}

	tests := []struct {
		query string
		want  []string
	}{
		{query: "", want: []string{"cat", "note", "amount", "unknown"}},
		{query: "咖啡", want: []string{"cat"}},
		{query: "Birthday", want: []string{"note"}},
		{query: "birthday", want: []string{}},
		{query: "23.4", want: []string{"amount"}},
		{query: "12", want: []string{"cat", "amount"}},
		{query: "未知", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterByQuery(txs, tt.query)))
		})
	}
}

func TestFilterComposition(t *testing.T) {
	var txs []model.Transaction
	ledgers := []string{"L1", "L2"}
	for i := 0; i < 120; i++ {
		date := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC).Add(time.Duration(i*13) * time.Hour)
		txs = append(txs, testutil.NewTx(string(rune(0x4e00+i))).
			Ledger(ledgers[i%2]).
			At(date).
			Build())
	}

	day := time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)
	month := model.MonthOf(day)

	chained := FilterByDay(FilterByMonth(FilterByLedger(txs, "L1"), month), day)

	var direct []model.Transaction
	for _, tx := range txs {
		if tx.Ledger == "L1" && month.Contains(tx.Date) && model.SameDay(tx.Date, day) {
			direct = append(direct, tx)
		}
	}

	require.NotEmpty(t, direct)
	assert.Equal(t, ids(direct), ids(chained))

	reordered := FilterByLedger(FilterByDay(FilterByMonth(txs, month), day), "L1")
	assert.Equal(t, ids(direct), ids(reordered))
}
