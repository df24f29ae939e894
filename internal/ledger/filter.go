package ledger

import (
	"strings"
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
)

// FilterByLedger keeps records belonging to ledger.
func FilterByLedger(txs []model.Transaction, ledger string) []model.Transaction {
	return filter(txs, func(tx model.Transaction) bool {
		return tx.Ledger == ledger
	})
}

// FilterByMonth keeps records dated inside month.
func FilterByMonth(txs []model.Transaction, month model.MonthRange) []model.Transaction {
	return filter(txs, func(tx model.Transaction) bool {
		return month.Contains(tx.Date)
	})
}

// FilterByDay keeps records on the same calendar day as day, judged in
// day's location.
func FilterByDay(txs []model.Transaction, day time.Time) []model.Transaction {
	return filter(txs, func(tx model.Transaction) bool {
		return model.SameDay(tx.Date, day)
	})
}

// FilterByQuery keeps records whose category name, note, or amount contains
// query. Matching is case-sensitive. An empty query keeps everything.
func FilterByQuery(txs []model.Transaction, query string) []model.Transaction {
	if query == "" {
		return filter(txs, func(model.Transaction) bool { return true })
	}
	return filter(txs, func(tx model.Transaction) bool {
		return MatchesQuery(tx, query)
	})
}

// MatchesQuery is the predicate behind FilterByQuery.
func MatchesQuery(tx model.Transaction, query string) bool {
	var categoryName string
	if c, ok := model.CategoryByID(tx.CategoryID); ok {
		categoryName = c.Name
	}
	return strings.Contains(categoryName, query) ||
		strings.Contains(tx.Note, query) ||
		strings.Contains(tx.Amount.String(), query)
}

func filter(txs []model.Transaction, keep func(model.Transaction) bool) []model.Transaction {
	out := make([]model.Transaction, 0, len(txs))
	for _, tx := range txs {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return out
}
