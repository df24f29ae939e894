package testutil

import (
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/shopspring/decimal"
)

// TxBuilder builds transactions for tests.
//
// Example:
//
//	tx := testutil.NewTx("a").Expense("50").Category("meals").Ledger("L1").On(2024, 1, 5).Build()
type TxBuilder struct {
	tx model.Transaction
}

// NewTx starts an expense of 1 in the default ledger, dated 2024-01-01 UTC.
func NewTx(id string) *TxBuilder {
	return &TxBuilder{tx: model.Transaction{
		ID:         id,
		Type:       model.TypeExpense,
		Amount:     decimal.NewFromInt(1),
		CategoryID: "meals",
		Account:    model.Accounts[0],
		Ledger:     model.DefaultLedger(),
		Date:       time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}}
}

// Expense sets type expense and the amount.
func (b *TxBuilder) Expense(amount string) *TxBuilder {
	b.tx.Type = model.TypeExpense
	b.tx.Amount = decimal.RequireFromString(amount)
	return b
}

// Income sets type income and the amount.
func (b *TxBuilder) Income(amount string) *TxBuilder {
	b.tx.Type = model.TypeIncome
	b.tx.Amount = decimal.RequireFromString(amount)
	if b.tx.CategoryID == "meals" {
		b.tx.CategoryID = "salary"
	}
	return b
}

// Transfer sets type transfer, the amount, and the destination account.
func (b *TxBuilder) Transfer(amount, toAccount string) *TxBuilder {
	b.tx.Type = model.TypeTransfer
	b.tx.Amount = decimal.RequireFromString(amount)
	b.tx.ToAccount = toAccount
	return b
}

// Category sets the category ID.
func (b *TxBuilder) Category(id string) *TxBuilder {
	b.tx.CategoryID = id
	return b
}

// Note sets the note.
func (b *TxBuilder) Note(note string) *TxBuilder {
	b.tx.Note = note
	return b
}

// Ledger sets the ledger.
func (b *TxBuilder) Ledger(ledger string) *TxBuilder {
	b.tx.Ledger = ledger
	return b
}

// On dates the transaction at noon UTC on the given day.
func (b *TxBuilder) On(year int, month time.Month, day int) *TxBuilder {
	b.tx.Date = time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
	return b
}

// At sets the exact date.
func (b *TxBuilder) At(t time.Time) *TxBuilder {
	b.tx.Date = t
	return b
}

// Flagged marks the transaction.
func (b *TxBuilder) Flagged() *TxBuilder {
	b.tx.IsFlagged = true
	return b
}

// Build returns the transaction.
func (b *TxBuilder) Build() model.Transaction {
	return b.tx
}
