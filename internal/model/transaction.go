package model

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType tells whether money left, entered, or moved between accounts.
type TransactionType string

const (
	// TypeExpense is money spent.
	TypeExpense TransactionType = "expense"
	// TypeIncome is money received.
	TypeIncome TransactionType = "income"
	// TypeTransfer moves money from Account to ToAccount.
	TypeTransfer TransactionType = "transfer"
)

// Valid reports whether t is one of the known transaction types.
func (t TransactionType) Valid() bool {
	switch t {
	case TypeExpense, TypeIncome, TypeTransfer:
		return true
	}
	return false
}

// dateLayout matches the ISO form written by the original clients
// (millisecond precision, UTC, trailing Z).
const dateLayout = "2006-01-02T15:04:05.000Z07:00"

// Transaction is a single bookkeeping entry.
type Transaction struct {
	Date       time.Time
	Amount     decimal.Decimal
	ID         string
	Type       TransactionType
	CategoryID string
	Note       string
	Account    string
	ToAccount  string // only meaningful for transfers
	Ledger     string
	HasImage   bool
	IsFlagged  bool
}

// NewTransaction returns a transaction with a fresh ID and the defaults the
// entry form starts from.
func NewTransaction(typ TransactionType, ledger string, now time.Time) Transaction {
	tx := Transaction{
		ID:      uuid.NewString(),
		Type:    typ,
		Account: Accounts[0],
		Ledger:  ledger,
		Date:    now,
	}
	if cats := CategoriesFor(typ); len(cats) > 0 {
		tx.CategoryID = cats[0].ID
	}
	if typ == TypeTransfer {
		tx.ToAccount = Accounts[1]
	}
	return tx
}

type wireTransaction struct {
	ID         string          `json:"id"`
	Type       TransactionType `json:"type"`
	Amount     json.Number     `json:"amount"`
	CategoryID string          `json:"categoryId"`
	Note       string          `json:"note"`
	Account    string          `json:"account"`
	ToAccount  string          `json:"toAccount,omitempty"`
	Ledger     string          `json:"ledger"`
	Date       string          `json:"date"`
	HasImage   bool            `json:"hasImage"`
	IsFlagged  bool            `json:"isFlagged"`
}

// MarshalJSON writes the record with the field names used by the mirrored
// file, the amount as a plain JSON number.
func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTransaction{
		ID:         t.ID,
		Type:       t.Type,
		Amount:     json.Number(t.Amount.String()),
		CategoryID: t.CategoryID,
		Note:       t.Note,
		Account:    t.Account,
		ToAccount:  t.ToAccount,
		Ledger:     t.Ledger,
		Date:       t.Date.UTC().Format(dateLayout),
		HasImage:   t.HasImage,
		IsFlagged:  t.IsFlagged,
	})
}

// UnmarshalJSON reads a record. Missing fields are left at their zero value;
// only values that cannot be represented at all are rejected.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var w wireTransaction
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	amount := decimal.Zero
	if w.Amount != "" {
		parsed, err := decimal.NewFromString(string(w.Amount))
		if err != nil {
			return fmt.Errorf("transaction %q: invalid amount %q: %w", w.ID, w.Amount, err)
		}
		amount = parsed
	}

	var date time.Time
	if w.Date != "" {
		parsed, err := ParseDate(w.Date)
		if err != nil {
			return fmt.Errorf("transaction %q: %w", w.ID, err)
		}
		date = parsed
	}

	*t = Transaction{
		ID:         w.ID,
		Type:       w.Type,
		Amount:     amount,
		CategoryID: w.CategoryID,
		Note:       w.Note,
		Account:    w.Account,
		ToAccount:  w.ToAccount,
		Ledger:     w.Ledger,
		Date:       date,
		HasImage:   w.HasImage,
		IsFlagged:  w.IsFlagged,
	}
	return nil
}

// ParseDate accepts an RFC 3339 timestamp or a bare YYYY-MM-DD date
// (interpreted as midnight UTC).
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseAmount parses a decimal amount such as "12.50".
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Equal reports field-for-field equality. Amounts compare by value, dates by
// instant.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID &&
		t.Type == o.Type &&
		t.Amount.Equal(o.Amount) &&
		t.CategoryID == o.CategoryID &&
		t.Note == o.Note &&
		t.Account == o.Account &&
		t.ToAccount == o.ToAccount &&
		t.Ledger == o.Ledger &&
		t.Date.Equal(o.Date) &&
		t.HasImage == o.HasImage &&
		t.IsFlagged == o.IsFlagged
}

// DecodeList parses a JSON array of transactions. Any other top-level value
// is reported as ErrNotAList. Elements are read leniently: a field whose
// value cannot be represented is left at its zero value and logged, and an
// element that is not an object becomes a zero record.
func DecodeList(data []byte) ([]Transaction, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotAList, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: null", ErrNotAList)
	}

	txs := make([]Transaction, 0, len(raw))
	for i, item := range raw {
		tx, problems := decodeLenient(item)
		for _, err := range problems {
			slog.Warn("Transaction field not understood", "record", i, "id", tx.ID, "error", err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// decodeLenient reads one list element field by field.
func decodeLenient(item json.RawMessage) (Transaction, []error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(item, &fields); err != nil {
		return Transaction{}, []error{fmt.Errorf("not an object: %w", err)}
	}

	var (
		tx       Transaction
		problems []error
	)
	field := func(name string, dst any) {
		v, ok := fields[name]
		if !ok || string(v) == "null" {
			return
		}
		if err := json.Unmarshal(v, dst); err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", name, err))
		}
	}

	field("id", &tx.ID)
	field("type", &tx.Type)
	field("categoryId", &tx.CategoryID)
	field("note", &tx.Note)
	field("account", &tx.Account)
	field("toAccount", &tx.ToAccount)
	field("ledger", &tx.Ledger)
	field("hasImage", &tx.HasImage)
	field("isFlagged", &tx.IsFlagged)

	var amount json.Number
	field("amount", &amount)
	if amount != "" {
		parsed, err := decimal.NewFromString(string(amount))
		if err != nil {
			problems = append(problems, fmt.Errorf("amount: %w", err))
		} else {
			tx.Amount = parsed
		}
	}

	var date string
	field("date", &date)
	if date != "" {
		parsed, err := ParseDate(date)
		if err != nil {
			problems = append(problems, fmt.Errorf("date: %w", err))
		} else {
			tx.Date = parsed
		}
	}

	return tx, problems
}

// EncodeList writes the compact form stored locally.
func EncodeList(txs []Transaction) ([]byte, error) {
	if txs == nil {
		txs = []Transaction{}
	}
	return json.Marshal(txs)
}

// EncodeListIndent writes the pretty-printed form used for mirrored files
// and exports.
func EncodeListIndent(txs []Transaction) ([]byte, error) {
	if txs == nil {
		txs = []Transaction{}
	}
	return json.MarshalIndent(txs, "", "  ")
}
