package model

import (
	"errors"
	"fmt"
)

// Validation errors.
var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrNotAList      = errors.New("content is not a list of transactions")
)

// ValidateForSave applies the checks made when the user saves an entry.
// Expense and income need a strictly positive amount. Transfers may be zero
// but never negative.
func ValidateForSave(tx Transaction) error {
	switch tx.Type {
	case TypeExpense, TypeIncome:
		if !tx.Amount.IsPositive() {
			return fmt.Errorf("%w: amount must be greater than 0", ErrInvalidAmount)
		}
	case TypeTransfer:
		if tx.Amount.IsNegative() {
			return fmt.Errorf("%w: amount cannot be negative", ErrInvalidAmount)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidType, tx.Type)
	}
	return nil
}

// Normalized clears fields that do not apply to the record's type.
func (t Transaction) Normalized() Transaction {
	if t.Type != TypeTransfer {
		t.ToAccount = ""
	}
	return t
}
