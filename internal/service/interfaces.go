// Package service defines the interfaces shared between application components.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/shopspring/decimal"
)

// KVStore is the local durable key-value namespace. Get returns
// common.ErrNotFound for absent keys.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// ReportWriter exports a month report for a ledger.
type ReportWriter interface {
	Write(ctx context.Context, report *Report) error
}

// Report is one ledger's activity for one month.
type Report struct {
	Month             model.MonthRange
	Income            decimal.Decimal
	Expense           decimal.Decimal
	Balance           decimal.Decimal
	Ledger            string
	ExpenseByCategory []CategorySummary
	IncomeByCategory  []CategorySummary
	Transactions      []model.Transaction
}

// CategorySummary contains aggregated statistics for a category.
type CategorySummary struct {
	Amount     decimal.Decimal
	ID         string
	Name       string
	Icon       string
	Count      int
	Percentage float64
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
