package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/model"
)

// TransactionsKey is the local key holding the serialized list.
const TransactionsKey = "transactions"

// KV is the part of the local key-value store the ledger needs.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Load reads the list stored under TransactionsKey. A missing key yields an
// empty list.
func Load(ctx context.Context, kv KV) ([]model.Transaction, error) {
	data, err := kv.Get(ctx, TransactionsKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stored transactions: %w", err)
	}

	txs, err := model.DecodeList(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode stored transactions: %w", err)
	}
	return txs, nil
}

// PersistTo returns a WriteFunc that stores the whole list under
// TransactionsKey.
func PersistTo(kv KV) WriteFunc {
	return func(ctx context.Context, snapshot []model.Transaction) error {
		data, err := model.EncodeList(snapshot)
		if err != nil {
			return fmt.Errorf("failed to encode transactions: %w", err)
		}
		return kv.Put(ctx, TransactionsKey, data)
	}
}
