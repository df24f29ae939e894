package ledger

import (
	"context"
	"errors"
	"testing"

	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Missing(t *testing.T) {
	txs, err := Load(context.Background(), testutil.NewMemoryKV())
	require.NoError(t, err)
	assert.Empty(t, txs)
}

func TestLoad_Corrupt(t *testing.T) {
	kv := testutil.NewMemoryKV()
	require.NoError(t, kv.Put(context.Background(), TransactionsKey, []byte(`{"oops":true}`)))

	_, err := Load(context.Background(), kv)
	assert.ErrorIs(t, err, model.ErrNotAList)
}

func TestStore_PersistsThroughSQLite(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	store := NewStore(nil, nil)
	sink := NewAsyncSink("local", PersistTo(db), nil)
	store.AddSink(sink)

	store.Add(testutil.NewTx("a").Expense("50").Build())
	store.Add(testutil.NewTx("b").Income("7.5").Build())
	store.Delete("a")
	require.NoError(t, sink.Close(ctx))

	loaded, err := Load(ctx, db)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "b", loaded[0].ID)
	assert.Equal(t, "7.5", loaded[0].Amount.String())
}

func TestPersistTo_PropagatesPutError(t *testing.T) {
	kv := testutil.NewMemoryKV()
	kv.PutErr = errors.New("quota exceeded")

	err := PersistTo(kv)(context.Background(), []model.Transaction{testutil.NewTx("a").Build()})
	assert.ErrorContains(t, err, "quota exceeded")
}
