package mirror

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/pocketbook/internal/ledger"
	"github.com/Veraticus/pocketbook/internal/model"
	"github.com/Veraticus/pocketbook/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileTarget_ReadMissingIsEmpty(t *testing.T) {
	target := NewFileTarget(filepath.Join(t.TempDir(), "pocket.json"))

	data, err := target.Read(context.Background())
	require.NoError(t, err)
	assert.Empty(t, data)
}

func TestFileTarget_PermissionCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocket.json")
	target := NewFileTarget(path)

	require.NoError(t, target.RequestPermission(context.Background()))
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestFileTarget_WriteOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pocket.json")
	target := NewFileTarget(path)
	ctx := context.Background()

	require.NoError(t, target.Write(ctx, []byte("a much longer first version")))
	require.NoError(t, target.Write(ctx, []byte("[]")))

	data, err := target.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	assert.Equal(t, path, target.String())
}

func TestFileTarget_MissingDirectoryIsUnavailable(t *testing.T) {
	target := NewFileTarget(filepath.Join(t.TempDir(), "no-such-dir", "pocket.json"))

	assert.ErrorIs(t, target.RequestPermission(context.Background()), ErrUnavailable)
}

func TestFileTarget_ReadOnlyIsDenied(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file modes are not enforced for root")
	}

	path := filepath.Join(t.TempDir(), "pocket.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o400))
	target := NewFileTarget(path)
	ctx := context.Background()

	assert.ErrorIs(t, target.RequestPermission(ctx), ErrPermissionDenied)
	assert.ErrorIs(t, target.Write(ctx, []byte("[]")), ErrPermissionDenied)
}

func TestSession_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "pocket.json")
	resolver := NewResolver(nil)

	first := ledger.NewStore(nil, nil)
	session := NewSession(testutil.NewMemoryKV(), resolver, first, nil)
	first.AddSink(session)

	_, err := session.Link(ctx, pickURI(path))
	require.NoError(t, err)

	first.Add(testutil.NewTx("a").Expense("12.5").Category("coffee").Note("latte").On(2024, 3, 2).Build())
	first.Add(testutil.NewTx("b").Transfer("0", "现金").On(2024, 3, 3).Flagged().Build())
	first.Add(testutil.NewTx("c").Income("3000").On(2024, 3, 4).Build())
	require.NoError(t, session.Close(ctx))

	// A second installation links the same file and sees the same list.
	second := ledger.NewStore(nil, nil)
	other := NewSession(testutil.NewMemoryKV(), resolver, second, nil)
	second.AddSink(other)
	defer func() { _ = other.Close(ctx) }()

	out, err := other.Link(ctx, pickURI("file://"+path))
	require.NoError(t, err)
	assert.Equal(t, 3, out.Imported)

	want, got := first.All(), second.All()
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "record %d differs", i)
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	decoded, err := model.DecodeList(data)
	require.NoError(t, err)
	assert.Len(t, decoded, 3)
}
