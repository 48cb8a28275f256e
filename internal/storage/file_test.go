package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSetGetRoundTrip(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, store.Set(KeyToken, "tok-1"))

	value, ok := store.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", value)
}

func TestGetMissingKey(t *testing.T) {
	store := newTestFileStore(t)

	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestSetOverwrites(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, store.Set(KeyCart, "[]"))
	require.NoError(t, store.Set(KeyCart, `[{"quantity":1}]`))

	value, _ := store.Get(KeyCart)
	assert.Equal(t, `[{"quantity":1}]`, value)
}

func TestRemoveIsIdempotent(t *testing.T) {
	store := newTestFileStore(t)

	require.NoError(t, store.Set(KeyUser, "{}"))
	require.NoError(t, store.Remove(KeyUser))
	require.NoError(t, store.Remove(KeyUser))

	_, ok := store.Get(KeyUser)
	assert.False(t, ok)
}

func TestValuesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, store.Set(KeyToken, "tok-1"))

	reopened, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	value, ok := reopened.Get(KeyToken)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", value)
}
