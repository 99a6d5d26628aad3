package memory

import (
	"context"
	"testing"

	"todolist/internal/kv"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ kv.Storage = (*Store)(nil)

func TestStore_GetSetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, kv.KeyUsers)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, kv.KeyUsers, `{"alice":{"password":"pw1"}}`))
	v, ok, err := s.Get(ctx, kv.KeyUsers)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"alice":{"password":"pw1"}}`, v)

	require.NoError(t, s.Set(ctx, kv.KeyUsers, `{}`))
	v, _, _ = s.Get(ctx, kv.KeyUsers)
	assert.Equal(t, `{}`, v)

	require.NoError(t, s.Delete(ctx, kv.KeyUsers))
	_, ok, err = s.Get(ctx, kv.KeyUsers)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is not an error.
	assert.NoError(t, s.Delete(ctx, "missing"))
}

func TestStore_Keys(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, kv.KeyTodos, "{}"))
	require.NoError(t, s.Set(ctx, kv.KeySession, "{}"))
	require.NoError(t, s.Set(ctx, kv.KeyUsers, "{}"))

	assert.Equal(t, []string{kv.KeySession, kv.KeyTodos, kv.KeyUsers}, s.Keys())
}
