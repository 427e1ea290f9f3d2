package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreReadYourWrites(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "balance/u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Put(ctx, "balance/u1", []byte(`{"tokens_remaining":10}`)))
	v, err := s.Get(ctx, "balance/u1")
	require.NoError(t, err)
	assert.Equal(t, `{"tokens_remaining":10}`, string(v))

	require.NoError(t, s.Put(ctx, "balance/u1", []byte(`{"tokens_remaining":5}`)))
	v, err = s.Get(ctx, "balance/u1")
	require.NoError(t, err)
	assert.Equal(t, `{"tokens_remaining":5}`, string(v))

	require.NoError(t, s.Delete(ctx, "balance/u1"))
	_, err = s.Get(ctx, "balance/u1")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStoreList(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	require.NoError(t, s.Put(ctx, "receipt/u1/a", []byte("1")))
	require.NoError(t, s.Put(ctx, "receipt/u1/b", []byte("2")))
	require.NoError(t, s.Put(ctx, "receipt/u2/c", []byte("3")))

	got, err := s.List(ctx, "receipt/u1/")
	require.NoError(t, err)
	assert.Len(t, got, 2)
	assert.Contains(t, got, "receipt/u1/a")
	assert.Contains(t, got, "receipt/u1/b")
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("original")
	require.NoError(t, s.Put(ctx, "k", buf))
	buf[0] = 'X'

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "original", string(v))
}
