package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	v, err := s.Get("nope")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryStoreSetGet(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("a", []byte(`{"x":1}`)))

	v, err := s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), v)

	// overwrite
	require.NoError(t, s.Set("a", []byte(`{"x":2}`)))
	v, err = s.Get("a")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":2}`), v)
}

func TestMemoryStoreGetByPrefixOrder(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("user:1:survey:2025-01-08", []byte("b")))
	require.NoError(t, s.Set("user:1:survey:2025-01-06", []byte("a")))
	require.NoError(t, s.Set("user:1:camera:2025-01-06", []byte("z")))
	require.NoError(t, s.Set("user:1:survey:2025-01-07", []byte("c")))

	values, err := s.GetByPrefix("user:1:survey:")
	require.NoError(t, err)
	require.Len(t, values, 3)

	// first-set order, not key order
	assert.Equal(t, []byte("b"), values[0])
	assert.Equal(t, []byte("a"), values[1])
	assert.Equal(t, []byte("c"), values[2])
}

func TestMemoryStoreOverwriteKeepsPosition(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("p:1", []byte("first")))
	require.NoError(t, s.Set("p:2", []byte("second")))
	require.NoError(t, s.Set("p:1", []byte("updated")))

	values, err := s.GetByPrefix("p:")
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, []byte("updated"), values[0])
	assert.Equal(t, []byte("second"), values[1])
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	s := NewMemoryStore()
	buf := []byte("original")
	require.NoError(t, s.Set("k", buf))
	buf[0] = 'X'

	v, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), v)

	v[0] = 'Y'
	again, err := s.Get("k")
	require.NoError(t, err)
	assert.Equal(t, []byte("original"), again)
}
