package iocache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("key", []byte("value"), time.Minute))

	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), value)
}

func TestMemoryStoreMiss(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	_, err := store.Get("absent")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStoreTTLExpiry(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("short", []byte("v"), 10*time.Millisecond))

	_, err := store.Get("short")
	require.NoError(t, err, "entry should be live before its TTL elapses")

	time.Sleep(20 * time.Millisecond)
	_, err = store.Get("short")
	assert.ErrorIs(t, err, ErrCacheMiss, "entry should expire after its TTL")
}

func TestMemoryStoreOverwrite(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("key", []byte("old"), time.Minute))
	require.NoError(t, store.Set("key", []byte("new"), time.Minute))

	value, err := store.Get("key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), value)
}

func TestMemoryStoreDeleteAndClear(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("a", []byte("1"), time.Minute))
	require.NoError(t, store.Set("b", []byte("2"), time.Minute))

	require.NoError(t, store.Delete("a"))
	_, err := store.Get("a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, store.Clear())
	_, err = store.Get("b")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestMemoryStoreStatus(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("live", []byte("1"), time.Minute))
	require.NoError(t, store.Set("expired", []byte("2"), -time.Second))

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, "memory", status.Backend)
	assert.Equal(t, 2, status.TotalEntries)
	assert.Equal(t, 1, status.LiveEntries)
	assert.False(t, status.OldestEntryTime.IsZero())
}

func TestMemoryStoreSweep(t *testing.T) {
	store := NewMemoryStore()
	defer func() { _ = store.Close() }()

	require.NoError(t, store.Set("expired", []byte("1"), -time.Second))
	require.NoError(t, store.Set("live", []byte("2"), time.Minute))

	store.sweep()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 1, status.TotalEntries)
}

func TestMemoryStoreCloseTwice(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Close())
	require.NoError(t, store.Close())
}
